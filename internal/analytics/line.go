package analytics

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// OffensiveLineStats is one lineman's blocking record. A lineman with no
// graded assignments still gets a row: the line group is structural, and an
// all-zero line is information in itself.
type OffensiveLineStats struct {
	PlayerID    string   `json:"playerId"`
	Positions   []string `json:"positions"`
	Assignments int      `json:"assignments"`
	Wins        int      `json:"wins"`
	Losses      int      `json:"losses"`
	Neutral     int      `json:"neutral"`
	WinRate     float64  `json:"winRate"`
	Penalties   int      `json:"penalties"`
}

// OffensiveLine computes blocking stats for every rostered lineman. The
// candidate pool is position-based, so a tight end listed at tackle
// qualifies. Players are processed concurrently; a failed player is logged
// and omitted rather than sinking the whole group.
func (s *Service) OffensiveLine(ctx context.Context, teamID, gameID string) ([]OffensiveLineStats, error) {
	if _, err := s.requireFeature(ctx, teamID, FeatureLineTracking); err != nil {
		return nil, err
	}
	videos, err := s.videoScope(ctx, gameID)
	if err != nil {
		return nil, err
	}
	roster, err := s.store.TeamRoster(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching roster: %w", err)
	}

	var linemen []filmroom.Player
	for _, pl := range roster {
		if pl.HasAnyPosition(filmroom.LinePositions) {
			linemen = append(linemen, pl)
		}
	}

	results := make([]*OffensiveLineStats, len(linemen))
	var wg sync.WaitGroup
	for i, pl := range linemen {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := s.lineStatsFor(ctx, pl, videos)
			if err != nil {
				s.logger.Warn("line stats failed, omitting player",
					"player_id", pl.ID, "error", err)
				return
			}
			results[i] = &stats
		}()
	}
	wg.Wait()

	out := make([]OffensiveLineStats, 0, len(linemen))
	for _, st := range results {
		if st != nil {
			out = append(out, *st)
		}
	}
	return out, nil
}

// lineStatsFor runs the two independent reductions for one lineman in
// parallel. Both must land for the row to count.
func (s *Service) lineStatsFor(ctx context.Context, pl filmroom.Player, videos []string) (OffensiveLineStats, error) {
	var (
		block     filmroom.BlockLine
		penalties int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		block, err = s.store.BlockLine(gctx, pl.ID, videos)
		return err
	})
	g.Go(func() error {
		var err error
		penalties, err = s.store.PenaltyCount(gctx, pl.ID, videos)
		return err
	})
	if err := g.Wait(); err != nil {
		return OffensiveLineStats{}, err
	}

	return OffensiveLineStats{
		PlayerID:    pl.ID,
		Positions:   linePositionsOf(pl),
		Assignments: block.Assignments,
		Wins:        block.Wins,
		Losses:      block.Losses,
		Neutral:     block.Neutral,
		WinRate:     block.WinRate,
		Penalties:   penalties,
	}, nil
}

func linePositionsOf(pl filmroom.Player) []string {
	var out []string
	for _, code := range filmroom.LinePositions {
		if pl.HasAnyPosition([]string{code}) {
			out = append(out, code)
		}
	}
	return out
}
