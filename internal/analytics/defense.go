package analytics

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// DefensivePlayerStats is one defender's production, reduced entirely from
// normalized participation rows. Tackle participation is measured against
// the team's defensive snap count, pressure and sack rates against the
// opponent's pass plays.
//
// Tackles for loss, forced fumbles, interceptions, and pass breakups are
// tagged on the play record, not yet attributed to a defender in the
// participation rows, so they stay zero here for now.
type DefensivePlayerStats struct {
	PlayerID string `json:"playerId"`
	Snaps    int    `json:"snaps"`

	TacklesPrimary      int     `json:"tacklesPrimary"`
	TacklesAssist       int     `json:"tacklesAssist"`
	TacklesMissed       int     `json:"tacklesMissed"`
	TotalTackles        int     `json:"totalTackles"`
	TackleParticipation float64 `json:"tackleParticipation"`

	Pressures    int     `json:"pressures"`
	Sacks        int     `json:"sacks"`
	PressureRate float64 `json:"pressureRate"`
	SackRate     float64 `json:"sackRate"`

	CoverageTargets     int     `json:"coverageTargets"`
	CoverageWins        int     `json:"coverageWins"`
	CoverageSuccessRate float64 `json:"coverageSuccessRate"`

	TacklesForLoss int `json:"tacklesForLoss"`
	ForcedFumbles  int `json:"forcedFumbles"`
	Interceptions  int `json:"interceptions"`
	PassBreakups   int `json:"passBreakups"`
}

// DefensivePlayers computes per-defender stats for the roster's defensive
// players. The two team-level snap counts are fetched once, concurrently,
// before the per-player fan-out; a team-level failure fails the whole
// collection, while a single player's failure only omits that player.
func (s *Service) DefensivePlayers(ctx context.Context, teamID, gameID string) ([]DefensivePlayerStats, error) {
	if _, err := s.requireFeature(ctx, teamID, FeatureDefenseTracking); err != nil {
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

	var defenders []filmroom.Player
	for _, pl := range roster {
		if pl.HasAnyPosition(filmroom.DefensivePositions) {
			defenders = append(defenders, pl)
		}
	}
	if len(defenders) == 0 {
		return []DefensivePlayerStats{}, nil
	}

	var teamSnaps, passSnaps int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teamSnaps, err = s.store.DefensiveSnaps(gctx, teamID, videos)
		return err
	})
	g.Go(func() error {
		var err error
		passSnaps, err = s.store.PassRushSnaps(gctx, teamID, videos)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("counting defensive snaps: %w", err)
	}

	results := make([]*DefensivePlayerStats, len(defenders))
	var wg sync.WaitGroup
	for i, pl := range defenders {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := s.defensiveStatsFor(ctx, pl.ID, videos, teamSnaps, passSnaps)
			if err != nil {
				s.logger.Warn("defensive stats failed, omitting player",
					"player_id", pl.ID, "error", err)
				return
			}
			results[i] = &stats
		}()
	}
	wg.Wait()

	out := make([]DefensivePlayerStats, 0, len(defenders))
	for _, st := range results {
		if st != nil {
			out = append(out, *st)
		}
	}
	return out, nil
}

// defensiveStatsFor runs one defender's four reductions in parallel and
// derives the rates from the team denominators.
func (s *Service) defensiveStatsFor(ctx context.Context, playerID string, videos []string, teamSnaps, passSnaps int) (DefensivePlayerStats, error) {
	var (
		tackles  filmroom.TackleLine
		rush     filmroom.PressureLine
		coverage filmroom.CoverageLine
		snaps    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tackles, err = s.store.TackleLine(gctx, playerID, videos)
		return err
	})
	g.Go(func() error {
		var err error
		rush, err = s.store.PressureLine(gctx, playerID, videos)
		return err
	})
	g.Go(func() error {
		var err error
		coverage, err = s.store.CoverageLine(gctx, playerID, videos)
		return err
	})
	g.Go(func() error {
		var err error
		snaps, err = s.store.ParticipationSnaps(gctx, playerID, videos)
		return err
	})
	if err := g.Wait(); err != nil {
		return DefensivePlayerStats{}, err
	}

	st := DefensivePlayerStats{
		PlayerID:        playerID,
		Snaps:           snaps,
		TacklesPrimary:  tackles.Primary,
		TacklesAssist:   tackles.Assist,
		TacklesMissed:   tackles.Missed,
		TotalTackles:    tackles.Primary + tackles.Assist,
		Pressures:       rush.Pressures,
		Sacks:           rush.Sacks,
		CoverageTargets: coverage.Targets,
		CoverageWins:    coverage.Wins,
	}
	if teamSnaps > 0 {
		st.TackleParticipation = float64(st.TotalTackles) / float64(teamSnaps) * 100
	}
	if passSnaps > 0 {
		st.PressureRate = float64(rush.Pressures) / float64(passSnaps) * 100
		st.SackRate = float64(rush.Sacks) / float64(passSnaps) * 100
	}
	if coverage.Targets > 0 {
		st.CoverageSuccessRate = float64(coverage.Wins) / float64(coverage.Targets) * 100
	}
	return st, nil
}
