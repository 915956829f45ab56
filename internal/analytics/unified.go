package analytics

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// UnifiedPlayerStats is one player's merged profile across the offense,
// offensive line, and defense categories. Categories the player has no data
// for — or that the team's tier locks — are nil and serialize as JSON null,
// so clients can tell "absent" from "all zeros".
type UnifiedPlayerStats struct {
	PlayerID  string   `json:"playerId"`
	Name      string   `json:"name"`
	Jersey    int      `json:"jersey"`
	Positions []string `json:"positions"`

	Offense       *PlayerAttributionStats `json:"offense"`
	OffensiveLine *OffensiveLineStats     `json:"offensiveLine"`
	Defense       *DefensivePlayerStats   `json:"defense"`

	TotalSnaps      int `json:"totalSnaps"`
	TotalTouchdowns int `json:"totalTouchdowns"`
}

// UnifiedPlayerStats runs the three per-player calculators concurrently and
// merges their outputs by player. A tier-locked category contributes an
// empty list rather than failing the merge. Defense runs under its own
// timeout: if it cannot finish in time, the profile ships without defensive
// numbers instead of blocking the categories that are ready.
func (s *Service) UnifiedPlayerStats(ctx context.Context, teamID, gameID string) ([]UnifiedPlayerStats, error) {
	var (
		offense    []PlayerAttributionStats
		offenseErr error
		line       []OffensiveLineStats
		lineErr    error
		defense    []DefensivePlayerStats
		defenseErr error
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		offense, offenseErr = s.PlayerAttribution(ctx, teamID, gameID)
		if IsFeatureLocked(offenseErr) {
			offense, offenseErr = nil, nil
		}
	}()
	go func() {
		defer wg.Done()
		line, lineErr = s.OffensiveLine(ctx, teamID, gameID)
		if IsFeatureLocked(lineErr) {
			line, lineErr = nil, nil
		}
	}()
	go func() {
		defer wg.Done()
		dctx, cancel := context.WithTimeout(ctx, s.defenseTimeout)
		defer cancel()
		d, err := s.DefensivePlayers(dctx, teamID, gameID)
		switch {
		case err == nil:
			defense = d
		case IsFeatureLocked(err):
		case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
			s.logger.Warn("defensive stats timed out, merging without defense",
				"team_id", teamID, "timeout", s.defenseTimeout)
		default:
			defenseErr = err
		}
	}()
	wg.Wait()

	if offenseErr != nil {
		return nil, offenseErr
	}
	if lineErr != nil {
		return nil, lineErr
	}
	if defenseErr != nil {
		return nil, defenseErr
	}

	offByID := make(map[string]*PlayerAttributionStats, len(offense))
	lineByID := make(map[string]*OffensiveLineStats, len(line))
	defByID := make(map[string]*DefensivePlayerStats, len(defense))
	var order []string
	seen := make(map[string]struct{})
	collect := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			order = append(order, id)
		}
	}
	for i := range offense {
		offByID[offense[i].PlayerID] = &offense[i]
		collect(offense[i].PlayerID)
	}
	for i := range line {
		lineByID[line[i].PlayerID] = &line[i]
		collect(line[i].PlayerID)
	}
	for i := range defense {
		defByID[defense[i].PlayerID] = &defense[i]
		collect(defense[i].PlayerID)
	}

	// Identities are fetched for exactly the union of contributing players,
	// never the full roster.
	players, err := s.store.PlayersByID(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("fetching player identities: %w", err)
	}
	identity := make(map[string]filmroom.Player, len(players))
	for _, pl := range players {
		identity[pl.ID] = pl
	}

	out := make([]UnifiedPlayerStats, 0, len(order))
	for _, id := range order {
		rec := UnifiedPlayerStats{
			PlayerID:      id,
			Offense:       offByID[id],
			OffensiveLine: lineByID[id],
			Defense:       defByID[id],
		}
		if rec.Offense == nil && rec.OffensiveLine == nil && rec.Defense == nil {
			continue
		}
		if pl, ok := identity[id]; ok {
			rec.Name = pl.Name
			rec.Jersey = pl.Jersey
			rec.Positions = pl.Positions
		}
		if rec.Offense != nil {
			rec.TotalSnaps += rec.Offense.Plays()
			rec.TotalTouchdowns += rec.Offense.Touchdowns()
		}
		if rec.Defense != nil {
			rec.TotalSnaps += rec.Defense.Snaps
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}
