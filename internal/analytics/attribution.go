package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// RushingLine aggregates a player's plays as the ball-carrier.
type RushingLine struct {
	Carries     int     `json:"carries"`
	Yards       int     `json:"yards"`
	Average     float64 `json:"average"`
	Touchdowns  int     `json:"touchdowns"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"successRate"`
}

// PassingLine aggregates a player's dropbacks: pass plays where they were
// the tagged quarterback, sacks included.
type PassingLine struct {
	Dropbacks      int     `json:"dropbacks"`
	Completions    int     `json:"completions"`
	CompletionRate float64 `json:"completionRate"`
	Yards          int     `json:"yards"`
	Touchdowns     int     `json:"touchdowns"`
	Interceptions  int     `json:"interceptions"`
	Sacks          int     `json:"sacks"`
}

// ReceivingLine aggregates a player's plays as the targeted receiver.
type ReceivingLine struct {
	Targets    int     `json:"targets"`
	Receptions int     `json:"receptions"`
	CatchRate  float64 `json:"catchRate"`
	Yards      int     `json:"yards"`
	Touchdowns int     `json:"touchdowns"`
}

// PlayerAttributionStats is one player's offensive production. The three
// role subsets are not exclusive: a quarterback who scrambles shows up in
// both passing and rushing.
type PlayerAttributionStats struct {
	PlayerID  string        `json:"playerId"`
	Rushing   RushingLine   `json:"rushing"`
	Passing   PassingLine   `json:"passing"`
	Receiving ReceivingLine `json:"receiving"`
}

// Plays counts the attributed plays across all three subsets.
func (p PlayerAttributionStats) Plays() int {
	return p.Rushing.Carries + p.Passing.Dropbacks + p.Receiving.Targets
}

// Touchdowns sums scores across the three subsets.
func (p PlayerAttributionStats) Touchdowns() int {
	return p.Rushing.Touchdowns + p.Passing.Touchdowns + p.Receiving.Touchdowns
}

// PlayerAttribution reduces the team's own plays into per-player offensive
// stat lines. Players with no attributed activity are dropped; everything
// else, including all-zero rate denominators, is reported as zeros.
func (s *Service) PlayerAttribution(ctx context.Context, teamID, gameID string) ([]PlayerAttributionStats, error) {
	if _, err := s.requireFeature(ctx, teamID, FeaturePlayerAttribution); err != nil {
		return nil, err
	}
	videos, err := s.videoScope(ctx, gameID)
	if err != nil {
		return nil, err
	}
	plays, err := s.store.TeamPlays(ctx, teamID, videos, false)
	if err != nil {
		return nil, fmt.Errorf("fetching plays: %w", err)
	}
	return reduceAttribution(plays), nil
}

// reduceAttribution builds every player's line in a single pass over the
// play list. Success, completion, and touchdown are read from the tagged
// flags as-is; the reducer never re-grades a play.
func reduceAttribution(plays []filmroom.Play) []PlayerAttributionStats {
	acc := make(map[string]*PlayerAttributionStats)
	line := func(id string) *PlayerAttributionStats {
		st, ok := acc[id]
		if !ok {
			st = &PlayerAttributionStats{PlayerID: id}
			acc[id] = st
		}
		return st
	}

	for _, p := range plays {
		if p.CarrierID != "" {
			r := &line(p.CarrierID).Rushing
			r.Carries++
			r.Yards += p.Yards
			if p.Touchdown {
				r.Touchdowns++
			}
			if p.Success {
				r.Successes++
			}
		}
		if p.QuarterbackID != "" {
			// A dropback is a pass play from the quarterback's seat.
			// Handoffs reference the quarterback without counting
			// against passing efficiency; a quarterback who only ever
			// hands off ends up with an all-zero line and is dropped.
			q := &line(p.QuarterbackID).Passing
			if p.PlayType == "pass" || p.Sack {
				q.Dropbacks++
				if p.Complete {
					q.Completions++
					q.Yards += p.Yards
				}
				if p.Touchdown && p.Complete {
					q.Touchdowns++
				}
				if p.Interception {
					q.Interceptions++
				}
				if p.Sack {
					q.Sacks++
				}
			}
		}
		if p.TargetID != "" {
			t := &line(p.TargetID).Receiving
			t.Targets++
			if p.Complete {
				t.Receptions++
				t.Yards += p.Yards
			}
			if p.Touchdown && p.Complete {
				t.Touchdowns++
			}
		}
	}

	out := make([]PlayerAttributionStats, 0, len(acc))
	for _, st := range acc {
		if st.Plays() == 0 {
			continue
		}
		if st.Rushing.Carries > 0 {
			st.Rushing.Average = float64(st.Rushing.Yards) / float64(st.Rushing.Carries)
			st.Rushing.SuccessRate = float64(st.Rushing.Successes) / float64(st.Rushing.Carries) * 100
		}
		if st.Passing.Dropbacks > 0 {
			st.Passing.CompletionRate = float64(st.Passing.Completions) / float64(st.Passing.Dropbacks) * 100
		}
		if st.Receiving.Targets > 0 {
			st.Receiving.CatchRate = float64(st.Receiving.Receptions) / float64(st.Receiving.Targets) * 100
		}
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out
}
