package analytics

import (
	"context"
	"fmt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// SituationalSplit is the team's offensive production under one play-level
// condition.
type SituationalSplit struct {
	Condition     string  `json:"condition"`
	Label         string  `json:"label"`
	Plays         int     `json:"plays"`
	Yards         int     `json:"yards"`
	YardsPerPlay  float64 `json:"yardsPerPlay"`
	SuccessRate   float64 `json:"successRate"`
	ExplosiveRate float64 `json:"explosiveRate"`
}

// The report's fixed condition set. Each maps onto one tagged play flag;
// adding a condition here is all it takes to grow the report.
var splitConditions = []struct {
	condition string
	label     string
}{
	{"motion", "With pre-snap motion"},
	{"play_action", "Play action"},
	{"blitz", "Versus blitz"},
}

// SituationalSplits reports offensive efficiency under each tracked
// condition. Conditions the team has no plays for are left out instead of
// being reported as zero rows.
func (s *Service) SituationalSplits(ctx context.Context, teamID, gameID string) ([]SituationalSplit, error) {
	if _, err := s.requireFeature(ctx, teamID, FeatureSituationalSplits); err != nil {
		return nil, err
	}
	videos, err := s.videoScope(ctx, gameID)
	if err != nil {
		return nil, err
	}

	out := []SituationalSplit{}
	for _, c := range splitConditions {
		counts, err := s.store.SituationalCounts(ctx, teamID, videos, c.condition, true)
		if err != nil {
			return nil, fmt.Errorf("computing %s split: %w", c.condition, err)
		}
		if counts.Plays == 0 {
			continue
		}
		out = append(out, buildSplit(c.condition, c.label, counts))
	}
	return out, nil
}

func buildSplit(condition, label string, c filmroom.SplitCounts) SituationalSplit {
	split := SituationalSplit{
		Condition: condition,
		Label:     label,
		Plays:     c.Plays,
		Yards:     c.Yards,
	}
	n := float64(c.Plays)
	split.YardsPerPlay = float64(c.Yards) / n
	split.SuccessRate = float64(c.Successes) / n * 100
	split.ExplosiveRate = float64(c.Explosives) / n * 100
	return split
}
