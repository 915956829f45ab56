package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/store"
)

// TeamConfig resolves the team's analytics configuration. A team that has
// never been configured gets the plus-tier default; that is a valid result,
// not an error.
func (s *Service) TeamConfig(ctx context.Context, teamID string) (filmroom.AnalyticsConfig, error) {
	cfg, err := s.store.AnalyticsConfig(ctx, teamID)
	if errors.Is(err, store.ErrNotFound) {
		return filmroom.DefaultConfig(teamID), nil
	}
	if err != nil {
		return filmroom.AnalyticsConfig{}, fmt.Errorf("resolving analytics config: %w", err)
	}
	return cfg, nil
}

// ConfigPatch is a partial config update. Nil fields are left alone.
type ConfigPatch struct {
	Tier        *filmroom.Tier
	Granularity *string
}

// UpdateTeamConfig applies a patch on top of the team's current (or default)
// configuration and persists the result. Feature flags are recomputed from
// the tier ladder only when the patch changes the tier; a granularity-only
// patch leaves them untouched. updatedBy must identify an authenticated
// coach.
func (s *Service) UpdateTeamConfig(ctx context.Context, teamID string, patch ConfigPatch, updatedBy string) (filmroom.AnalyticsConfig, error) {
	if updatedBy == "" {
		return filmroom.AnalyticsConfig{}, ErrUnauthorized
	}

	cfg, err := s.TeamConfig(ctx, teamID)
	if err != nil {
		return filmroom.AnalyticsConfig{}, err
	}

	if patch.Tier != nil {
		tier, ok := filmroom.NormalizeTier(*patch.Tier)
		if !ok {
			return filmroom.AnalyticsConfig{}, fmt.Errorf("%w: %q", ErrUnknownTier, *patch.Tier)
		}
		cfg.Tier = tier
		cfg.Features = filmroom.FeaturesForTier(tier)
		cfg.Granularity = filmroom.GranularityForTier(tier)
	}
	if patch.Granularity != nil {
		cfg.Granularity = *patch.Granularity
	}

	cfg.TeamID = teamID
	cfg.UpdatedBy = updatedBy
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveAnalyticsConfig(ctx, cfg); err != nil {
		return filmroom.AnalyticsConfig{}, fmt.Errorf("saving analytics config: %w", err)
	}
	return cfg, nil
}

// requireFeature resolves the team config and checks one feature flag. The
// flags decide, never the tier name, so legacy tier aliases behave exactly
// like the tiers they map to.
func (s *Service) requireFeature(ctx context.Context, teamID, feature string) (filmroom.AnalyticsConfig, error) {
	cfg, err := s.TeamConfig(ctx, teamID)
	if err != nil {
		return filmroom.AnalyticsConfig{}, err
	}

	var enabled bool
	switch feature {
	case FeatureDriveAnalytics:
		enabled = cfg.Features.DriveAnalytics
	case FeaturePlayerAttribution:
		enabled = cfg.Features.PlayerAttribution
	case FeatureLineTracking:
		enabled = cfg.Features.LineTracking
	case FeatureDefenseTracking:
		enabled = cfg.Features.DefenseTracking
	case FeatureSituationalSplits:
		enabled = cfg.Features.SituationalSplits
	}
	if !enabled {
		return cfg, &FeatureLockedError{Feature: feature, Tier: cfg.Tier}
	}
	return cfg, nil
}

// videoScope resolves the optional game filter into a video-ID scope.
// No game means all film (nil); a game with no video yields an empty,
// match-nothing scope rather than silently widening to the whole season.
func (s *Service) videoScope(ctx context.Context, gameID string) ([]string, error) {
	if gameID == "" {
		return nil, nil
	}
	ids, err := s.store.GameVideoIDs(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("resolving game film: %w", err)
	}
	return ids, nil
}
