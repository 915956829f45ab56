package analytics

import (
	"errors"
	"fmt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

var (
	// ErrUnauthorized is returned by config writes that carry no
	// authenticated coach identity.
	ErrUnauthorized = errors.New("authentication required")

	// ErrUnknownTier rejects tier values outside the known ladder.
	ErrUnknownTier = errors.New("unknown tier")
)

// Feature names as they read in lock errors and API payloads.
const (
	FeatureDriveAnalytics    = "drive_analytics"
	FeaturePlayerAttribution = "player_attribution"
	FeatureLineTracking      = "offensive_line_tracking"
	FeatureDefenseTracking   = "defensive_tracking"
	FeatureSituationalSplits = "situational_splits"
)

// FeatureLockedError reports that the team's tier does not enable the
// requested calculator. It is raised before any play data is fetched.
type FeatureLockedError struct {
	Feature string
	Tier    filmroom.Tier
}

func (e *FeatureLockedError) Error() string {
	return fmt.Sprintf("%s is not available on the %s tier", e.Feature, e.Tier)
}

// IsFeatureLocked reports whether err is a tier gate rejection.
func IsFeatureLocked(err error) bool {
	var locked *FeatureLockedError
	return errors.As(err, &locked)
}
