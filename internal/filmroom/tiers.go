package filmroom

import "time"

// Tier is a team's subscription level. Tiers are ordered:
// basic < plus < premium < ai_powered. The legacy names still appear in
// older team rows and are accepted anywhere a tier is read.
type Tier string

const (
	TierBasic     Tier = "basic"
	TierPlus      Tier = "plus"
	TierPremium   Tier = "premium"
	TierAIPowered Tier = "ai_powered"

	// Legacy tier names, mapped onto the current ladder.
	TierLittleLeague Tier = "little_league"
	TierHSBasic      Tier = "hs_basic"
	TierHSAdvanced   Tier = "hs_advanced"
)

// NormalizeTier maps legacy tier names onto the current ladder and reports
// whether the input named a known tier at all.
func NormalizeTier(t Tier) (Tier, bool) {
	switch t {
	case TierBasic, TierPlus, TierPremium, TierAIPowered:
		return t, true
	case TierLittleLeague:
		return TierBasic, true
	case TierHSBasic:
		return TierPlus, true
	case TierHSAdvanced:
		return TierPremium, true
	}
	return "", false
}

// FeatureSet holds the per-category enable flags. Calculators gate on these
// flags, never on the tier name.
type FeatureSet struct {
	DriveAnalytics    bool `json:"driveAnalytics"`
	PlayerAttribution bool `json:"playerAttribution"`
	LineTracking      bool `json:"lineTracking"`
	DefenseTracking   bool `json:"defenseTracking"`
	SituationalSplits bool `json:"situationalSplits"`
}

// FeaturesForTier derives the flag set for a tier. This is the only place
// flags come from: configs store the derived values, and a tier change
// overwrites all of them at once.
func FeaturesForTier(t Tier) FeatureSet {
	t, _ = NormalizeTier(t)
	switch t {
	case TierBasic:
		return FeatureSet{DriveAnalytics: true}
	case TierPlus:
		return FeatureSet{DriveAnalytics: true, PlayerAttribution: true}
	case TierPremium:
		return FeatureSet{
			DriveAnalytics:    true,
			PlayerAttribution: true,
			LineTracking:      true,
			DefenseTracking:   true,
		}
	case TierAIPowered:
		return FeatureSet{
			DriveAnalytics:    true,
			PlayerAttribution: true,
			LineTracking:      true,
			DefenseTracking:   true,
			SituationalSplits: true,
		}
	}
	return FeatureSet{}
}

// GranularityForTier picks the default tagging granularity for a tier.
func GranularityForTier(t Tier) string {
	t, _ = NormalizeTier(t)
	if t == TierPremium || t == TierAIPowered {
		return "advanced"
	}
	return "standard"
}

// AnalyticsConfig is a team's analytics configuration: tier plus the flags
// derived from it. One row per team; mutated only through the tier-update
// path, which stamps the updater.
type AnalyticsConfig struct {
	TeamID      string     `json:"teamId"`
	Tier        Tier       `json:"tier"`
	Features    FeatureSet `json:"features"`
	Granularity string     `json:"granularity"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt,omitzero"`
}

// DefaultConfig is what a team without a stored configuration gets: the
// second-lowest tier with its derived flags. Missing configuration is a
// handled state, not an error.
func DefaultConfig(teamID string) AnalyticsConfig {
	return AnalyticsConfig{
		TeamID:      teamID,
		Tier:        TierPlus,
		Features:    FeaturesForTier(TierPlus),
		Granularity: GranularityForTier(TierPlus),
	}
}
