package filmroom

import "testing"

func TestFeaturesForTierLadder(t *testing.T) {
	tests := []struct {
		tier Tier
		want FeatureSet
	}{
		{TierBasic, FeatureSet{DriveAnalytics: true}},
		{TierPlus, FeatureSet{DriveAnalytics: true, PlayerAttribution: true}},
		{TierPremium, FeatureSet{
			DriveAnalytics:    true,
			PlayerAttribution: true,
			LineTracking:      true,
			DefenseTracking:   true,
		}},
		{TierAIPowered, FeatureSet{
			DriveAnalytics:    true,
			PlayerAttribution: true,
			LineTracking:      true,
			DefenseTracking:   true,
			SituationalSplits: true,
		}},
	}

	for _, tt := range tests {
		if got := FeaturesForTier(tt.tier); got != tt.want {
			t.Errorf("FeaturesForTier(%s) = %+v, want %+v", tt.tier, got, tt.want)
		}
	}
}

func TestFeaturesForTierDeterministic(t *testing.T) {
	for _, tier := range []Tier{TierBasic, TierPlus, TierPremium, TierAIPowered} {
		first := FeaturesForTier(tier)
		second := FeaturesForTier(tier)
		if first != second {
			t.Errorf("FeaturesForTier(%s) not deterministic: %+v vs %+v", tier, first, second)
		}
	}
}

func TestNormalizeTierLegacy(t *testing.T) {
	tests := []struct {
		in   Tier
		want Tier
	}{
		{TierLittleLeague, TierBasic},
		{TierHSBasic, TierPlus},
		{TierHSAdvanced, TierPremium},
		{TierPremium, TierPremium},
	}

	for _, tt := range tests {
		got, ok := NormalizeTier(tt.in)
		if !ok {
			t.Errorf("NormalizeTier(%s) reported unknown", tt.in)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeTier(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, ok := NormalizeTier("gold"); ok {
		t.Error("NormalizeTier accepted an unknown tier name")
	}
}

func TestLegacyTiersShareFlags(t *testing.T) {
	if FeaturesForTier(TierHSAdvanced) != FeaturesForTier(TierPremium) {
		t.Error("hs_advanced should derive the premium flag set")
	}
	if FeaturesForTier(TierLittleLeague) != FeaturesForTier(TierBasic) {
		t.Error("little_league should derive the basic flag set")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("team-1")

	if cfg.Tier != TierPlus {
		t.Errorf("default tier = %s, want %s", cfg.Tier, TierPlus)
	}
	if !cfg.Features.DriveAnalytics || !cfg.Features.PlayerAttribution {
		t.Error("default config should enable drive analytics and player attribution")
	}
	if cfg.Features.LineTracking || cfg.Features.DefenseTracking || cfg.Features.SituationalSplits {
		t.Error("default config should disable line, defense, and situational tracking")
	}
	if cfg.Granularity != "standard" {
		t.Errorf("default granularity = %q, want %q", cfg.Granularity, "standard")
	}
}

func TestHasAnyPosition(t *testing.T) {
	p := Player{Positions: []string{"RG", "C"}}

	if !p.HasAnyPosition(LinePositions) {
		t.Error("guard/center should match line positions")
	}
	if p.HasAnyPosition(DefensivePositions) {
		t.Error("guard/center should not match defensive positions")
	}
	if (Player{}).HasAnyPosition(LinePositions) {
		t.Error("player with no positions should match nothing")
	}
}
