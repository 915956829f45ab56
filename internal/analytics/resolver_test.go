package analytics

import (
	"context"
	"errors"
	"testing"

	"github.com/huddleup/filmroom/internal/filmroom"
)

func TestTeamConfigDefaultsWhenUnset(t *testing.T) {
	svc := newTestService(newFakeStore())

	cfg, err := svc.TeamConfig(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TeamConfig: %v", err)
	}
	if cfg.Tier != filmroom.TierPlus {
		t.Fatalf("default tier = %s, want %s", cfg.Tier, filmroom.TierPlus)
	}
	if !cfg.Features.DriveAnalytics || !cfg.Features.PlayerAttribution {
		t.Fatalf("default config should enable drives and attribution: %+v", cfg.Features)
	}
	if cfg.Features.LineTracking || cfg.Features.DefenseTracking || cfg.Features.SituationalSplits {
		t.Fatalf("default config should lock premium features: %+v", cfg.Features)
	}
	if cfg.Granularity != "standard" {
		t.Fatalf("default granularity = %q", cfg.Granularity)
	}
}

func TestTeamConfigReturnsStored(t *testing.T) {
	fs := newFakeStore()
	fs.configs["t1"] = tierConfig("t1", filmroom.TierPremium)
	svc := newTestService(fs)

	cfg, err := svc.TeamConfig(context.Background(), "t1")
	if err != nil {
		t.Fatalf("TeamConfig: %v", err)
	}
	if cfg.Tier != filmroom.TierPremium || !cfg.Features.LineTracking {
		t.Fatalf("stored config not returned: %+v", cfg)
	}
}

func TestUpdateTeamConfigRequiresIdentity(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	tier := filmroom.TierPremium
	_, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if len(fs.saved) != 0 {
		t.Fatalf("unauthenticated update must not persist, saved %d configs", len(fs.saved))
	}
}

func TestUpdateTeamConfigTierChange(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	tier := filmroom.TierPremium
	cfg, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "coach-1")
	if err != nil {
		t.Fatalf("UpdateTeamConfig: %v", err)
	}
	if cfg.Tier != filmroom.TierPremium {
		t.Fatalf("tier = %s", cfg.Tier)
	}
	if !cfg.Features.LineTracking || !cfg.Features.DefenseTracking {
		t.Fatalf("premium flags not derived: %+v", cfg.Features)
	}
	if cfg.Features.SituationalSplits {
		t.Fatalf("premium must not enable situational splits")
	}
	if cfg.Granularity != "advanced" {
		t.Fatalf("granularity = %q, want advanced", cfg.Granularity)
	}
	if cfg.UpdatedBy != "coach-1" || cfg.UpdatedAt.IsZero() {
		t.Fatalf("audit fields not stamped: %+v", cfg)
	}
	if len(fs.saved) != 1 {
		t.Fatalf("saved %d configs, want 1", len(fs.saved))
	}
}

func TestUpdateTeamConfigGranularityLeavesFlags(t *testing.T) {
	fs := newFakeStore()
	fs.configs["t1"] = tierConfig("t1", filmroom.TierPremium)
	svc := newTestService(fs)

	granularity := "standard"
	cfg, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Granularity: &granularity}, "coach-1")
	if err != nil {
		t.Fatalf("UpdateTeamConfig: %v", err)
	}
	if cfg.Tier != filmroom.TierPremium {
		t.Fatalf("granularity patch changed tier to %s", cfg.Tier)
	}
	if !cfg.Features.LineTracking || !cfg.Features.DefenseTracking {
		t.Fatalf("granularity patch disturbed flags: %+v", cfg.Features)
	}
	if cfg.Granularity != "standard" {
		t.Fatalf("granularity = %q", cfg.Granularity)
	}
}

func TestUpdateTeamConfigRejectsUnknownTier(t *testing.T) {
	svc := newTestService(newFakeStore())

	tier := filmroom.Tier("gold")
	_, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "coach-1")
	if !errors.Is(err, ErrUnknownTier) {
		t.Fatalf("err = %v, want ErrUnknownTier", err)
	}
}

func TestUpdateTeamConfigNormalizesLegacyTier(t *testing.T) {
	svc := newTestService(newFakeStore())

	tier := filmroom.TierHSAdvanced
	cfg, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "coach-1")
	if err != nil {
		t.Fatalf("UpdateTeamConfig: %v", err)
	}
	if cfg.Tier != filmroom.TierPremium {
		t.Fatalf("legacy tier normalized to %s, want %s", cfg.Tier, filmroom.TierPremium)
	}
	if !cfg.Features.LineTracking {
		t.Fatalf("legacy alias must carry the mapped tier's flags: %+v", cfg.Features)
	}
}

func TestUpdateTeamConfigSameTierIsStable(t *testing.T) {
	fs := newFakeStore()
	svc := newTestService(fs)

	tier := filmroom.TierAIPowered
	first, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "coach-1")
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := svc.UpdateTeamConfig(context.Background(), "t1", ConfigPatch{Tier: &tier}, "coach-1")
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if first.Features != second.Features {
		t.Fatalf("same tier produced different flags: %+v vs %+v", first.Features, second.Features)
	}
	if first.Granularity != second.Granularity {
		t.Fatalf("same tier produced different granularity")
	}
}
