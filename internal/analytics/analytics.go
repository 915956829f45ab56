// Package analytics is the tiered aggregation engine. It reduces per-play
// tagging records into drive, player, and situational statistics, gated by
// the team's subscription tier, and merges the per-category outputs into
// unified per-player profiles.
//
// The engine only reads. Everything it needs from storage is expressed by
// the Store interface so handlers, jobs, and tests inject the data-access
// handle explicitly.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// DefaultDefenseTimeout bounds the defensive fan-out inside the unified
// merge. Defense is the most expensive category (many per-player queries)
// and must not stall offense and line results that are ready sooner.
const DefaultDefenseTimeout = 10 * time.Second

// Store is the read surface the engine depends on. TeamPlays, TeamDrives,
// and the reduction primitives take a video-ID scope: nil means all film,
// an empty set matches nothing.
type Store interface {
	AnalyticsConfig(ctx context.Context, teamID string) (filmroom.AnalyticsConfig, error)
	SaveAnalyticsConfig(ctx context.Context, cfg filmroom.AnalyticsConfig) error

	GameVideoIDs(ctx context.Context, gameID string) ([]string, error)
	TeamPlays(ctx context.Context, teamID string, videoIDs []string, opponent bool) ([]filmroom.Play, error)
	TeamDrives(ctx context.Context, teamID string, videoIDs []string, opponent bool) ([]filmroom.Drive, error)
	TeamRoster(ctx context.Context, teamID string) ([]filmroom.Player, error)
	PlayersByID(ctx context.Context, ids []string) ([]filmroom.Player, error)

	BlockLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.BlockLine, error)
	PenaltyCount(ctx context.Context, playerID string, videoIDs []string) (int, error)
	TackleLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.TackleLine, error)
	PressureLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.PressureLine, error)
	CoverageLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.CoverageLine, error)
	ParticipationSnaps(ctx context.Context, playerID string, videoIDs []string) (int, error)
	DefensiveSnaps(ctx context.Context, teamID string, videoIDs []string) (int, error)
	PassRushSnaps(ctx context.Context, teamID string, videoIDs []string) (int, error)
	SituationalCounts(ctx context.Context, teamID string, videoIDs []string, condition string, want bool) (filmroom.SplitCounts, error)
}

type Service struct {
	store          Store
	logger         *slog.Logger
	defenseTimeout time.Duration
}

// NewService builds the engine. defenseTimeout <= 0 selects the default.
func NewService(store Store, logger *slog.Logger, defenseTimeout time.Duration) *Service {
	if defenseTimeout <= 0 {
		defenseTimeout = DefaultDefenseTimeout
	}
	return &Service{
		store:          store,
		logger:         logger,
		defenseTimeout: defenseTimeout,
	}
}
