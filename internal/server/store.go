package server

import (
	"context"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// Store is the slice of storage the HTTP layer touches directly. Everything
// analytics-shaped goes through the engine, which carries its own wider
// read surface; handlers only need identity, auth, and listing queries.
type Store interface {
	TeamByID(ctx context.Context, id string) (filmroom.Team, error)
	TeamRoster(ctx context.Context, teamID string) ([]filmroom.Player, error)
	TeamGames(ctx context.Context, teamID string) ([]filmroom.Game, error)

	CoachByEmail(ctx context.Context, email string) (filmroom.Coach, error)
	CreateSession(ctx context.Context, coachID string) (string, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CoachFromSession(ctx context.Context, sessionID string) (filmroom.Coach, error)
}
