package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/huddleup/filmroom/internal/filmroom"
)

func (s *SQLiteStore) CoachByEmail(ctx context.Context, email string) (filmroom.Coach, error) {
	var c filmroom.Coach
	err := s.db.QueryRowContext(ctx, `
		SELECT id, team_id, email, name, role, password_hash
		FROM coaches
		WHERE email = ?
	`, email).Scan(&c.ID, &c.TeamID, &c.Email, &c.Name, &c.Role, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return filmroom.Coach{}, ErrNotFound
	}
	if err != nil {
		return filmroom.Coach{}, fmt.Errorf("loading coach: %w", err)
	}
	return c, nil
}

// CreateSession mints a new cookie session for a coach. The session ID is
// generated by the database default.
func (s *SQLiteStore) CreateSession(ctx context.Context, coachID string) (string, error) {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sessions (coach_id)
		VALUES (?)
		RETURNING id
	`, coachID).Scan(&sessionID)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return sessionID, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

func (s *SQLiteStore) CoachFromSession(ctx context.Context, sessionID string) (filmroom.Coach, error) {
	var c filmroom.Coach
	err := s.db.QueryRowContext(ctx, `
		SELECT c.id, c.team_id, c.email, c.name, c.role, c.password_hash
		FROM sessions s
		JOIN coaches c ON c.id = s.coach_id
		WHERE s.id = ?
	`, sessionID).Scan(&c.ID, &c.TeamID, &c.Email, &c.Name, &c.Role, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return filmroom.Coach{}, ErrNotFound
	}
	if err != nil {
		return filmroom.Coach{}, fmt.Errorf("loading session: %w", err)
	}
	return c, nil
}

// PruneSessions deletes sessions older than maxAge and returns how many went.
func (s *SQLiteStore) PruneSessions(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-maxAge).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning sessions: %w", err)
	}
	return res.RowsAffected()
}
