// Package store is the SQLite data-access layer. It owns all SQL: record
// fetches for the analytics engine, the precomputed aggregation primitives
// the calculators treat as black boxes, and the handful of CRUD queries the
// HTTP layer needs.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huddleup/filmroom/internal/filmroom"
)

var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// AnalyticsConfig returns the team's stored analytics configuration, or
// ErrNotFound when the team has none. Callers resolve absence to the
// documented default; the store does not.
func (s *SQLiteStore) AnalyticsConfig(ctx context.Context, teamID string) (filmroom.AnalyticsConfig, error) {
	var (
		cfg       filmroom.AnalyticsConfig
		updatedAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT team_id, tier, drive_analytics, player_attribution, line_tracking,
		       defense_tracking, situational_splits, granularity, updated_by, updated_at
		FROM team_analytics_config
		WHERE team_id = ?
	`, teamID).Scan(
		&cfg.TeamID, &cfg.Tier,
		&cfg.Features.DriveAnalytics, &cfg.Features.PlayerAttribution,
		&cfg.Features.LineTracking, &cfg.Features.DefenseTracking,
		&cfg.Features.SituationalSplits,
		&cfg.Granularity, &cfg.UpdatedBy, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return filmroom.AnalyticsConfig{}, ErrNotFound
	}
	if err != nil {
		return filmroom.AnalyticsConfig{}, fmt.Errorf("loading analytics config: %w", err)
	}
	cfg.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return cfg, nil
}

// SaveAnalyticsConfig upserts the full configuration row for a team.
func (s *SQLiteStore) SaveAnalyticsConfig(ctx context.Context, cfg filmroom.AnalyticsConfig) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO team_analytics_config (
			team_id, tier, drive_analytics, player_attribution, line_tracking,
			defense_tracking, situational_splits, granularity, updated_by, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (team_id) DO UPDATE SET
			tier               = excluded.tier,
			drive_analytics    = excluded.drive_analytics,
			player_attribution = excluded.player_attribution,
			line_tracking      = excluded.line_tracking,
			defense_tracking   = excluded.defense_tracking,
			situational_splits = excluded.situational_splits,
			granularity        = excluded.granularity,
			updated_by         = excluded.updated_by,
			updated_at         = excluded.updated_at
	`,
		cfg.TeamID, string(cfg.Tier),
		cfg.Features.DriveAnalytics, cfg.Features.PlayerAttribution,
		cfg.Features.LineTracking, cfg.Features.DefenseTracking,
		cfg.Features.SituationalSplits,
		cfg.Granularity, cfg.UpdatedBy, cfg.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving analytics config: %w", err)
	}
	return nil
}

func (s *SQLiteStore) TeamByID(ctx context.Context, teamID string) (filmroom.Team, error) {
	var (
		team      filmroom.Team
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, season, created_at FROM teams WHERE id = ?
	`, teamID).Scan(&team.ID, &team.Name, &team.Season, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return filmroom.Team{}, ErrNotFound
	}
	if err != nil {
		return filmroom.Team{}, fmt.Errorf("loading team: %w", err)
	}
	team.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return team, nil
}

func (s *SQLiteStore) TeamIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM teams ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) TeamGames(ctx context.Context, teamID string) ([]filmroom.Game, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, opponent, location, played_at
		FROM games
		WHERE team_id = ?
		ORDER BY played_at
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var games []filmroom.Game
	for rows.Next() {
		var (
			g        filmroom.Game
			playedAt sql.NullString
		)
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Opponent, &g.Location, &playedAt); err != nil {
			return nil, err
		}
		if playedAt.Valid {
			if ts, err := time.Parse(time.RFC3339, playedAt.String); err == nil {
				g.PlayedAt = &ts
			}
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// TeamRoster returns every player on the team. Positions are stored as a
// JSON array in a TEXT column and decoded here, at the record boundary.
func (s *SQLiteStore) TeamRoster(ctx context.Context, teamID string) ([]filmroom.Player, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, name, jersey, positions, created_at
		FROM players
		WHERE team_id = ?
		ORDER BY jersey, name
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing roster: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

// PlayersByID returns identity records for exactly the given ID set. Unknown
// IDs are simply absent from the result.
func (s *SQLiteStore) PlayersByID(ctx context.Context, ids []string) ([]filmroom.Player, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, team_id, name, jersey, positions, created_at
		FROM players
		WHERE id IN (`+placeholders(len(ids))+`)
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}
	defer rows.Close()
	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]filmroom.Player, error) {
	var players []filmroom.Player
	for rows.Next() {
		var (
			p         filmroom.Player
			positions string
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.TeamID, &p.Name, &p.Jersey, &positions, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(positions), &p.Positions); err != nil {
			return nil, fmt.Errorf("decoding positions for player %s: %w", p.ID, err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		players = append(players, p)
	}
	return players, rows.Err()
}

// placeholders renders n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
