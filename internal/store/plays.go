package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// GameVideoIDs resolves a game to the IDs of its videos. Plays carry no
// game foreign key, so game-scoped queries filter by membership in this set.
// Returns ErrNotFound when the game itself does not exist; a game with no
// videos yields an empty (non-nil) set.
func (s *SQLiteStore) GameVideoIDs(ctx context.Context, gameID string) ([]string, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking game: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id FROM videos WHERE game_id = ?`, gameID)
	if err != nil {
		return nil, fmt.Errorf("listing game videos: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// videoFilter appends a video-membership clause to a query. A nil set means
// "all film"; an empty set matches nothing and is handled by the callers
// before building SQL.
func videoFilter(q string, args []any, videoIDs []string) (string, []any) {
	if videoIDs == nil {
		return q, args
	}
	q += ` AND video_id IN (` + placeholders(len(videoIDs)) + `)`
	for _, id := range videoIDs {
		args = append(args, id)
	}
	return q, args
}

// TeamPlays returns the team's tagged plays in one of the two query shapes:
// own-team offense (opponent=false) or opponent/defense (opponent=true).
// Zero matches is a valid empty result, never an error.
func (s *SQLiteStore) TeamPlays(ctx context.Context, teamID string, videoIDs []string, opponent bool) ([]filmroom.Play, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return []filmroom.Play{}, nil
	}

	q := `
		SELECT id, team_id, video_id, COALESCE(drive_id, ''), play_number,
		       quarter, down, distance, yard_line,
		       play_type, formation, direction, result, yards,
		       complete, touchdown, turnover, first_down, sack, interception,
		       pass_breakup, tackle_for_loss, forced_fumble, success, explosive,
		       motion, play_action, blitz, penalty, is_opponent_play,
		       COALESCE(qb_id, ''), COALESCE(carrier_id, ''), COALESCE(target_id, '')
		FROM plays
		WHERE team_id = ? AND is_opponent_play = ?`
	args := []any{teamID, opponent}
	q, args = videoFilter(q, args, videoIDs)
	q += ` ORDER BY video_id, play_number`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing plays: %w", err)
	}
	defer rows.Close()

	plays := []filmroom.Play{}
	for rows.Next() {
		var p filmroom.Play
		err := rows.Scan(
			&p.ID, &p.TeamID, &p.VideoID, &p.DriveID, &p.PlayNumber,
			&p.Quarter, &p.Down, &p.Distance, &p.YardLine,
			&p.PlayType, &p.Formation, &p.Direction, &p.Result, &p.Yards,
			&p.Complete, &p.Touchdown, &p.Turnover, &p.FirstDown, &p.Sack,
			&p.Interception, &p.PassBreakup, &p.TackleForLoss, &p.ForcedFumble,
			&p.Success, &p.Explosive, &p.Motion, &p.PlayAction, &p.Blitz,
			&p.Penalty, &p.OpponentPlay,
			&p.QuarterbackID, &p.CarrierID, &p.TargetID,
		)
		if err != nil {
			return nil, err
		}
		plays = append(plays, p)
	}
	return plays, rows.Err()
}

// TeamDrives returns pre-aggregated possessions for one side of the ball.
func (s *SQLiteStore) TeamDrives(ctx context.Context, teamID string, videoIDs []string, opponent bool) ([]filmroom.Drive, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return []filmroom.Drive{}, nil
	}

	q := `
		SELECT id, team_id, video_id, drive_number, result, points, play_count,
		       yards, three_and_out, reached_red_zone, scoring, is_opponent_drive
		FROM drives
		WHERE team_id = ? AND is_opponent_drive = ?`
	args := []any{teamID, opponent}
	q, args = videoFilter(q, args, videoIDs)
	q += ` ORDER BY video_id, drive_number`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing drives: %w", err)
	}
	defer rows.Close()

	drives := []filmroom.Drive{}
	for rows.Next() {
		var d filmroom.Drive
		err := rows.Scan(
			&d.ID, &d.TeamID, &d.VideoID, &d.DriveNumber, &d.Result, &d.Points,
			&d.PlayCount, &d.Yards, &d.ThreeAndOut, &d.ReachedRedZone,
			&d.Scoring, &d.OpponentDrive,
		)
		if err != nil {
			return nil, err
		}
		drives = append(drives, d)
	}
	return drives, rows.Err()
}
