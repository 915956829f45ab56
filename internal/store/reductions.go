package store

import (
	"context"
	"fmt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// The aggregation primitives below reduce play_participants (and plays, for
// the team-level denominators) into pre-shaped rows. Calculators never see
// the SQL — they consume the counts and derive rates. All primitives accept
// the same video filter as the play fetches: nil = all film, empty = none.

// BlockLine reduces a lineman's block-grading rows into assignment and
// win/loss/neutral counts plus a win rate.
func (s *SQLiteStore) BlockLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.BlockLine, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return filmroom.BlockLine{}, nil
	}

	q := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN pp.result = 'win' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN pp.result = 'loss' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN pp.result = 'neutral' THEN 1 ELSE 0 END), 0)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role = 'block'`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var line filmroom.BlockLine
	err := s.db.QueryRowContext(ctx, q, args...).
		Scan(&line.Assignments, &line.Wins, &line.Losses, &line.Neutral)
	if err != nil {
		return filmroom.BlockLine{}, fmt.Errorf("reducing block line for %s: %w", playerID, err)
	}
	if line.Assignments > 0 {
		line.WinRate = float64(line.Wins) / float64(line.Assignments) * 100
	}
	return line, nil
}

// PenaltyCount counts plays with a penalty attributed to the player.
func (s *SQLiteStore) PenaltyCount(ctx context.Context, playerID string, videoIDs []string) (int, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return 0, nil
	}

	q := `
		SELECT COUNT(*)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role = 'penalty'`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var count int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting penalties for %s: %w", playerID, err)
	}
	return count, nil
}

// TackleLine reduces a defender's tackle rows into primary/assist/missed counts.
func (s *SQLiteStore) TackleLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.TackleLine, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return filmroom.TackleLine{}, nil
	}

	q := `
		SELECT COALESCE(SUM(CASE WHEN pp.result = 'primary' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN pp.result = 'assist' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN pp.result = 'missed' THEN 1 ELSE 0 END), 0)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role = 'tackle'`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var line filmroom.TackleLine
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&line.Primary, &line.Assist, &line.Missed)
	if err != nil {
		return filmroom.TackleLine{}, fmt.Errorf("reducing tackle line for %s: %w", playerID, err)
	}
	return line, nil
}

// PressureLine reduces a defender's pass-rush rows. Pressures and sacks are
// tagged as distinct results, so the counts are disjoint.
func (s *SQLiteStore) PressureLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.PressureLine, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return filmroom.PressureLine{}, nil
	}

	q := `
		SELECT COALESCE(SUM(CASE WHEN pp.result = 'pressure' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN pp.result = 'sack' THEN 1 ELSE 0 END), 0)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role = 'pressure'`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var line filmroom.PressureLine
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&line.Pressures, &line.Sacks)
	if err != nil {
		return filmroom.PressureLine{}, fmt.Errorf("reducing pressure line for %s: %w", playerID, err)
	}
	return line, nil
}

// CoverageLine reduces a defender's coverage-assignment rows.
func (s *SQLiteStore) CoverageLine(ctx context.Context, playerID string, videoIDs []string) (filmroom.CoverageLine, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return filmroom.CoverageLine{}, nil
	}

	q := `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN pp.result = 'win' THEN 1 ELSE 0 END), 0)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role = 'coverage'`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var line filmroom.CoverageLine
	err := s.db.QueryRowContext(ctx, q, args...).Scan(&line.Targets, &line.Wins)
	if err != nil {
		return filmroom.CoverageLine{}, fmt.Errorf("reducing coverage line for %s: %w", playerID, err)
	}
	return line, nil
}

// ParticipationSnaps counts the distinct plays a player has any defensive
// participation row on. Per-player snap counts are not tagged directly, so
// this is the closest available proxy for snaps played.
func (s *SQLiteStore) ParticipationSnaps(ctx context.Context, playerID string, videoIDs []string) (int, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return 0, nil
	}

	q := `
		SELECT COUNT(DISTINCT pp.play_id)
		FROM play_participants pp
		JOIN plays p ON p.id = pp.play_id
		WHERE pp.player_id = ? AND pp.role IN ('tackle', 'pressure', 'coverage')`
	args := []any{playerID}
	q, args = participantVideoFilter(q, args, videoIDs)

	var count int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting participation snaps for %s: %w", playerID, err)
	}
	return count, nil
}

// DefensiveSnaps counts the team's defensive snaps: opponent offensive plays
// on the team's film.
func (s *SQLiteStore) DefensiveSnaps(ctx context.Context, teamID string, videoIDs []string) (int, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return 0, nil
	}

	q := `SELECT COUNT(*) FROM plays WHERE team_id = ? AND is_opponent_play = 1`
	args := []any{teamID}
	q, args = videoFilter(q, args, videoIDs)

	var count int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting defensive snaps: %w", err)
	}
	return count, nil
}

// PassRushSnaps counts opponent dropbacks — the denominator for pressure and
// sack rates, which are normalized against pass plays, not all snaps.
func (s *SQLiteStore) PassRushSnaps(ctx context.Context, teamID string, videoIDs []string) (int, error) {
	if videoIDs != nil && len(videoIDs) == 0 {
		return 0, nil
	}

	q := `SELECT COUNT(*) FROM plays WHERE team_id = ? AND is_opponent_play = 1 AND play_type = 'pass'`
	args := []any{teamID}
	q, args = videoFilter(q, args, videoIDs)

	var count int
	if err := s.db.QueryRowContext(ctx, q, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting pass-rush snaps: %w", err)
	}
	return count, nil
}

// SituationalCounts reduces the team's own plays matching one boolean
// condition. The condition name maps to a column through a fixed switch;
// unknown names are rejected rather than interpolated.
func (s *SQLiteStore) SituationalCounts(ctx context.Context, teamID string, videoIDs []string, condition string, want bool) (filmroom.SplitCounts, error) {
	var column string
	switch condition {
	case "motion":
		column = "motion"
	case "play_action":
		column = "play_action"
	case "blitz":
		column = "blitz"
	default:
		return filmroom.SplitCounts{}, fmt.Errorf("unknown split condition %q", condition)
	}

	if videoIDs != nil && len(videoIDs) == 0 {
		return filmroom.SplitCounts{}, nil
	}

	q := `
		SELECT COUNT(*),
		       COALESCE(SUM(yards), 0),
		       COALESCE(SUM(success), 0),
		       COALESCE(SUM(explosive), 0)
		FROM plays
		WHERE team_id = ? AND is_opponent_play = 0 AND ` + column + ` = ?`
	args := []any{teamID, want}
	q, args = videoFilter(q, args, videoIDs)

	var counts filmroom.SplitCounts
	err := s.db.QueryRowContext(ctx, q, args...).
		Scan(&counts.Plays, &counts.Yards, &counts.Successes, &counts.Explosives)
	if err != nil {
		return filmroom.SplitCounts{}, fmt.Errorf("reducing %s split: %w", condition, err)
	}
	return counts, nil
}

// participantVideoFilter is videoFilter for queries joined through plays.
func participantVideoFilter(q string, args []any, videoIDs []string) (string, []any) {
	if videoIDs == nil {
		return q, args
	}
	q += ` AND p.video_id IN (` + placeholders(len(videoIDs)) + `)`
	for _, id := range videoIDs {
		args = append(args, id)
	}
	return q, args
}
