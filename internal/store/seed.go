package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/huddleup/filmroom/internal/filmroom"
)

// SeedDemo creates a demo team with coaches, a roster, one tagged game and
// its drives, plays, and participation rows. Idempotent: does nothing if any
// team already exists. The demo coach logs in as coach@ridgeview.example /
// wolves2026.
func (s *SQLiteStore) SeedDemo(ctx context.Context, logger *slog.Logger) error {
	var teams int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&teams); err != nil {
		return fmt.Errorf("checking for existing teams: %w", err)
	}
	if teams > 0 {
		return nil
	}

	teamID := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, season) VALUES (?, ?, ?)
	`, teamID, "Ridgeview Wolves", "2026"); err != nil {
		return fmt.Errorf("seeding team: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("wolves2026"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing demo password: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO coaches (id, team_id, email, name, role, password_hash)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.NewString(), teamID, "coach@ridgeview.example", "Dana Whitfield", "owner", string(hash)); err != nil {
		return fmt.Errorf("seeding coach: %w", err)
	}

	cfg := filmroom.AnalyticsConfig{
		TeamID:      teamID,
		Tier:        filmroom.TierPremium,
		Features:    filmroom.FeaturesForTier(filmroom.TierPremium),
		Granularity: filmroom.GranularityForTier(filmroom.TierPremium),
		UpdatedBy:   "seed",
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.SaveAnalyticsConfig(ctx, cfg); err != nil {
		return err
	}

	roster := []struct {
		name      string
		jersey    int
		positions []string
	}{
		{"Drew Calloway", 7, []string{"QB"}},
		{"Marcus Reed", 22, []string{"RB"}},
		{"Tyler Okafor", 81, []string{"WR"}},
		{"Jesse Lam", 11, []string{"WR"}},
		{"Cole Brandt", 88, []string{"TE", "DE"}},
		{"Sam Gutierrez", 74, []string{"LT"}},
		{"Pete Novak", 66, []string{"LG"}},
		{"Aaron Diggs", 55, []string{"C"}},
		{"Ray Holloway", 63, []string{"RG"}},
		{"Vic Tran", 77, []string{"RT"}},
		{"Isaiah Ford", 94, []string{"DE"}},
		{"Tommy Briggs", 92, []string{"DT"}},
		{"Caleb Munoz", 52, []string{"MLB"}},
		{"Jordan Pike", 45, []string{"OLB"}},
		{"Eli Navarro", 21, []string{"CB"}},
		{"Shane Dube", 24, []string{"CB"}},
		{"Marcus Bell", 3, []string{"FS"}},
		{"Owen Tate", 30, []string{"SS"}},
	}
	ids := make(map[int]string, len(roster))
	for _, pl := range roster {
		id := uuid.NewString()
		ids[pl.jersey] = id
		positions, _ := json.Marshal(pl.positions)
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO players (id, team_id, name, jersey, positions)
			VALUES (?, ?, ?, ?, ?)
		`, id, teamID, pl.name, pl.jersey, string(positions)); err != nil {
			return fmt.Errorf("seeding player %s: %w", pl.name, err)
		}
	}

	gameID := uuid.NewString()
	playedAt := time.Now().UTC().AddDate(0, 0, -3).Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO games (id, team_id, opponent, location, played_at)
		VALUES (?, ?, ?, ?, ?)
	`, gameID, teamID, "Central Catholic", "home", playedAt); err != nil {
		return fmt.Errorf("seeding game: %w", err)
	}

	videoID := uuid.NewString()
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO videos (id, game_id, team_id, title)
		VALUES (?, ?, ?, ?)
	`, videoID, gameID, teamID, "Week 1 sideline"); err != nil {
		return fmt.Errorf("seeding video: %w", err)
	}

	if err := s.seedDrives(ctx, teamID, videoID); err != nil {
		return err
	}
	if err := s.seedPlays(ctx, teamID, videoID, ids); err != nil {
		return err
	}

	logger.Info("demo team seeded", "team_id", teamID, "game_id", gameID)
	return nil
}

func (s *SQLiteStore) seedDrives(ctx context.Context, teamID, videoID string) error {
	drives := []struct {
		result                     string
		points, playCount, yards   int
		threeOut, redZone, scoring bool
		opponent                   bool
	}{
		{filmroom.DriveTouchdown, 7, 9, 72, false, true, true, false},
		{filmroom.DrivePunt, 0, 3, 4, true, false, false, false},
		{filmroom.DriveFieldGoal, 3, 7, 48, false, true, true, false},
		{filmroom.DriveTurnover, 0, 5, 22, false, false, false, false},
		{filmroom.DriveTouchdown, 7, 6, 65, false, true, true, false},
		{filmroom.DriveTurnoverOnDowns, 0, 8, 39, false, true, false, false},

		{filmroom.DrivePunt, 0, 3, -2, true, false, false, true},
		{filmroom.DriveTouchdown, 7, 10, 80, false, true, true, true},
		{filmroom.DrivePunt, 0, 5, 18, false, false, false, true},
		{filmroom.DriveTurnover, 0, 4, 15, false, false, false, true},
		{filmroom.DriveFieldGoal, 3, 9, 51, false, true, true, true},
	}

	for i, d := range drives {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO drives (id, team_id, video_id, drive_number, result, points,
			                    play_count, yards, three_and_out, reached_red_zone,
			                    scoring, is_opponent_drive)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, uuid.NewString(), teamID, videoID, i+1, d.result, d.points,
			d.playCount, d.yards, d.threeOut, d.redZone, d.scoring, d.opponent)
		if err != nil {
			return fmt.Errorf("seeding drive %d: %w", i+1, err)
		}
	}
	return nil
}

// seedPlay is one scripted play; jerseys index into the roster ID map.
type seedPlay struct {
	playType  string
	yards     int
	qb        int
	carrier   int
	target    int
	complete  bool
	touchdown bool
	success   bool
	explosive bool
	motion    bool
	playAct   bool
	blitz     bool
	opponent  bool

	// participation rows: jersey -> role/result
	parts []seedPart
}

type seedPart struct {
	jersey int
	role   string
	result string
}

func (s *SQLiteStore) seedPlays(ctx context.Context, teamID, videoID string, ids map[int]string) error {
	lineBlocks := func(results ...string) []seedPart {
		slots := []int{74, 66, 55, 63, 77}
		parts := make([]seedPart, len(slots))
		for i, jersey := range slots {
			parts[i] = seedPart{jersey, filmroom.RoleBlock, results[i]}
		}
		return parts
	}

	plays := []seedPlay{
		// Own offense.
		{playType: "run", yards: 6, qb: 7, carrier: 22, success: true, motion: true,
			parts: lineBlocks("win", "win", "win", "neutral", "win")},
		{playType: "pass", yards: 14, qb: 7, target: 81, complete: true, success: true, explosive: false, playAct: true,
			parts: lineBlocks("win", "neutral", "win", "win", "loss")},
		{playType: "run", yards: 2, qb: 7, carrier: 22,
			parts: lineBlocks("loss", "win", "neutral", "win", "win")},
		{playType: "pass", yards: 0, qb: 7, target: 11, blitz: true,
			parts: lineBlocks("win", "win", "loss", "neutral", "win")},
		{playType: "run", yards: 23, qb: 7, carrier: 7, success: true, explosive: true, motion: true,
			parts: lineBlocks("win", "win", "win", "win", "win")},
		{playType: "pass", yards: 31, qb: 7, target: 88, complete: true, touchdown: true, success: true, explosive: true, playAct: true,
			parts: lineBlocks("win", "win", "win", "win", "neutral")},
		{playType: "run", yards: 4, qb: 7, carrier: 22, success: true,
			parts: append(lineBlocks("neutral", "win", "win", "loss", "win"),
				seedPart{63, filmroom.RolePenalty, "holding"})},
		{playType: "pass", yards: 0, qb: 7, target: 81, blitz: true,
			parts: lineBlocks("loss", "loss", "win", "win", "win")},
		{playType: "run", yards: 8, qb: 7, carrier: 22, success: true, motion: true,
			parts: lineBlocks("win", "win", "neutral", "win", "win")},
		{playType: "pass", yards: 17, qb: 7, target: 11, complete: true, success: true, explosive: true,
			parts: lineBlocks("win", "win", "win", "win", "win")},
		{playType: "run", yards: 1, qb: 7, carrier: 22, touchdown: true, success: true,
			parts: lineBlocks("win", "win", "win", "win", "win")},
		{playType: "pass", yards: 9, qb: 7, target: 88, complete: true, success: true, motion: true, playAct: true,
			parts: lineBlocks("win", "neutral", "win", "win", "win")},

		// Opponent offense (our defense).
		{playType: "run", yards: 3, opponent: true,
			parts: []seedPart{{52, filmroom.RoleTackle, "primary"}, {92, filmroom.RoleTackle, "assist"}}},
		{playType: "pass", yards: 12, opponent: true,
			parts: []seedPart{{21, filmroom.RoleCoverage, "loss"}, {45, filmroom.RolePressure, "pressure"}}},
		{playType: "run", yards: -2, opponent: true,
			parts: []seedPart{{94, filmroom.RoleTackle, "primary"}, {52, filmroom.RoleTackle, "assist"}}},
		{playType: "pass", yards: 0, opponent: true,
			parts: []seedPart{{94, filmroom.RolePressure, "sack"}, {24, filmroom.RoleCoverage, "win"}}},
		{playType: "pass", yards: 0, opponent: true,
			parts: []seedPart{{21, filmroom.RoleCoverage, "win"}, {92, filmroom.RolePressure, "pressure"}}},
		{playType: "run", yards: 7, opponent: true,
			parts: []seedPart{{30, filmroom.RoleTackle, "primary"}, {52, filmroom.RoleTackle, "missed"}}},
		{playType: "pass", yards: 24, opponent: true,
			parts: []seedPart{{24, filmroom.RoleCoverage, "loss"}}},
		{playType: "run", yards: 4, opponent: true,
			parts: []seedPart{{92, filmroom.RoleTackle, "primary"}}},
		{playType: "pass", yards: 0, opponent: true,
			parts: []seedPart{{45, filmroom.RolePressure, "pressure"}, {21, filmroom.RoleCoverage, "win"}}},
		{playType: "run", yards: 11, opponent: true,
			parts: []seedPart{{3, filmroom.RoleTackle, "primary"}, {30, filmroom.RoleTackle, "assist"}}},
	}

	for i, p := range plays {
		playID := uuid.NewString()
		var qbID, carrierID, targetID any
		if p.qb != 0 {
			qbID = ids[p.qb]
		}
		if p.carrier != 0 {
			carrierID = ids[p.carrier]
		}
		if p.target != 0 {
			targetID = ids[p.target]
		}

		var ltID, lgID, cID, rgID, rtID any
		if !p.opponent {
			ltID, lgID, cID, rgID, rtID = ids[74], ids[66], ids[55], ids[63], ids[77]
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO plays (id, team_id, video_id, play_number, quarter, down,
			                   play_type, yards, complete, touchdown, success,
			                   explosive, motion, play_action, blitz, penalty,
			                   is_opponent_play, qb_id, carrier_id, target_id,
			                   lt_id, lg_id, c_id, rg_id, rt_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, playID, teamID, videoID, i+1, i/6+1, i%3+1,
			p.playType, p.yards, p.complete, p.touchdown, p.success,
			p.explosive, p.motion, p.playAct, p.blitz, hasPenalty(p.parts),
			p.opponent, qbID, carrierID, targetID,
			ltID, lgID, cID, rgID, rtID)
		if err != nil {
			return fmt.Errorf("seeding play %d: %w", i+1, err)
		}

		for _, part := range p.parts {
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO play_participants (id, play_id, player_id, role, result)
				VALUES (?, ?, ?, ?, ?)
			`, uuid.NewString(), playID, ids[part.jersey], part.role, part.result)
			if err != nil {
				return fmt.Errorf("seeding participation on play %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func hasPenalty(parts []seedPart) bool {
	for _, p := range parts {
		if p.role == filmroom.RolePenalty {
			return true
		}
	}
	return false
}
