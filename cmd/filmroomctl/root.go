package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/database"
	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/migrations"
	"github.com/huddleup/filmroom/internal/store"
)

var (
	dbPath string
	teamID string
)

var rootCmd = &cobra.Command{
	Use:   "filmroomctl",
	Short: "FilmRoom analytics from the command line",
	Long:  "Inspect tiers and compute film analytics directly against a FilmRoom SQLite database.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "data/filmroom.db", "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&teamID, "team", "", "team ID (defaults to the only team in the database)")

	rootCmd.AddCommand(tierCmd)
	rootCmd.AddCommand(drivesCmd)
	rootCmd.AddCommand(attributionCmd)
	rootCmd.AddCommand(lineCmd)
	rootCmd.AddCommand(defenseCmd)
	rootCmd.AddCommand(situationalCmd)
	rootCmd.AddCommand(unifiedCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(seedCmd)
}

func openStore(ctx context.Context) (*store.SQLiteStore, *sql.DB, error) {
	db, err := database.Open(ctx, dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	return store.NewSQLiteStore(db), db, nil
}

func newEngine(st *store.SQLiteStore) *analytics.Service {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	return analytics.NewService(st, logger, 0)
}

// resolveTeam picks the target team: the --team flag if given, otherwise the
// single team in the database.
func resolveTeam(ctx context.Context, st *store.SQLiteStore) (string, error) {
	if teamID != "" {
		return teamID, nil
	}
	ids, err := st.TeamIDs(ctx)
	if err != nil {
		return "", fmt.Errorf("listing teams: %w", err)
	}
	if len(ids) != 1 {
		return "", fmt.Errorf("database holds %d teams, pick one with --team", len(ids))
	}
	return ids[0], nil
}

func rosterIndex(ctx context.Context, st *store.SQLiteStore, team string) (map[string]filmroom.Player, error) {
	roster, err := st.TeamRoster(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	byID := make(map[string]filmroom.Player, len(roster))
	for _, pl := range roster {
		byID[pl.ID] = pl
	}
	return byID, nil
}
