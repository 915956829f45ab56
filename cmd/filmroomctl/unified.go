package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var unifiedGame string

var unifiedCmd = &cobra.Command{
	Use:   "unified",
	Short: "Merged offense, line, and defense profiles per player",
	Args:  cobra.NoArgs,
	RunE:  runUnified,
}

func init() {
	unifiedCmd.Flags().StringVar(&unifiedGame, "game", "", "limit to one game's film")
}

func runUnified(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	team, err := resolveTeam(ctx, st)
	if err != nil {
		return err
	}

	rows, err := newEngine(st).UnifiedPlayerStats(ctx, team, unifiedGame)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stdout, "No player data on this tier.")
		return nil
	}

	report.PrintUnifiedTable(os.Stdout, rows)
	return nil
}
