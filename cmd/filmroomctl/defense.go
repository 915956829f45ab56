package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var defenseGame string

var defenseCmd = &cobra.Command{
	Use:   "defense",
	Short: "Tackle, pressure, and coverage production per defender",
	Args:  cobra.NoArgs,
	RunE:  runDefense,
}

func init() {
	defenseCmd.Flags().StringVar(&defenseGame, "game", "", "limit to one game's film")
}

func runDefense(cmd *cobra.Command, args []string) error {
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

	stats, err := newEngine(st).DefensivePlayers(ctx, team, defenseGame)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No defenders on the roster.")
		return nil
	}

	players, err := rosterIndex(ctx, st, team)
	if err != nil {
		return err
	}
	report.PrintDefenseTable(os.Stdout, stats, players)
	return nil
}
