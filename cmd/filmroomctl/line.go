package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var lineGame string

var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Block grading for rostered offensive linemen",
	Args:  cobra.NoArgs,
	RunE:  runLine,
}

func init() {
	lineCmd.Flags().StringVar(&lineGame, "game", "", "limit to one game's film")
}

func runLine(cmd *cobra.Command, args []string) error {
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

	stats, err := newEngine(st).OffensiveLine(ctx, team, lineGame)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No linemen on the roster.")
		return nil
	}

	players, err := rosterIndex(ctx, st, team)
	if err != nil {
		return err
	}
	report.PrintLineTable(os.Stdout, stats, players)
	return nil
}
