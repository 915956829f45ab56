package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var attributionGame string

var attributionCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Per-player rushing, passing, and receiving production",
	Args:  cobra.NoArgs,
	RunE:  runAttribution,
}

func init() {
	attributionCmd.Flags().StringVar(&attributionGame, "game", "", "limit to one game's film")
}

func runAttribution(cmd *cobra.Command, args []string) error {
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

	stats, err := newEngine(st).PlayerAttribution(ctx, team, attributionGame)
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(os.Stdout, "No tagged plays yet.")
		return nil
	}

	players, err := rosterIndex(ctx, st, team)
	if err != nil {
		return err
	}
	report.PrintAttributionTable(os.Stdout, stats, players)
	return nil
}
