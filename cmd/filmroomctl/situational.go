package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var situationalGame string

var situationalCmd = &cobra.Command{
	Use:   "situational",
	Short: "Offensive splits by play condition (motion, play action, blitz)",
	Args:  cobra.NoArgs,
	RunE:  runSituational,
}

func init() {
	situationalCmd.Flags().StringVar(&situationalGame, "game", "", "limit to one game's film")
}

func runSituational(cmd *cobra.Command, args []string) error {
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

	splits, err := newEngine(st).SituationalSplits(ctx, team, situationalGame)
	if err != nil {
		return err
	}
	if len(splits) == 0 {
		fmt.Fprintln(os.Stdout, "No plays under any tracked condition.")
		return nil
	}

	report.PrintSituationalTable(os.Stdout, splits)
	return nil
}
