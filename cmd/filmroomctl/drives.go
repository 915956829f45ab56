package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var (
	drivesGame string
	drivesSide string
)

var drivesCmd = &cobra.Command{
	Use:   "drives",
	Short: "Drive efficiency for own or opponent possessions",
	Args:  cobra.NoArgs,
	RunE:  runDrives,
}

func init() {
	drivesCmd.Flags().StringVar(&drivesGame, "game", "", "limit to one game's film")
	drivesCmd.Flags().StringVar(&drivesSide, "side", "offense", "offense or defense")
}

func runDrives(cmd *cobra.Command, args []string) error {
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
	engine := newEngine(st)

	if drivesSide == "defense" {
		stats, err := engine.DefensiveDriveAnalytics(ctx, team, drivesGame)
		if err != nil {
			return err
		}
		report.PrintDefensiveDriveTable(os.Stdout, stats)
		return nil
	}

	stats, err := engine.DriveAnalytics(ctx, team, drivesGame)
	if err != nil {
		return err
	}
	report.PrintDriveTable(os.Stdout, stats)
	return nil
}
