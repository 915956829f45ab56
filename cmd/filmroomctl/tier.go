package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/analytics"
	"github.com/huddleup/filmroom/internal/filmroom"
	"github.com/huddleup/filmroom/internal/report"
)

var (
	tierSetBy          string
	tierSetGranularity string
)

var tierCmd = &cobra.Command{
	Use:   "tier",
	Short: "Inspect or change a team's analytics tier",
}

var tierGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the team's tier and feature flags",
	Args:  cobra.NoArgs,
	RunE:  runTierGet,
}

var tierSetCmd = &cobra.Command{
	Use:   "set <tier>",
	Short: "Change the team's tier, recomputing its feature flags",
	Args:  cobra.ExactArgs(1),
	RunE:  runTierSet,
}

func init() {
	tierSetCmd.Flags().StringVar(&tierSetBy, "by", defaultUpdater(), "updater identity stamped on the config")
	tierSetCmd.Flags().StringVar(&tierSetGranularity, "granularity", "", "override the tier's default tagging granularity")

	tierCmd.AddCommand(tierGetCmd)
	tierCmd.AddCommand(tierSetCmd)
}

func defaultUpdater() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "filmroomctl"
}

func runTierGet(cmd *cobra.Command, args []string) error {
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

	cfg, err := newEngine(st).TeamConfig(ctx, team)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	report.PrintTierSummary(os.Stdout, cfg)
	return nil
}

func runTierSet(cmd *cobra.Command, args []string) error {
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

	tier := filmroom.Tier(args[0])
	patch := analytics.ConfigPatch{Tier: &tier}
	if tierSetGranularity != "" {
		patch.Granularity = &tierSetGranularity
	}

	cfg, err := newEngine(st).UpdateTeamConfig(ctx, team, patch, tierSetBy)
	if err != nil {
		return fmt.Errorf("updating tier: %w", err)
	}

	report.PrintTierSummary(os.Stdout, cfg)
	return nil
}
