package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the demo team if the database is empty",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, db, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := st.SeedDemo(ctx, logger); err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	fmt.Fprintln(os.Stdout, "Demo data ready. Log in as coach@ridgeview.example / wolves2026.")
	return nil
}
