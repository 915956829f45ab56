package main

import (
	"fmt"
	"os"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/huddleup/filmroom/internal/report"
)

var rosterSearch string

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the team roster",
	Args:  cobra.NoArgs,
	RunE:  runRoster,
}

func init() {
	rosterCmd.Flags().StringVar(&rosterSearch, "search", "", "fuzzy name filter")
}

func runRoster(cmd *cobra.Command, args []string) error {
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

	roster, err := st.TeamRoster(ctx, team)
	if err != nil {
		return fmt.Errorf("loading roster: %w", err)
	}

	if rosterSearch != "" {
		matched := roster[:0:0]
		for _, pl := range roster {
			if fuzzy.MatchNormalizedFold(rosterSearch, pl.Name) {
				matched = append(matched, pl)
			}
		}
		roster = matched
	}

	if len(roster) == 0 {
		fmt.Fprintln(os.Stdout, "No players matched.")
		return nil
	}

	report.PrintRosterTable(os.Stdout, roster)
	return nil
}
