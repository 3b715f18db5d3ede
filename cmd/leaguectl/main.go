// Command leaguectl is the operator tool for the league service: schema
// migration, schedule previews, offline standings and dev tokens.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leaguectl",
		Short:         "Operator tool for friends-league",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newScheduleCmd(),
		newStandingsCmd(),
		newTokenCmd(),
	)
	return root
}
