package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   "Print version information",
		GroupID: "system",
		Args:    cobra.NoArgs,
		// Skip config loading so version always works.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			fmt.Fprintf(c.stdout, "keybind %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
