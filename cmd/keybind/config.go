package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   "Print the effective configuration",
		GroupID: "system",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			out, err := c.cfg.YAML()
			if err != nil {
				return err
			}
			if c.cfg.Source != "" {
				fmt.Fprintf(c.stdout, "# from %s\n", c.cfg.Source)
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
}
