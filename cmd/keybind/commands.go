package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/app"
)

func (c *cli) commandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands [query]",
		Short: "List the commands a keymap can bind",
		Long: `List the registered commands with their payload type and the shortcuts
the configured keymaps bind to them. A query fuzzy-filters the list.`,
		GroupID: "keymap",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.Reload(); err != nil && !errors.Is(err, app.ErrNoKeymap) {
				return err
			}

			var query string
			if len(args) > 0 {
				query = args[0]
			}

			tw := tabwriter.NewWriter(c.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COMMAND\tPAYLOAD\tKEYS")
			for _, r := range a.Palette().Search(query, limit) {
				payload := "-"
				if t := r.Item.Payload; t != nil {
					payload = t.String()
				}
				keys := "-"
				if s := r.Item.Shortcuts(); len(s) > 0 {
					keys = strings.Join(s, ", ")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Item.Name, payload, keys)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntP("limit", "n", 0, "show at most this many commands")
	return cmd
}
