package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/keymapfile"
)

func (c *cli) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "schema",
		Short:   "Print the JSON Schema of keymap files",
		GroupID: "keymap",
		Args:    cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			out, err := keymapfile.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
}
