package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/keymapfile"
)

func (c *cli) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [keymap...]",
		Short: "Write the merged binding set as one keymap",
		Long: `Load keymaps and write every installed binding back out as a single
canonical keymap file. Bindings that failed to load are left out.`,
		GroupID: "keymap",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			sources, err := c.sources(a, args)
			if err != nil {
				return err
			}
			if _, err := a.Load(sources...); err != nil {
				return err
			}

			out, err := keymapfile.Export(a.Table().Entries())
			if err != nil {
				return err
			}
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				return os.WriteFile(path, out, 0o644)
			}
			_, err = c.stdout.Write(out)
			return err
		},
	}
	cmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
	return cmd
}
