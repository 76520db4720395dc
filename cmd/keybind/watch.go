package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func (c *cli) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [keymap]",
		Short: "Reload a keymap whenever it changes",
		Long: `Load the keymap, then reload it every time the file is saved and
report the result. A broken save is reported and the previous bindings
stay installed.`,
		GroupID: "keymap",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				c.cfg.Keymap = args[0]
			}
			c.cfg.Watch = true
			if err := c.cfg.Validate(); err != nil {
				return err
			}

			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			r, err := a.Reload()
			if err != nil {
				return err
			}
			printReport(c.stdout, r)

			if err := a.Watch(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case r := <-a.Reloads():
					printReport(c.stdout, r)
				}
			}
		},
	}
}
