package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/config/schema"
	"github.com/dshills/keybind/internal/keymapfile"
)

// ErrBindingsSkipped is returned by check --strict when any binding failed.
var ErrBindingsSkipped = errors.New("some bindings were skipped")

func (c *cli) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [keymap...]",
		Short: "Load keymaps and report every problem",
		Long: `Load one or more keymaps the same way the application does and report
every binding that could not be installed, with its line number.

Syntax and structure errors fail the check. Bindings that do not resolve
are reported; with --strict they fail the check too.

--schema validates each keymap file against an extra JSON Schema before it
is loaded, for projects that restrict shortcuts or contexts.`,
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
			if path, _ := cmd.Flags().GetString("schema"); path != "" {
				if err := checkSchema(path, sources); err != nil {
					return err
				}
			}
			r, err := a.Load(sources...)
			if err != nil {
				return err
			}
			printReport(c.stdout, r)

			if strict, _ := cmd.Flags().GetBool("strict"); strict && r.Err() != nil {
				return ErrBindingsSkipped
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "fail when any binding is skipped")
	cmd.Flags().String("schema", "", "also validate keymap files against this JSON Schema")
	return cmd
}

func printReport(w io.Writer, r *keymapfile.Report) {
	fmt.Fprintf(w, "%d bindings installed, %d skipped, %d rejected\n",
		r.Installed(), len(r.Skipped), len(r.Rejected))
	for _, e := range r.Skipped {
		fmt.Fprintf(w, "  skipped: %v\n", e)
	}
	for _, e := range r.Rejected {
		fmt.Fprintf(w, "  rejected: %v\n", e)
	}
}

// checkSchema validates every source except the built-in keymap against the
// schema file at path.
func checkSchema(path string, sources []keymapfile.Source) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	s, err := schema.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	v := schema.NewValidator(s)

	var errs error
	for _, src := range sources {
		if src.Name == app.DefaultKeymapName {
			continue
		}
		if err := keymapfile.CheckSchema(src.Text, v); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", src.Name, err))
		}
	}
	return errs
}
