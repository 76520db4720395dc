package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/keymapfile"
)

// cli holds state shared by the subcommands of one invocation.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "keybind",
		Short: "Load, check and try out keymap files",
		Long: `keybind - load comment-tolerant JSON keymaps into a context-scoped binding table.

A keymap is a list of blocks. Each block has an optional context predicate
and maps shortcuts to commands:

  [
    {"bindings": {"ctrl-q": "quit"}},
    {"context": "Editor", "bindings": {"cmd-a": ["select_range", {"from": 0, "to": 5}]}}
  ]`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	config.BindFlags(root.PersistentFlags())

	root.AddGroup(
		&cobra.Group{ID: "keymap", Title: "Keymap Commands:"},
		&cobra.Group{ID: "system", Title: "System Commands:"},
	)
	root.SetHelpCommandGroupID("system")
	root.SetCompletionCommandGroupID("system")

	root.AddCommand(
		c.checkCmd(),
		c.exportCmd(),
		c.schemaCmd(),
		c.commandsCmd(),
		c.watchCmd(),
		c.tryCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads the configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(c.stderr, app.LoggerOptions{
		Level: cfg.LogLevel,
		Color: isTerminal(c.stderr),
	})
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger
	if cfg.Source != "" {
		logger.Debug("using config file", zap.String("path", cfg.Source))
	}
	return nil
}

func (c *cli) newApp() (*app.Application, error) {
	return app.New(*c.cfg, app.WithLogger(c.logger))
}

// sources returns the keymaps named on the command line, layered over the
// built-in keymap when it is enabled. Without arguments it returns the
// configured keymaps.
func (c *cli) sources(a *app.Application, args []string) ([]keymapfile.Source, error) {
	if len(args) == 0 {
		return a.Sources()
	}
	var sources []keymapfile.Source
	if c.cfg.DefaultKeymap {
		sources = append(sources, app.DefaultSource())
	}
	for _, path := range args {
		text, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read keymap: %w", err)
		}
		sources = append(sources, keymapfile.Source{Name: path, Text: text})
	}
	return sources, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
