package main

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/keybind/internal/app"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
)

const sessionHistory = 20

func (c *cli) tryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "try",
		Short: "Press keys and see which bindings fire",
		Long: `Open an interactive session that feeds every key press through the
binding table and shows the outcome. The context stack is given with
--context, outermost frame first:

  keybind try --context "Workspace > Editor mode=insert"

The session ends on the quit command or the exit key.`,
		GroupID: "keymap",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctxFlag, _ := cmd.Flags().GetString("context")
			stack, err := keymap.ParseStack(ctxFlag)
			if err != nil {
				return err
			}
			exitFlag, _ := cmd.Flags().GetString("exit")
			exit, err := key.ParseKeystroke(exitFlag)
			if err != nil {
				return fmt.Errorf("--exit: %w", err)
			}

			a, err := c.newApp()
			if err != nil {
				return err
			}
			defer a.Close()
			if _, err := a.Reload(); err != nil {
				return err
			}

			p := &session{a: a, stack: stack, exit: exit, context: ctxFlag}
			if useTea, _ := cmd.Flags().GetBool("tea"); useTea {
				_, err := tea.NewProgram(sessionModel{p}, tea.WithAltScreen()).Run()
				return err
			}
			return p.runTcell()
		},
	}
	cmd.Flags().String("context", "", "context stack, e.g. \"Workspace > Editor\"")
	cmd.Flags().String("exit", "ctrl-x", "keystroke that ends the session")
	cmd.Flags().Bool("tea", false, "use the bubbletea front end instead of tcell")
	return cmd
}

// session holds the terminal-independent part of the try command.
type session struct {
	a       *app.Application
	stack   []keymap.Context
	exit    key.Keystroke
	context string
	lines   []string
}

// press handles one keystroke and reports whether the session should end.
func (p *session) press(k key.Keystroke) bool {
	if k == p.exit {
		return true
	}
	res := p.a.Dispatch(k, p.stack)
	p.record(res)
	return errors.Is(res.Err, app.ErrQuit)
}

func (p *session) record(res keymap.Result) {
	if res.Sequence == "" {
		return
	}
	p.lines = append(p.lines, formatResult(res))
	if len(p.lines) > sessionHistory {
		p.lines = p.lines[len(p.lines)-sessionHistory:]
	}
}

func (p *session) header() []string {
	ctx := p.context
	if ctx == "" {
		ctx = "(none)"
	}
	return []string{
		"context: " + ctx,
		"press " + p.exit.String() + " to exit",
		"",
	}
}

func formatResult(res keymap.Result) string {
	switch res.Outcome {
	case keymap.Pending, keymap.NoMatch:
		return fmt.Sprintf("%-20s %s", res.Sequence, res.Outcome)
	case keymap.Suppressed:
		return fmt.Sprintf("%-20s %s (NoAction)", res.Sequence, res.Outcome)
	default:
		return fmt.Sprintf("%-20s %-10s %s", res.Sequence, res.Outcome, res.Command)
	}
}

func (p *session) runTcell() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		p.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			k, ok := key.FromTcell(ev)
			if !ok {
				continue
			}
			if p.press(k) {
				return nil
			}
		case nil:
			return nil
		}
	}
}

func (p *session) draw(screen tcell.Screen) {
	screen.Clear()
	for y, line := range append(p.header(), p.lines...) {
		for x, r := range line {
			screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		}
	}
	screen.Show()
}

// sessionModel adapts a session to bubbletea.
type sessionModel struct {
	p *session
}

func (m sessionModel) Init() tea.Cmd { return nil }

func (m sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		k, ok := key.FromTea(msg)
		if ok && m.p.press(k) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m sessionModel) View() string {
	return strings.Join(append(m.p.header(), m.p.lines...), "\n") + "\n"
}
