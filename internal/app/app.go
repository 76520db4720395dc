// Package app wires the keybind components together: the command
// registry, the keymap loader, the binding table, the dispatcher and the
// reload watcher.
package app

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/config"
	"github.com/dshills/keybind/internal/config/watcher"
	"github.com/dshills/keybind/internal/input/key"
	"github.com/dshills/keybind/internal/input/keymap"
	"github.com/dshills/keybind/internal/input/palette"
	"github.com/dshills/keybind/internal/keymapfile"
)

// Application owns one binding table and keeps it loaded.
type Application struct {
	mu sync.Mutex

	cfg    config.Config
	logger *zap.Logger

	registry   *command.Registry
	table      *keymap.Table
	loader     *keymapfile.Loader
	handlers   *keymap.HandlerRegistry
	dispatcher *keymap.Dispatcher
	palette    *palette.Palette

	watcher *watcher.Watcher
	reloads chan *keymapfile.Report
}

// Option configures an Application.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	commands []func(*command.Registry) error
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithCommands registers additional commands before the registry is
// frozen.
func WithCommands(register func(*command.Registry) error) Option {
	return func(o *options) {
		o.commands = append(o.commands, register)
	}
}

// New builds an application from cfg. The built-in commands are always
// registered. No keymap is loaded until Reload is called.
func New(cfg config.Config, opts ...Option) (*Application, error) {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	registry := command.NewRegistry()
	if err := RegisterBuiltins(registry); err != nil {
		return nil, &InitError{Component: "commands", Err: err}
	}
	for _, register := range o.commands {
		if err := register(registry); err != nil {
			return nil, &InitError{Component: "commands", Err: err}
		}
	}

	table := keymap.NewTable()
	handlers := keymap.NewHandlerRegistry()
	app := &Application{
		cfg:      cfg,
		logger:   o.logger,
		registry: registry,
		table:    table,
		loader:   keymapfile.NewLoader(registry, table, o.logger),
		handlers: handlers,
		dispatcher: keymap.NewDispatcher(table, handlers,
			keymap.WithSequenceTimeout(cfg.SequenceTimeout),
			keymap.WithLogger(o.logger),
		),
		palette: palette.New(registry, table),
		reloads: make(chan *keymapfile.Report, 1),
	}
	app.handlers.Register(CmdQuit, func(command.Command) error { return ErrQuit })
	return app, nil
}

// Registry returns the frozen command registry.
func (a *Application) Registry() *command.Registry { return a.registry }

// Table returns the binding table.
func (a *Application) Table() *keymap.Table { return a.table }

// Handlers returns the handler registry used by the dispatcher.
func (a *Application) Handlers() *keymap.HandlerRegistry { return a.handlers }

// Dispatcher returns the keystroke dispatcher.
func (a *Application) Dispatcher() *keymap.Dispatcher { return a.dispatcher }

// Palette returns the command palette.
func (a *Application) Palette() *palette.Palette { return a.palette }

// Dispatch feeds k to the dispatcher, flushing a timed-out sequence first.
// Commands that reach a handler, or lack one, are recorded in the palette
// history.
func (a *Application) Dispatch(k key.Keystroke, stack []keymap.Context) keymap.Result {
	if a.dispatcher.Expired() {
		a.record(a.dispatcher.Flush(stack))
	}
	res := a.dispatcher.Dispatch(k, stack)
	a.record(res)
	return res
}

func (a *Application) record(res keymap.Result) {
	switch res.Outcome {
	case keymap.Handled, keymap.Unhandled:
		a.palette.Record(res.Command.Name())
	}
}

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Sources returns the keymaps the configuration asks for, built-in first.
func (a *Application) Sources() ([]keymapfile.Source, error) {
	var sources []keymapfile.Source
	if a.cfg.DefaultKeymap {
		sources = append(sources, DefaultSource())
	}
	if a.cfg.Keymap != "" {
		text, err := os.ReadFile(a.cfg.Keymap)
		if err != nil {
			return nil, fmt.Errorf("read keymap: %w", err)
		}
		sources = append(sources, keymapfile.Source{Name: a.cfg.Keymap, Text: text})
	}
	if len(sources) == 0 {
		return nil, ErrNoKeymap
	}
	return sources, nil
}

// Reload loads every configured keymap into the table. On error the
// previous bindings stay installed.
func (a *Application) Reload() (*keymapfile.Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sources, err := a.Sources()
	if err != nil {
		a.logger.Error("keymap reload failed", zap.Error(err))
		return nil, err
	}
	return a.loader.LoadSources(sources...)
}

// Load installs the given keymaps instead of the configured ones.
func (a *Application) Load(sources ...keymapfile.Source) (*keymapfile.Report, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loader.LoadSources(sources...)
}

// Watch starts reloading the user keymap whenever it changes. Each
// successful reload is also sent to Reloads.
func (a *Application) Watch() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.watcher != nil {
		return ErrAlreadyWatching
	}
	if a.cfg.Keymap == "" {
		return ErrNoKeymap
	}

	w, err := watcher.New(
		watcher.WithDebounce(a.cfg.Debounce),
		watcher.WithLogger(a.logger),
	)
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}
	if err := w.Watch(a.cfg.Keymap); err != nil {
		_ = w.Close()
		return &InitError{Component: "watcher", Err: err}
	}
	w.OnChange(a.onChange)
	a.watcher = w
	a.logger.Info("watching keymap", zap.String("path", a.cfg.Keymap))
	return nil
}

// Reloads delivers the report of each reload triggered by the watcher.
// Reports are dropped when the previous one has not been received.
func (a *Application) Reloads() <-chan *keymapfile.Report {
	return a.reloads
}

func (a *Application) onChange(ev watcher.Event) {
	if !ev.Exists() {
		a.logger.Warn("keymap file removed; keeping current bindings", zap.String("path", ev.Path))
		return
	}
	r, err := a.Reload()
	if err != nil {
		return
	}
	select {
	case a.reloads <- r:
	default:
	}
}

// Close stops the watcher, if any.
func (a *Application) Close() error {
	a.mu.Lock()
	w := a.watcher
	a.watcher = nil
	a.mu.Unlock()

	if w == nil {
		return nil
	}
	return w.Close()
}
