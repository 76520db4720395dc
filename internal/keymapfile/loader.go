package keymapfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/keymap"
)

// Source is one keymap text with a name for diagnostics.
type Source struct {
	Name string
	Text []byte
}

// Loader parses keymap files and installs them into a table.
//
// Only Load and its variants write to the table, each with a single
// Replace, so readers of the table never observe a partial keymap.
type Loader struct {
	installer *Installer
	table     *keymap.Table
	logger    *zap.Logger
}

// NewLoader creates a loader. The registry is frozen: commands must all be
// registered before the first load.
func NewLoader(registry *command.Registry, table *keymap.Table, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	registry.Freeze()
	return &Loader{
		installer: NewInstaller(registry, logger),
		table:     table,
		logger:    logger,
	}
}

// Load parses text and replaces the table contents with its bindings.
//
// If text is not a valid keymap file the error is returned and the table is
// left unchanged. Otherwise the returned report lists what was installed
// and what was skipped.
func (l *Loader) Load(text []byte) (*Report, error) {
	return l.LoadSources(Source{Name: "<input>", Text: text})
}

// LoadFile loads the keymap at path.
func (l *Loader) LoadFile(path string) (*Report, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return l.LoadSources(Source{Name: path, Text: text})
}

// LoadSources layers several keymaps into one table. Later sources come
// after earlier ones, so on equal context depth their bindings win.
//
// Every source is parsed before anything is installed; one bad source
// fails the whole load.
func (l *Loader) LoadSources(sources ...Source) (*Report, error) {
	loadID := uuid.NewString()
	logger := l.logger.With(zap.String("load_id", loadID))

	files := make([]*File, 0, len(sources))
	var errs error
	for _, src := range sources {
		f, err := Parse(src.Text)
		if err != nil {
			logger.Error("keymap load failed",
				zap.String("source", src.Name),
				zap.Error(err),
			)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", src.Name, err))
			continue
		}
		files = append(files, f)
	}
	if errs != nil {
		return nil, errs
	}

	r := &Report{LoadID: loadID}
	for _, f := range files {
		l.installer.install(f, r, logger)
	}

	for _, err := range multierr.Errors(l.table.Replace(r.Entries)) {
		var ce *keymap.CompileError
		if !errors.As(err, &ce) {
			continue
		}
		logger.Error("keymap binding rejected",
			zap.String("shortcut", ce.Entry.Shortcut),
			zap.String("context", ce.Entry.Context),
			zap.Error(ce.Err),
		)
		r.Rejected = append(r.Rejected, ce)
	}

	logger.Info("keymap loaded",
		zap.Int("sources", len(sources)),
		zap.Int("installed", r.Installed()),
		zap.Int("skipped", len(r.Skipped)),
		zap.Int("rejected", len(r.Rejected)),
	)
	return r, nil
}
