package keymapfile

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/config/lenient"
	"github.com/dshills/keybind/internal/config/schema"
	"github.com/dshills/keybind/internal/input/keymap"
)

// Report summarizes one load.
type Report struct {
	// LoadID identifies the load in log output.
	LoadID string

	// Entries holds every binding that resolved, in file order.
	Entries []keymap.Entry

	// Skipped holds bindings whose descriptor did not resolve.
	Skipped []*EntryError

	// Rejected holds resolved entries the table refused, usually for an
	// unparsable shortcut or context.
	Rejected []*keymap.CompileError
}

// Installed returns the number of bindings that made it into the table.
func (r *Report) Installed() int {
	return len(r.Entries) - len(r.Rejected)
}

// Err combines all skipped and rejected bindings into one error, or nil.
func (r *Report) Err() error {
	var err error
	for _, e := range r.Skipped {
		err = multierr.Append(err, e)
	}
	for _, e := range r.Rejected {
		err = multierr.Append(err, e)
	}
	return err
}

// Installer resolves the descriptors of a parsed file into entries.
type Installer struct {
	registry *command.Registry
	logger   *zap.Logger
}

// NewInstaller creates an installer. A nil logger discards output.
func NewInstaller(registry *command.Registry, logger *zap.Logger) *Installer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Installer{registry: registry, logger: logger}
}

// Install resolves every binding of f. It never fails as a whole: each
// binding that does not resolve is logged and recorded in the report.
func (in *Installer) Install(f *File) *Report {
	r := &Report{Entries: make([]keymap.Entry, 0, f.Len())}
	in.install(f, r, in.logger)
	return r
}

func (in *Installer) install(f *File, r *Report, logger *zap.Logger) {
	for _, block := range f.Blocks {
		for _, shortcut := range block.Shortcuts() {
			cmd, err := in.resolve(block.Bindings[shortcut])
			if err != nil {
				entryErr := &EntryError{
					Shortcut: shortcut,
					Context:  block.Context,
					Line:     f.line(block, shortcut),
					Err:      err,
				}
				logger.Error("skipping keymap binding",
					zap.String("shortcut", shortcut),
					zap.String("context", block.Context),
					zap.Int("line", entryErr.Line),
					zap.Error(err),
				)
				r.Skipped = append(r.Skipped, entryErr)
				continue
			}
			r.Entries = append(r.Entries, keymap.Entry{
				Shortcut: shortcut,
				Context:  block.Context,
				Command:  cmd,
			})
		}
	}
}

// resolve classifies a descriptor and resolves it against the registry.
func (in *Installer) resolve(desc lenient.Value) (command.Command, error) {
	switch v := desc.(type) {
	case nil:
		return in.registry.Resolve(command.NoActionName, nil, false)
	case string:
		return in.registry.Resolve(v, nil, false)
	case []any:
		if len(v) != 2 {
			return command.Command{}, fmt.Errorf("%w: expected [name, payload], got %d elements", ErrMalformedDescriptor, len(v))
		}
		name, ok := v[0].(string)
		if !ok {
			return command.Command{}, fmt.Errorf("%w: command name must be a string, got %s", ErrMalformedDescriptor, schema.TypeName(v[0]))
		}
		return in.registry.Resolve(name, v[1], true)
	default:
		return command.Command{}, fmt.Errorf("%w: expected string, array or null, got %s", ErrMalformedDescriptor, schema.TypeName(desc))
	}
}
