package keymap

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/key"
)

// DefaultSequenceTimeout is how long a partial multi-stroke sequence waits
// for its next keystroke.
const DefaultSequenceTimeout = time.Second

// Outcome classifies what a keystroke did.
type Outcome int

const (
	// NoMatch means no binding applies; the host may handle the key itself.
	NoMatch Outcome = iota

	// Pending means the keystroke started or extended a multi-stroke sequence.
	Pending

	// Handled means a command matched and its handler ran.
	Handled

	// Unhandled means a command matched but no handler is registered.
	Unhandled

	// Suppressed means the no-op command matched and the key was consumed.
	Suppressed
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case NoMatch:
		return "no-match"
	case Pending:
		return "pending"
	case Handled:
		return "handled"
	case Unhandled:
		return "unhandled"
	case Suppressed:
		return "suppressed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result describes the effect of one Dispatch or Flush call.
type Result struct {
	Outcome  Outcome
	Sequence string
	Command  command.Command

	// Err is the handler's error, or ErrNoHandler for Unhandled.
	Err error
}

// Dispatcher feeds keystrokes through a Table and runs handlers.
// It is not safe for concurrent use; call it from the UI goroutine.
type Dispatcher struct {
	table    *Table
	handlers *HandlerRegistry
	logger   *zap.Logger
	timeout  time.Duration
	now      func() time.Time

	pending *key.Sequence
	last    time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithSequenceTimeout sets the multi-stroke timeout.
func WithSequenceTimeout(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		if d > 0 {
			disp.timeout = d
		}
	}
}

// WithClock sets the time source.
func WithClock(now func() time.Time) DispatcherOption {
	return func(d *Dispatcher) {
		d.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher creates a dispatcher over table and handlers.
func NewDispatcher(table *Table, handlers *HandlerRegistry, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		table:    table,
		handlers: handlers,
		logger:   zap.NewNop(),
		timeout:  DefaultSequenceTimeout,
		now:      time.Now,
		pending:  key.NewSequence(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch processes one keystroke in the given context stack.
func (d *Dispatcher) Dispatch(k key.Keystroke, stack []Context) Result {
	now := d.now()
	if !d.pending.IsEmpty() && now.Sub(d.last) > d.timeout {
		d.logger.Debug("pending sequence timed out", zap.Stringer("sequence", d.pending))
		d.pending.Clear()
	}
	d.last = now

	seq := d.pending.Clone()
	seq.Add(k)

	if d.table.HasPrefix(seq, stack) {
		d.pending = seq
		return Result{Outcome: Pending, Sequence: seq.String()}
	}
	d.pending.Clear()

	m, ok := d.table.Match(seq, stack)
	if !ok {
		if seq.Len() > 1 {
			// The partial sequence led nowhere; retry the key on its own.
			return d.Dispatch(k, stack)
		}
		return Result{Outcome: NoMatch, Sequence: seq.String()}
	}
	return d.run(seq, m)
}

// Flush resolves a pending sequence as if no further keystroke will come,
// running its exact binding if it has one.
func (d *Dispatcher) Flush(stack []Context) Result {
	if d.pending.IsEmpty() {
		return Result{Outcome: NoMatch}
	}
	seq := d.pending.Clone()
	d.pending.Clear()

	m, ok := d.table.Match(seq, stack)
	if !ok {
		return Result{Outcome: NoMatch, Sequence: seq.String()}
	}
	return d.run(seq, m)
}

// Expired reports whether a pending sequence has outlived the timeout.
func (d *Dispatcher) Expired() bool {
	return !d.pending.IsEmpty() && d.now().Sub(d.last) > d.timeout
}

// Pending returns the keystrokes waiting for completion.
func (d *Dispatcher) Pending() string {
	return d.pending.String()
}

// Reset discards any pending keystrokes.
func (d *Dispatcher) Reset() {
	d.pending.Clear()
}

func (d *Dispatcher) run(seq *key.Sequence, m Match) Result {
	res := Result{Sequence: seq.String(), Command: m.Entry.Command}
	cmd := m.Entry.Command

	if cmd.IsNoAction() {
		res.Outcome = Suppressed
		return res
	}

	h := d.handlers.Get(cmd.Name())
	if h == nil {
		res.Outcome = Unhandled
		res.Err = fmt.Errorf("%w: %s", ErrNoHandler, cmd.Name())
		d.logger.Warn("no handler for command", zap.String("command", cmd.Name()), zap.String("shortcut", res.Sequence))
		return res
	}

	res.Outcome = Handled
	if err := h(cmd); err != nil {
		res.Err = err
		d.logger.Error("command failed", zap.String("command", cmd.Name()), zap.Error(err))
	}
	return res
}
