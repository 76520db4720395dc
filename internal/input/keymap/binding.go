package keymap

import (
	"fmt"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/key"
)

// Entry is one installed binding: a shortcut, an optional context
// predicate and the resolved command.
type Entry struct {
	// Shortcut is one or more whitespace-separated keystrokes.
	Shortcut string

	// Context is the predicate source; empty matches everywhere.
	Context string

	Command command.Command
}

// String returns a debug representation.
func (e Entry) String() string {
	if e.Context == "" {
		return fmt.Sprintf("%s -> %s", e.Shortcut, e.Command)
	}
	return fmt.Sprintf("%s [%s] -> %s", e.Shortcut, e.Context, e.Command)
}

// Match is the result of a successful lookup.
type Match struct {
	Entry Entry

	// Depth is the index of the deepest stack frame the context matched,
	// or -1 for entries without context.
	Depth int
}

// binding is a compiled entry.
type binding struct {
	entry     Entry
	sequence  *key.Sequence
	predicate Predicate // nil when the entry has no context
	order     int
}

func compile(e Entry, order int) (*binding, error) {
	seq, err := key.ParseSequence(e.Shortcut)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidShortcut, err)
	}

	b := &binding{entry: e, sequence: seq, order: order}
	b.entry.Context = normalizeContext(e.Context)
	if b.entry.Context != "" {
		pred, err := ParsePredicate(b.entry.Context)
		if err != nil {
			return nil, err
		}
		b.predicate = pred
	}
	return b, nil
}

// depth returns the deepest frame index at which the binding's context
// holds, -1 for bindings without context, or false if it never holds.
func (b *binding) depth(stack []Context) (int, bool) {
	if b.predicate == nil {
		return -1, true
	}
	for d := len(stack) - 1; d >= 0; d-- {
		if b.predicate.Eval(stack[:d+1]) {
			return d, true
		}
	}
	return 0, false
}
