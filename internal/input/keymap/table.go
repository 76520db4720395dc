package keymap

import (
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/dshills/keybind/internal/input/key"
)

// Table is the active binding set.
//
// Replace swaps in a whole new set with one atomic store. All read methods
// work on the set that was current when they were called, so they are safe
// to use concurrently with Replace.
type Table struct {
	current atomic.Pointer[bindingSet]
}

type bindingSet struct {
	generation uint64
	bindings   []*binding
	tree       *prefixTree
}

// NewTable creates an empty table.
func NewTable() *Table {
	t := &Table{}
	t.current.Store(&bindingSet{tree: newPrefixTree()})
	return t
}

// Replace compiles entries and installs them as the new set.
//
// Entries whose shortcut or context does not compile are left out and
// reported as *CompileError values combined with multierr; the rest of the
// set is installed regardless.
func (t *Table) Replace(entries []Entry) error {
	set := &bindingSet{
		bindings: make([]*binding, 0, len(entries)),
		tree:     newPrefixTree(),
	}

	var errs error
	for _, e := range entries {
		b, err := compile(e, len(set.bindings))
		if err != nil {
			errs = multierr.Append(errs, &CompileError{Entry: e, Err: err})
			continue
		}
		set.bindings = append(set.bindings, b)
		set.tree.insert(b)
	}

	for {
		old := t.current.Load()
		set.generation = old.generation + 1
		if t.current.CompareAndSwap(old, set) {
			break
		}
	}
	return errs
}

// Clear installs an empty set.
func (t *Table) Clear() {
	_ = t.Replace(nil)
}

// Match returns the binding for seq in the given context stack.
func (t *Table) Match(seq *key.Sequence, stack []Context) (Match, bool) {
	set := t.current.Load()
	node := set.tree.find(seq)
	if node == nil {
		return Match{}, false
	}

	var best *binding
	bestDepth := 0
	for _, b := range node.bindings {
		d, ok := b.depth(stack)
		if !ok {
			continue
		}
		if best == nil || d > bestDepth || (d == bestDepth && b.order > best.order) {
			best, bestDepth = b, d
		}
	}
	if best == nil {
		return Match{}, false
	}
	return Match{Entry: best.entry, Depth: bestDepth}, true
}

// Lookup parses shortcut and matches it.
func (t *Table) Lookup(shortcut string, stack []Context) (Match, bool) {
	seq, err := key.ParseSequence(shortcut)
	if err != nil {
		return Match{}, false
	}
	return t.Match(seq, stack)
}

// HasPrefix reports whether some longer binding starting with seq is active
// in the given stack.
func (t *Table) HasPrefix(seq *key.Sequence, stack []Context) bool {
	node := t.current.Load().tree.find(seq)
	if node == nil {
		return false
	}
	return node.walk(func(b *binding) bool {
		_, ok := b.depth(stack)
		return ok
	})
}

// Entries returns the installed entries in set order.
func (t *Table) Entries() []Entry {
	set := t.current.Load()
	out := make([]Entry, len(set.bindings))
	for i, b := range set.bindings {
		out[i] = b.entry
	}
	return out
}

// BindingsFor returns the entries bound to the named command.
func (t *Table) BindingsFor(name string) []Entry {
	var out []Entry
	for _, b := range t.current.Load().bindings {
		if b.entry.Command.Name() == name {
			out = append(out, b.entry)
		}
	}
	return out
}

// Len returns the number of installed entries.
func (t *Table) Len() int {
	return len(t.current.Load().bindings)
}

// Generation returns a counter incremented by every Replace.
func (t *Table) Generation() uint64 {
	return t.current.Load().generation
}
