// Package keymap holds the active binding table and dispatches keystrokes
// against it.
//
// # Entries
//
// An Entry binds a shortcut ("ctrl-k ctrl-s") to a resolved command,
// optionally scoped by a context predicate ("Editor && mode == full"). The
// Table compiles a whole set of entries at once and swaps it in atomically,
// so readers never observe a mix of two loads.
//
// # Context Predicates
//
// The UI describes where focus is as a stack of Context frames, outermost
// first. Each frame has identifiers and key=value variables:
//
//	stack := []keymap.Context{
//	    keymap.NewContext("Workspace"),
//	    keymap.NewContext("Editor").With("mode", "full"),
//	}
//
// Predicates are evaluated against that stack:
//
//	Editor              the innermost frame has identifier Editor
//	mode == full        the innermost frame has variable mode=full
//	mode != full        negated comparison
//	!Editor             negation
//	a && b, a || b      conjunction, disjunction
//	Workspace > Editor  Editor innermost, with Workspace in an enclosing frame
//	( ... )             grouping
//
// Precedence from loosest to tightest is >, ||, &&, == and !=, then !.
//
// # Precedence Between Bindings
//
// When several entries bind the same shortcut, the one whose predicate
// matches the deepest frame wins. Entries without a predicate match at
// depth -1, below every scoped entry. Ties go to the entry that appears
// later in the set, so later files and blocks override earlier ones.
//
// The explicit no-op command wins like any other command and makes the
// Dispatcher consume the keystroke without running anything.
package keymap
