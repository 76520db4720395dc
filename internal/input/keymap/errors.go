package keymap

import (
	"errors"
	"fmt"
)

// Error types for the binding table.
var (
	// ErrInvalidShortcut indicates a shortcut that does not parse.
	ErrInvalidShortcut = errors.New("invalid shortcut")

	// ErrInvalidContext indicates a context predicate that does not parse.
	ErrInvalidContext = errors.New("invalid context")

	// ErrNoHandler indicates a matched command with no registered handler.
	ErrNoHandler = errors.New("no handler registered")
)

// CompileError reports an entry the table rejected.
type CompileError struct {
	Entry Entry
	Err   error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Entry.Context == "" {
		return fmt.Sprintf("binding %q: %v", e.Entry.Shortcut, e.Err)
	}
	return fmt.Sprintf("binding %q (context %q): %v", e.Entry.Shortcut, e.Entry.Context, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
