package keymapfile

import (
	"errors"
	"fmt"

	"github.com/dshills/keybind/internal/config/schema"
)

// ErrMalformedDescriptor indicates an action descriptor that is not a
// string, a [name, payload] pair with a string name, or null.
var ErrMalformedDescriptor = errors.New("malformed action descriptor")

// SchemaError reports a file whose structure does not match the keymap
// schema. It is fatal to the load.
type SchemaError struct {
	Errs *schema.ValidationErrors
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return "keymap schema: " + e.Errs.Error()
}

// Unwrap returns the validation errors.
func (e *SchemaError) Unwrap() error {
	return e.Errs
}

// EntryError reports one binding that was skipped.
type EntryError struct {
	Shortcut string

	// Context is the block context, empty when absent.
	Context string

	// Line is the one-based line of the descriptor, 0 if unknown.
	Line int

	Err error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	loc := ""
	if e.Line > 0 {
		loc = fmt.Sprintf("line %d: ", e.Line)
	}
	if e.Context == "" {
		return fmt.Sprintf("%sbinding %q: %v", loc, e.Shortcut, e.Err)
	}
	return fmt.Sprintf("%sbinding %q in context %q: %v", loc, e.Shortcut, e.Context, e.Err)
}

// Unwrap returns the underlying error.
func (e *EntryError) Unwrap() error {
	return e.Err
}
