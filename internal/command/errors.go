package command

import (
	"errors"
	"fmt"
)

// Error types for command registration and resolution.
var (
	// ErrUnknownCommand indicates the name is not registered.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrPayloadMismatch indicates the payload does not fit the kind.
	ErrPayloadMismatch = errors.New("payload mismatch")

	// ErrDuplicateKind indicates the name is already registered.
	ErrDuplicateKind = errors.New("command already registered")

	// ErrRegistryFrozen indicates a registration after Freeze.
	ErrRegistryFrozen = errors.New("command registry is frozen")

	// ErrInvalidName indicates an empty or reserved name.
	ErrInvalidName = errors.New("invalid command name")
)

// ResolveError reports why a descriptor could not be resolved.
type ResolveError struct {
	// Name is the command name from the descriptor.
	Name string

	// Err is ErrUnknownCommand or ErrPayloadMismatch.
	Err error

	// Cause is the underlying decode error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s %q: %v", e.Err, e.Name, e.Cause)
	}
	return fmt.Sprintf("%s %q", e.Err, e.Name)
}

// Unwrap returns the sentinel and the cause.
func (e *ResolveError) Unwrap() []error {
	errs := make([]error, 0, 2)
	for _, err := range []error{e.Err, e.Cause} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
