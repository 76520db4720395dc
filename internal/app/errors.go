package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyWatching indicates Watch was called twice.
	ErrAlreadyWatching = errors.New("already watching")

	// ErrNoKeymap indicates there is nothing to load.
	ErrNoKeymap = errors.New("no keymap configured")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

// Error implements the error interface.
func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s: %v", e.Component, e.Err)
}

// Unwrap returns the underlying error.
func (e *InitError) Unwrap() error {
	return e.Err
}
