// Package command resolves action descriptors into typed commands.
//
// Applications register one Kind per command name before loading any keymap.
// A Kind knows whether the command takes a payload and how to decode it, so
// the registry can turn a name plus an optional parsed payload into a
// Command without the loader knowing any concrete command types.
//
// A Registry is populated during startup and then frozen. After Freeze it is
// read-only and safe for concurrent use without locking.
package command

import (
	"fmt"
	"reflect"
)

// NoActionName is the reserved name of the explicit no-op command.
// Binding a shortcut to it suppresses any lower-priority binding of the same
// shortcut.
const NoActionName = "NoAction"

// Command is a resolved command: a kind name and its typed payload, or the
// no-op marker.
type Command struct {
	name    string
	payload any
	noop    bool
}

// New creates a command with the given name and payload.
// Commands are normally produced by Registry.Resolve.
func New(name string, payload any) Command {
	return Command{name: name, payload: payload}
}

// NoAction returns the explicit no-op command.
func NoAction() Command {
	return Command{name: NoActionName, noop: true}
}

// Name returns the command name.
func (c Command) Name() string {
	return c.name
}

// Payload returns the decoded payload, or nil for commands without one.
func (c Command) Payload() any {
	return c.payload
}

// IsNoAction reports whether c is the explicit no-op command.
func (c Command) IsNoAction() bool {
	return c.noop
}

// IsZero reports whether c is the zero Command.
func (c Command) IsZero() bool {
	return c.name == "" && !c.noop
}

// Equal reports whether two commands have the same kind and deeply equal
// payloads.
func (c Command) Equal(other Command) bool {
	return c.name == other.name &&
		c.noop == other.noop &&
		reflect.DeepEqual(c.payload, other.payload)
}

// String returns a debug representation.
func (c Command) String() string {
	if c.payload == nil {
		return c.name
	}
	return fmt.Sprintf("%s%+v", c.name, c.payload)
}

// PayloadOf returns the payload of cmd as T.
func PayloadOf[T any](cmd Command) (T, bool) {
	v, ok := cmd.payload.(T)
	return v, ok
}
