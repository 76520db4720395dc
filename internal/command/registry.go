package command

import (
	"fmt"
	"sort"

	"github.com/dshills/keybind/internal/config/lenient"
)

// Registry maps command names to kinds.
//
// Registration happens on one goroutine during startup. Once frozen the
// registry never changes, so lookups take no lock.
type Registry struct {
	kinds  map[string]Kind
	frozen bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		kinds: make(map[string]Kind),
	}
}

// Register adds a kind under name.
func (r *Registry) Register(name string, kind Kind) error {
	switch {
	case r.frozen:
		return fmt.Errorf("register %q: %w", name, ErrRegistryFrozen)
	case name == "" || name == NoActionName:
		return fmt.Errorf("register %q: %w", name, ErrInvalidName)
	case kind == nil:
		return fmt.Errorf("register %q: nil kind", name)
	}
	if _, exists := r.kinds[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateKind)
	}
	r.kinds[name] = kind
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, kind Kind) {
	if err := r.Register(name, kind); err != nil {
		panic(err)
	}
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	return r.frozen
}

// Lookup returns the kind registered under name.
func (r *Registry) Lookup(name string) (Kind, bool) {
	k, ok := r.kinds[name]
	return k, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered kinds.
func (r *Registry) Len() int {
	return len(r.kinds)
}

// Resolve turns a command name and optional payload into a Command.
//
// The reserved NoActionName without payload resolves to NoAction. Failures
// are *ResolveError wrapping ErrUnknownCommand or ErrPayloadMismatch.
func (r *Registry) Resolve(name string, payload lenient.Value, hasPayload bool) (Command, error) {
	if !hasPayload && name == NoActionName {
		return NoAction(), nil
	}

	kind, ok := r.kinds[name]
	if !ok {
		return Command{}, &ResolveError{Name: name, Err: ErrUnknownCommand}
	}

	v, err := kind.Build(payload, hasPayload)
	if err != nil {
		return Command{}, &ResolveError{Name: name, Err: ErrPayloadMismatch, Cause: err}
	}
	return Command{name: name, payload: v}, nil
}
