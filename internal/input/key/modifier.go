package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the platform key (Cmd on macOS, Super/Win elsewhere).
	ModMeta

	// ModFn indicates the Fn key.
	ModFn
)

// canonicalOrder is the order modifiers are written in.
var canonicalOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModMeta, "cmd"},
	{ModFn, "fn"},
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":   ModCtrl,
	"alt":    ModAlt,
	"option": ModAlt,
	"shift":  ModShift,
	"cmd":    ModMeta,
	"super":  ModMeta,
	"win":    ModMeta,
	"meta":   ModMeta,
	"fn":     ModFn,
}

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns the canonical form, e.g. "ctrl-shift".
func (m Modifier) String() string {
	var parts []string
	for _, c := range canonicalOrder {
		if m.Has(c.mod) {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "-")
}

// ModifierFromName returns the Modifier for a lowercase name.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNameMap[name]
	return m, ok
}
