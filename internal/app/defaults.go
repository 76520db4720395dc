package app

import (
	_ "embed"

	"github.com/dshills/keybind/internal/keymapfile"
)

//go:embed keymaps/default.json
var defaultKeymap []byte

// DefaultKeymapName names the built-in keymap in diagnostics.
const DefaultKeymapName = "<default>"

// DefaultKeymap returns the text of the built-in keymap.
func DefaultKeymap() []byte {
	return append([]byte(nil), defaultKeymap...)
}

// DefaultSource returns the built-in keymap as a load source.
func DefaultSource() keymapfile.Source {
	return keymapfile.Source{Name: DefaultKeymapName, Text: defaultKeymap}
}
