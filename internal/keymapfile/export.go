package keymapfile

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keybind/internal/command"
	"github.com/dshills/keybind/internal/input/keymap"
)

type exportBlock struct {
	Context  string         `json:"context,omitempty"`
	Bindings map[string]any `json:"bindings"`
}

// Export writes entries as a keymap file.
//
// Entries are grouped by context in order of first appearance. Loading the
// output with the same registry yields the same set of bindings.
func Export(entries []keymap.Entry) ([]byte, error) {
	var blocks []*exportBlock
	byContext := make(map[string]*exportBlock)
	for _, e := range entries {
		b, ok := byContext[e.Context]
		if !ok {
			b = &exportBlock{Context: e.Context, Bindings: make(map[string]any)}
			byContext[e.Context] = b
			blocks = append(blocks, b)
		}
		b.Bindings[e.Shortcut] = Descriptor(e.Command)
	}

	doc := []byte("[]")
	for _, b := range blocks {
		var err error
		doc, err = sjson.SetBytes(doc, "-1", b)
		if err != nil {
			return nil, fmt.Errorf("export block %q: %w", b.Context, err)
		}
	}
	return pretty.Pretty(doc), nil
}

// Descriptor returns the action descriptor that resolves to cmd.
func Descriptor(cmd command.Command) any {
	switch {
	case cmd.IsNoAction():
		return nil
	case cmd.Payload() == nil:
		return cmd.Name()
	default:
		return []any{cmd.Name(), cmd.Payload()}
	}
}
