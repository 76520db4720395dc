package keymapfile

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/keybind/internal/config/lenient"
	"github.com/dshills/keybind/internal/config/schema"
)

// File is a parsed keymap file.
type File struct {
	Blocks []Block

	// normalized is the input with comments and trailing commas blanked
	// out. Offsets in it match the source text.
	normalized []byte
}

// Block is one group of bindings.
type Block struct {
	// Context is the predicate source; empty when the block has none.
	Context string

	// Bindings maps shortcuts to raw action descriptors.
	Bindings map[string]lenient.Value

	index int
}

// Shortcuts returns the block's shortcuts in sorted order.
func (b Block) Shortcuts() []string {
	keys := make([]string, 0, len(b.Bindings))
	for k := range b.Bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the total number of bindings in the file.
func (f *File) Len() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Bindings)
	}
	return n
}

// Parse reads a keymap file.
//
// Syntax errors are returned as *lenient.ParseError, structural errors as
// *SchemaError. Descriptors are not checked here.
func Parse(text []byte) (*File, error) {
	doc, err := lenient.Parse(text)
	if err != nil {
		return nil, err
	}
	if err := validate(validator, doc); err != nil {
		return nil, err
	}

	// The schema guarantees the shapes asserted below.
	items := doc.([]any)
	f := &File{
		Blocks:     make([]Block, 0, len(items)),
		normalized: lenient.Normalize(text),
	}
	for i, item := range items {
		obj := item.(map[string]any)
		b := Block{
			Bindings: obj["bindings"].(map[string]any),
			index:    i,
		}
		if ctx, ok := obj["context"].(string); ok {
			b.Context = strings.TrimSpace(ctx)
		}
		f.Blocks = append(f.Blocks, b)
	}
	return f, nil
}

// CheckSchema validates a keymap file against an additional schema, such as
// one that restricts shortcuts or contexts for a project. Failures are
// returned as *SchemaError.
func CheckSchema(text []byte, v *schema.Validator) error {
	doc, err := lenient.Parse(text)
	if err != nil {
		return err
	}
	return validate(v, doc)
}

func validate(v *schema.Validator, doc lenient.Value) error {
	err := v.Validate(doc)
	var verrs *schema.ValidationErrors
	if errors.As(err, &verrs) {
		return &SchemaError{Errs: verrs}
	}
	return err
}

// line returns the one-based source line of a block's descriptor, or 0.
func (f *File) line(b Block, shortcut string) int {
	if f.normalized == nil {
		return 0
	}
	path := fmt.Sprintf("%d.bindings.%s", b.index, escapePath(shortcut))
	res := gjson.GetBytes(f.normalized, path)
	if !res.Exists() || res.Index <= 0 {
		return 0
	}
	line, _ := lenient.Position(f.normalized, res.Index)
	return line
}

// escapePath escapes a key for use as one gjson path component.
func escapePath(key string) string {
	var sb strings.Builder
	for i := 0; i < len(key); i++ {
		c := key[i]
		safe := c > '~' || c == '_' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !safe {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
