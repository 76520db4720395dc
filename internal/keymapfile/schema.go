package keymapfile

import (
	"encoding/json"

	"github.com/tidwall/pretty"

	"github.com/dshills/keybind/internal/config/schema"
)

// Definition names used in the keymap schema.
const (
	BlockDefinition  = "KeymapBlock"
	ActionDefinition = "KeymapAction"
)

// Schema returns the JSON Schema of a keymap file.
//
// The KeymapAction definition is the accept-anything schema. Which
// descriptors are valid depends on the commands the application registers,
// so the schema leaves that slot open for tooling to extend.
func Schema() *schema.Schema {
	block := schema.Object().
		Description("A group of bindings that share one context.").
		Property("context", schema.NewBuilder().
			Type(schema.TypeNameString, schema.TypeNameNull).
			Description("Context predicate; the block applies everywhere when absent.").
			Examples("Editor", "Workspace > Editor && mode == full").
			Build()).
		Property("bindings", schema.Object().
			Description("Shortcuts mapped to action descriptors.").
			AdditionalProperties(schema.RefTo(ActionDefinition)).
			Build()).
		Required("bindings").
		Build()

	return schema.Array().
		Draft().
		Title("Keymap").
		Description("A list of keymap blocks.").
		Items(schema.RefTo(BlockDefinition)).
		Def(BlockDefinition, block).
		Def(ActionDefinition, schema.Any()).
		Build()
}

// SchemaJSON returns the keymap schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.Marshal(Schema())
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

var validator = schema.NewValidator(Schema())
