package schema

// JSON type names.
const (
	TypeNameString  = "string"
	TypeNameNumber  = "number"
	TypeNameInteger = "integer"
	TypeNameBoolean = "boolean"
	TypeNameArray   = "array"
	TypeNameObject  = "object"
	TypeNameNull    = "null"
)

// DefsPrefix is the $ref prefix for local definitions.
const DefsPrefix = "#/$defs/"

// Builder assembles a Schema. Every method returns the builder so calls
// chain; Build returns the result.
//
//	schema.Object().
//		Property("name", schema.NewBuilder().Type(schema.TypeNameString).Build()).
//		Required("name").
//		Build()
type Builder struct {
	s *Schema
}

// NewBuilder starts an untyped schema.
func NewBuilder() *Builder { return &Builder{s: &Schema{}} }

// Array starts an array schema.
func Array() *Builder { return NewBuilder().Type(TypeNameArray) }

// Object starts an object schema.
func Object() *Builder { return NewBuilder().Type(TypeNameObject) }

// RefTo returns a schema pointing at the named entry of $defs.
func RefTo(name string) *Schema { return &Schema{Ref: DefsPrefix + name} }

func (b *Builder) Build() *Schema { return b.s }

// Draft stamps $schema with the dialect this package emits.
func (b *Builder) Draft() *Builder {
	b.s.SchemaVersion = Draft
	return b
}

func (b *Builder) Title(title string) *Builder {
	b.s.Title = title
	return b
}

func (b *Builder) Description(desc string) *Builder {
	b.s.Description = desc
	return b
}

// Type replaces the allowed types. More than one type marshals as an array.
func (b *Builder) Type(types ...string) *Builder {
	b.s.Type = SchemaType{Types: types}
	return b
}

func (b *Builder) Examples(values ...any) *Builder {
	b.s.Examples = values
	return b
}

func (b *Builder) Items(item *Schema) *Builder {
	b.s.Items = item
	return b
}

// Property sets the schema of one named object member.
func (b *Builder) Property(name string, prop *Schema) *Builder {
	if b.s.Properties == nil {
		b.s.Properties = make(map[string]*Schema)
	}
	b.s.Properties[name] = prop
	return b
}

// Required appends to the list of mandatory members.
func (b *Builder) Required(names ...string) *Builder {
	b.s.Required = append(b.s.Required, names...)
	return b
}

// AdditionalProperties constrains members not named by Property.
func (b *Builder) AdditionalProperties(rest *Schema) *Builder {
	b.s.AdditionalProperties = rest
	return b
}

// Def adds a named definition under $defs for RefTo to point at.
func (b *Builder) Def(name string, def *Schema) *Builder {
	if b.s.Defs == nil {
		b.s.Defs = make(map[string]*Schema)
	}
	b.s.Defs[name] = def
	return b
}
