package keymap

import (
	"fmt"
	"sort"
	"strings"
)

// Context is one frame of the active context stack.
type Context struct {
	Identifiers map[string]bool
	Variables   map[string]string
}

// NewContext creates a frame with the given identifiers.
func NewContext(ids ...string) Context {
	c := Context{}
	for _, id := range ids {
		c.Add(id)
	}
	return c
}

// Add adds an identifier.
func (c *Context) Add(id string) {
	if c.Identifiers == nil {
		c.Identifiers = make(map[string]bool)
	}
	c.Identifiers[id] = true
}

// Set sets a variable.
func (c *Context) Set(key, value string) {
	if c.Variables == nil {
		c.Variables = make(map[string]string)
	}
	c.Variables[key] = value
}

// With returns a copy of the frame with a variable set.
func (c Context) With(key, value string) Context {
	vars := make(map[string]string, len(c.Variables)+1)
	for k, v := range c.Variables {
		vars[k] = v
	}
	vars[key] = value
	c.Variables = vars
	return c
}

// Has reports whether the frame has the identifier.
func (c Context) Has(id string) bool {
	return c.Identifiers[id]
}

// Get returns a variable.
func (c Context) Get(key string) (string, bool) {
	v, ok := c.Variables[key]
	return v, ok
}

// String returns the frame in ParseContext syntax.
func (c Context) String() string {
	parts := make([]string, 0, len(c.Identifiers)+len(c.Variables))
	for id := range c.Identifiers {
		parts = append(parts, id)
	}
	sort.Strings(parts)

	vars := make([]string, 0, len(c.Variables))
	for k, v := range c.Variables {
		vars = append(vars, k+"="+v)
	}
	sort.Strings(vars)
	return strings.Join(append(parts, vars...), " ")
}

// ParseContext parses a frame such as "Editor mode=full".
func ParseContext(s string) (Context, error) {
	c := Context{}
	for _, field := range strings.Fields(s) {
		if k, v, ok := strings.Cut(field, "="); ok {
			if !isIdent(k) || !isIdent(v) {
				return Context{}, fmt.Errorf("%w: bad variable %q", ErrInvalidContext, field)
			}
			c.Set(k, v)
			continue
		}
		if !isIdent(field) {
			return Context{}, fmt.Errorf("%w: bad identifier %q", ErrInvalidContext, field)
		}
		c.Add(field)
	}
	return c, nil
}

// ParseStack parses frames separated by ">", outermost first, e.g.
// "Workspace > Editor mode=full".
func ParseStack(s string) ([]Context, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ">")
	stack := make([]Context, 0, len(parts))
	for _, p := range parts {
		c, err := ParseContext(p)
		if err != nil {
			return nil, err
		}
		stack = append(stack, c)
	}
	return stack, nil
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '-' || r == ':' || r == '.' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
