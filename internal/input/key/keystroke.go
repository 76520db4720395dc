package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrInvalidKeystroke indicates text that is not a valid keystroke.
var ErrInvalidKeystroke = errors.New("invalid keystroke")

// Keystroke is a single key press with modifiers.
type Keystroke struct {
	Key       Key
	Rune      rune // set when Key is KeyRune
	Modifiers Modifier
}

// NewRune creates a character keystroke, folding uppercase letters into
// lowercase plus shift.
func NewRune(r rune, mods Modifier) Keystroke {
	if r == ' ' {
		return Keystroke{Key: KeySpace, Modifiers: mods}
	}
	if unicode.IsUpper(r) {
		r = unicode.ToLower(r)
		mods = mods.With(ModShift)
	}
	return Keystroke{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecial creates a named-key keystroke.
func NewSpecial(k Key, mods Modifier) Keystroke {
	return Keystroke{Key: k, Modifiers: mods}
}

// ParseKeystroke parses a keystroke such as "ctrl-shift-a" or "f5".
func ParseKeystroke(s string) (Keystroke, error) {
	if s == "" {
		return Keystroke{}, fmt.Errorf("%w: empty", ErrInvalidKeystroke)
	}

	var mods Modifier
	rest := s
	for {
		// A hyphen at the start or end is the minus key itself.
		i := strings.IndexByte(rest, '-')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		m, ok := ModifierFromName(strings.ToLower(rest[:i]))
		if !ok {
			return Keystroke{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKeystroke, rest[:i], s)
		}
		mods = mods.With(m)
		rest = rest[i+1:]
	}

	if utf8.RuneCountInString(rest) == 1 {
		r, _ := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return Keystroke{}, fmt.Errorf("%w: unprintable key in %q", ErrInvalidKeystroke, s)
		}
		return NewRune(r, mods), nil
	}

	k, ok := KeyFromName(strings.ToLower(rest))
	if !ok {
		return Keystroke{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKeystroke, rest, s)
	}
	return NewSpecial(k, mods), nil
}

// MustParseKeystroke is like ParseKeystroke but panics on error.
func MustParseKeystroke(s string) Keystroke {
	k, err := ParseKeystroke(s)
	if err != nil {
		panic(err)
	}
	return k
}

// IsZero reports whether k is the zero keystroke.
func (k Keystroke) IsZero() bool {
	return k == Keystroke{}
}

// String returns the canonical form, e.g. "ctrl-shift-a".
func (k Keystroke) String() string {
	var name string
	switch k.Key {
	case KeyRune:
		name = string(k.Rune)
	default:
		name = k.Key.String()
	}
	if k.Modifiers.IsEmpty() {
		return name
	}
	return k.Modifiers.String() + "-" + name
}
