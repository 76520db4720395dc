package key

import (
	"fmt"
	"strings"
)

// Sequence is an ordered list of keystrokes, e.g. "ctrl-k ctrl-s".
type Sequence struct {
	Strokes []Keystroke
}

// NewSequence creates a sequence from the given keystrokes.
func NewSequence(strokes ...Keystroke) *Sequence {
	return &Sequence{Strokes: strokes}
}

// ParseSequence parses whitespace-separated keystrokes.
func ParseSequence(s string) (*Sequence, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty shortcut", ErrInvalidKeystroke)
	}

	seq := &Sequence{Strokes: make([]Keystroke, 0, len(fields))}
	for _, f := range fields {
		k, err := ParseKeystroke(f)
		if err != nil {
			return nil, err
		}
		seq.Strokes = append(seq.Strokes, k)
	}
	return seq, nil
}

// Len returns the number of keystrokes.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Strokes)
}

// IsEmpty returns true if the sequence has no keystrokes.
func (s *Sequence) IsEmpty() bool {
	return s.Len() == 0
}

// Add appends a keystroke.
func (s *Sequence) Add(k Keystroke) {
	s.Strokes = append(s.Strokes, k)
}

// Clear removes all keystrokes.
func (s *Sequence) Clear() {
	s.Strokes = s.Strokes[:0]
}

// Clone returns an independent copy.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	out := make([]Keystroke, len(s.Strokes))
	copy(out, s.Strokes)
	return &Sequence{Strokes: out}
}

// Equals returns true if two sequences are identical.
func (s *Sequence) Equals(other *Sequence) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i, k := range s.Strokes {
		if k != other.Strokes[i] {
			return false
		}
	}
	return true
}

// HasPrefix returns true if s starts with prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix.Len() > s.Len() {
		return false
	}
	for i := 0; i < prefix.Len(); i++ {
		if s.Strokes[i] != prefix.Strokes[i] {
			return false
		}
	}
	return true
}

// String returns the canonical form, keystrokes separated by a space.
func (s *Sequence) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(s.Strokes))
	for i, k := range s.Strokes {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}
