// Package lenient parses the comment-tolerant JSON dialect used by keymap
// files.
//
// The dialect is standard JSON plus // line comments, /* block */ comments
// and trailing commas in arrays and objects. Parsed documents are returned as
// a dynamic tree (nil, bool, json.Number, string, []any, map[string]any) that
// can later be re-decoded into typed values with Decode.
package lenient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/tidwall/jsonc"
)

// Value is a parsed dynamic value.
type Value = any

// ParseError describes a syntax violation outside the tolerated extensions.
// Positions refer to the original, unnormalized text.
type ParseError struct {
	// Offset is the zero-based byte offset of the failure.
	Offset int

	// Line and Column are one-based.
	Line   int
	Column int

	Msg string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
}

// Normalize returns text with comments and trailing commas blanked out.
// The result has the same length as text and keeps every line break at the
// same offset, so positions found in it are valid in text.
func Normalize(text []byte) []byte {
	return jsonc.ToJSON(text)
}

// Parse parses text into a dynamic value.
// Empty input, trailing data, invalid UTF-8 and any other syntax error yield
// *ParseError. A comma must follow a value; only the last one before a
// closing bracket may be dangling.
func Parse(text []byte) (Value, error) {
	if pe := checkText(text); pe != nil {
		return nil, pe
	}
	norm := Normalize(text)
	if len(bytes.TrimSpace(norm)) == 0 {
		return nil, newParseError(text, len(text), "unexpected end of input")
	}

	dec := json.NewDecoder(bytes.NewReader(norm))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, syntaxError(text, err)
	}

	end := skipSpace(norm, int(dec.InputOffset()))
	if _, err := dec.Token(); err != io.EOF {
		return nil, newParseError(text, end, "trailing data after value")
	}
	return v, nil
}

// Unmarshal parses text and decodes the result into target.
func Unmarshal(text []byte, target any) error {
	v, err := Parse(text)
	if err != nil {
		return err
	}
	return Decode(v, target)
}

func syntaxError(text []byte, err error) *ParseError {
	var se *json.SyntaxError
	switch {
	case errors.As(err, &se):
		off := int(se.Offset) - 1
		if off < 0 {
			off = 0
		}
		return newParseError(text, off, se.Error())
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return newParseError(text, len(text), "unexpected end of input")
	default:
		return newParseError(text, 0, err.Error())
	}
}

func newParseError(text []byte, offset int, msg string) *ParseError {
	line, col := Position(text, offset)
	return &ParseError{Offset: offset, Line: line, Column: col, Msg: msg}
}

// Position converts a byte offset in text to a one-based line and column.
// Columns count runes.
func Position(text []byte, offset int) (line, column int) {
	if offset > len(text) {
		offset = len(text)
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line = 1 + bytes.Count(prefix, []byte{'\n'})
	start := bytes.LastIndexByte(prefix, '\n') + 1
	column = 1 + utf8.RuneCount(prefix[start:])
	return line, column
}

// checkText reports what Normalize would hide from the decoder: invalid
// UTF-8, and commas that follow no value such as the one in "[,]".
func checkText(text []byte) *ParseError {
	if !utf8.Valid(text) {
		off := 0
		for off < len(text) {
			r, n := utf8.DecodeRune(text[off:])
			if r == utf8.RuneError && n == 1 {
				break
			}
			off += n
		}
		return newParseError(text, off, "invalid UTF-8")
	}

	// last is the previous significant byte outside strings and comments.
	var last byte
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"':
			i = skipString(text, i)
			last = c
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			for i < len(text) && text[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			end := bytes.Index(text[i+2:], []byte("*/"))
			if end < 0 {
				return nil
			}
			i += end + 3
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
		case c == ',':
			switch last {
			case 0, '[', '{', ',', ':':
				return newParseError(text, i, "unexpected comma")
			}
			last = c
		default:
			last = c
		}
	}
	return nil
}

// skipString returns the offset of the quote closing the string that opens
// at i, or len(b) when it is unterminated.
func skipString(b []byte, i int) int {
	for i++; i < len(b); i++ {
		switch b[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return len(b)
}

func skipSpace(b []byte, i int) int {
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}
