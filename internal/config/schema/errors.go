package schema

import (
	"fmt"
	"strings"
)

// ValidationError is one failed check.
type ValidationError struct {
	// Path locates the value, e.g. "[0].bindings". Empty for the root.
	Path string

	Message string

	// Value is the offending value, when there is one.
	Value any

	// Expected names the type or constraint that was not met.
	Expected string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// ValidationErrors is every failure found in one document, in the order the
// validator met them.
type ValidationErrors struct {
	Errors []*ValidationError
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, err := range e.Errors {
		errs[i] = err
	}
	return errs
}

// Len returns the number of errors.
func (e *ValidationErrors) Len() int {
	return len(e.Errors)
}

func (e *ValidationErrors) add(err *ValidationError) {
	e.Errors = append(e.Errors, err)
}

func (e *ValidationErrors) addf(path string, value any, format string, args ...any) {
	e.add(&ValidationError{Path: path, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (e *ValidationErrors) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

func typeError(path, expected string, actual any) *ValidationError {
	return &ValidationError{
		Path:     path,
		Message:  fmt.Sprintf("expected %s, got %s", expected, TypeName(actual)),
		Value:    actual,
		Expected: expected,
	}
}

// TypeName returns the JSON type name of a parsed value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return TypeNameNull
	case bool:
		return TypeNameBoolean
	case string:
		return TypeNameString
	case []any:
		return TypeNameArray
	case map[string]any:
		return TypeNameObject
	}
	if _, ok := toFloat64(v); ok {
		return TypeNameNumber
	}
	return fmt.Sprintf("%T", v)
}
