package command

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dshills/keybind/internal/config/lenient"
)

// Kind describes one registered command type.
type Kind interface {
	// Build produces the typed payload from a parsed value.
	// hasPayload is false when the descriptor carried no payload at all.
	Build(payload lenient.Value, hasPayload bool) (any, error)

	// PayloadType returns the payload type, or nil for unit kinds.
	PayloadType() reflect.Type
}

var (
	errUnexpectedPayload = errors.New("command takes no payload")
	errMissingPayload    = errors.New("command requires a payload")
)

type unitKind struct{}

// Unit returns the kind of a command without payload.
// A null payload is treated as no payload.
func Unit() Kind {
	return unitKind{}
}

func (unitKind) Build(payload lenient.Value, hasPayload bool) (any, error) {
	if hasPayload && payload != nil {
		return nil, errUnexpectedPayload
	}
	return nil, nil
}

func (unitKind) PayloadType() reflect.Type {
	return nil
}

type payloadKind[T any] struct {
	optional bool
}

// Payload returns the kind of a command whose payload is required and
// decodes into T.
func Payload[T any]() Kind {
	return payloadKind[T]{}
}

// OptionalPayload returns the kind of a command whose payload decodes into
// T and may be omitted, in which case the zero T is used.
func OptionalPayload[T any]() Kind {
	return payloadKind[T]{optional: true}
}

func (k payloadKind[T]) Build(payload lenient.Value, hasPayload bool) (any, error) {
	var v T
	if !hasPayload || payload == nil {
		if k.optional {
			return v, nil
		}
		return nil, fmt.Errorf("%w of type %s", errMissingPayload, k.PayloadType())
	}
	if err := lenient.Decode(payload, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", k.PayloadType(), err)
	}
	return v, nil
}

func (payloadKind[T]) PayloadType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
