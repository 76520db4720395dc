package lenient

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Decode re-interprets an already parsed value as target, which must be a
// non-nil pointer.
//
// Struct fields are matched by their json tag, exactly. Unknown keys are an
// error. Missing keys are an error unless the field's tag carries omitempty.
// Null is accepted only where the field can hold it: pointers, interfaces,
// slices and maps. Numbers never become strings, non-integral numbers never
// become integers, and numbers that overflow the field's type are an error.
func Decode(v Value, target any) error {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if err := checkNulls(v, t, ""); err != nil {
		return err
	}

	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Metadata:    &md,
		Result:      target,
		MatchName:   func(mapKey, fieldName string) bool { return mapKey == fieldName },
		DecodeHook:  mapstructure.ComposeDecodeHookFunc(numberToString, numberRange),
	})
	if err != nil {
		return fmt.Errorf("lenient: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return err
	}

	for _, name := range md.Unset {
		if !optionalField(t, name) {
			return fmt.Errorf("missing field %q", name)
		}
	}
	return nil
}

// numberToString rejects numbers decoded into string targets.
// json.Number is itself a string kind, so mapstructure would otherwise
// accept it silently.
func numberToString(from, to reflect.Type, data any) (any, error) {
	if _, ok := data.(json.Number); ok && to.Kind() == reflect.String && to != reflect.TypeOf(json.Number("")) {
		return nil, fmt.Errorf("expected string, found number %v", data)
	}
	return data, nil
}

// numberRange rejects numbers that do not fit the target's numeric kind.
// mapstructure would otherwise truncate them.
func numberRange(from, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	zero := reflect.Zero(to)
	var overflow bool
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(n.String(), 10, 64)
		overflow = errors.Is(err, strconv.ErrRange) || (err == nil && zero.OverflowInt(i))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u, err := strconv.ParseUint(n.String(), 10, 64)
		overflow = errors.Is(err, strconv.ErrRange) || (err == nil && zero.OverflowUint(u))
	case reflect.Float32:
		f, err := n.Float64()
		overflow = err == nil && zero.OverflowFloat(f)
	}
	if overflow {
		return nil, fmt.Errorf("number %s overflows %s", n, to)
	}
	return data, nil
}

// checkNulls walks v alongside t and rejects null where t cannot hold it.
// Members without a matching field and type mismatches are left to
// mapstructure.
func checkNulls(v Value, t reflect.Type, path string) error {
	if t == nil {
		return nil
	}
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
			return nil
		}
		if path == "" {
			return fmt.Errorf("expected %s, found null", t)
		}
		return fmt.Errorf("field %q: expected %s, found null", path, t)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Struct, reflect.Map:
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			elem := t
			if t.Kind() == reflect.Map {
				elem = t.Elem()
			} else {
				f, ok := fieldByTag(t, k)
				if !ok {
					continue
				}
				elem = f.Type
			}
			if err := checkNulls(obj[k], elem, joinPath(path, k)); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		arr, ok := v.([]any)
		if !ok {
			return nil
		}
		for i, item := range arr {
			if err := checkNulls(item, t.Elem(), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// optionalField reports whether the dotted field path (as recorded in
// mapstructure metadata) ends in a field tagged omitempty.
func optionalField(t reflect.Type, path string) bool {
	parts := strings.Split(path, ".")
	for i, part := range parts {
		if j := strings.IndexByte(part, '['); j >= 0 {
			part = part[:j]
		}
		f, ok := fieldByTag(t, part)
		if !ok {
			return false
		}
		if i == len(parts)-1 {
			return strings.Contains(f.Tag.Get("json"), ",omitempty")
		}
		t = f.Type
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Map || t.Kind() == reflect.Array {
			t = t.Elem()
		}
	}
	return false
}

func fieldByTag(t reflect.Type, name string) (reflect.StructField, bool) {
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			tag = f.Name
		}
		if tag == name {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
