package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// maxErrors caps the errors collected for one document.
const maxErrors = 100

// Validator validates parsed documents against a schema.
//
// Documents are dynamic trees as produced by encoding/json or the lenient
// parser: nil, bool, json.Number or float64, string, []any, map[string]any.
// Supported keywords are type, properties, required, additionalProperties,
// items, enum, minLength, maxLength, pattern, minItems, maxItems, anyOf,
// oneOf and local $ref.
type Validator struct {
	schema *Schema

	patterns sync.Map // pattern source -> *regexp.Regexp
}

// NewValidator creates a validator for s.
func NewValidator(s *Schema) *Validator {
	return &Validator{schema: s}
}

// Validate checks data against the schema and returns *ValidationErrors or
// nil.
func (v *Validator) Validate(data any) error {
	if v.schema == nil {
		return nil
	}
	errs := &ValidationErrors{}
	v.check("", data, v.schema, errs)
	return errs.asError()
}

func (v *Validator) check(path string, value any, s *Schema, errs *ValidationErrors) {
	if s == nil || errs.Len() >= maxErrors {
		return
	}

	if ok, isBool := s.IsBoolean(); isBool {
		if !ok {
			errs.addf(path, value, "no value is allowed here")
		}
		return
	}

	if s.Ref != "" {
		target := v.resolve(s.Ref)
		if target == nil {
			errs.addf(path, nil, "unresolved reference %s", s.Ref)
			return
		}
		v.check(path, value, target, errs)
		return
	}

	if len(s.AnyOf) > 0 && v.count(path, value, s.AnyOf) == 0 {
		errs.addf(path, value, "value does not match any of the allowed schemas")
	}
	if len(s.OneOf) > 0 {
		switch v.count(path, value, s.OneOf) {
		case 0:
			errs.addf(path, value, "value does not match any of the allowed schemas")
		case 1:
		default:
			errs.addf(path, value, "value matches more than one schema (must match exactly one)")
		}
	}
	if len(s.Enum) > 0 && !inEnum(value, s.Enum) {
		errs.add(&ValidationError{
			Path:     path,
			Message:  fmt.Sprintf("value %v is not one of %v", value, s.Enum),
			Value:    value,
			Expected: fmt.Sprintf("one of %v", s.Enum),
		})
	}
	if !s.Type.IsZero() {
		v.checkType(path, value, s, errs)
	}
}

// count returns how many of alts value satisfies.
func (v *Validator) count(path string, value any, alts []*Schema) int {
	n := 0
	for _, alt := range alts {
		trial := &ValidationErrors{}
		v.check(path, value, alt, trial)
		if trial.Len() == 0 {
			n++
		}
	}
	return n
}

func (v *Validator) checkType(path string, value any, s *Schema, errs *ValidationErrors) {
	for _, typ := range s.Type.Types {
		if !matchesType(value, typ) {
			continue
		}
		switch typ {
		case TypeNameString:
			v.checkString(path, value.(string), s, errs)
		case TypeNameArray:
			v.checkArray(path, value.([]any), s, errs)
		case TypeNameObject:
			v.checkObject(path, value.(map[string]any), s, errs)
		}
		return
	}
	errs.add(typeError(path, s.Type.String(), value))
}

func matchesType(value any, typ string) bool {
	switch typ {
	case TypeNameString:
		_, ok := value.(string)
		return ok
	case TypeNameNumber:
		_, ok := toFloat64(value)
		return ok
	case TypeNameInteger:
		return isInteger(value)
	case TypeNameBoolean:
		_, ok := value.(bool)
		return ok
	case TypeNameArray:
		_, ok := value.([]any)
		return ok
	case TypeNameObject:
		_, ok := value.(map[string]any)
		return ok
	case TypeNameNull:
		return value == nil
	}
	return false
}

func (v *Validator) checkString(path, value string, s *Schema, errs *ValidationErrors) {
	n := utf8.RuneCountInString(value)
	if s.MinLength != nil && n < *s.MinLength {
		errs.addf(path, value, "string length %d is less than minimum %d", n, *s.MinLength)
	}
	if s.MaxLength != nil && n > *s.MaxLength {
		errs.addf(path, value, "string length %d is greater than maximum %d", n, *s.MaxLength)
	}
	if s.Pattern != "" && !v.matchPattern(value, s.Pattern) {
		errs.add(&ValidationError{
			Path:     path,
			Message:  "value does not match pattern " + s.Pattern,
			Value:    value,
			Expected: "pattern " + s.Pattern,
		})
	}
}

func (v *Validator) checkArray(path string, arr []any, s *Schema, errs *ValidationErrors) {
	if s.MinItems != nil && len(arr) < *s.MinItems {
		errs.addf(path, nil, "array has %d items, minimum is %d", len(arr), *s.MinItems)
	}
	if s.MaxItems != nil && len(arr) > *s.MaxItems {
		errs.addf(path, nil, "array has %d items, maximum is %d", len(arr), *s.MaxItems)
	}
	if s.Items != nil {
		for i, item := range arr {
			v.check(IndexPath(path, i), item, s.Items, errs)
		}
	}
}

func (v *Validator) checkObject(path string, obj map[string]any, s *Schema, errs *ValidationErrors) {
	for _, req := range s.Required {
		if _, ok := obj[req]; !ok {
			errs.addf(JoinPath(path, req), nil, "required field is missing")
		}
	}

	// Sorted so error order is stable.
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := JoinPath(path, name)
		if prop, ok := s.Properties[name]; ok {
			v.check(p, obj[name], prop, errs)
			continue
		}
		if s.AdditionalProperties == nil {
			continue
		}
		if allowed, isBool := s.AdditionalProperties.IsBoolean(); isBool && !allowed {
			errs.addf(p, nil, "unknown property")
			continue
		}
		v.check(p, obj[name], s.AdditionalProperties, errs)
	}
}

func (v *Validator) resolve(ref string) *Schema {
	if name, ok := strings.CutPrefix(ref, DefsPrefix); ok {
		return v.schema.Definition(name)
	}
	return nil
}

// matchPattern reports whether value matches pattern. An invalid pattern
// matches nothing.
func (v *Validator) matchPattern(value, pattern string) bool {
	if re, ok := v.patterns.Load(pattern); ok {
		return re.(*regexp.Regexp).MatchString(value)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	v.patterns.Store(pattern, re)
	return re.MatchString(value)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case json.Number:
		if _, err := n.Int64(); err == nil {
			return true
		}
		f, err := n.Float64()
		return err == nil && f == float64(int64(f))
	case float64:
		return n == float64(int64(n))
	}
	return false
}

// inEnum compares numbers by value and other scalars by identity.
func inEnum(value any, allowed []any) bool {
	for _, a := range allowed {
		if value == nil || a == nil {
			if value == nil && a == nil {
				return true
			}
			continue
		}
		fv, vNum := toFloat64(value)
		fa, aNum := toFloat64(a)
		if vNum || aNum {
			if vNum && aNum && fv == fa {
				return true
			}
			continue
		}
		switch value.(type) {
		case string, bool:
			if value == a {
				return true
			}
		}
	}
	return false
}

// JoinPath appends an object member to a validation path.
func JoinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

// IndexPath appends an array index to a validation path.
func IndexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}
