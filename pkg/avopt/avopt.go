package avopt

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the scalar type expected for an option value.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Bool
)

// Schema maps option names to the scalar kind each value must coerce to.
// Schemas are built once and treated as read-only.
type Schema map[string]Kind

// Extend returns a new schema containing all entries of s plus extra.
// Extensions never remove inherited entries.
func (s Schema) Extend(extra Schema) Schema {
	out := make(Schema, len(s)+len(extra))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Options is a sanitized option set. Every key present has passed type
// coercion against the owning schema.
type Options map[string]interface{}

// Sanitize filters raw against schema, coercing each recognized value to
// its declared kind. Unknown keys and values that fail coercion are
// dropped silently; the dropped key names are returned so callers and
// tests can observe what was discarded.
func Sanitize(schema Schema, raw map[string]interface{}) (Options, []string) {
	safe := make(Options, len(raw))
	var dropped []string

	for k, v := range raw {
		kind, ok := schema[k]
		if !ok {
			dropped = append(dropped, k)
			continue
		}
		cv, err := coerce(kind, v)
		if err != nil {
			dropped = append(dropped, k)
			continue
		}
		safe[k] = cv
	}

	return safe, dropped
}

func coerce(kind Kind, v interface{}) (interface{}, error) {
	switch kind {
	case String:
		switch x := v.(type) {
		case string:
			return x, nil
		case bool:
			return strconv.FormatBool(x), nil
		case int:
			return strconv.Itoa(x), nil
		case int64:
			return strconv.FormatInt(x, 10), nil
		case float64:
			return strconv.FormatFloat(x, 'g', -1, 64), nil
		}
	case Int:
		switch x := v.(type) {
		case int:
			return x, nil
		case int64:
			return int(x), nil
		case float64:
			return int(x), nil
		case bool:
			if x {
				return 1, nil
			}
			return 0, nil
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
				return n, nil
			}
			if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
				return int(f), nil
			}
		}
	case Float:
		switch x := v.(type) {
		case float64:
			return x, nil
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
				return f, nil
			}
		}
	case Bool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int:
			return x != 0, nil
		case int64:
			return x != 0, nil
		case float64:
			return x != 0, nil
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(x)); err == nil {
				return b, nil
			}
		}
	}
	return nil, fmt.Errorf("cannot coerce %T to kind %d", v, kind)
}

// Int returns the named option as an int.
func (o Options) Int(key string) (int, bool) {
	v, ok := o[key].(int)
	return v, ok
}

// String returns the named option as a string.
func (o Options) String(key string) (string, bool) {
	v, ok := o[key].(string)
	return v, ok
}

// Bool returns the named option as a bool.
func (o Options) Bool(key string) (bool, bool) {
	v, ok := o[key].(bool)
	return v, ok
}

// Float returns the named option as a float64.
func (o Options) Float(key string) (float64, bool) {
	v, ok := o[key].(float64)
	return v, ok
}

// DropOutsideRange removes key when its integer value falls outside
// [min, max]. Out-of-range values are discarded entirely, not clamped.
func (o Options) DropOutsideRange(key string, min, max int) {
	if v, ok := o.Int(key); ok && (v < min || v > max) {
		delete(o, key)
	}
}
