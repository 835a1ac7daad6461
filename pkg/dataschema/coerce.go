package dataschema

import (
	"encoding/json"
	"math"
)

// Coerce converts untyped values into typed ones using as. Each quality is
// converted on its own: a value whose runtime type does not match is
// dropped and the other qualities are kept. An enum is dropped as a whole
// when any of its members does not match.
func Coerce[T any](u UntypedValues, as func(any) (T, bool)) Values[T] {
	var v Values[T]
	if u.Const != nil {
		if c, ok := as(u.Const); ok {
			v.Const = &c
		}
	}
	if u.Default != nil {
		if d, ok := as(u.Default); ok {
			v.Default = &d
		}
	}
	if u.Enum != nil {
		enum := make([]T, 0, len(u.Enum))
		for _, e := range u.Enum {
			typed, ok := as(e)
			if !ok {
				return Values[T]{Const: v.Const, Default: v.Default}
			}
			enum = append(enum, typed)
		}
		v.Enum = enum
	}
	return v
}

// AsBool accepts JSON booleans.
func AsBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// AsString accepts JSON strings.
func AsString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// AsFloat64 accepts any JSON number.
func AsFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// maxExactInt bounds the magnitudes a float64 is trusted to hold exactly.
const maxExactInt = 1 << 53

// AsInt64 accepts JSON numbers without a fractional part that fit in an
// int64. Values written with a fraction or exponent are accepted only when
// a float64 represents them exactly.
func AsInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return AsInt64(f)
	case float64:
		if n != math.Trunc(n) || math.Abs(n) >= maxExactInt {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

// AsArray accepts JSON arrays.
func AsArray(v any) ([]any, bool) {
	a, ok := v.([]any)
	return a, ok
}

// AsObject accepts JSON objects.
func AsObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
