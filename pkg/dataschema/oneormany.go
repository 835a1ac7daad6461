package dataschema

import (
	"bytes"
	"encoding/json"
)

// OneOrMany holds a JSON member that may be written either as a single
// value or as an array of values. The original shape is kept so a value
// read as an array is written back as an array.
type OneOrMany[T any] struct {
	values []T
	many   bool
}

// One wraps a single value.
func One[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{values: []T{v}}
}

// Many wraps a sequence that is always written as an array.
func Many[T any](vs ...T) OneOrMany[T] {
	return OneOrMany[T]{values: vs, many: true}
}

// Values returns the wrapped values.
func (o OneOrMany[T]) Values() []T {
	return o.values
}

// IsMany reports whether the value is written as an array.
func (o OneOrMany[T]) IsMany() bool {
	return o.many
}

// First returns the first wrapped value.
func (o OneOrMany[T]) First() (T, bool) {
	var zero T
	if len(o.values) == 0 {
		return zero, false
	}
	return o.values[0], true
}

func (o OneOrMany[T]) MarshalJSON() ([]byte, error) {
	if o.many || len(o.values) != 1 {
		if o.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(o.values)
	}
	return json.Marshal(o.values[0])
}

func (o *OneOrMany[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var vs []T
		if err := json.Unmarshal(trimmed, &vs); err != nil {
			return err
		}
		o.values, o.many = vs, true
		return nil
	}
	var v T
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	o.values, o.many = []T{v}, false
	return nil
}
