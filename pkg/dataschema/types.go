// Package dataschema holds the schema vocabulary shared by the SDF and WoT
// document models: type tags, constraint sets and the generic value
// qualities (const, default, enum).
package dataschema

// Type is the JSON type tag of a schema value. The zero value means no type
// was given and the value is unconstrained.
type Type string

// Schema type tags
const (
	TypeNull    Type = "null"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeString  Type = "string"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Valid reports whether t is one of the known type tags.
func (t Type) Valid() bool {
	switch t {
	case TypeNull, TypeBoolean, TypeInteger, TypeNumber, TypeString, TypeArray, TypeObject:
		return true
	}
	return false
}

// Numeric constrains the element type of NumberConstraints.
type Numeric interface {
	~int64 | ~float64
}

// NumberConstraints are the bounds shared by integer and number schemas.
// A nil field means the bound is absent.
type NumberConstraints[T Numeric] struct {
	Minimum          *T `json:"minimum,omitempty"`
	Maximum          *T `json:"maximum,omitempty"`
	ExclusiveMinimum *T `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *T `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *T `json:"multipleOf,omitempty"`
}

// IsZero reports whether no bound is set.
func (c NumberConstraints[T]) IsZero() bool {
	return c.Minimum == nil && c.Maximum == nil &&
		c.ExclusiveMinimum == nil && c.ExclusiveMaximum == nil &&
		c.MultipleOf == nil
}

// StringConstraints are the length and pattern limits of a string schema.
type StringConstraints struct {
	MinLength *int    `json:"minLength,omitempty"`
	MaxLength *int    `json:"maxLength,omitempty"`
	Pattern   *string `json:"pattern,omitempty"`
}

// ArrayConstraints are the size limits of an array schema.
type ArrayConstraints struct {
	MinItems *int `json:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty"`
}

// Values carries the typed const, default and enum qualities of a schema
// whose value type is known statically.
type Values[T any] struct {
	Const   *T  `json:"const,omitempty"`
	Default *T  `json:"default,omitempty"`
	Enum    []T `json:"enum,omitempty"`
}

// Untyped returns the same qualities as plain JSON values.
func (v Values[T]) Untyped() UntypedValues {
	var u UntypedValues
	if v.Const != nil {
		u.Const = *v.Const
	}
	if v.Default != nil {
		u.Default = *v.Default
	}
	if v.Enum != nil {
		u.Enum = make([]any, len(v.Enum))
		for i, e := range v.Enum {
			u.Enum[i] = e
		}
	}
	return u
}

// UntypedValues carries const, default and enum as decoded JSON values.
type UntypedValues struct {
	Const   any   `json:"const,omitempty"`
	Default any   `json:"default,omitempty"`
	Enum    []any `json:"enum,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
