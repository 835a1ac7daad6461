package sdf

import (
	"encoding/json"
	"fmt"

	"github.com/urmzd/sdfwot/pkg/dataschema"
)

// Data describes a value: its common qualities, the interaction flags used
// when it backs a property, and the schema of the value itself.
type Data struct {
	CommonQualities
	Unit          *string `json:"unit,omitempty"`
	Observable    *bool   `json:"observable,omitempty"`
	Readable      *bool   `json:"readable,omitempty"`
	Writable      *bool   `json:"writable,omitempty"`
	Nullable      *bool   `json:"nullable,omitempty"`
	SdfType       *Type   `json:"sdfType,omitempty"`
	ContentFormat *string `json:"contentFormat,omitempty"`
	Schema        Schema  `json:"-"`
}

// dataFields has the same layout as Data without its JSON methods.
type dataFields Data

func (d Data) MarshalJSON() ([]byte, error) {
	return dataschema.MarshalFlat(dataFields(d), d.Schema)
}

func (d *Data) UnmarshalJSON(b []byte) error {
	return dataschema.UnmarshalFlat(b, (*dataFields)(d), &d.Schema)
}

// Type is the sdfType quality that refines a JSON type.
type Type string

// sdfType values
const (
	TypeByteString Type = "byte-string"
	TypeUnixTime   Type = "unix-time"
)

// Format is a string format quality.
type Format string

// String formats
const (
	FormatDateTime     Format = "date-time"
	FormatDate         Format = "date"
	FormatTime         Format = "time"
	FormatURI          Format = "uri"
	FormatURIReference Format = "uri-reference"
	FormatUUID         Format = "uuid"
)

// Valid reports whether f is a format SDF defines.
func (f Format) Valid() bool {
	switch f {
	case FormatDateTime, FormatDate, FormatTime, FormatURI, FormatURIReference, FormatUUID:
		return true
	}
	return false
}

// Schema is the JSON-Schema part of a Data definition. Type selects which
// variant pointer is set; an empty Type leaves the value unconstrained.
// Choice holds the named alternatives of an sdfChoice.
type Schema struct {
	Type    dataschema.Type
	Boolean *BooleanSchema
	Integer *IntegerSchema
	Number  *NumberSchema
	String  *StringSchema
	Array   *ArraySchema
	Object  *ObjectSchema
	Choice  map[string]*Data
}

// BooleanSchema holds the qualities of a boolean value.
type BooleanSchema struct {
	dataschema.Values[bool]
}

// IntegerSchema holds the qualities of an integer value.
type IntegerSchema struct {
	dataschema.Values[int64]
	dataschema.NumberConstraints[int64]
}

// NumberSchema holds the qualities of a number value.
type NumberSchema struct {
	dataschema.Values[float64]
	dataschema.NumberConstraints[float64]
}

// StringSchema holds the qualities of a string value.
type StringSchema struct {
	dataschema.Values[string]
	dataschema.StringConstraints
	Format *Format `json:"format,omitempty"`
}

// ArraySchema holds the qualities of an array value.
type ArraySchema struct {
	dataschema.Values[[]any]
	dataschema.ArrayConstraints
	UniqueItems *bool `json:"uniqueItems,omitempty"`
	Items       *Data `json:"items,omitempty"`
}

// ObjectSchema holds the qualities of an object value.
type ObjectSchema struct {
	dataschema.Values[map[string]any]
	Required   []string         `json:"required,omitempty"`
	Properties map[string]*Data `json:"properties,omitempty"`
}

type schemaHead struct {
	Type   dataschema.Type  `json:"type,omitempty"`
	Choice map[string]*Data `json:"sdfChoice,omitempty"`
}

// Variant returns the qualities struct selected by Type, or nil.
func (s Schema) Variant() any {
	switch s.Type {
	case dataschema.TypeBoolean:
		return s.Boolean
	case dataschema.TypeInteger:
		return s.Integer
	case dataschema.TypeNumber:
		return s.Number
	case dataschema.TypeString:
		return s.String
	case dataschema.TypeArray:
		return s.Array
	case dataschema.TypeObject:
		return s.Object
	}
	return nil
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Type != "" && !s.Type.Valid() {
		return nil, fmt.Errorf("unknown schema type %q", s.Type)
	}
	return dataschema.MarshalFlat(schemaHead{Type: s.Type, Choice: s.Choice}, s.Variant())
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	var head schemaHead
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	*s = Schema{Type: head.Type, Choice: head.Choice}

	var variant any
	switch head.Type {
	case "", dataschema.TypeNull:
		return nil
	case dataschema.TypeBoolean:
		s.Boolean = new(BooleanSchema)
		variant = s.Boolean
	case dataschema.TypeInteger:
		s.Integer = new(IntegerSchema)
		variant = s.Integer
	case dataschema.TypeNumber:
		s.Number = new(NumberSchema)
		variant = s.Number
	case dataschema.TypeString:
		s.String = new(StringSchema)
		variant = s.String
	case dataschema.TypeArray:
		s.Array = new(ArraySchema)
		variant = s.Array
	case dataschema.TypeObject:
		s.Object = new(ObjectSchema)
		variant = s.Object
	default:
		return fmt.Errorf("unknown schema type %q", head.Type)
	}
	return dataschema.UnmarshalFlat(b, variant)
}
