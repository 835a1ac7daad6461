package wot

import (
	"encoding/json"
	"fmt"

	"github.com/urmzd/sdfwot/pkg/dataschema"
)

// DataSchema is the WoT data schema vocabulary. The type-specific qualities
// live in Schema and are written inline next to the common ones.
type DataSchema struct {
	SemanticType *dataschema.OneOrMany[string] `json:"@type,omitempty"`
	Title        *string                       `json:"title,omitempty"`
	Titles       map[string]string             `json:"titles,omitempty"`
	Description  *string                       `json:"description,omitempty"`
	Descriptions map[string]string             `json:"descriptions,omitempty"`
	Unit         *string                       `json:"unit,omitempty"`
	dataschema.UntypedValues
	OneOf     []*DataSchema `json:"oneOf,omitempty"`
	ReadOnly  *bool         `json:"readOnly,omitempty"`
	WriteOnly *bool         `json:"writeOnly,omitempty"`
	Format    *string       `json:"format,omitempty"`
	Schema    Schema        `json:"-"`
}

type dataSchemaFields DataSchema

func (d DataSchema) MarshalJSON() ([]byte, error) {
	return dataschema.MarshalFlat(dataSchemaFields(d), d.Schema)
}

func (d *DataSchema) UnmarshalJSON(b []byte) error {
	return dataschema.UnmarshalFlat(b, (*dataSchemaFields)(d), &d.Schema)
}

// Schema selects the JSON type of a DataSchema. Null and boolean schemas
// carry no qualities of their own.
type Schema struct {
	Type    dataschema.Type
	Integer *IntegerSchema
	Number  *NumberSchema
	String  *StringSchema
	Array   *ArraySchema
	Object  *ObjectSchema
}

// IntegerSchema holds integer bounds.
type IntegerSchema struct {
	dataschema.NumberConstraints[int64]
}

// NumberSchema holds number bounds.
type NumberSchema struct {
	dataschema.NumberConstraints[float64]
}

// StringSchema holds string limits and content metadata.
type StringSchema struct {
	dataschema.StringConstraints
	ContentEncoding  *string `json:"contentEncoding,omitempty"`
	ContentMediaType *string `json:"contentMediaType,omitempty"`
}

// ArraySchema holds array limits and the item schemas.
type ArraySchema struct {
	dataschema.ArrayConstraints
	Items *dataschema.OneOrMany[*DataSchema] `json:"items,omitempty"`
}

// ObjectSchema holds the member schemas of an object.
type ObjectSchema struct {
	Required   []string               `json:"required,omitempty"`
	Properties map[string]*DataSchema `json:"properties,omitempty"`
}

type schemaType struct {
	Type dataschema.Type `json:"type,omitempty"`
}

// Variant returns the qualities struct selected by Type, or nil.
func (s Schema) Variant() any {
	switch s.Type {
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
	return dataschema.MarshalFlat(schemaType{Type: s.Type}, s.Variant())
}

func (s *Schema) UnmarshalJSON(b []byte) error {
	var head schemaType
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	*s = Schema{Type: head.Type}

	var variant any
	switch head.Type {
	case "", dataschema.TypeNull, dataschema.TypeBoolean:
		return nil
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
