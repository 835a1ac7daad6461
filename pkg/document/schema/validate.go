package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrUnknownSchema is returned when validating against a name that was
// never registered.
var ErrUnknownSchema = errors.New("unknown schema")

// Validator checks decoded JSON documents against named JSON Schemas.
// Schemas are compiled once, when they are registered.
type Validator struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

// NewValidator creates a Validator with no schemas.
func NewValidator() *Validator {
	return &Validator{
		schemas: make(map[string]*jsonschema.Schema),
	}
}

// Register compiles schemaDoc and stores it under name, replacing any
// schema already registered there. Validation errors report locations
// relative to name.
func (v *Validator) Register(name string, schemaDoc json.RawMessage) error {
	parsed, err := Decode(schemaDoc)
	if err != nil {
		return fmt.Errorf("schema %s is not valid JSON: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(name, parsed); err != nil {
		return fmt.Errorf("failed to add schema %s: %w", name, err)
	}
	compiled, err := c.Compile(name)
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	v.mu.Lock()
	v.schemas[name] = compiled
	v.mu.Unlock()
	return nil
}

// Validate checks doc, a value produced by Decode, against the schema
// registered under name.
func (v *Validator) Validate(name string, doc any) error {
	v.mu.RLock()
	compiled, ok := v.schemas[name]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return compiled.Validate(doc)
}

// Decode parses a JSON document into the value form the validator works
// on. Numbers are kept as json.Number so large integers survive.
func Decode(data []byte) (any, error) {
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
