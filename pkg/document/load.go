package document

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urmzd/sdfwot/pkg/document/schema"
	"github.com/urmzd/sdfwot/pkg/sdf"
	"github.com/urmzd/sdfwot/pkg/wot"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

// Loader decodes documents after validating them against the built-in
// schema of their kind. A Loader is safe for concurrent use.
type Loader struct {
	validator *schema.Validator
}

// NewLoader creates a Loader with the built-in schemas compiled.
func NewLoader() *Loader {
	l := &Loader{validator: schema.NewValidator()}
	for _, k := range Kinds {
		name := schemaName(k)
		b, err := schemaFiles.ReadFile("schemas/" + name)
		if err != nil {
			panic(fmt.Sprintf("document: missing built-in schema for %s: %v", k, err))
		}
		if err := l.validator.Register(name, b); err != nil {
			panic(fmt.Sprintf("document: built-in schema for %s: %v", k, err))
		}
	}
	return l
}

// Validate checks that data is well-formed JSON matching the schema of
// kind. Failures wrap ErrParse.
func (l *Loader) Validate(kind Kind, data []byte) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	doc, err := schema.Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %s document is not valid JSON: %w", ErrParse, kind, err)
	}
	if err := l.validator.Validate(schemaName(kind), doc); err != nil {
		return fmt.Errorf("%w: invalid %s document: %w", ErrParse, kind, err)
	}
	return nil
}

func schemaName(k Kind) string {
	return string(k) + ".json"
}

// SDF loads an SDF model.
func (l *Loader) SDF(data []byte) (*sdf.Model, error) {
	return load[sdf.Model](l, KindSDF, data)
}

// ThingModel loads a WoT Thing Model.
func (l *Loader) ThingModel(data []byte) (*wot.ThingModel, error) {
	return load[wot.ThingModel](l, KindTM, data)
}

// ThingDescription loads a WoT Thing Description.
func (l *Loader) ThingDescription(data []byte) (*wot.ThingDescription, error) {
	return load[wot.ThingDescription](l, KindTD, data)
}

// Load loads a document of the given kind. The result is a *sdf.Model,
// *wot.ThingModel or *wot.ThingDescription.
func (l *Loader) Load(kind Kind, data []byte) (any, error) {
	switch kind {
	case KindSDF:
		return l.SDF(data)
	case KindTM:
		return l.ThingModel(data)
	case KindTD:
		return l.ThingDescription(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// LoadFile reads path and loads it as the kind its suffix names.
func (l *Loader) LoadFile(path string) (Kind, any, error) {
	kind, err := KindFromPath(path)
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := l.Load(kind, data)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", path, err)
	}
	return kind, doc, nil
}

func load[T any](l *Loader, kind Kind, data []byte) (*T, error) {
	if err := l.Validate(kind, data); err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %s document: %w", ErrParse, kind, err)
	}
	return &v, nil
}
