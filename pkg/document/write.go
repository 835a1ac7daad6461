package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DefaultIndent is the indentation used when none is configured.
const DefaultIndent = "  "

// Write serializes v as indented JSON followed by a newline. Absent
// optional members are left out. Failures wrap ErrWrite.
func Write(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return buf.Bytes(), nil
}

// WriteFile serializes v with Write and stores it at path.
func WriteFile(path string, v any, indent string) error {
	b, err := Write(v, indent)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Reformat loads data as kind and writes it back out. Members the model
// does not know are dropped.
func (l *Loader) Reformat(kind Kind, data []byte, indent string) ([]byte, error) {
	doc, err := l.Load(kind, data)
	if err != nil {
		return nil, err
	}
	return Write(doc, indent)
}
