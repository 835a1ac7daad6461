package dataschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// MarshalFlat encodes every part as a JSON object and merges the members
// into a single object. Parts that encode to null are skipped. When two
// parts share a key the later part wins. HTML characters are written as is.
func MarshalFlat(parts ...any) ([]byte, error) {
	merged := make(map[string]json.RawMessage)
	for _, part := range parts {
		if part == nil {
			continue
		}
		b, err := encode(part)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(b, []byte("null")) {
			continue
		}
		var members map[string]json.RawMessage
		if err := json.Unmarshal(b, &members); err != nil {
			return nil, fmt.Errorf("flatten %T: %w", part, err)
		}
		maps.Copy(merged, members)
	}
	return encode(merged)
}

// UnmarshalFlat decodes the same JSON object into every part. Each part
// picks the members it knows and ignores the rest. Numbers landing in
// untyped fields are kept as json.Number.
func UnmarshalFlat(data []byte, parts ...any) error {
	for _, part := range parts {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(part); err != nil {
			return err
		}
	}
	return nil
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
