package wot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ContextTD is the JSON-LD context every Thing Description starts with.
const ContextTD = "https://www.w3.org/2019/wot/td/v1"

// ContextEntry is one member of an @context list: either a URI or a map of
// prefixes to namespace URIs.
type ContextEntry struct {
	URI      string
	Prefixes map[string]string
}

// ContextURI builds a URI entry.
func ContextURI(uri string) ContextEntry {
	return ContextEntry{URI: uri}
}

// ContextPrefixes builds a prefix map entry.
func ContextPrefixes(prefixes map[string]string) ContextEntry {
	return ContextEntry{Prefixes: prefixes}
}

func (e ContextEntry) MarshalJSON() ([]byte, error) {
	if e.Prefixes != nil {
		return json.Marshal(e.Prefixes)
	}
	return json.Marshal(e.URI)
}

func (e *ContextEntry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		*e = ContextEntry{}
		if err := json.Unmarshal(b, &e.Prefixes); err != nil {
			return fmt.Errorf("@context map entry: %w", err)
		}
		return nil
	}
	*e = ContextEntry{}
	if err := json.Unmarshal(b, &e.URI); err != nil {
		return fmt.Errorf("@context entry: %w", err)
	}
	return nil
}

// Context is the @context of a Thing. It is written as a plain string when
// it was read as one, and as an ordered list otherwise.
type Context struct {
	entries []ContextEntry
	single  bool
}

// NewContext builds a list-shaped context.
func NewContext(entries ...ContextEntry) Context {
	return Context{entries: entries}
}

// Entries returns the context members in document order.
func (c Context) Entries() []ContextEntry {
	return c.entries
}

// Prefixes merges the prefix definitions of every map entry, later entries
// winning. JSON-LD keywords such as @language are not prefixes and are
// skipped. It returns nil when the context defines no prefix.
func (c Context) Prefixes() map[string]string {
	var merged map[string]string
	for _, e := range c.entries {
		for prefix, uri := range e.Prefixes {
			if strings.HasPrefix(prefix, "@") {
				continue
			}
			if merged == nil {
				merged = make(map[string]string, len(e.Prefixes))
			}
			merged[prefix] = uri
		}
	}
	return merged
}

func (c Context) MarshalJSON() ([]byte, error) {
	if c.single && len(c.entries) == 1 && c.entries[0].Prefixes == nil {
		return json.Marshal(c.entries[0].URI)
	}
	if c.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.entries)
}

func (c *Context) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var entries []ContextEntry
		if err := json.Unmarshal(b, &entries); err != nil {
			return err
		}
		*c = Context{entries: entries}
		return nil
	}
	var uri string
	if err := json.Unmarshal(b, &uri); err != nil {
		return fmt.Errorf("@context must be a string or a list: %w", err)
	}
	*c = Context{entries: []ContextEntry{ContextURI(uri)}, single: true}
	return nil
}
