// Package document reads and writes SDF and WoT documents. Loading checks
// a document against a built-in JSON Schema before decoding it.
package document

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies a document format.
type Kind string

// Document kinds
const (
	KindSDF Kind = "sdf"
	KindTD  Kind = "td"
	KindTM  Kind = "tm"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindSDF, KindTD, KindTM}

// Suffix returns the file name suffix of the kind, e.g. ".sdf.json".
func (k Kind) Suffix() string {
	return "." + string(k) + ".json"
}

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	switch k {
	case KindSDF, KindTD, KindTM:
		return true
	}
	return false
}

// ParseKind parses a kind name such as "tm". Case is ignored.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// KindFromPath derives the kind from a file name suffix.
func KindFromPath(path string) (Kind, error) {
	base := strings.ToLower(filepath.Base(path))
	for _, k := range Kinds {
		if strings.HasSuffix(base, k.Suffix()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %s does not end in .sdf.json, .td.json or .tm.json", ErrUnknownKind, path)
}

// SwapSuffix replaces the kind suffix of path with the suffix of to. A path
// without a known suffix gets the new suffix appended.
func SwapSuffix(path string, to Kind) string {
	lower := strings.ToLower(path)
	for _, k := range Kinds {
		if strings.HasSuffix(lower, k.Suffix()) {
			return path[:len(path)-len(k.Suffix())] + to.Suffix()
		}
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + to.Suffix()
}
