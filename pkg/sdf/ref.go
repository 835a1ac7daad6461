package sdf

import (
	"cmp"
	"strings"
)

// ParseRef splits an sdfRef such as "#/sdfAction/foobar" into the category
// segment before the terminal key and the key itself.
func ParseRef(ref string) (Category, string, bool) {
	parts := strings.Split(ref, "/")
	if len(parts) < 3 {
		return "", "", false
	}
	key := parts[len(parts)-1]
	if key == "" {
		return "", "", false
	}
	return Category(parts[len(parts)-2]), key, true
}

// lookup resolves ref against a single root map when the reference names
// one of the accepted categories.
func lookup[T any](ref string, root map[string]*T, accepted Category) (*T, bool) {
	category, key, ok := ParseRef(ref)
	if !ok || category != accepted {
		return nil, false
	}
	v, ok := root[key]
	return v, ok && v != nil
}

// ResolveProperty finds the root sdfProperty or sdfData entry ref points to.
func (m *Model) ResolveProperty(ref string) (*Property, bool) {
	if p, ok := lookup(ref, m.Properties, CategoryProperty); ok {
		return p, true
	}
	return lookup(ref, m.Data, CategoryData)
}

// ResolveData finds the root sdfData entry ref points to.
func (m *Model) ResolveData(ref string) (*Data, bool) {
	return lookup(ref, m.Data, CategoryData)
}

// ResolveAction finds the root sdfAction entry ref points to.
func (m *Model) ResolveAction(ref string) (*Action, bool) {
	return lookup(ref, m.Actions, CategoryAction)
}

// ResolveEvent finds the root sdfEvent entry ref points to.
func (m *Model) ResolveEvent(ref string) (*Event, bool) {
	return lookup(ref, m.Events, CategoryEvent)
}

// Merge returns the qualities of q with every absent quality taken from
// base.
func (q CommonQualities) Merge(base CommonQualities) CommonQualities {
	merged := CommonQualities{
		Description: cmp.Or(q.Description, base.Description),
		Label:       cmp.Or(q.Label, base.Label),
		Comment:     cmp.Or(q.Comment, base.Comment),
		SdfRef:      cmp.Or(q.SdfRef, base.SdfRef),
		SdfRequired: q.SdfRequired,
	}
	if merged.SdfRequired == nil {
		merged.SdfRequired = base.SdfRequired
	}
	return merged
}
