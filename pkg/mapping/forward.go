// Package mapping converts between SDF models and WoT Thing Models and
// Thing Descriptions. Every conversion is a pure function of its input.
package mapping

import (
	"maps"
	"slices"
	"unicode"
	"unicode/utf8"

	"github.com/urmzd/sdfwot/pkg/dataschema"
	"github.com/urmzd/sdfwot/pkg/sdf"
	"github.com/urmzd/sdfwot/pkg/wot"
)

// PlaceholderTitle is the title of a Thing Description built from a model
// without an info block.
const PlaceholderTitle = "No Title given."

// ToThingModel converts an SDF model to a Thing Model. Nested objects and
// things are flattened into the Thing Model's affordance maps.
func ToThingModel(m *sdf.Model) *wot.ThingModel {
	if m == nil {
		m = &sdf.Model{}
	}
	tm := &wot.ThingModel{BaseThing: baseThing(m)}
	tm.SemanticType = dataschema.Ptr(dataschema.One(wot.TypeThing))
	if m.Info != nil {
		tm.Title = dataschema.Ptr(m.Info.Title)
	}
	return tm
}

// ToThingDescription converts an SDF model to a Thing Description that
// requires no security.
func ToThingDescription(m *sdf.Model) *wot.ThingDescription {
	if m == nil {
		m = &sdf.Model{}
	}
	td := &wot.ThingDescription{BaseThing: baseThing(m), Title: PlaceholderTitle}
	if m.Info != nil {
		td.Title = m.Info.Title
	}
	td.Security, td.SecurityDefinitions = wot.NoSecurity()
	return td
}

func baseThing(m *sdf.Model) wot.BaseThing {
	entries := []wot.ContextEntry{wot.ContextURI(wot.ContextTD)}
	if m.Namespace != nil {
		entries = append(entries, wot.ContextPrefixes(maps.Clone(m.Namespace)))
	}
	base := wot.BaseThing{Context: wot.NewContext(entries...)}

	if info := m.Info; info != nil {
		base.Version = &wot.VersionInfo{Instance: info.Version}
		base.Description = dataschema.Ptr(info.Copyright)
		base.Links = []wot.Link{{Href: info.License, Rel: dataschema.Ptr(relLicense)}}
	}

	f := &flattener{root: m}
	f.flatten()
	base.Properties = nilIfEmpty(f.properties)
	base.Actions = nilIfEmpty(f.actions)
	base.Events = nilIfEmpty(f.events)
	return base
}

const relLicense = "license"

// flattener walks the SDF tree and collects affordances under prefixed
// keys. Keys are visited in sorted order so colliding keys resolve the same
// way on every run; the last visited entry wins.
type flattener struct {
	root       *sdf.Model
	properties map[string]*wot.PropertyAffordance
	actions    map[string]*wot.ActionAffordance
	events     map[string]*wot.EventAffordance
}

func (f *flattener) flatten() {
	f.properties = make(map[string]*wot.PropertyAffordance)
	f.actions = make(map[string]*wot.ActionAffordance)
	f.events = make(map[string]*wot.EventAffordance)

	m := f.root
	f.affordances("", m.Properties, m.Actions, m.Events)
	for _, key := range sortedKeys(m.Objects) {
		f.object(capitalize(key), m.Objects[key])
	}
	for _, key := range sortedKeys(m.Things) {
		f.thing(capitalize(key), m.Things[key])
	}
	for _, key := range sortedKeys(m.Products) {
		f.thing(capitalize(key), m.Products[key])
	}
}

func (f *flattener) thing(prefix string, t *sdf.Thing) {
	if t == nil {
		return
	}
	for _, key := range sortedKeys(t.Things) {
		f.thing(prefixedKey(prefix, key), t.Things[key])
	}
	for _, key := range sortedKeys(t.Objects) {
		f.object(prefixedKey(prefix, key), t.Objects[key])
	}
}

func (f *flattener) object(prefix string, o *sdf.Object) {
	if o == nil {
		return
	}
	f.affordances(prefix, o.Properties, o.Actions, o.Events)
}

func (f *flattener) affordances(
	prefix string,
	properties map[string]*sdf.Property,
	actions map[string]*sdf.Action,
	events map[string]*sdf.Event,
) {
	for _, key := range sortedKeys(properties) {
		if p := properties[key]; p != nil {
			f.properties[prefixedKey(prefix, key)] = f.property(p)
		}
	}
	for _, key := range sortedKeys(actions) {
		if a := actions[key]; a != nil {
			f.actions[prefixedKey(prefix, key)] = f.action(a)
		}
	}
	for _, key := range sortedKeys(events) {
		if e := events[key]; e != nil {
			f.events[prefixedKey(prefix, key)] = f.event(e)
		}
	}
}

func (f *flattener) property(p *sdf.Property) *wot.PropertyAffordance {
	if p.SdfRef != nil {
		if base, ok := f.root.ResolveProperty(*p.SdfRef); ok {
			merged := *p
			merged.CommonQualities = p.CommonQualities.Merge(base.CommonQualities)
			p = &merged
		}
	}
	return &wot.PropertyAffordance{
		InteractionAffordance: interactionAffordance(p.CommonQualities),
		DataSchema:            f.dataSchema(p, false),
		Observable:            p.Observable,
	}
}

func (f *flattener) action(a *sdf.Action) *wot.ActionAffordance {
	if a.SdfRef != nil {
		if base, ok := f.root.ResolveAction(*a.SdfRef); ok {
			merged := *a
			merged.CommonQualities = a.CommonQualities.Merge(base.CommonQualities)
			a = &merged
		}
	}
	return &wot.ActionAffordance{
		InteractionAffordance: interactionAffordance(a.CommonQualities),
		Input:                 f.data(a.InputData),
		Output:                f.data(a.OutputData),
	}
}

func (f *flattener) event(e *sdf.Event) *wot.EventAffordance {
	if e.SdfRef != nil {
		if base, ok := f.root.ResolveEvent(*e.SdfRef); ok {
			merged := *e
			merged.CommonQualities = e.CommonQualities.Merge(base.CommonQualities)
			e = &merged
		}
	}
	return &wot.EventAffordance{
		InteractionAffordance: interactionAffordance(e.CommonQualities),
		Data:                  f.data(e.OutputData),
	}
}

func interactionAffordance(q sdf.CommonQualities) wot.InteractionAffordance {
	return wot.InteractionAffordance{Title: q.Label, Description: q.Description}
}

// data converts a nested data definition. Nested schemas carry their own
// title and description.
func (f *flattener) data(d *sdf.Data) *wot.DataSchema {
	if d == nil {
		return nil
	}
	if d.SdfRef != nil {
		if base, ok := f.root.ResolveData(*d.SdfRef); ok {
			merged := *d
			merged.CommonQualities = d.CommonQualities.Merge(base.CommonQualities)
			d = &merged
		}
	}
	ds := f.dataSchema(d, true)
	return &ds
}

func (f *flattener) dataSchema(d *sdf.Data, titled bool) wot.DataSchema {
	ds := wot.DataSchema{Unit: d.Unit}
	if titled {
		ds.Title = d.Label
		ds.Description = d.Description
	}
	ds.WriteOnly, ds.ReadOnly = accessFlags(d.Readable, d.Writable)
	ds.Schema, ds.UntypedValues, ds.Format = f.schema(d.Schema)
	ds.OneOf = f.choices(d.Schema.Choice)
	return ds
}

// accessFlags derives writeOnly and readOnly from readable and writable.
// Only a present false produces a flag.
func accessFlags(readable, writable *bool) (writeOnly, readOnly *bool) {
	if readable != nil && !*readable {
		writeOnly = dataschema.Ptr(true)
	}
	if writable != nil && !*writable {
		readOnly = dataschema.Ptr(true)
	}
	return writeOnly, readOnly
}

func (f *flattener) schema(s sdf.Schema) (wot.Schema, dataschema.UntypedValues, *string) {
	out := wot.Schema{Type: s.Type}
	var values dataschema.UntypedValues
	var format *string

	switch s.Type {
	case dataschema.TypeBoolean:
		if s.Boolean != nil {
			values = s.Boolean.Untyped()
		}
	case dataschema.TypeInteger:
		if s.Integer != nil {
			out.Integer = &wot.IntegerSchema{NumberConstraints: s.Integer.NumberConstraints}
			values = s.Integer.Untyped()
		}
	case dataschema.TypeNumber:
		if s.Number != nil {
			out.Number = &wot.NumberSchema{NumberConstraints: s.Number.NumberConstraints}
			values = s.Number.Untyped()
		}
	case dataschema.TypeString:
		if s.String != nil {
			out.String = &wot.StringSchema{StringConstraints: s.String.StringConstraints}
			values = s.String.Untyped()
			if s.String.Format != nil {
				format = dataschema.Ptr(string(*s.String.Format))
			}
		}
	case dataschema.TypeArray:
		if s.Array != nil {
			out.Array = &wot.ArraySchema{ArrayConstraints: s.Array.ArrayConstraints}
			if item := f.data(s.Array.Items); item != nil {
				out.Array.Items = dataschema.Ptr(dataschema.One(item))
			}
			values = s.Array.Untyped()
		}
	case dataschema.TypeObject:
		if s.Object != nil {
			out.Object = &wot.ObjectSchema{Required: s.Object.Required}
			if s.Object.Properties != nil {
				out.Object.Properties = make(map[string]*wot.DataSchema, len(s.Object.Properties))
				for _, key := range sortedKeys(s.Object.Properties) {
					if ds := f.data(s.Object.Properties[key]); ds != nil {
						out.Object.Properties[key] = ds
					}
				}
			}
			values = s.Object.Untyped()
		}
	}
	return out, values, format
}

// choices maps sdfChoice alternatives to oneOf entries in key order. An
// alternative without a label is titled by its key.
func (f *flattener) choices(choice map[string]*sdf.Data) []*wot.DataSchema {
	if len(choice) == 0 {
		return nil
	}
	oneOf := make([]*wot.DataSchema, 0, len(choice))
	for _, key := range sortedKeys(choice) {
		ds := f.data(choice[key])
		if ds == nil {
			continue
		}
		if ds.Title == nil {
			ds.Title = dataschema.Ptr(key)
		}
		oneOf = append(oneOf, ds)
	}
	return oneOf
}

// prefixedKey joins a flattening prefix and an entity key in camel case.
func prefixedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + capitalize(key)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func nilIfEmpty[V any](m map[string]V) map[string]V {
	if len(m) == 0 {
		return nil
	}
	return m
}
