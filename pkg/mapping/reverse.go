package mapping

import (
	"fmt"

	"github.com/urmzd/sdfwot/pkg/dataschema"
	"github.com/urmzd/sdfwot/pkg/sdf"
	"github.com/urmzd/sdfwot/pkg/wot"
)

// FromThingModel converts a Thing Model to an SDF model. Affordances keep
// their keys and land at the root of the model; the original nesting cannot
// be recovered from a flat Thing Model.
func FromThingModel(tm *wot.ThingModel) *sdf.Model {
	if tm == nil {
		return &sdf.Model{}
	}
	m := &sdf.Model{
		Info:      infoBlock(tm),
		Namespace: tm.Context.Prefixes(),
	}

	if len(tm.Properties) > 0 {
		m.Properties = make(map[string]*sdf.Property, len(tm.Properties))
		for key, p := range tm.Properties {
			if p != nil {
				m.Properties[key] = property(p)
			}
		}
	}
	if len(tm.Actions) > 0 {
		m.Actions = make(map[string]*sdf.Action, len(tm.Actions))
		for key, a := range tm.Actions {
			if a != nil {
				m.Actions[key] = &sdf.Action{
					CommonQualities: commonQualities(a.InteractionAffordance),
					InputData:       data(a.Input),
					OutputData:      data(a.Output),
				}
			}
		}
	}
	if len(tm.Events) > 0 {
		m.Events = make(map[string]*sdf.Event, len(tm.Events))
		for key, e := range tm.Events {
			if e != nil {
				m.Events[key] = &sdf.Event{
					CommonQualities: commonQualities(e.InteractionAffordance),
					OutputData:      data(e.Data),
				}
			}
		}
	}
	return m
}

// infoBlock rebuilds the info block written by ToThingModel. It needs a
// title, a version, a description standing in for the copyright notice and
// a license link; a Thing Model lacking any of them yields no block.
func infoBlock(tm *wot.ThingModel) *sdf.InfoBlock {
	if tm.Title == nil || tm.Version == nil || tm.Description == nil {
		return nil
	}
	for _, link := range tm.Links {
		if link.Rel != nil && *link.Rel == relLicense {
			return &sdf.InfoBlock{
				Title:     *tm.Title,
				Version:   tm.Version.Instance,
				Copyright: *tm.Description,
				License:   link.Href,
			}
		}
	}
	return nil
}

func commonQualities(a wot.InteractionAffordance) sdf.CommonQualities {
	return sdf.CommonQualities{Label: a.Title, Description: a.Description}
}

func property(p *wot.PropertyAffordance) *sdf.Property {
	d := data(&p.DataSchema)
	d.CommonQualities = commonQualities(p.InteractionAffordance)
	d.Observable = p.Observable
	return d
}

func data(ds *wot.DataSchema) *sdf.Data {
	if ds == nil {
		return nil
	}
	d := &sdf.Data{
		CommonQualities: sdf.CommonQualities{Label: ds.Title, Description: ds.Description},
		Unit:            ds.Unit,
		Schema:          schema(ds),
	}
	if ds.ReadOnly != nil && *ds.ReadOnly {
		d.Writable = dataschema.Ptr(false)
	}
	if ds.WriteOnly != nil && *ds.WriteOnly {
		d.Readable = dataschema.Ptr(false)
	}
	return d
}

func schema(ds *wot.DataSchema) sdf.Schema {
	s := sdf.Schema{Type: ds.Schema.Type}
	v := ds.UntypedValues

	switch ds.Schema.Type {
	case dataschema.TypeBoolean:
		s.Boolean = &sdf.BooleanSchema{Values: dataschema.Coerce(v, dataschema.AsBool)}
	case dataschema.TypeInteger:
		s.Integer = &sdf.IntegerSchema{Values: dataschema.Coerce(v, dataschema.AsInt64)}
		if ds.Schema.Integer != nil {
			s.Integer.NumberConstraints = ds.Schema.Integer.NumberConstraints
		}
	case dataschema.TypeNumber:
		s.Number = &sdf.NumberSchema{Values: dataschema.Coerce(v, dataschema.AsFloat64)}
		if ds.Schema.Number != nil {
			s.Number.NumberConstraints = ds.Schema.Number.NumberConstraints
		}
	case dataschema.TypeString:
		s.String = &sdf.StringSchema{
			Values: dataschema.Coerce(v, dataschema.AsString),
			Format: format(ds.Format),
		}
		if ds.Schema.String != nil {
			s.String.StringConstraints = ds.Schema.String.StringConstraints
		}
	case dataschema.TypeArray:
		s.Array = &sdf.ArraySchema{Values: dataschema.Coerce(v, dataschema.AsArray)}
		if a := ds.Schema.Array; a != nil {
			s.Array.ArrayConstraints = a.ArrayConstraints
			// SDF arrays describe a single item schema.
			if a.Items != nil && len(a.Items.Values()) == 1 {
				s.Array.Items = data(a.Items.Values()[0])
			}
		}
	case dataschema.TypeObject:
		s.Object = &sdf.ObjectSchema{Values: dataschema.Coerce(v, dataschema.AsObject)}
		if o := ds.Schema.Object; o != nil {
			s.Object.Required = o.Required
			if o.Properties != nil {
				s.Object.Properties = make(map[string]*sdf.Data, len(o.Properties))
				for key, p := range o.Properties {
					if p != nil {
						s.Object.Properties[key] = data(p)
					}
				}
			}
		}
	}

	s.Choice = choices(ds.OneOf)
	return s
}

// choices maps oneOf entries to sdfChoice alternatives keyed by title.
// Untitled or duplicate entries are keyed by position.
func choices(oneOf []*wot.DataSchema) map[string]*sdf.Data {
	if len(oneOf) == 0 {
		return nil
	}
	choice := make(map[string]*sdf.Data, len(oneOf))
	for i, ds := range oneOf {
		if ds == nil {
			continue
		}
		key := fmt.Sprintf("choice%d", i+1)
		if ds.Title != nil {
			if _, taken := choice[*ds.Title]; !taken {
				key = *ds.Title
			}
		}
		choice[key] = data(ds)
	}
	return choice
}

// format keeps string formats SDF knows and drops the rest.
func format(f *string) *sdf.Format {
	if f == nil || !sdf.Format(*f).Valid() {
		return nil
	}
	return dataschema.Ptr(sdf.Format(*f))
}
