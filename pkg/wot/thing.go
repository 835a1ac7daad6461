// Package wot models W3C Web of Things Thing Descriptions and Thing Models.
package wot

import (
	"time"

	"github.com/urmzd/sdfwot/pkg/dataschema"
)

// TypeThing is the @type a Thing Model declares.
const TypeThing = "Thing"

// BaseThing holds the members Thing Descriptions and Thing Models share.
type BaseThing struct {
	Context           Context                        `json:"@context"`
	SemanticType      *dataschema.OneOrMany[string]  `json:"@type,omitempty"`
	ID                *string                        `json:"id,omitempty"`
	Titles            map[string]string              `json:"titles,omitempty"`
	Description       *string                        `json:"description,omitempty"`
	Descriptions      map[string]string              `json:"descriptions,omitempty"`
	Version           *VersionInfo                   `json:"version,omitempty"`
	Created           *time.Time                     `json:"created,omitempty"`
	Modified          *time.Time                     `json:"modified,omitempty"`
	Support           *string                        `json:"support,omitempty"`
	Base              *string                        `json:"base,omitempty"`
	Properties        map[string]*PropertyAffordance `json:"properties,omitempty"`
	Actions           map[string]*ActionAffordance   `json:"actions,omitempty"`
	Events            map[string]*EventAffordance    `json:"events,omitempty"`
	Links             []Link                         `json:"links,omitempty"`
	Forms             []Form                         `json:"forms,omitempty"`
	Profile           *dataschema.OneOrMany[string]  `json:"profile,omitempty"`
	SchemaDefinitions map[string]*DataSchema         `json:"schemaDefinitions,omitempty"`
}

// ThingDescription describes a concrete Thing instance.
type ThingDescription struct {
	BaseThing
	Title               string                       `json:"title"`
	Security            dataschema.OneOrMany[string] `json:"security"`
	SecurityDefinitions map[string]*SecurityScheme   `json:"securityDefinitions"`
}

// ThingModel is a template for a class of Things. Title and security are
// optional.
type ThingModel struct {
	BaseThing
	Title               *string                       `json:"title,omitempty"`
	Security            *dataschema.OneOrMany[string] `json:"security,omitempty"`
	SecurityDefinitions map[string]*SecurityScheme    `json:"securityDefinitions,omitempty"`
}

// VersionInfo carries version metadata.
type VersionInfo struct {
	Instance string  `json:"instance"`
	Model    *string `json:"model,omitempty"`
}

// Link points to a resource related to the Thing.
type Link struct {
	Href   string  `json:"href"`
	Type   *string `json:"type,omitempty"`
	Rel    *string `json:"rel,omitempty"`
	Anchor *string `json:"anchor,omitempty"`
	Sizes  *string `json:"sizes,omitempty"`
}
