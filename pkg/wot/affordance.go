package wot

import "github.com/urmzd/sdfwot/pkg/dataschema"

// InteractionAffordance holds the metadata shared by properties, actions
// and events.
type InteractionAffordance struct {
	SemanticType *dataschema.OneOrMany[string] `json:"@type,omitempty"`
	Title        *string                       `json:"title,omitempty"`
	Titles       map[string]string             `json:"titles,omitempty"`
	Description  *string                       `json:"description,omitempty"`
	Descriptions map[string]string             `json:"descriptions,omitempty"`
	Forms        []Form                        `json:"forms,omitempty"`
	URIVariables map[string]*DataSchema        `json:"uriVariables,omitempty"`
}

// PropertyAffordance exposes a piece of Thing state. Its data schema is
// written inline with the affordance metadata.
type PropertyAffordance struct {
	InteractionAffordance
	DataSchema DataSchema `json:"-"`
	Observable *bool      `json:"observable,omitempty"`
}

type propertyFields PropertyAffordance

func (p PropertyAffordance) MarshalJSON() ([]byte, error) {
	return dataschema.MarshalFlat(p.DataSchema, propertyFields(p))
}

func (p *PropertyAffordance) UnmarshalJSON(b []byte) error {
	return dataschema.UnmarshalFlat(b, &p.DataSchema, (*propertyFields)(p))
}

// ActionAffordance is a function of the Thing.
type ActionAffordance struct {
	InteractionAffordance
	Input      *DataSchema `json:"input,omitempty"`
	Output     *DataSchema `json:"output,omitempty"`
	Safe       *bool       `json:"safe,omitempty"`
	Idempotent *bool       `json:"idempotent,omitempty"`
}

// EventAffordance is an event source pushing data to consumers.
type EventAffordance struct {
	InteractionAffordance
	Subscription *DataSchema `json:"subscription,omitempty"`
	Data         *DataSchema `json:"data,omitempty"`
	Cancellation *DataSchema `json:"cancellation,omitempty"`
}

// Form describes how to perform an operation on an affordance.
type Form struct {
	Op                  *dataschema.OneOrMany[string] `json:"op,omitempty"`
	Href                string                        `json:"href"`
	ContentType         *string                       `json:"contentType,omitempty"`
	ContentCoding       *string                       `json:"contentCoding,omitempty"`
	Subprotocol         *string                       `json:"subprotocol,omitempty"`
	Security            *dataschema.OneOrMany[string] `json:"security,omitempty"`
	Scopes              *dataschema.OneOrMany[string] `json:"scopes,omitempty"`
	Response            *ExpectedResponse             `json:"response,omitempty"`
	AdditionalResponses []AdditionalResponse          `json:"additionalResponses,omitempty"`
}

// ExpectedResponse is the response metadata of a form.
type ExpectedResponse struct {
	ContentType string `json:"contentType"`
}

// AdditionalResponse describes a response other than the expected one.
type AdditionalResponse struct {
	Success     *bool   `json:"success,omitempty"`
	ContentType *string `json:"contentType,omitempty"`
	Schema      *string `json:"schema,omitempty"`
}
