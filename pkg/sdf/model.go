// Package sdf models documents in the Semantic Definition Format: a nested
// tree of things, objects and affordances with JSON-Schema-like data
// qualities.
package sdf

// Model is the root of an SDF document.
type Model struct {
	Info             *InfoBlock           `json:"info,omitempty"`
	Namespace        map[string]string    `json:"namespace,omitempty"`
	DefaultNamespace *string              `json:"defaultNamespace,omitempty"`
	Things           map[string]*Thing    `json:"sdfThing,omitempty"`
	Products         map[string]*Thing    `json:"sdfProduct,omitempty"`
	Objects          map[string]*Object   `json:"sdfObject,omitempty"`
	Properties       map[string]*Property `json:"sdfProperty,omitempty"`
	Actions          map[string]*Action   `json:"sdfAction,omitempty"`
	Events           map[string]*Event    `json:"sdfEvent,omitempty"`
	Data             map[string]*Data     `json:"sdfData,omitempty"`
}

// InfoBlock holds document metadata. Either all four fields are given or
// the block is absent.
type InfoBlock struct {
	Title     string `json:"title"`
	Version   string `json:"version"`
	Copyright string `json:"copyright"`
	License   string `json:"license"`
}

// CommonQualities are shared by every SDF entity.
type CommonQualities struct {
	Description *string  `json:"description,omitempty"`
	Label       *string  `json:"label,omitempty"`
	Comment     *string  `json:"$comment,omitempty"`
	SdfRef      *string  `json:"sdfRef,omitempty"`
	SdfRequired []string `json:"sdfRequired,omitempty"`
}

// Thing groups objects and nested things. sdfProduct entries share this
// shape.
type Thing struct {
	CommonQualities
	Objects map[string]*Object `json:"sdfObject,omitempty"`
	Things  map[string]*Thing  `json:"sdfThing,omitempty"`
}

// Object is the unit of functionality: a set of properties, actions and
// events.
type Object struct {
	CommonQualities
	Properties map[string]*Property `json:"sdfProperty,omitempty"`
	Actions    map[string]*Action   `json:"sdfAction,omitempty"`
	Events     map[string]*Event    `json:"sdfEvent,omitempty"`
	Data       map[string]*Data     `json:"sdfData,omitempty"`
}

// Property is a Data definition exposed as a readable or writable value.
type Property = Data

// Action is an invocable affordance.
type Action struct {
	CommonQualities
	InputData  *Data            `json:"sdfInputData,omitempty"`
	OutputData *Data            `json:"sdfOutputData,omitempty"`
	Data       map[string]*Data `json:"sdfData,omitempty"`
}

// Event is an affordance that emits data.
type Event struct {
	CommonQualities
	OutputData *Data            `json:"sdfOutputData,omitempty"`
	Data       map[string]*Data `json:"sdfData,omitempty"`
}

// Category names the root maps an sdfRef can point into.
type Category string

// Reference categories
const (
	CategoryThing    Category = "sdfThing"
	CategoryProduct  Category = "sdfProduct"
	CategoryObject   Category = "sdfObject"
	CategoryProperty Category = "sdfProperty"
	CategoryAction   Category = "sdfAction"
	CategoryEvent    Category = "sdfEvent"
	CategoryData     Category = "sdfData"
)
