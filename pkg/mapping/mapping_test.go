package mapping

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/sdfwot/pkg/sdf"
	"github.com/urmzd/sdfwot/pkg/wot"
)

func decodeModel(t *testing.T, doc string) *sdf.Model {
	t.Helper()
	var m sdf.Model
	require.NoError(t, json.Unmarshal([]byte(doc), &m))
	return &m
}

func decodeThingModel(t *testing.T, doc string) *wot.ThingModel {
	t.Helper()
	var tm wot.ThingModel
	require.NoError(t, json.Unmarshal([]byte(doc), &tm))
	return &tm
}

func encode(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestEmptyModel(t *testing.T) {
	tm := ToThingModel(decodeModel(t, `{}`))
	assert.JSONEq(t, `{"@context":["https://www.w3.org/2019/wot/td/v1"],"@type":"Thing"}`, encode(t, tm))
}

func TestEmptyThingModel(t *testing.T) {
	m := FromThingModel(decodeThingModel(t, `{"@context":["https://www.w3.org/2019/wot/td/v1"]}`))
	assert.JSONEq(t, `{}`, encode(t, m))
}

func TestIntegerRoundTrip(t *testing.T) {
	schema := `{"type":"integer","minimum":0,"maximum":9002,"exclusiveMinimum":0,"exclusiveMaximum":9000,"multipleOf":2}`
	m := decodeModel(t, `{"sdfProperty":{"count":`+schema+`}}`)

	tm := ToThingModel(m)
	require.Contains(t, tm.Properties, "count")
	assert.JSONEq(t, schema, encode(t, tm.Properties["count"]))

	back := FromThingModel(decodeThingModel(t, encode(t, tm)))
	require.Contains(t, back.Properties, "count")
	assert.JSONEq(t, schema, encode(t, back.Properties["count"]))
}

func TestFlattening(t *testing.T) {
	t.Run("object property is prefixed", func(t *testing.T) {
		tm := ToThingModel(decodeModel(t, `{"sdfObject":{"Switch":{"sdfProperty":{"value":{"type":"boolean"}}}}}`))
		assert.Equal(t, []string{"SwitchValue"}, sortedKeys(tm.Properties))
	})

	t.Run("nested things accumulate prefixes", func(t *testing.T) {
		doc := `{
			"sdfProperty": {"root": {}},
			"sdfThing": {
				"house": {
					"sdfThing": {"kitchen": {"sdfObject": {"lamp": {"sdfAction": {"toggle": {}}}}}},
					"sdfObject": {"door": {"sdfEvent": {"opened": {}}}}
				}
			},
			"sdfProduct": {"kit": {"sdfObject": {"sensor": {"sdfProperty": {"temp": {}}}}}}
		}`
		tm := ToThingModel(decodeModel(t, doc))
		assert.ElementsMatch(t, []string{"root", "KitSensorTemp"}, sortedKeys(tm.Properties))
		assert.Equal(t, []string{"HouseKitchenLampToggle"}, sortedKeys(tm.Actions))
		assert.Equal(t, []string{"HouseDoorOpened"}, sortedKeys(tm.Events))
	})

	t.Run("colliding keys resolve deterministically", func(t *testing.T) {
		doc := `{
			"sdfProperty": {"SwitchValue": {"label": "root"}},
			"sdfObject": {"Switch": {"sdfProperty": {"value": {"label": "object"}}}}
		}`
		for range 20 {
			tm := ToThingModel(decodeModel(t, doc))
			require.Len(t, tm.Properties, 1)
			assert.Equal(t, "object", *tm.Properties["SwitchValue"].Title)
		}
	})
}

func TestSdfRef(t *testing.T) {
	t.Run("action inherits label", func(t *testing.T) {
		doc := `{"sdfAction":{"foobar":{"label":"hi"},"foobaz":{"sdfRef":"#/sdfAction/foobar"}}}`
		tm := ToThingModel(decodeModel(t, doc))
		require.Contains(t, tm.Actions, "foobaz")
		assert.Equal(t, "hi", *tm.Actions["foobaz"].Title)
		assert.Equal(t, encode(t, tm.Actions["foobar"]), encode(t, tm.Actions["foobaz"]))
	})

	t.Run("own qualities win", func(t *testing.T) {
		doc := `{
			"sdfProperty": {"base": {"label": "base", "description": "from base", "type": "string"}},
			"sdfObject": {"o": {"sdfProperty": {"p": {"sdfRef": "#/sdfProperty/base", "label": "own", "type": "integer"}}}}
		}`
		tm := ToThingModel(decodeModel(t, doc))
		p := tm.Properties["OP"]
		require.NotNil(t, p)
		assert.Equal(t, "own", *p.Title)
		assert.Equal(t, "from base", *p.Description)
		assert.Equal(t, "integer", string(p.DataSchema.Schema.Type))
	})

	t.Run("property can reference sdfData", func(t *testing.T) {
		doc := `{"sdfData":{"temp":{"label":"Temperature"}},"sdfProperty":{"t":{"sdfRef":"#/sdfData/temp"}}}`
		tm := ToThingModel(decodeModel(t, doc))
		assert.Equal(t, "Temperature", *tm.Properties["t"].Title)
	})

	t.Run("input data references sdfData", func(t *testing.T) {
		doc := `{"sdfData":{"level":{"label":"Level"}},"sdfAction":{"dim":{"sdfInputData":{"sdfRef":"#/sdfData/level","type":"number"}}}}`
		tm := ToThingModel(decodeModel(t, doc))
		input := tm.Actions["dim"].Input
		require.NotNil(t, input)
		assert.Equal(t, "Level", *input.Title)
	})

	t.Run("unresolved or mistyped references are ignored", func(t *testing.T) {
		doc := `{
			"sdfEvent": {"base": {"label": "base"}},
			"sdfAction": {"a": {"sdfRef": "#/sdfAction/missing"}, "b": {"sdfRef": "#/sdfEvent/base"}}
		}`
		tm := ToThingModel(decodeModel(t, doc))
		assert.Nil(t, tm.Actions["a"].Title)
		assert.Nil(t, tm.Actions["b"].Title)
	})
}

func TestAccessFlags(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"write only", `{"readable":false,"writable":true}`, `{"writeOnly":true}`},
		{"read only", `{"readable":true,"writable":false}`, `{"readOnly":true}`},
		{"absent", `{}`, `{}`},
		{"both false", `{"readable":false,"writable":false}`, `{"readOnly":true,"writeOnly":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := ToThingModel(decodeModel(t, `{"sdfProperty":{"p":`+tt.data+`}}`))
			assert.JSONEq(t, tt.want, encode(t, tm.Properties["p"]))
		})
	}

	t.Run("inverted back", func(t *testing.T) {
		m := FromThingModel(decodeThingModel(t, `{"@context":"https://www.w3.org/2019/wot/td/v1","properties":{"p":{"readOnly":true,"writeOnly":false}}}`))
		assert.JSONEq(t, `{"writable":false}`, encode(t, m.Properties["p"]))
	})
}

func TestInfoBlock(t *testing.T) {
	doc := `{"info":{"title":"Lamp","version":"2024-01-01","copyright":"Copyright Example","license":"BSD-3-Clause"}}`

	t.Run("thing model", func(t *testing.T) {
		tm := ToThingModel(decodeModel(t, doc))
		assert.JSONEq(t, `{
			"@context": ["https://www.w3.org/2019/wot/td/v1"],
			"@type": "Thing",
			"title": "Lamp",
			"version": {"instance": "2024-01-01"},
			"description": "Copyright Example",
			"links": [{"rel": "license", "href": "BSD-3-Clause"}]
		}`, encode(t, tm))

		back := FromThingModel(tm)
		require.NotNil(t, back.Info)
		assert.Equal(t, "Copyright Example", back.Info.Copyright)
		assert.Equal(t, "BSD-3-Clause", back.Info.License)
	})

	t.Run("thing description", func(t *testing.T) {
		td := ToThingDescription(decodeModel(t, doc))
		assert.Equal(t, "Lamp", td.Title)
		assert.Nil(t, td.SemanticType)
	})

	t.Run("no info block on a plain thing model", func(t *testing.T) {
		m := FromThingModel(decodeThingModel(t, `{"@context":"https://www.w3.org/2019/wot/td/v1","title":"Lamp"}`))
		assert.Nil(t, m.Info)
	})
}

func TestThingDescription(t *testing.T) {
	td := ToThingDescription(decodeModel(t, `{"sdfProperty":{"on":{"type":"boolean"}}}`))
	assert.JSONEq(t, `{
		"@context": ["https://www.w3.org/2019/wot/td/v1"],
		"title": "No Title given.",
		"security": "nosec_sc",
		"securityDefinitions": {"nosec_sc": {"scheme": "nosec"}},
		"properties": {"on": {"type": "boolean"}}
	}`, encode(t, td))
}

func TestNamespace(t *testing.T) {
	m := decodeModel(t, `{"namespace":{"cap":"https://example.com/cap"},"defaultNamespace":"cap"}`)
	tm := ToThingModel(m)
	assert.JSONEq(t, `{
		"@context": ["https://www.w3.org/2019/wot/td/v1", {"cap": "https://example.com/cap"}],
		"@type": "Thing"
	}`, encode(t, tm))

	back := FromThingModel(tm)
	assert.Equal(t, map[string]string{"cap": "https://example.com/cap"}, back.Namespace)

	lang := FromThingModel(decodeThingModel(t, `{"@context":["https://www.w3.org/2019/wot/td/v1",{"@language":"en"}]}`))
	assert.Nil(t, lang.Namespace)
	assert.JSONEq(t, `{}`, encode(t, lang))
}

func TestSchemaMapping(t *testing.T) {
	doc := `{"sdfObject":{"lamp":{
		"sdfProperty": {
			"color": {"type": "string", "enum": ["red", "green"], "default": "red", "format": "uri", "unit": "x", "pattern": "^[a-z]+$"},
			"mode": {"sdfChoice": {"eco": {"type": "integer", "const": 1}, "boost": {"label": "Boost!", "type": "integer", "const": 2}}}
		},
		"sdfAction": {
			"configure": {
				"sdfInputData": {"label": "Config", "type": "object", "required": ["level"], "properties": {"level": {"type": "number", "maximum": 1.5}}},
				"sdfOutputData": {"type": "array", "maxItems": 3, "uniqueItems": true, "items": {"type": "boolean", "const": true}}
			}
		},
		"sdfEvent": {"alarm": {"sdfOutputData": {"type": "string", "writable": false}}}
	}}}`
	tm := ToThingModel(decodeModel(t, doc))

	assert.JSONEq(t, `{"type":"string","enum":["red","green"],"default":"red","format":"uri","unit":"x","pattern":"^[a-z]+$"}`,
		encode(t, tm.Properties["LampColor"]))
	assert.JSONEq(t, `{"oneOf":[{"title":"Boost!","type":"integer","const":2},{"title":"eco","type":"integer","const":1}]}`,
		encode(t, tm.Properties["LampMode"]))
	assert.JSONEq(t, `{
		"input": {"title": "Config", "type": "object", "required": ["level"], "properties": {"level": {"type": "number", "maximum": 1.5}}},
		"output": {"type": "array", "maxItems": 3, "items": {"type": "boolean", "const": true}}
	}`, encode(t, tm.Actions["LampConfigure"]))
	assert.JSONEq(t, `{"data":{"type":"string","readOnly":true}}`, encode(t, tm.Events["LampAlarm"]))

	back := FromThingModel(decodeThingModel(t, encode(t, tm)))
	assert.JSONEq(t, `{"type":"string","enum":["red","green"],"default":"red","format":"uri","unit":"x","pattern":"^[a-z]+$"}`,
		encode(t, back.Properties["LampColor"]))
	assert.JSONEq(t, `{"sdfChoice":{"Boost!":{"label":"Boost!","type":"integer","const":2},"eco":{"label":"eco","type":"integer","const":1}}}`,
		encode(t, back.Properties["LampMode"]))
	assert.JSONEq(t, `{"sdfOutputData":{"writable":false,"type":"string"}}`, encode(t, back.Events["LampAlarm"]))
	out := back.Actions["LampConfigure"].OutputData
	require.NotNil(t, out.Schema.Array)
	require.NotNil(t, out.Schema.Array.Items)
	assert.True(t, *out.Schema.Array.Items.Schema.Boolean.Const)
}

func TestReverseCoercion(t *testing.T) {
	doc := `{"@context":"https://www.w3.org/2019/wot/td/v1","properties":{
		"n": {"type": "integer", "const": "seven", "default": 3, "enum": [1, 2.5]},
		"f": {"type": "string", "format": "email", "enum": ["a", "b"]},
		"u": {"const": 1},
		"tuple": {"type": "array", "items": [{"type": "integer"}, {"type": "string"}]}
	}}`
	m := FromThingModel(decodeThingModel(t, doc))
	assert.JSONEq(t, `{"type":"integer","default":3}`, encode(t, m.Properties["n"]))
	assert.JSONEq(t, `{"type":"string","enum":["a","b"]}`, encode(t, m.Properties["f"]))
	assert.JSONEq(t, `{}`, encode(t, m.Properties["u"]))
	assert.JSONEq(t, `{"type":"array"}`, encode(t, m.Properties["tuple"]))

	t.Run("large integers keep their value", func(t *testing.T) {
		doc := `{"properties":{
			"big": {"type": "integer", "enum": [9007199254740993], "const": 9007199254740993, "default": 4.0},
			"lossy": {"type": "integer", "enum": [1e30], "const": 9007199254740993.0}
		}}`
		m := FromThingModel(decodeThingModel(t, doc))

		big := m.Properties["big"].Schema.Integer
		require.NotNil(t, big)
		require.NotNil(t, big.Const)
		require.NotNil(t, big.Default)
		assert.Equal(t, int64(9007199254740993), *big.Const)
		assert.Equal(t, []int64{9007199254740993}, big.Enum)
		assert.Equal(t, int64(4), *big.Default)
		assert.Contains(t, encode(t, m.Properties["big"]), `"const":9007199254740993`)

		lossy := m.Properties["lossy"].Schema.Integer
		require.NotNil(t, lossy)
		assert.Nil(t, lossy.Const)
		assert.Nil(t, lossy.Enum)
	})
}

func TestConcurrentConversions(t *testing.T) {
	doc := `{"sdfObject":{"a":{"sdfProperty":{"x":{"type":"integer","minimum":1}}}},"sdfThing":{"b":{"sdfObject":{"c":{"sdfAction":{"y":{}}}}}}}`
	m := decodeModel(t, doc)
	want := encode(t, ToThingModel(m))

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := json.Marshal(ToThingModel(m))
			if err == nil {
				results[i] = string(b)
			}
		}()
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
