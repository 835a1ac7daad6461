package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/sdfwot/pkg/sdf"
	"github.com/urmzd/sdfwot/pkg/wot"
)

func TestKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Kind
	}{
		{"models/switch.sdf.json", KindSDF},
		{"lamp.TD.json", KindTD},
		{"/tmp/x/lamp.tm.json", KindTM},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindFromPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := KindFromPath("lamp.json")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" TM ")
	require.NoError(t, err)
	assert.Equal(t, KindTM, k)

	_, err = ParseKind("xml")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSwapSuffix(t *testing.T) {
	assert.Equal(t, "a/switch.tm.json", SwapSuffix("a/switch.sdf.json", KindTM))
	assert.Equal(t, "lamp.sdf.json", SwapSuffix("lamp.TM.json", KindSDF))
	assert.Equal(t, "lamp.td.json", SwapSuffix("lamp.json", KindTD))
}

func TestLoader(t *testing.T) {
	l := NewLoader()

	t.Run("sdf", func(t *testing.T) {
		m, err := l.SDF([]byte(`{"sdfObject":{"Switch":{"sdfProperty":{"value":{"type":"boolean"}}}},"unknownMember":1}`))
		require.NoError(t, err)
		require.Contains(t, m.Objects, "Switch")
	})

	t.Run("incomplete info block", func(t *testing.T) {
		_, err := l.SDF([]byte(`{"info":{"title":"x"}}`))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("unknown schema type", func(t *testing.T) {
		_, err := l.SDF([]byte(`{"sdfProperty":{"p":{"type":"map"}}}`))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := l.ThingModel([]byte(`{"@context":`))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("thing model needs a context", func(t *testing.T) {
		_, err := l.ThingModel([]byte(`{"title":"Lamp"}`))
		assert.ErrorIs(t, err, ErrParse)
	})

	t.Run("thing description needs security", func(t *testing.T) {
		_, err := l.ThingDescription([]byte(`{"@context":"https://www.w3.org/2019/wot/td/v1","title":"Lamp"}`))
		assert.ErrorIs(t, err, ErrParse)

		td, err := l.ThingDescription([]byte(`{
			"@context": "https://www.w3.org/2019/wot/td/v1",
			"title": "Lamp",
			"security": ["nosec_sc"],
			"securityDefinitions": {"nosec_sc": {"scheme": "nosec"}}
		}`))
		require.NoError(t, err)
		assert.Equal(t, "Lamp", td.Title)
	})

	t.Run("load by kind", func(t *testing.T) {
		doc, err := l.Load(KindTM, []byte(`{"@context":["https://www.w3.org/2019/wot/td/v1"]}`))
		require.NoError(t, err)
		assert.IsType(t, &wot.ThingModel{}, doc)

		_, err = l.Load(Kind("xml"), []byte(`{}`))
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "switch.sdf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"sdfProperty":{"on":{"type":"boolean"}}}`), 0o644))

	kind, doc, err := NewLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, KindSDF, kind)
	m, ok := doc.(*sdf.Model)
	require.True(t, ok)
	assert.Contains(t, m.Properties, "on")

	_, _, err = NewLoader().LoadFile(filepath.Join(dir, "missing.sdf.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite(t *testing.T) {
	b, err := Write(map[string]string{"href": "https://example.com/?a=1&b=2"}, DefaultIndent)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"href\": \"https://example.com/?a=1&b=2\"\n}\n", string(b))

	_, err = Write(func() {}, DefaultIndent)
	assert.ErrorIs(t, err, ErrWrite)

	t.Run("nested members are not html escaped", func(t *testing.T) {
		tm, err := NewLoader().ThingModel([]byte(`{
			"@context": "https://www.w3.org/2019/wot/td/v1",
			"title": "T & U",
			"properties": {"p": {"title": "A & B <x>", "type": "string"}}
		}`))
		require.NoError(t, err)

		b, err := Write(tm, DefaultIndent)
		require.NoError(t, err)
		assert.Contains(t, string(b), `"title": "T & U"`)
		assert.Contains(t, string(b), `"title": "A & B <x>"`)
		assert.NotContains(t, string(b), `\u0026`)
	})
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.tm.json")
	require.NoError(t, WriteFile(path, map[string]int{"a": 1}, "\t"))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": 1\n}\n", string(b))

	err = WriteFile(filepath.Join(t.TempDir(), "missing", "out.json"), map[string]int{}, "")
	assert.ErrorIs(t, err, ErrWrite)
}

func TestReformat(t *testing.T) {
	out, err := NewLoader().Reformat(KindSDF, []byte(`{"sdfProperty":{"on":{"type":"boolean","extra":true}}}`), DefaultIndent)
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdfProperty":{"on":{"type":"boolean"}}}`, string(out))
}
