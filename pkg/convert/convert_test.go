package convert

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/sdfwot/pkg/db"
	"github.com/urmzd/sdfwot/pkg/document"
)

const switchSDF = `{
  "info": {"title": "Switch", "version": "2026-01-01", "copyright": "Copyright 2026", "license": "BSD-3-Clause"},
  "namespace": {"ex": "https://example.com/models"},
  "defaultNamespace": "ex",
  "sdfObject": {
    "Switch": {
      "sdfProperty": {
        "value": {"type": "boolean", "writable": false}
      },
      "sdfAction": {
        "on": {"description": "Turn the switch on"}
      }
    }
  }
}`

type memHistory struct {
	mu      sync.Mutex
	records []*db.Conversion
	err     error
}

func (h *memHistory) Create(_ context.Context, c *db.Conversion) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, c)
	return nil
}

func newService(opts ...Option) *Service {
	return NewService(document.NewLoader(), opts...)
}

func TestConvertSDFToThingModel(t *testing.T) {
	res, err := newService().Convert(context.Background(), Request{
		From:  document.KindSDF,
		Input: []byte(switchSDF),
	})
	require.NoError(t, err)
	assert.Equal(t, document.KindTM, res.To)
	assert.NotEmpty(t, res.ID)

	var tm map[string]any
	require.NoError(t, json.Unmarshal(res.Output, &tm))
	assert.Equal(t, "Thing", tm["@type"])
	assert.Equal(t, "Switch", tm["title"])
	props := tm["properties"].(map[string]any)
	value := props["SwitchValue"].(map[string]any)
	assert.Equal(t, "boolean", value["type"])
	assert.Equal(t, true, value["readOnly"])
	assert.Contains(t, tm["actions"], "SwitchOn")
}

func TestConvertSDFToThingDescription(t *testing.T) {
	res, err := newService().Convert(context.Background(), Request{
		From:  document.KindSDF,
		To:    document.KindTD,
		Input: []byte(`{}`),
	})
	require.NoError(t, err)

	td, err := document.NewLoader().ThingDescription(res.Output)
	require.NoError(t, err)
	assert.Equal(t, "No Title given.", td.Title)
	assert.Equal(t, []string{"nosec_sc"}, td.Security.Values())
}

func TestConvertThingModelToSDF(t *testing.T) {
	svc := newService()
	tm, err := svc.Convert(context.Background(), Request{From: document.KindSDF, Input: []byte(switchSDF)})
	require.NoError(t, err)

	back, err := svc.Convert(context.Background(), Request{From: document.KindTM, Input: tm.Output})
	require.NoError(t, err)
	assert.Equal(t, document.KindSDF, back.To)

	m, err := svc.Loader().SDF(back.Output)
	require.NoError(t, err)
	require.NotNil(t, m.Info)
	assert.Equal(t, "Switch", m.Info.Title)
	assert.Equal(t, "BSD-3-Clause", m.Info.License)
	assert.Contains(t, m.Properties, "SwitchValue")
	assert.Equal(t, "https://example.com/models", m.Namespace["ex"])
}

func TestConvertErrors(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"td source", Request{From: document.KindTD, To: document.KindSDF, Input: []byte(`{}`)}, document.ErrUnsupportedConversion},
		{"tm to td", Request{From: document.KindTM, To: document.KindTD, Input: []byte(`{}`)}, document.ErrUnsupportedConversion},
		{"unknown source", Request{From: "xml", Input: []byte(`{}`)}, document.ErrUnknownKind},
		{"unknown target", Request{From: document.KindSDF, To: "yaml", Input: []byte(`{}`)}, document.ErrUnknownKind},
		{"malformed", Request{From: document.KindSDF, Input: []byte(`{`)}, document.ErrParse},
		{"invalid tm", Request{From: document.KindTM, Input: []byte(`{"title":"x"}`)}, document.ErrParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Convert(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestConvertSameKindReformats(t *testing.T) {
	res, err := newService(WithIndent("\t")).Convert(context.Background(), Request{
		From:  document.KindSDF,
		To:    document.KindSDF,
		Input: []byte(`{"sdfProperty":{"on":{"type":"boolean"}}}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"sdfProperty\": {\n\t\t\"on\": {\n\t\t\t\"type\": \"boolean\"\n\t\t}\n\t}\n}\n", string(res.Output))
}

func TestTarget(t *testing.T) {
	assert.Equal(t, document.KindTM, newService().Target(document.KindSDF))
	assert.Equal(t, document.KindTD, newService(WithSDFTarget(document.KindTD)).Target(document.KindSDF))
	assert.Equal(t, document.KindSDF, newService().Target(document.KindTM))
}

func TestHistoryAndObserver(t *testing.T) {
	history := &memHistory{}
	profileID := int64(7)
	var observed []string
	svc := newService(
		WithHistory(history, &profileID),
		WithObserver(func(from, to document.Kind, status string, _ time.Duration) {
			observed = append(observed, string(from)+">"+string(to)+":"+status)
		}),
	)
	ctx := context.Background()

	res, err := svc.Convert(ctx, Request{From: document.KindSDF, Input: []byte(switchSDF), Source: "switch.sdf.json"})
	require.NoError(t, err)
	_, err = svc.Convert(ctx, Request{From: document.KindTD, To: document.KindSDF, Input: []byte(`{}`)})
	require.Error(t, err)

	require.Len(t, history.records, 2)
	ok := history.records[0]
	assert.Equal(t, res.ID, ok.ID)
	assert.Equal(t, db.StatusSucceeded, ok.Status)
	assert.Equal(t, "switch.sdf.json", ok.Source)
	assert.Equal(t, len(switchSDF), ok.InputSize)
	assert.Equal(t, len(res.Output), ok.OutputSize)
	assert.Equal(t, &profileID, ok.ProfileID)

	failed := history.records[1]
	assert.Equal(t, db.StatusFailed, failed.Status)
	assert.Contains(t, failed.Error, "unsupported conversion")
	assert.Zero(t, failed.OutputSize)

	assert.Equal(t, []string{"sdf>tm:succeeded", "td>sdf:failed"}, observed)
}

func TestHistoryFailureDoesNotFailConversion(t *testing.T) {
	history := &memHistory{err: assert.AnError}
	_, err := newService(WithHistory(history, nil)).Convert(context.Background(), Request{
		From:  document.KindSDF,
		Input: []byte(`{}`),
	})
	assert.NoError(t, err)
}

func TestHistoryWithDatabase(t *testing.T) {
	ctx := context.Background()
	database, err := db.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.Migrate(ctx))

	res, err := newService(WithHistory(database.Conversions(), nil)).Convert(ctx, Request{
		From:  document.KindSDF,
		Input: []byte(switchSDF),
	})
	require.NoError(t, err)

	got, err := database.Conversions().Get(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, "sdf", got.SourceKind)
	assert.Equal(t, "tm", got.TargetKind)
}

func TestValidateAndPrint(t *testing.T) {
	svc := newService()
	assert.NoError(t, svc.Validate(document.KindSDF, []byte(switchSDF)))
	assert.ErrorIs(t, svc.Validate(document.KindTM, []byte(`{}`)), document.ErrParse)
	assert.ErrorIs(t, svc.Validate("xml", []byte(`{}`)), document.ErrUnknownKind)

	out, err := svc.Print(document.KindSDF, []byte(`{"sdfData":{"d":{"type":"string","unknown":1}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sdfData":{"d":{"type":"string"}}}`, string(out))
}

func TestConcurrentConvert(t *testing.T) {
	svc := newService(WithHistory(&memHistory{}, nil))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Convert(context.Background(), Request{From: document.KindSDF, Input: []byte(switchSDF)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
