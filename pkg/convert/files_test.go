package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urmzd/sdfwot/pkg/document"
)

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "models/switch.tm.json", OutputPath("models/switch.sdf.json", "", document.KindTM))
	assert.Equal(t, filepath.Join(dir, "switch.td.json"), OutputPath("models/switch.sdf.json", dir, document.KindTD))
	assert.Equal(t, "out.json", OutputPath("models/switch.sdf.json", "out.json", document.KindTM))
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "switch.sdf.json")
	writeFile(t, in, switchSDF)

	res, err := newService().ConvertFile(context.Background(), in, "", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "switch.tm.json"), res.Output)

	kind, doc, err := document.NewLoader().LoadFile(res.Output)
	require.NoError(t, err)
	assert.Equal(t, document.KindTM, kind)
	assert.NotNil(t, doc)

	t.Run("unknown suffix", func(t *testing.T) {
		_, err := newService().ConvertFile(context.Background(), filepath.Join(dir, "switch.json"), "", "")
		assert.ErrorIs(t, err, document.ErrUnknownKind)
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := newService().ConvertFile(context.Background(), filepath.Join(dir, "gone.sdf.json"), "", "")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("refuses to overwrite input", func(t *testing.T) {
		_, err := newService().ConvertFile(context.Background(), in, "", document.KindSDF)
		assert.ErrorIs(t, err, document.ErrWrite)
	})
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.sdf.json"), `{}`)
	writeFile(t, filepath.Join(dir, "nested", "deep", "b.sdf.json"), `{}`)
	writeFile(t, filepath.Join(dir, "nested", "c.tm.json"), `{}`)

	files, err := Glob(filepath.Join(dir, "**", "*.sdf.json"), filepath.Join(dir, "a.sdf.json"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "a.sdf.json"),
		filepath.Join(dir, "nested", "deep", "b.sdf.json"),
	}, files)

	_, err = Glob("[")
	assert.Error(t, err)
}

func TestConvertGlob(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(dir, "switch.sdf.json"), switchSDF)
	writeFile(t, filepath.Join(dir, "broken.sdf.json"), `{"sdfProperty":{"p":{"type":"map"}}}`)

	results, err := newService().ConvertGlob(context.Background(), out, document.KindTD, filepath.Join(dir, "*.sdf.json"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	var failed, converted int
	for _, r := range results {
		if r.Err != nil {
			failed++
			assert.ErrorIs(t, r.Err, document.ErrParse)
			continue
		}
		converted++
		assert.Equal(t, filepath.Join(out, "switch.td.json"), r.Output)
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, converted)
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	results := make(chan FileResult, 8)

	w, err := newService().NewWatcher(WatchConfig{
		Dir:       dir,
		Debounce:  20 * time.Millisecond,
		OnConvert: func(r FileResult) { results <- r },
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
	in := filepath.Join(dir, "switch.sdf.json")
	writeFile(t, in, switchSDF)

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, filepath.Join(dir, "switch.tm.json"), r.Output)
		assert.FileExists(t, r.Output)
	case <-time.After(5 * time.Second):
		t.Fatal("no conversion after write")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherWaitsForQuietFiles(t *testing.T) {
	dir := t.TempDir()
	var converted []string
	w, err := newService().NewWatcher(WatchConfig{
		Dir:       dir,
		Debounce:  100 * time.Millisecond,
		OnConvert: func(r FileResult) { converted = append(converted, filepath.Base(r.Input)) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.fsw.Close() })

	a := filepath.Join(dir, "a.sdf.json")
	b := filepath.Join(dir, "b.sdf.json")
	writeFile(t, a, switchSDF)
	writeFile(t, b, switchSDF)

	ctx := context.Background()
	now := time.Now()
	assert.True(t, w.handle(fsnotify.Event{Name: a, Op: fsnotify.Write}, now.Add(-150*time.Millisecond)))
	assert.True(t, w.handle(fsnotify.Event{Name: b, Op: fsnotify.Create}, now.Add(-30*time.Millisecond)))
	assert.False(t, w.handle(fsnotify.Event{Name: filepath.Join(dir, "c.tm.json"), Op: fsnotify.Write}, now))
	assert.False(t, w.handle(fsnotify.Event{Name: a, Op: fsnotify.Remove}, now))

	wait := w.flush(ctx, now)
	assert.Equal(t, []string{"a.sdf.json"}, converted)
	assert.Equal(t, 70*time.Millisecond, wait)

	// b is written again before its quiet period ends
	w.handle(fsnotify.Event{Name: b, Op: fsnotify.Write}, now.Add(50*time.Millisecond))
	wait = w.flush(ctx, now.Add(100*time.Millisecond))
	assert.Equal(t, []string{"a.sdf.json"}, converted)
	assert.Equal(t, 50*time.Millisecond, wait)

	wait = w.flush(ctx, now.Add(150*time.Millisecond))
	assert.Equal(t, []string{"a.sdf.json", "b.sdf.json"}, converted)
	assert.Zero(t, wait)
	assert.Empty(t, w.pending)
}

func TestNewWatcherRequiresDir(t *testing.T) {
	_, err := newService().NewWatcher(WatchConfig{})
	assert.Error(t, err)
}
