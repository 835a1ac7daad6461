package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lightSDF = `{
  "sdfObject": {
    "Light": {
      "sdfProperty": {
        "on": {"type": "boolean"}
      }
    }
  }
}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sdfwot version dev")
}

func TestPrint(t *testing.T) {
	in := writeInput(t, t.TempDir(), "light.sdf.json", lightSDF)
	out, err := execute(t, "print", in)
	require.NoError(t, err)
	assert.JSONEq(t, lightSDF, out)

	_, err = execute(t, "print", filepath.Join(t.TempDir(), "light.json"))
	assert.Error(t, err)
}

func TestConvertByOutputSuffix(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "light.sdf.json", lightSDF)
	out := filepath.Join(dir, "light.td.json")

	_, err := execute(t, "convert", in, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var td map[string]any
	require.NoError(t, json.Unmarshal(b, &td))
	assert.Equal(t, "No Title given.", td["title"])
	assert.Contains(t, td["properties"], "LightOn")
}

func TestConvertDefaultsToThingModel(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "light.sdf.json", lightSDF)

	_, err := execute(t, "convert", in)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "light.tm.json"))
}

func TestConvertIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "light.sdf.json", lightSDF)
	outDir := t.TempDir()

	_, err := execute(t, "convert", in, outDir+string(filepath.Separator))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "light.tm.json"))

	_, err = execute(t, "convert", in, outDir, "--target", "td")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "light.td.json"))

	_, err = execute(t, "convert", in, filepath.Join(dir, "missing"))
	assert.Error(t, err, "a path that is neither a directory nor a known suffix")
}

func TestConvertRejects(t *testing.T) {
	dir := t.TempDir()
	td := writeInput(t, dir, "lamp.td.json", `{}`)

	_, err := execute(t, "convert", td, filepath.Join(dir, "lamp.sdf.json"))
	assert.ErrorContains(t, err, "unsupported conversion")

	_, err = execute(t, "convert", filepath.Join(dir, "lamp.json"))
	assert.Error(t, err)

	_, err = execute(t, "convert", td, "--glob", "*.json")
	assert.Error(t, err)
}

func TestConvertGlobWithHistory(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	dbPath := filepath.Join(t.TempDir(), "history.db")
	writeInput(t, dir, "a.sdf.json", lightSDF)
	writeInput(t, dir, "b.sdf.json", lightSDF)

	_, err := execute(t, "convert", "--glob", filepath.Join(dir, "*.sdf.json"), "--out-dir", outDir,
		"--target", "td", "--record", "--db", dbPath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "a.td.json"))
	assert.FileExists(t, filepath.Join(outDir, "b.td.json"))

	out, err := execute(t, "history", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "succeeded")
	assert.Contains(t, out, "a.sdf.json")

	out, err = execute(t, "history", "--db", dbPath, "--prune", "1ns")
	require.NoError(t, err)
	assert.Contains(t, out, "removed")
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "sdfwot.yaml")

	out, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "target: tm")
	assert.Contains(t, string(b), "debounce: 500ms")

	_, err = execute(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("convert:\n  target: td\n"), 0o644))
	out, err = execute(t, "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "target: td")

	_, err = execute(t, "config", "init", path, "--force", "--config", path)
	require.NoError(t, err)
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "target: td", "init writes the effective configuration")
}
