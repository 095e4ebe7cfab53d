package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against a database under dir and
// returns captured stdout.
func runCLI(t *testing.T, dir string, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(append([]string{"--db", filepath.Join(dir, "Tether.db")}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestWriteAndLen(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "", "write", `{"band":"Radiohead"}`)
	require.NoError(t, err)
	assert.Equal(t, "1 document written\n", out)

	out, err = runCLI(t, dir, "", "len")
	require.NoError(t, err)
	assert.Equal(t, "1 document stored\n", out)
}

func TestWriteFromStdin(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, `{"band":"Portishead"}`, "write")
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "len", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stored":1}`, out)
}

func TestWriteRejectsNonObject(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "write", `[1,2,3]`)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestListAndGet(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "write", `{"band":"Radiohead"}`)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "list", "--format", "json", "--raw")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	id := docs[0]["id"].(string)
	assert.Equal(t, "Radiohead", docs[0]["band"])
	assert.NotEmpty(t, docs[0]["device_id"], "default config injects a device id")

	out, err = runCLI(t, dir, "", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, `"band":"Radiohead"`)
	// Rendered timestamps carry the fixed offset suffix.
	assert.Contains(t, out, `+00:00`)
}

func TestGetAbsentIDFails(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "get", "404")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestFilterCommand(t *testing.T) {
	dir := t.TempDir()
	for _, doc := range []string{
		`{"band":"Radiohead","name":{"first":"Thom"}}`,
		`{"band":"Blues","name":{"first":"Muddy"}}`,
	} {
		_, err := runCLI(t, dir, "", "write", doc)
		require.NoError(t, err)
	}

	out, err := runCLI(t, dir, "", "filter", "band=Radio*", "--format", "json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Radiohead", docs[0]["band"])

	out, err = runCLI(t, dir, "", "filter", "name__first=Thom", "--format", "json")
	require.NoError(t, err)
	docs = nil
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	assert.Len(t, docs, 1)

	out, err = runCLI(t, dir, "", "filter", "band=Nothing*", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestFilterMalformedPredicate(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "filter", "no-equals-sign")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDeleteAll(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 3; i++ {
		_, err := runCLI(t, dir, "", "write", `{"n":1}`)
		require.NoError(t, err)
	}

	out, err := runCLI(t, dir, "", "delete", "--all")
	require.NoError(t, err)
	assert.Equal(t, "3 documents deleted\n", out)

	out, err = runCLI(t, dir, "", "len")
	require.NoError(t, err)
	assert.Equal(t, "0 documents stored\n", out)
}

func TestDeleteRequiresIDXorAll(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "delete")
	require.Error(t, err)

	_, err = runCLI(t, dir, "", "delete", "some-id", "--all")
	require.Error(t, err)
}

func TestDeleteAbsentIDFails(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "delete", "404")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCleanupWithoutHorizonFails(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "write", `{"n":1}`)
	require.NoError(t, err)

	_, err = runCLI(t, dir, "", "cleanup")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCleanupFreshDocumentsDeletesNothing(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "write", `{"n":1}`)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "cleanup", "--max-age", "3600")
	require.NoError(t, err)
	assert.Equal(t, "0 documents deleted\n", out)
}

func TestConfigFileApplies(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"),
		[]byte(`{"device_id":"esp32-kitchen","utc_offset":"+05:30"}`), 0o644))

	_, err := runCLI(t, dir, "", "write", `{"n":1}`)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "list", "--format", "json")
	require.NoError(t, err)

	var docs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "esp32-kitchen", docs[0]["device_id"])
	assert.Contains(t, docs[0]["timestamp"], "+05:30")
}

func TestInvalidFormatRejected(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "", "len", "--format", "xml")
	require.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, dir, "", "write", `{"band":"Radiohead"}`)
	require.NoError(t, err)

	out, err := runCLI(t, dir, "", "export", filepath.Join(dir, "export.sqlite"))
	require.NoError(t, err)
	assert.Equal(t, "1 document exported\n", out)

	_, err = os.Stat(filepath.Join(dir, "export.sqlite"))
	assert.NoError(t, err)
}
