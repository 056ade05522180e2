package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jsonai/jsonai/internal/dedup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchCommandFindsMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"title": "hello world", "count": 3}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "hello", path})

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "hello")
}

func TestSearchCommandReturnsExitOneOnNoMatch(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"title": "hello world"}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "nonexistentterm", path})

	code := Execute()
	assert.Equal(t, 1, code)
}

func TestSearchCommandSchemaHintSkipsIngestion(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeTempJSON(t, dir, "schema.json", `{
		"type": "object",
		"properties": {
			"title": {"type": "string"},
			"author": {
				"type": "object",
				"properties": {"name": {"type": "string"}}
			}
		}
	}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "--schema", schemaPath, "/this/path/does/not/exist"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "author.name")
}

func TestSearchCommandCountOnlyEmitsMetaEnvelope(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"title": "hello world"}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "hello", "--count-only", path})

	err := rootCmd.Execute()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	meta, ok := parsed["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), meta["total"])
	results, ok := parsed["results"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, results)
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"title": "hello world"}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", path})

	err := rootCmd.Execute()
	assert.Error(t, err)
}

func TestPaginateRespectsOffsetAndLimit(t *testing.T) {
	hits := make([]dedup.Hit, 5)
	page := paginate(hits, 2, 2)
	assert.Len(t, page, 2)

	page = paginate(hits, 4, 10)
	assert.Len(t, page, 1)

	page = paginate(hits, 10, 10)
	assert.Empty(t, page)
}

func TestLimitOrDefaultPrefersFlagWhenPositive(t *testing.T) {
	assert.Equal(t, 5, limitOrDefault(5, 20))
	assert.Equal(t, 20, limitOrDefault(0, 20))
}
