package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Pointer escape, set: writing through an RFC 6901 pointer whose token
// contains a literal "/" (escaped as "~1") must target the key as a single
// segment, not descend into a nested path.
func TestPointerEscapeSetTargetsEscapedSlashKey(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"src/lib":{"hooks":"old"}}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"set", "-p", "/src~1lib/hooks", `"new"`, path})

	require.NoError(t, rootCmd.Execute())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed map[string]map[string]string
	require.NoError(t, json.Unmarshal(after, &parsed))
	assert.Equal(t, "new", parsed["src/lib"]["hooks"])
}

// Pointer escape, add new: an escaped "~1" token alone creates a key that is
// literally "/".
func TestPointerEscapeAddCreatesLiteralSlashKey(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"add", "-p", "/~1", `"slash_key"`, path})

	require.NoError(t, rootCmd.Execute())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(after, &parsed))
	assert.Equal(t, "slash_key", parsed["/"])
}

// Dedup: a term matching at root, at /0, and at /0/a must surface as exactly
// one hit at the most specific pointer.
func TestSearchAllDedupesNestedMatchesToDeepestPointer(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `[{"a":{"name":"john"}}]`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "john", "--all", "--output", "hit", path})

	require.NoError(t, rootCmd.Execute())

	var parsed struct {
		Hits []struct {
			Pointer string `json:"pointer"`
		} `json:"hits"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed.Hits, 1)
	assert.Equal(t, "/0/a", parsed.Hits[0].Pointer)
}

// Overflow plan: enough hits above the default threshold return a
// narrowing plan instead of result records.
func TestSearchAllOverOverflowThresholdReturnsNarrowingPlan(t *testing.T) {
	dir := t.TempDir()
	severities := []string{"low", "medium", "high"}

	var docs []string
	for i := 0; i < 100; i++ {
		docs = append(docs, `{"message":"error","severity":"`+severities[i%3]+`"}`)
	}
	content := "[" + joinDocs(docs) + "]"
	path := writeTempJSON(t, dir, "docs.json", content)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "error", "--all", path})

	require.NoError(t, rootCmd.Execute())

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	assert.Contains(t, parsed, "fields")
	assert.Contains(t, parsed, "facets")
	assert.Contains(t, parsed, "commands")
	assert.NotContains(t, parsed, "results")

	commands, ok := parsed["commands"].([]interface{})
	require.True(t, ok)
	assert.Len(t, commands, 3)
	for _, c := range commands {
		assert.Contains(t, c.(string), path, "narrowing command must be runnable as-is against the searched input")
	}
}

func joinDocs(docs []string) string {
	out := ""
	for i, d := range docs {
		if i > 0 {
			out += ","
		}
		out += d
	}
	return out
}

// Patch atomicity: when a later op's "test" fails, none of the earlier ops
// are applied and the target file is left untouched.
func TestPatchAbortsEntirelyWhenLaterTestOpFails(t *testing.T) {
	dir := t.TempDir()
	target := writeTempJSON(t, dir, "doc.json", `{"x":1,"y":2}`)
	original, err := os.ReadFile(target)
	require.NoError(t, err)

	patchFile := writeTempJSON(t, dir, "patch.json",
		`[{"op":"replace","path":"/x","value":10},{"op":"test","path":"/y","value":99}]`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"patch", "-p", patchFile, target})

	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/y")

	after, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, original, after)
}

// Exit codes: a search with no matches exits 1 but still prints a valid
// envelope with meta.total=0.
func TestSearchNoMatchExitsOneWithZeroTotalEnvelope(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "doc.json", `{"title":"hello world"}`)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "-q", "nomatch", "--all", path})

	code := Execute()
	assert.Equal(t, 1, code)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	meta, ok := parsed["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(0), meta["total"])
}
