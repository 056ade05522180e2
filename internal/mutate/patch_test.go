package mutate

import (
	"testing"

	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatchAddReplaceRemove(t *testing.T) {
	t.Parallel()

	root := parseVal(t, `{"a":1,"b":{"c":2}}`)
	ops := []PatchOp{
		{Op: "replace", Path: "/a", Value: jsonval.NewNumberFromInt(10)},
		{Op: "add", Path: "/b/d", Value: jsonval.NewString("new")},
		{Op: "remove", Path: "/b/c"},
	}

	out, err := ApplyPatch(root, ops)
	require.NoError(t, err)

	got, err := jsonval.Navigate(out, parsePtr(t, "/a"))
	require.NoError(t, err)
	assert.Equal(t, "10", got.NumberVal().String())

	got, err = jsonval.Navigate(out, parsePtr(t, "/b/d"))
	require.NoError(t, err)
	assert.Equal(t, "new", got.StringVal())

	_, err = jsonval.Navigate(out, parsePtr(t, "/b/c"))
	assert.Error(t, err)
}

func TestApplyPatchTestFailureAbortsWholePatch(t *testing.T) {
	t.Parallel()

	root := parseVal(t, `{"a":1}`)
	ops := []PatchOp{
		{Op: "replace", Path: "/a", Value: jsonval.NewNumberFromInt(99)},
		{Op: "test", Path: "/a", Value: jsonval.NewNumberFromInt(2)}, // fails: /a is now 99, not 2
	}

	_, err := ApplyPatch(root, ops)
	require.Error(t, err)

	unchanged, nerr := jsonval.Navigate(root, parsePtr(t, "/a"))
	require.NoError(t, nerr)
	assert.Equal(t, "1", unchanged.NumberVal().String(), "a failed patch must leave the original document untouched")
}

func TestApplyPatchMove(t *testing.T) {
	t.Parallel()

	root := parseVal(t, `{"a":{"x":1},"b":{}}`)
	ops := []PatchOp{
		{Op: "move", From: "/a/x", Path: "/b/x"},
	}

	out, err := ApplyPatch(root, ops)
	require.NoError(t, err)

	_, err = jsonval.Navigate(out, parsePtr(t, "/a/x"))
	assert.Error(t, err)

	got, err := jsonval.Navigate(out, parsePtr(t, "/b/x"))
	require.NoError(t, err)
	assert.Equal(t, "1", got.NumberVal().String())
}

func TestApplyPatchCopyLeavesSourceIntact(t *testing.T) {
	t.Parallel()

	root := parseVal(t, `{"a":{"x":1},"b":{}}`)
	ops := []PatchOp{
		{Op: "copy", From: "/a/x", Path: "/b/x"},
	}

	out, err := ApplyPatch(root, ops)
	require.NoError(t, err)

	got, err := jsonval.Navigate(out, parsePtr(t, "/a/x"))
	require.NoError(t, err)
	assert.Equal(t, "1", got.NumberVal().String())

	got, err = jsonval.Navigate(out, parsePtr(t, "/b/x"))
	require.NoError(t, err)
	assert.Equal(t, "1", got.NumberVal().String())
}

func TestApplyPatchMoveIntoOwnDescendantRejected(t *testing.T) {
	t.Parallel()

	root := parseVal(t, `{"a":{"b":1}}`)
	ops := []PatchOp{
		{Op: "move", From: "/a", Path: "/a/c"},
	}

	_, err := ApplyPatch(root, ops)
	assert.Error(t, err)
}
