package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		wire   string
		tokens Pointer
	}{
		{name: "root", wire: "", tokens: Pointer{}},
		{name: "single key", wire: "/foo", tokens: Pointer{"foo"}},
		{name: "nested", wire: "/foo/0/bar", tokens: Pointer{"foo", "0", "bar"}},
		{name: "slash escape", wire: "/src~1lib/hooks", tokens: Pointer{"src/lib", "hooks"}},
		{name: "tilde escape", wire: "/~0weird", tokens: Pointer{"~weird"}},
		{name: "bare slash key", wire: "/~1", tokens: Pointer{"/"}},
		{name: "empty key", wire: "/", tokens: Pointer{""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode(tt.wire)
			require.NoError(t, err)
			assert.Equal(t, tt.tokens, got)
			assert.Equal(t, tt.wire, got.Encode())
		})
	}
}

func TestDecodeRejectsLoneTilde(t *testing.T) {
	t.Parallel()

	_, err := Decode("/foo~2bar")
	assert.Error(t, err)

	_, err = Decode("/trailing~")
	assert.Error(t, err)
}

func TestDecodeRequiresLeadingSlash(t *testing.T) {
	t.Parallel()

	_, err := Decode("foo/bar")
	assert.Error(t, err)
}

func TestIsPrefixOf(t *testing.T) {
	t.Parallel()

	root := Root()
	a := Pointer{"0"}
	b := Pointer{"0", "a"}

	assert.True(t, root.IsPrefixOf(a))
	assert.True(t, a.IsPrefixOf(b))
	assert.False(t, b.IsPrefixOf(a))
	assert.False(t, a.IsPrefixOf(a))
}

func TestParent(t *testing.T) {
	t.Parallel()

	_, ok := Root().Parent()
	assert.False(t, ok)

	p := Pointer{"a", "b"}
	parent, ok := p.Parent()
	require.True(t, ok)
	assert.Equal(t, Pointer{"a"}, parent)
}

func TestParseArrayIndex(t *testing.T) {
	t.Parallel()

	idx, isAppend, err := ParseArrayIndex("0", 3, false)
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.False(t, isAppend)

	_, _, err = ParseArrayIndex("3", 3, false)
	assert.Error(t, err, "set/delete must reject index == length")

	idx, isAppend, err = ParseArrayIndex("3", 3, true)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)
	assert.False(t, isAppend)

	_, isAppend, err = ParseArrayIndex("-", 3, true)
	require.NoError(t, err)
	assert.True(t, isAppend)

	_, _, err = ParseArrayIndex("-", 3, false)
	assert.Error(t, err, "- is only valid for add")

	_, _, err = ParseArrayIndex("01", 3, true)
	assert.Error(t, err, "leading zero must be rejected")

	_, _, err = ParseArrayIndex("0", 3, true)
	require.NoError(t, err, "literal 0 is not a leading zero")
}
