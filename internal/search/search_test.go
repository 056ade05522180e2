package search

import (
	"testing"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/index"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/query"
	"github.com/jsonai/jsonai/internal/shred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMergesAcrossShardsAndTiebreaksByDocID(t *testing.T) {
	t.Parallel()

	v1, err := jsonval.Parse([]byte(`{"name":"alpha wolf"}`))
	require.NoError(t, err)
	r1 := shred.Shred(v1, "a.json")
	r1[0].DocID = 0

	v2, err := jsonval.Parse([]byte(`{"name":"beta wolf"}`))
	require.NoError(t, err)
	r2 := shred.Shred(v2, "b.json")
	r2[0].DocID = 1

	shards, err := index.Build(append(r1, r2...))
	require.NoError(t, err)
	require.Len(t, shards, 2)

	q, err := query.Compile(query.Request{Text: "wolf", Mode: core.ModeText})
	require.NoError(t, err)

	hits, err := Execute(shards, q, Options{Limit: 10})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, int64(0), hits[0].Record.DocID)
	assert.Equal(t, int64(1), hits[1].Record.DocID)
}
