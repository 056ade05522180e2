package index

import (
	"testing"

	"github.com/blevesearch/bleve/v2"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/record"
	"github.com/jsonai/jsonai/internal/shred"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shredFixture(t *testing.T, file, src string) []*record.Record {
	t.Helper()
	v, err := jsonval.Parse([]byte(src))
	require.NoError(t, err)
	recs := shred.Shred(v, file)
	for i, r := range recs {
		r.DocID = int64(i)
	}
	return recs
}

func TestBuildOneShardPerFile(t *testing.T) {
	t.Parallel()

	recs := shredFixture(t, "a.json", `{"name":"alpha"}`)
	recs = append(recs, shredFixture(t, "b.json", `{"name":"beta"}`)...)

	shards, err := Build(recs)
	require.NoError(t, err)
	require.Len(t, shards, 2)
	assert.Equal(t, "a.json", shards[0].File)
	assert.Equal(t, "b.json", shards[1].File)
}

func TestShardSearchableByFieldAndAll(t *testing.T) {
	t.Parallel()

	recs := shredFixture(t, "a.json", `{"name":"alpha wolf"}`)
	shards, err := Build(recs)
	require.NoError(t, err)
	require.Len(t, shards, 1)

	q := bleveMatchAll(t, shards[0], "field_name", "wolf")
	require.NotEmpty(t, q)

	rec, ok := shards[0].RecordFor(q[0])
	require.True(t, ok)
	assert.Equal(t, "a.json", rec.SourceFile)
}

func bleveMatchAll(t *testing.T, shard *Shard, field, term string) []string {
	t.Helper()
	mq := bleve.NewMatchQuery(term)
	mq.SetField(field)
	req := bleve.NewSearchRequest(mq)
	res, err := shard.Index.Search(req)
	require.NoError(t, err)
	ids := make([]string, len(res.Hits))
	for i, h := range res.Hits {
		ids[i] = h.ID
	}
	return ids
}
