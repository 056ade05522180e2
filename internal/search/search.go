// Package search executes a compiled query across every file shard,
// merges the results, and converts Bleve hits back into dedup.Hit values
// ready for deduplication and pagination (spec §4.6).
package search

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/dedup"
	"github.com/jsonai/jsonai/internal/index"
)

// Options bounds how many candidates are retrieved before dedup runs.
type Options struct {
	Limit  int
	Offset int
}

// Execute runs q against every shard, requesting up to
// min(limit+offset+core.SearchSafetyMargin, shard size) hits per shard so
// that post-retrieval dedup (which can only shrink the result set) still
// has enough candidates to fill the caller's requested page.
func Execute(shards []*index.Shard, q bleveQuery.Query, opts Options) ([]dedup.Hit, error) {
	want := opts.Limit + opts.Offset + core.SearchSafetyMargin
	if want <= 0 {
		want = core.SearchSafetyMargin
	}

	var all []dedup.Hit
	for _, shard := range shards {
		size, err := shard.Index.DocCount()
		if err != nil {
			return nil, core.NewEngineError(fmt.Sprintf("counting documents in %s", shard.File), err)
		}
		shardWant := want
		if size > 0 && uint64(shardWant) > size {
			shardWant = int(size)
		}
		if shardWant <= 0 {
			continue
		}

		req := bleve.NewSearchRequestOptions(q, shardWant, 0, false)
		res, err := shard.Index.Search(req)
		if err != nil {
			return nil, core.NewEngineError(fmt.Sprintf("searching %s", shard.File), err)
		}

		for _, hit := range res.Hits {
			rec, ok := shard.RecordFor(hit.ID)
			if !ok {
				continue
			}
			all = append(all, dedup.Hit{Record: rec, Score: hit.Score})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Record.DocID < all[j].Record.DocID
	})

	return all, nil
}

// bleveDocID renders a Record's doc ID the same way index.Build does, kept
// here so callers constructing synthetic lookups (tests, tooling) stay in
// sync with the indexing side.
func bleveDocID(docID int64) string {
	return strconv.FormatInt(docID, 10)
}
