// Package dedup implements the deepest-match deduplication rule from
// spec §4.7: when both an ancestor and a descendant of the same file match
// a query, only the descendant survives.
package dedup

import (
	"sort"

	"github.com/jsonai/jsonai/internal/record"
	"github.com/zeebo/xxh3"
)

// Hit pairs a matched Record with its engine score. Dedup operates on Hits
// rather than bare Records so the surviving hit keeps its own score even
// when a dropped ancestor scored higher (spec §4.7, "Score assignment
// after dedup").
type Hit struct {
	Record *record.Record
	Score  float64
}

// Dedup collapses parent-child overlapping matches to the deepest match,
// within each source file independently (cross-file dedup is an explicit
// Open Question in spec §9 and is deliberately not performed). The
// implementation sorts by (source_file, depth descending) and keeps a hit
// only if its pointer is not a prefix of any already-kept pointer from the
// same file -- equivalent to spec §4.7's "sorted set of kept pointers per
// file plus prefix check on insertion".
//
// Dedup is idempotent (invariant I3): running it again over its own output
// keeps every hit, because no survivor's pointer is a prefix of another
// survivor's pointer (invariant I4).
func Dedup(hits []Hit) []Hit {
	ordered := make([]Hit, len(hits))
	copy(ordered, hits)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Record.SourceFile != ordered[j].Record.SourceFile {
			return ordered[i].Record.SourceFile < ordered[j].Record.SourceFile
		}
		return ordered[i].Record.Depth > ordered[j].Record.Depth
	})

	kept := make(map[string][]Hit)    // source file -> kept hits, deepest first
	exact := make(map[uint64]bool)    // xxh3(file+pointer) -> already kept exactly
	var result []Hit

	for _, h := range ordered {
		file := h.Record.SourceFile
		exactKey := hitKey(file, h.Record.Pointer.Encode())
		if exact[exactKey] {
			// The same (file, pointer) pair already survived -- this happens
			// when multiple -q queries both match the same record. Skip the
			// O(depth) prefix scan entirely for this common case.
			continue
		}

		contained := false
		for _, k := range kept[file] {
			if h.Record.Pointer.IsPrefixOf(k.Record.Pointer) {
				contained = true
				break
			}
		}
		if contained {
			continue
		}
		kept[file] = append(kept[file], h)
		exact[exactKey] = true
		result = append(result, h)
	}

	// The prefix-check pass above needs hits grouped and ordered by
	// (source_file, depth); the caller needs them back in the score order
	// spec §4.6/§5 require ("descending score, ties broken by ascending
	// doc_id") so pagination slices the right page.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].Record.DocID < result[j].Record.DocID
	})

	return result
}

// hitKey hashes a (file, pointer) pair with xxh3 for the exact-duplicate
// fast path above.
func hitKey(file, pointer string) uint64 {
	h := xxh3.New()
	h.WriteString(file)
	h.WriteString("\x00")
	h.WriteString(pointer)
	return h.Sum64()
}
