// Package record defines Record, the unit of indexing shared by the
// shredder, index, searcher, and deduper (spec §3).
package record

import (
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/pointer"
)

// Record is an addressable sub-document: every object and every array
// element encountered while shredding a parsed JSON tree (spec §3's
// ShreddingRule). Records never own a deep copy of their payload -- they
// hold a reference into the tree that Ingest parsed, so shredding a large
// document allocates only the path/metadata overhead of one Record per
// object/element, not a second copy of the data.
type Record struct {
	// DocID is a process-local identifier assigned post-shred in canonical
	// serial order (file path sort order, then pre-order traversal order),
	// so that doc ID assignment is unaffected by ingest/shred parallelism
	// (spec §5 Ordering guarantees).
	DocID int64

	// SourceFile is the path the record came from, or "-" for stdin.
	SourceFile string

	// Pointer addresses this record's payload inside its source tree.
	Pointer pointer.Pointer

	// Depth is len(Pointer); the root record (if the root is an object) has
	// depth 0.
	Depth int

	// Payload is the JsonValue at Pointer -- a reference into the parsed
	// tree, never a deep copy.
	Payload *jsonval.Value
}
