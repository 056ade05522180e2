// Package shred walks a parsed JSON tree and emits the flat stream of
// addressable Records defined by the ShreddingRule in spec §3.
package shred

import (
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/pointer"
	"github.com/jsonai/jsonai/internal/record"
)

// Shred walks root depth-first, pre-order (parents before children so later
// deduplication can shortcut on depth) and returns one Record for every
// object encountered -- including the root, if it is an object -- and
// every element of every array. The array container itself is never
// emitted as a record; only its elements are. Primitive leaves are never
// emitted as standalone records except when they occupy an array position,
// in which case the position itself is the record.
//
// DocID is left unset (zero); callers assign it afterward, in canonical
// serial order across all shredded files, so that ingest parallelism
// cannot perturb doc ID assignment (spec §5).
func Shred(root *jsonval.Value, sourceFile string) []*record.Record {
	var out []*record.Record
	walk(root, pointer.Root(), sourceFile, &out)
	return out
}

// walk handles a value reached by object-key descent (never an array
// position -- see walkArrayElement for that case). Only objects produce a
// record here; bare scalars and arrays at a key position are not records
// themselves, only their own contents (object fields, array elements) are.
func walk(v *jsonval.Value, ptr pointer.Pointer, sourceFile string, out *[]*record.Record) {
	if v == nil {
		return
	}
	switch v.Kind() {
	case jsonval.Object:
		*out = append(*out, recordFor(v, ptr, sourceFile))
		for p := v.ObjectVal().Oldest(); p != nil; p = p.Next() {
			walk(p.Value, ptr.Child(p.Key), sourceFile, out)
		}
	case jsonval.Array:
		for i, elem := range v.ArrayVal() {
			walkArrayElement(elem, ptr.Child(itoa(i)), sourceFile, out)
		}
	}
}

// walkArrayElement handles a value reached by an array index. Every array
// element gets a record regardless of its kind (spec §3), then containers
// continue the walk inside it.
func walkArrayElement(v *jsonval.Value, ptr pointer.Pointer, sourceFile string, out *[]*record.Record) {
	if v == nil {
		return
	}
	*out = append(*out, recordFor(v, ptr, sourceFile))
	switch v.Kind() {
	case jsonval.Object:
		for p := v.ObjectVal().Oldest(); p != nil; p = p.Next() {
			walk(p.Value, ptr.Child(p.Key), sourceFile, out)
		}
	case jsonval.Array:
		for i, elem := range v.ArrayVal() {
			walkArrayElement(elem, ptr.Child(itoa(i)), sourceFile, out)
		}
	}
}

func recordFor(v *jsonval.Value, ptr pointer.Pointer, sourceFile string) *record.Record {
	return &record.Record{
		SourceFile: sourceFile,
		Pointer:    ptr,
		Depth:      ptr.Depth(),
		Payload:    v,
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	n := i
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}
