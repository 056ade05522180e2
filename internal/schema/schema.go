// Package schema discovers the distinct leaf field names present across a
// set of Records and their value cardinality, used both by the `fields`
// command (spec §4.2) and by the overflow planner's facet selection
// (spec §4.9).
package schema

import (
	"sort"

	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/record"
)

// FieldStat summarizes one leaf field across a record set.
type FieldStat struct {
	Name   string
	Count  int            // number of records carrying this field
	Values map[string]int // observed value -> occurrence count
}

// Cardinality is the number of distinct values observed for the field.
func (f FieldStat) Cardinality() int { return len(f.Values) }

// TopValues returns up to n (value, count) pairs ordered by descending
// count, ties broken by value for determinism.
func (f FieldStat) TopValues(n int) []ValueCount {
	out := make([]ValueCount, 0, len(f.Values))
	for v, c := range f.Values {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// ValueCount is one observed value and how many records carried it.
type ValueCount struct {
	Value string
	Count int
}

// DiscoverFromJSONSchema extracts leaf field paths from a JSON Schema
// document's "properties"/"items" tree instead of walking record payloads
// (spec.md §6.1's --schema hint, "a hint for field enumeration only" --
// intentionally no cardinality, since no records are read).
func DiscoverFromJSONSchema(doc *jsonval.Value) []string {
	var out []string
	walkSchemaProperties(doc, "", &out)
	sort.Strings(out)
	return out
}

func walkSchemaProperties(node *jsonval.Value, prefix string, out *[]string) {
	if node == nil || !node.IsObject() {
		return
	}
	if props, ok := node.ObjectVal().Get("properties"); ok && props.IsObject() {
		for p := props.ObjectVal().Oldest(); p != nil; p = p.Next() {
			path := p.Key
			if prefix != "" {
				path = prefix + "." + p.Key
			}
			*out = append(*out, path)
			walkSchemaProperties(p.Value, path, out)
		}
	}
	if items, ok := node.ObjectVal().Get("items"); ok {
		walkSchemaProperties(items, prefix, out)
	}
}

// Discover walks every record's payload and builds one FieldStat per
// distinct leaf path, sorted by name.
func Discover(records []*record.Record) []FieldStat {
	stats := map[string]*FieldStat{}
	var order []string

	for _, r := range records {
		for _, leaf := range jsonval.Leaves(r.Payload) {
			st, ok := stats[leaf.Path]
			if !ok {
				st = &FieldStat{Name: leaf.Path, Values: map[string]int{}}
				stats[leaf.Path] = st
				order = append(order, leaf.Path)
			}
			st.Count++
			st.Values[leaf.Text]++
		}
	}

	sort.Strings(order)
	out := make([]FieldStat, len(order))
	for i, name := range order {
		out[i] = *stats[name]
	}
	return out
}
