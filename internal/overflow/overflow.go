// Package overflow implements the narrowing planner that engages instead
// of returning result records when a search produces too many post-dedup
// hits (spec §4.9): rather than dump hundreds of matches, jsonai reports
// which fields would usefully narrow the query.
package overflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/dedup"
	"github.com/jsonai/jsonai/internal/record"
	"github.com/jsonai/jsonai/internal/schema"
)

// MaxFacetCardinality bounds which fields are offered as facets: a field
// with too many distinct values (e.g. a free-text description) makes a
// useless narrowing suggestion.
const MaxFacetCardinality = 20

// FieldInfo is one leaf field seen in the overflowing hit set, with its
// distinct-value count.
type FieldInfo struct {
	Name           string `json:"name"`
	DistinctValues int    `json:"distinct_values"`
}

// FacetValue is one candidate value for a facet field, with its count
// among the overflowing hit set.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facet is a low-cardinality field worth narrowing on, with its most
// common values.
type Facet struct {
	Field  string       `json:"field"`
	Values []FacetValue `json:"values"`
}

// Plan is the overflow response: no result records, only narrowing
// guidance.
type Plan struct {
	TotalMatches int         `json:"total_matches"`
	Fields       []FieldInfo `json:"fields"`
	Facets       []Facet     `json:"facets"`
	Commands     []string    `json:"commands"`
}

// Options configures planning.
type Options struct {
	// Threshold is the post-dedup hit count that triggers a Plan instead of
	// records; 0 uses core.DefaultOverflowThreshold.
	Threshold int

	// Query is the original search text, echoed into each narrowing command
	// so it can be run as-is (spec.md §4.9's "ready-to-run" requirement).
	Query string

	// All mirrors the --all flag of the search that produced these hits.
	All bool

	// Inputs are the original <INPUT> positional arguments the search was
	// run against; they are appended to each generated command so it is
	// actually runnable as-is (spec.md §6.1's mandatory <INPUT> argument,
	// spec.md §8 scenario D).
	Inputs []string
}

// Engage reports whether hits should produce a Plan instead of records.
func Engage(hits []dedup.Hit, opts Options) bool {
	threshold := opts.Threshold
	if threshold <= 0 {
		threshold = core.DefaultOverflowThreshold
	}
	return len(hits) > threshold
}

// Build constructs a Plan from the full deduped hit set, before pagination
// (spec §4.9): fields ordered by ascending cardinality (low-cardinality
// fields narrow a query the most), each field with cardinality ≤
// MaxFacetCardinality gets a facet of its top 5 values with counts, and one
// ready-to-run command per facet value, reusing the original query text.
func Build(hits []dedup.Hit, opts Options) Plan {
	recs := make([]*record.Record, len(hits))
	for i, h := range hits {
		recs[i] = h.Record
	}
	stats := schema.Discover(recs)

	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].Cardinality() != stats[j].Cardinality() {
			return stats[i].Cardinality() < stats[j].Cardinality()
		}
		return stats[i].Name < stats[j].Name
	})

	plan := Plan{TotalMatches: len(hits)}
	for _, st := range stats {
		plan.Fields = append(plan.Fields, FieldInfo{Name: st.Name, DistinctValues: st.Cardinality()})
	}

	for _, st := range stats {
		if st.Cardinality() == 0 || st.Cardinality() > MaxFacetCardinality {
			continue
		}
		top := st.TopValues(5)
		values := make([]FacetValue, len(top))
		for i, tv := range top {
			values[i] = FacetValue{Value: tv.Value, Count: tv.Count}
		}
		plan.Facets = append(plan.Facets, Facet{Field: st.Name, Values: values})
		allFlag := ""
		if opts.All {
			allFlag = " --all"
		}
		inputs := strings.Join(opts.Inputs, " ")
		for _, tv := range top {
			plan.Commands = append(plan.Commands,
				fmt.Sprintf("jsonai search -q %s%s -f %s -q %s %s", opts.Query, allFlag, st.Name, tv.Value, inputs))
		}
	}

	return plan
}
