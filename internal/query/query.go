// Package query compiles a jsonai search request (query string, match mode,
// field selection) into the Bleve query tree the search engine executes.
// The four match modes name the Bleve query type they compile to: text ->
// match, exact -> term, fuzzy -> fuzzy, regex -> regexp (spec §4.5).
package query

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/blevesearch/bleve/v2"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/index"
)

// termPattern splits query text into tokens the same way indexing does
// (spec §4.4: "lowercase, split on non-alphanumeric").
var termPattern = regexp.MustCompile(`[[:alnum:]]+`)

func tokenize(text string) []string {
	return termPattern.FindAllString(strings.ToLower(text), -1)
}

// Request describes what to search for.
type Request struct {
	Text   string
	Mode   core.MatchMode
	Fields []string // dot-path leaf field names; empty (or [core.AllField]) means search __all__
}

// Compile builds the Bleve query for req. It does not reject a Fields list
// that mixes core.AllField with named fields (such a list searches __all__
// only); config.ValidateSearchFlags rejects --all with --field beforehand.
func Compile(req Request) (bleveQuery.Query, error) {
	if req.Text == "" {
		return nil, core.NewUsageError("query text must not be empty", nil)
	}

	targets := targetFields(req.Fields)

	if len(targets) == 1 {
		return fieldQuery(req.Mode, targets[0], req.Text)
	}

	disjunct := bleve.NewDisjunctionQuery()
	for _, f := range targets {
		q, err := fieldQuery(req.Mode, f, req.Text)
		if err != nil {
			return nil, err
		}
		disjunct.AddQuery(q)
	}
	return disjunct, nil
}

func targetFields(fields []string) []string {
	if len(fields) == 0 {
		return []string{"__all__"}
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		if f == core.AllField {
			return []string{"__all__"}
		}
		out[i] = "field_" + f
	}
	return out
}

func fieldQuery(mode core.MatchMode, field, text string) (bleveQuery.Query, error) {
	switch mode {
	case core.ModeText:
		mq := bleve.NewMatchQuery(text)
		mq.SetField(field)
		mq.Operator = bleveQuery.MatchQueryOperatorAnd
		return mq, nil

	case core.ModeExact:
		tq := bleve.NewTermQuery(text)
		tq.SetField(index.RawFieldName(field))
		return tq, nil

	case core.ModeFuzzy:
		terms := tokenize(text)
		if len(terms) == 0 {
			return nil, core.NewUsageError("fuzzy query must contain at least one alphanumeric term", nil)
		}
		if len(terms) == 1 {
			fq := bleve.NewFuzzyQuery(terms[0])
			fq.SetField(field)
			fq.Fuzziness = fuzzinessFor(terms[0])
			return fq, nil
		}
		conjunct := bleve.NewConjunctionQuery()
		for _, term := range terms {
			fq := bleve.NewFuzzyQuery(term)
			fq.SetField(field)
			fq.Fuzziness = fuzzinessFor(term)
			conjunct.AddQuery(fq)
		}
		return conjunct, nil

	case core.ModeRegex:
		rq := bleve.NewRegexpQuery(text)
		rq.SetField(index.RawFieldName(field))
		return rq, nil

	default:
		return nil, core.NewUsageError(fmt.Sprintf("unknown match mode %q", mode), nil)
	}
}

// fuzzinessFor scales the allowed edit distance with query length, per
// spec §4.5's length-tiered fuzzy thresholds: short terms tolerate fewer
// edits or a short term would match almost anything.
func fuzzinessFor(text string) int {
	switch {
	case len(text) <= 2:
		return 0
	case len(text) <= 4:
		return 1
	default:
		return 2
	}
}
