// Package index builds the in-memory Bleve full-text index jsonai searches
// against. One Shard is built per source file (spec §4.4): a document is
// indexed for every shredded Record, with one `field_<dotted.path>` text
// field per leaf value plus an `__all__` catch-all used by "search
// everything" queries, and a stored, unindexed `doc_id`/`pointer` pair used
// to recover the originating Record after a hit.
package index

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	bleveMapping "github.com/blevesearch/bleve/v2/mapping"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/record"
)

// textAnalyzerName is the custom analyzer every field_* and __all__ field
// uses: unicode tokenizer plus lowercasing, nothing else. spec §4.4 is
// explicit that text fields get no stemming and no stopword filter, which
// rules out Bleve's built-in "standard" analyzer (unicode + lowercase + the
// "en" stopword list).
const textAnalyzerName = "jsonai_text"

// rawFieldSuffix names the companion un-analyzed field stored alongside
// every analyzed field_<name>/__all__ field. exact and regex mode (spec
// §4.5) compare against the field's raw, pre-tokenization value, which the
// tokenized field_<name> mapping cannot provide once a multi-token string
// has been split into separate indexed terms.
const rawFieldSuffix = ".raw"

// RawFieldName returns the name of field's un-analyzed companion field, as
// queried by exact and regex mode.
func RawFieldName(field string) string {
	return field + rawFieldSuffix
}

// Shard is one file's searchable index plus the means to map a hit back to
// its Record.
type Shard struct {
	File    string
	Index   bleve.Index
	records map[string]*record.Record // keyed by bleve document ID (doc_id as decimal string)
}

// RecordFor resolves a Bleve document ID back to the Record it was built
// from.
func (s *Shard) RecordFor(bleveDocID string) (*record.Record, bool) {
	r, ok := s.records[bleveDocID]
	return r, ok
}

// Build groups records by source file and constructs one Shard per file, in
// the same order the files were ingested.
func Build(records []*record.Record) ([]*Shard, error) {
	order := []string{}
	byFile := map[string][]*record.Record{}
	for _, r := range records {
		if _, ok := byFile[r.SourceFile]; !ok {
			order = append(order, r.SourceFile)
		}
		byFile[r.SourceFile] = append(byFile[r.SourceFile], r)
	}

	shards := make([]*Shard, 0, len(order))
	for _, file := range order {
		shard, err := buildShard(file, byFile[file])
		if err != nil {
			return nil, err
		}
		shards = append(shards, shard)
	}
	return shards, nil
}

func buildShard(file string, records []*record.Record) (*Shard, error) {
	fieldPaths := map[string]bool{}
	for _, r := range records {
		for _, leaf := range jsonval.Leaves(r.Payload) {
			fieldPaths[leaf.Path] = true
		}
	}

	mapping, err := indexMapping(fieldPaths)
	if err != nil {
		return nil, core.NewEngineError(fmt.Sprintf("building index mapping for %s", file), err)
	}
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, core.NewEngineError(fmt.Sprintf("building index for %s", file), err)
	}

	byBleveID := make(map[string]*record.Record, len(records))
	batch := idx.NewBatch()
	for _, r := range records {
		bleveID := strconv.FormatInt(r.DocID, 10)
		byBleveID[bleveID] = r

		doc := map[string]interface{}{
			"doc_id":  float64(r.DocID),
			"pointer": r.Pointer.Encode(),
		}
		var allText []string
		for _, leaf := range jsonval.Leaves(r.Payload) {
			fieldName := "field_" + leaf.Path
			doc[fieldName] = leaf.Text
			doc[RawFieldName(fieldName)] = leaf.Text
			allText = append(allText, leaf.Text)
		}
		all := strings.Join(allText, " ")
		doc["__all__"] = all
		doc[RawFieldName("__all__")] = all

		if err := batch.Index(bleveID, doc); err != nil {
			return nil, core.NewEngineError(fmt.Sprintf("indexing record %s", bleveID), err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, core.NewEngineError(fmt.Sprintf("committing index batch for %s", file), err)
	}

	return &Shard{File: file, Index: idx, records: byBleveID}, nil
}

// indexMapping builds the mapping for one shard: doc_id and pointer are
// stored only (never analyzed, never searched); every field_<path> and
// __all__ field discovered in fieldPaths gets two field mappings -- the
// analyzed field_<path> (textAnalyzerName: lowercase, no stopwords) used by
// text and fuzzy mode, and the un-analyzed field_<path>.raw (the built-in
// "keyword" analyzer, a single verbatim token) used by exact and regex
// mode, which compare against the pre-tokenization value (spec §4.5).
// Fields are mapped explicitly rather than left dynamic because a
// tokenized field and its raw companion need different analyzers on what
// Bleve would otherwise treat as one dynamically typed field.
func indexMapping(fieldPaths map[string]bool) (*bleveMapping.IndexMappingImpl, error) {
	docMapping := bleve.NewDocumentMapping()

	idField := bleve.NewNumericFieldMapping()
	idField.Index = false
	idField.Store = true
	docMapping.AddFieldMappingsAt("doc_id", idField)

	ptrField := bleve.NewTextFieldMapping()
	ptrField.Index = false
	ptrField.Store = true
	docMapping.AddFieldMappingsAt("pointer", ptrField)

	addTextAndRawFields(docMapping, "__all__")
	for path := range fieldPaths {
		addTextAndRawFields(docMapping, "field_"+path)
	}

	mapping := bleve.NewIndexMapping()
	if err := mapping.AddCustomAnalyzer(textAnalyzerName, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}
	mapping.DefaultMapping = docMapping
	mapping.DefaultAnalyzer = textAnalyzerName
	return mapping, nil
}

// addTextAndRawFields registers the analyzed/raw field pair for one field
// name on docMapping.
func addTextAndRawFields(docMapping *bleveMapping.DocumentMapping, field string) {
	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = textAnalyzerName
	docMapping.AddFieldMappingsAt(field, textField)

	rawField := bleve.NewTextFieldMapping()
	rawField.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt(RawFieldName(field), rawField)
}
