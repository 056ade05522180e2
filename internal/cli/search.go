package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsonai/jsonai/internal/config"
	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/dedup"
	"github.com/jsonai/jsonai/internal/index"
	"github.com/jsonai/jsonai/internal/ingest"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/output"
	"github.com/jsonai/jsonai/internal/overflow"
	"github.com/jsonai/jsonai/internal/query"
	"github.com/jsonai/jsonai/internal/record"
	"github.com/jsonai/jsonai/internal/schema"
	"github.com/jsonai/jsonai/internal/search"
	"github.com/spf13/cobra"
)

var searchFlags *config.SearchFlags

var searchCmd = &cobra.Command{
	Use:   "search [input ...]",
	Short: "Search ingested JSON documents",
	Long: `search ingests one or more JSON files, directories, glob patterns, or
"-" for stdin, shreds them into addressable records, indexes the records,
and runs a query against the index.

If the post-dedup hit count exceeds the overflow threshold, search prints a
navigation plan (fields, facets, ready-to-run narrowing commands) instead
of result records -- see --plan and --no-overflow.`,
	RunE: runSearch,
}

func init() {
	searchFlags = config.BindSearchFlags(searchCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := config.ValidateSearchFlags(searchFlags); err != nil {
		return err
	}

	d := Defaults()
	if d == nil {
		d = config.DefaultDefaults()
	}

	if searchFlags.Schema != "" {
		return renderSchemaHint(cmd, searchFlags.Schema)
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := config.NewLogger("ingest")
	result, err := ingest.Ingest(ctx, args, ingest.Options{
		Concurrency: d.Concurrency,
		Stdin:       cmd.InOrStdin(),
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	shards, err := index.Build(result.Records)
	if err != nil {
		return err
	}

	mode := core.MatchMode(searchFlags.Mode)
	if !cmd.Flags().Changed("mode") && d.Mode != "" {
		mode = d.Mode
	}
	outputMode := core.OutputMode(searchFlags.OutputMode)
	if !cmd.Flags().Changed("output") && d.OutputMode != "" {
		outputMode = d.OutputMode
	}
	maxBytes := searchFlags.MaxBytes
	if maxBytes == 0 {
		maxBytes = d.MaxBytes
	}
	fields := searchFlags.Fields
	if searchFlags.All {
		fields = nil
	}

	queries := searchFlags.Queries
	if len(queries) == 0 {
		return core.NewUsageError("search requires at least one -q/--query", nil)
	}

	var allHits []dedup.Hit
	for _, q := range queries {
		compiled, err := query.Compile(query.Request{Text: q, Mode: mode, Fields: fields})
		if err != nil {
			return err
		}
		hits, err := search.Execute(shards, compiled, search.Options{
			Limit:  limitOrDefault(searchFlags.Limit, d.Limit),
			Offset: searchFlags.Offset,
		})
		if err != nil {
			return err
		}
		allHits = append(allHits, hits...)
	}

	deduped := dedup.Dedup(allHits)

	if searchFlags.CountOnly {
		data, err := output.Render(deduped, output.Options{
			Mode:      outputMode,
			CountOnly: true,
			Pretty:    resolvePretty(),
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return exitForHits(len(deduped))
	}

	threshold := searchFlags.Threshold
	if threshold <= 0 {
		threshold = d.OverflowThreshold
	}

	wantPlan := searchFlags.Plan || (!searchFlags.NoOverflow && overflow.Engage(deduped, overflow.Options{Threshold: threshold}))
	if wantPlan {
		return renderPlan(cmd, deduped, threshold, queries[0], searchFlags.All, args)
	}

	page := paginate(deduped, searchFlags.Offset, limitOrDefault(searchFlags.Limit, d.Limit))

	pretty := resolvePretty()
	data, err := output.Render(page, output.Options{
		Mode:     outputMode,
		Bare:     searchFlags.Bare,
		Select:   searchFlags.Select,
		MaxBytes: maxBytes,
		Pretty:   pretty,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return exitForHits(len(deduped))
}

func limitOrDefault(flagVal, configVal int) int {
	if flagVal > 0 {
		return flagVal
	}
	return configVal
}

func paginate(hits []dedup.Hit, offset, limit int) []dedup.Hit {
	if offset >= len(hits) {
		return nil
	}
	end := len(hits)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return hits[offset:end]
}

func resolvePretty() bool {
	if globalFlags == nil {
		return false
	}
	if globalFlags.Compact {
		return false
	}
	return globalFlags.Pretty || (resolvedDefaults != nil && resolvedDefaults.Pretty)
}

func exitForHits(n int) error {
	if n == 0 {
		setExitOverride(int(core.ExitNoMatch))
	}
	return nil
}

type schemaField struct {
	Name           string `json:"name"`
	DistinctValues int    `json:"distinct_values"`
}

// renderFields implements the schema report printed by `jsonai fields`:
// one entry per distinct field path discovered across the ingested
// records, with its cardinality (spec §6.1, §4.8). `search --schema` uses
// renderSchemaHint instead.
func renderFields(cmd *cobra.Command, records []*record.Record) error {
	stats := schema.Discover(records)
	fields := make([]schemaField, len(stats))
	for i, st := range stats {
		fields[i] = schemaField{Name: st.Name, DistinctValues: st.Cardinality()}
	}

	var data []byte
	var err error
	if resolvePretty() {
		data, err = json.MarshalIndent(fields, "", "  ")
	} else {
		data, err = json.Marshal(fields)
	}
	if err != nil {
		return core.NewEngineError("serializing schema report", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// schemaHintField is a bare field name with no cardinality -- --schema
// <file> enumerates paths from a JSON Schema document, not from records,
// so there is no occurrence count to report.
type schemaHintField struct {
	Name string `json:"name"`
}

// renderSchemaHint implements search --schema <file>: it reads a JSON
// Schema document and prints its leaf field paths without ingesting or
// shredding any records (spec.md §6.1's --schema hint).
func renderSchemaHint(cmd *cobra.Command, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.NewInputError(fmt.Sprintf("reading schema %s", path), err)
	}
	doc, err := jsonval.Parse(data)
	if err != nil {
		return core.NewParseError(fmt.Sprintf("parsing schema %s", path), err)
	}

	names := schema.DiscoverFromJSONSchema(doc)
	fields := make([]schemaHintField, len(names))
	for i, n := range names {
		fields[i] = schemaHintField{Name: n}
	}

	var out []byte
	if resolvePretty() {
		out, err = json.MarshalIndent(fields, "", "  ")
	} else {
		out, err = json.Marshal(fields)
	}
	if err != nil {
		return core.NewEngineError("serializing schema hint report", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func renderPlan(cmd *cobra.Command, hits []dedup.Hit, threshold int, query string, all bool, inputs []string) error {
	plan := overflow.Build(hits, overflow.Options{Threshold: threshold, Query: query, All: all, Inputs: inputs})

	var data []byte
	var err error
	if resolvePretty() {
		data, err = json.MarshalIndent(plan, "", "  ")
	} else {
		data, err = json.Marshal(plan)
	}
	if err != nil {
		return core.NewEngineError("serializing overflow plan", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return exitForHits(len(hits))
}
