package config

import (
	"fmt"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/spf13/cobra"
)

// GlobalFlags collects the flags shared by every jsonai subcommand.
type GlobalFlags struct {
	Config  string // --config path to a .jsonai.toml file
	Pretty  bool
	Compact bool
	Verbose bool
	Quiet   bool
}

// BindGlobalFlags registers the persistent flags shared by every subcommand.
func BindGlobalFlags(cmd *cobra.Command) *GlobalFlags {
	gf := &GlobalFlags{}
	pf := cmd.PersistentFlags()
	pf.StringVar(&gf.Config, "config", "", "path to a .jsonai.toml config file (default: ./.jsonai.toml)")
	pf.BoolVar(&gf.Pretty, "pretty", false, "indent the JSON envelope")
	pf.BoolVar(&gf.Compact, "compact", false, "force compact JSON output, overriding --pretty")
	pf.BoolVarP(&gf.Verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&gf.Quiet, "quiet", false, "suppress all logging except errors")
	return gf
}

// ValidateGlobalFlags checks for mutually exclusive global flags.
func ValidateGlobalFlags(gf *GlobalFlags) error {
	if gf.Verbose && gf.Quiet {
		return core.NewUsageError("--verbose and --quiet are mutually exclusive", nil)
	}
	if gf.Pretty && gf.Compact {
		return core.NewUsageError("--pretty and --compact are mutually exclusive", nil)
	}
	return nil
}

// SearchFlags collects the flags specific to the search subcommand.
type SearchFlags struct {
	Queries    []string // -q, repeatable; multiple queries OR together
	Fields     []string // -f, repeatable; multiple fields OR together
	All        bool     // -a, search every field (default when Fields is empty)
	Mode       string   // -m: text, exact, fuzzy, regex
	OutputMode string   // -o: match, hit, value
	Limit      int      // -l
	Offset     int
	CountOnly  bool
	Select     []string // --select f1,f2,...
	Bare       bool
	MaxBytes   int
	Schema     string // --schema <file>: skip shredding, enumerate fields from a JSON Schema's properties tree instead
	Threshold  int  // --threshold overrides the overflow trigger count
	Plan       bool // --plan forces the overflow planner regardless of hit count
	NoOverflow bool // --no-overflow always returns records, never a plan
}

// BindSearchFlags registers the search subcommand's flags.
func BindSearchFlags(cmd *cobra.Command) *SearchFlags {
	sf := &SearchFlags{}
	fl := cmd.Flags()
	fl.StringArrayVarP(&sf.Queries, "query", "q", nil, "search query text (repeatable; OR together)")
	fl.StringArrayVarP(&sf.Fields, "field", "f", nil, "restrict the query to this field, dot-path (repeatable; OR together)")
	fl.BoolVarP(&sf.All, "all", "a", false, "search every field (default when --field is omitted)")
	fl.StringVarP(&sf.Mode, "mode", "m", string(core.ModeText), "match mode: text, exact, fuzzy, regex")
	fl.StringVarP(&sf.OutputMode, "output", "o", string(core.OutputMatch), "result shape: match, hit, value")
	fl.IntVarP(&sf.Limit, "limit", "l", 0, "maximum number of result records (0 uses the configured default)")
	fl.IntVar(&sf.Offset, "offset", 0, "number of leading results to skip")
	fl.BoolVar(&sf.CountOnly, "count-only", false, "emit the meta envelope with the total match count and no result records")
	fl.StringSliceVar(&sf.Select, "select", nil, "comma-separated list of dot-path fields to project")
	fl.BoolVar(&sf.Bare, "bare", false, "emit a top-level JSON array instead of the meta envelope")
	fl.IntVar(&sf.MaxBytes, "max-bytes", 0, "cap the serialized output size in bytes (0 is unbounded)")
	fl.StringVar(&sf.Schema, "schema", "", "enumerate fields from this JSON Schema's properties tree instead of shredding records")
	fl.IntVar(&sf.Threshold, "threshold", 0, "override the overflow-plan hit-count trigger (0 uses the configured default)")
	fl.BoolVar(&sf.Plan, "plan", false, "always produce an overflow plan, regardless of hit count")
	fl.BoolVar(&sf.NoOverflow, "no-overflow", false, "always return result records, never an overflow plan")
	return sf
}

// ValidateSearchFlags checks mutual exclusion and normalizes SearchFlags.
func ValidateSearchFlags(sf *SearchFlags) error {
	if sf.All && len(sf.Fields) > 0 {
		return core.NewUsageError("--all and --field are mutually exclusive", nil)
	}
	if sf.Plan && sf.NoOverflow {
		return core.NewUsageError("--plan and --no-overflow are mutually exclusive", nil)
	}
	switch core.MatchMode(sf.Mode) {
	case core.ModeText, core.ModeExact, core.ModeFuzzy, core.ModeRegex:
	default:
		return core.NewUsageError(fmt.Sprintf("--mode: invalid value %q (allowed: text, exact, fuzzy, regex)", sf.Mode), nil)
	}
	switch core.OutputMode(sf.OutputMode) {
	case core.OutputMatch, core.OutputHit, core.OutputValue:
	default:
		return core.NewUsageError(fmt.Sprintf("--output: invalid value %q (allowed: match, hit, value)", sf.OutputMode), nil)
	}
	if sf.Offset < 0 {
		return core.NewUsageError("--offset must be non-negative", nil)
	}
	if sf.MaxBytes < 0 {
		return core.NewUsageError("--max-bytes must be non-negative", nil)
	}
	return nil
}

// MutateFlags collects the flags specific to the set/add/delete/patch
// subcommands.
// MutateFlags collects the flags specific to the set/add/delete/patch
// subcommands. -p/--pointer is overloaded per spec §6.1: for set/add/delete
// it is an RFC 6901 JSON Pointer; for patch it is the path to an RFC 6902
// patch document, or "-" to read the patch from stdin.
type MutateFlags struct {
	Pointer string // -p: JSON Pointer (set/add/delete) or patch document path/"-" (patch)
	DryRun  bool   // --dry-run: simulate the mutation without writing the file
	Output  string // -o: write the result to a different path than the input
}

// BindMutateFlags registers the set/add/delete/patch subcommands' flags.
// The help text for -p is generic enough to cover both meanings; each
// command's own Long description spells out which one applies.
func BindMutateFlags(cmd *cobra.Command) *MutateFlags {
	mf := &MutateFlags{}
	fl := cmd.Flags()
	fl.StringVarP(&mf.Pointer, "pointer", "p", "", "target JSON Pointer, or (patch only) the patch document path/\"-\"")
	fl.BoolVar(&mf.DryRun, "dry-run", false, "print the result without writing the file")
	fl.StringVarP(&mf.Output, "output", "o", "", "write the result to this path instead of the input file")
	return mf
}
