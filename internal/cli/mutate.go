package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jsonai/jsonai/internal/config"
	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/mutate"
	"github.com/jsonai/jsonai/internal/pointer"
	"github.com/spf13/cobra"
)

var setFlags, addFlags, deleteFlags, patchFlags *config.MutateFlags

var setCmd = &cobra.Command{
	Use:   "set <value> <file>",
	Short: "Replace the value at a JSON Pointer",
	Long: `set reads the JSON document at <file>, replaces the value addressed
by -p/--pointer with <value> (a JSON literal), and writes the result back
atomically unless --dry-run is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(cmd, setFlags, args[1], args[0], mutate.Set)
	},
}

var addCmd = &cobra.Command{
	Use:   "add <value> <file>",
	Short: "Insert a value at a JSON Pointer",
	Long: `add reads the JSON document at <file> and inserts <value> (a JSON
literal) at the location addressed by -p/--pointer: as a new object key, or
at an array index (the trailing "-" token appends). Writes the result back
atomically unless --dry-run is given.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(cmd, addFlags, args[1], args[0], mutate.Add)
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <file>",
	Short: "Remove the value at a JSON Pointer",
	Long: `delete reads the JSON document at <file> and removes the value
addressed by -p/--pointer. Writes the result back atomically unless
--dry-run is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMutate(cmd, deleteFlags, args[0], "", func(root *jsonval.Value, ptr pointer.Pointer, _ *jsonval.Value) (*jsonval.Value, error) {
			return mutate.Delete(root, ptr)
		})
	},
}

var patchCmd = &cobra.Command{
	Use:   "patch <file>",
	Short: "Apply an RFC 6902 JSON Patch document",
	Long: `patch reads the JSON document at <file> and an RFC 6902 JSON Patch
document from the path given by -p/--pointer, or from stdin when that value
is "-", applying its operations in sequence. If any operation fails --
including a failed "test" -- the original document is left untouched and
patch exits with an error. Writes the result back atomically unless
--dry-run is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runPatch,
}

func init() {
	setFlags = config.BindMutateFlags(setCmd)
	addFlags = config.BindMutateFlags(addCmd)
	deleteFlags = config.BindMutateFlags(deleteCmd)
	patchFlags = config.BindMutateFlags(patchCmd)

	rootCmd.AddCommand(setCmd, addCmd, deleteCmd, patchCmd)
}

type mutateOp func(root *jsonval.Value, ptr pointer.Pointer, val *jsonval.Value) (*jsonval.Value, error)

func runMutate(cmd *cobra.Command, flags *config.MutateFlags, filePath, rawValue string, op mutateOp) error {
	if flags.Pointer == "" {
		return core.NewUsageError("-p/--pointer is required", nil)
	}
	ptr, err := pointer.Decode(flags.Pointer)
	if err != nil {
		return core.NewParseError(fmt.Sprintf("invalid pointer %q", flags.Pointer), err)
	}

	root, err := readJSONFile(filePath)
	if err != nil {
		return err
	}

	var val *jsonval.Value
	if rawValue != "" {
		val, err = jsonval.Parse([]byte(rawValue))
		if err != nil {
			return core.NewParseError(fmt.Sprintf("invalid JSON value %q", rawValue), err)
		}
	}

	newRoot, err := op(root, ptr, val)
	if err != nil {
		return err
	}

	return emitMutationResult(cmd, flags, filePath, newRoot)
}

func runPatch(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	root, err := readJSONFile(filePath)
	if err != nil {
		return err
	}

	if patchFlags.Pointer == "" {
		return core.NewUsageError("-p/--pointer is required (path to the patch document, or \"-\" for stdin)", nil)
	}

	var patchData []byte
	if patchFlags.Pointer == "-" {
		patchData, err = io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return core.NewInputError("reading patch document from stdin", err)
		}
	} else {
		patchData, err = os.ReadFile(patchFlags.Pointer)
		if err != nil {
			return core.NewInputError(fmt.Sprintf("reading patch file %s", patchFlags.Pointer), err)
		}
	}

	var raw []rawPatchOp
	if err := json.Unmarshal(patchData, &raw); err != nil {
		return core.NewParseError("invalid JSON Patch document", err)
	}

	ops := make([]mutate.PatchOp, len(raw))
	for i, r := range raw {
		op := mutate.PatchOp{Op: r.Op, Path: r.Path, From: r.From}
		if r.Value != nil {
			v, err := jsonval.Parse(r.Value)
			if err != nil {
				return core.NewParseError(fmt.Sprintf("patch operation %d: invalid value", i), err)
			}
			op.Value = v
		}
		ops[i] = op
	}

	newRoot, err := mutate.ApplyPatch(root, ops)
	if err != nil {
		return err
	}

	return emitMutationResult(cmd, patchFlags, filePath, newRoot)
}

// rawPatchOp mirrors the wire shape of a single RFC 6902 operation before
// its Value is decoded into a *jsonval.Value.
type rawPatchOp struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

func readJSONFile(path string) (*jsonval.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewInputError(fmt.Sprintf("reading %s", path), err)
	}
	v, err := jsonval.Parse(data)
	if err != nil {
		return nil, core.NewParseError(fmt.Sprintf("parsing %s", path), err)
	}
	return v, nil
}

func emitMutationResult(cmd *cobra.Command, flags *config.MutateFlags, inputPath string, root *jsonval.Value) error {
	pretty := resolvePretty()
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(root, "", "  ")
	} else {
		data, err = json.Marshal(root)
	}
	if err != nil {
		return core.NewEngineError("serializing mutation result", err)
	}

	if flags.DryRun {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	outPath := flags.Output
	if outPath == "" {
		outPath = inputPath
	}
	if err := mutate.WriteAtomic(outPath, data); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), outPath)
	return nil
}
