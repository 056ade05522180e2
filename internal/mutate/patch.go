package mutate

import (
	"fmt"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/pointer"
)

// PatchOp is one operation of an RFC 6902 JSON Patch document.
type PatchOp struct {
	Op    string // test, add, remove, replace, move, copy
	Path  string
	From  string // move, copy only
	Value *jsonval.Value
}

// ApplyPatch runs ops in order against a clone of root. If any operation
// fails -- including a "test" mismatch -- the whole patch is aborted, nil
// is returned with the error, and root is left unmodified; ApplyPatch
// never returns a partially mutated document (spec §4.8).
func ApplyPatch(root *jsonval.Value, ops []PatchOp) (*jsonval.Value, error) {
	clone := root.Clone()
	for i, op := range ops {
		var err error
		clone, err = applyOne(clone, op)
		if err != nil {
			return nil, fmt.Errorf("patch operation %d (%s %s): %w", i, op.Op, op.Path, err)
		}
	}
	return clone, nil
}

func applyOne(root *jsonval.Value, op PatchOp) (*jsonval.Value, error) {
	ptr, err := pointer.Decode(op.Path)
	if err != nil {
		return nil, core.NewPointerError(op.Path, err)
	}

	switch op.Op {
	case "test":
		found, err := jsonval.Navigate(root, ptr)
		if err != nil {
			return nil, core.NewPatchTestFailed(fmt.Sprintf("path %s does not exist", op.Path))
		}
		if !found.Equal(op.Value) {
			return nil, core.NewPatchTestFailed(fmt.Sprintf("value at %s does not match", op.Path))
		}
		return root, nil

	case "add":
		return setAt(root, ptr, op.Value, true)

	case "replace":
		if _, err := jsonval.Navigate(root, ptr); err != nil {
			return nil, core.NewPointerError(op.Path, err)
		}
		return setAt(root, ptr, op.Value, false)

	case "remove":
		_, newRoot, err := removeAt(root, ptr)
		return newRoot, err

	case "move":
		fromPtr, err := pointer.Decode(op.From)
		if err != nil {
			return nil, core.NewPointerError(op.From, err)
		}
		if fromPtr.IsPrefixOf(ptr) {
			return nil, core.NewPointerError(fmt.Sprintf("cannot move %s into its own descendant %s", op.From, op.Path), nil)
		}
		val, err := jsonval.Navigate(root, fromPtr)
		if err != nil {
			return nil, core.NewPointerError(op.From, err)
		}
		valCopy := val.Clone()
		_, root, err = removeAt(root, fromPtr)
		if err != nil {
			return nil, err
		}
		return setAt(root, ptr, valCopy, true)

	case "copy":
		fromPtr, err := pointer.Decode(op.From)
		if err != nil {
			return nil, core.NewPointerError(op.From, err)
		}
		val, err := jsonval.Navigate(root, fromPtr)
		if err != nil {
			return nil, core.NewPointerError(op.From, err)
		}
		return setAt(root, ptr, val.Clone(), true)

	default:
		return nil, core.NewUsageError(fmt.Sprintf("unknown patch operation %q", op.Op), nil)
	}
}
