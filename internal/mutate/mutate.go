// Package mutate implements jsonai's write commands (set, add, delete,
// patch) as copy-on-write transforms over a jsonval.Value tree: every
// operation clones the document first and only returns the clone on
// success, so a caller that discards an error also discards any partial
// mutation (spec §4.8).
package mutate

import (
	"fmt"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/pointer"
)

// Set replaces the value addressed by ptr, requiring it to already exist
// (an array index must be in range; "-" is rejected). Setting the root
// pointer ("") replaces the whole document.
func Set(root *jsonval.Value, ptr pointer.Pointer, val *jsonval.Value) (*jsonval.Value, error) {
	clone := root.Clone()
	return setAt(clone, ptr, val, false)
}

// Add creates the value addressed by ptr: for an object it sets the key
// (creating or overwriting), for an array it inserts before the given
// index, and "-" appends. Adding at the root replaces the whole document.
func Add(root *jsonval.Value, ptr pointer.Pointer, val *jsonval.Value) (*jsonval.Value, error) {
	clone := root.Clone()
	return setAt(clone, ptr, val, true)
}

// Delete removes the value addressed by ptr. The root pointer cannot be
// deleted.
func Delete(root *jsonval.Value, ptr pointer.Pointer) (*jsonval.Value, error) {
	clone := root.Clone()
	_, newRoot, err := removeAt(clone, ptr)
	return newRoot, err
}

// setAt implements both Set (forAdd=false: the target must already exist,
// no "-" append token) and Add (forAdd=true: object keys may be new, array
// elements are inserted rather than overwritten).
func setAt(root *jsonval.Value, ptr pointer.Pointer, val *jsonval.Value, forAdd bool) (*jsonval.Value, error) {
	parentPtr, ok := ptr.Parent()
	if !ok {
		return val, nil
	}

	parent, err := jsonval.Navigate(root, parentPtr)
	if err != nil {
		return nil, core.NewPointerError(fmt.Sprintf("resolving parent of %s", ptr.Encode()), err)
	}

	last, _ := ptr.Last()
	switch parent.Kind() {
	case jsonval.Object:
		if !forAdd {
			if _, exists := parent.ObjectVal().Get(last); !exists {
				return nil, core.NewPointerError(fmt.Sprintf("key %q does not exist at %s", last, parentPtr.Encode()), nil)
			}
		}
		if err := parent.SetObjectKey(last, val); err != nil {
			return nil, core.NewPointerError(ptr.Encode(), err)
		}
	case jsonval.Array:
		idx, isAppend, err := pointer.ParseArrayIndex(last, parent.Len(), forAdd)
		if err != nil {
			return nil, core.NewPointerError(ptr.Encode(), err)
		}
		if isAppend {
			if err := parent.InsertArrayElement(parent.Len(), val); err != nil {
				return nil, core.NewPointerError(ptr.Encode(), err)
			}
			break
		}
		if forAdd {
			if err := parent.InsertArrayElement(idx, val); err != nil {
				return nil, core.NewPointerError(ptr.Encode(), err)
			}
		} else {
			if err := parent.ReplaceArrayElement(idx, val); err != nil {
				return nil, core.NewPointerError(ptr.Encode(), err)
			}
		}
	default:
		return nil, core.NewPointerError(fmt.Sprintf("%s is not a container", parentPtr.Encode()), nil)
	}
	return root, nil
}

// removeAt deletes the value addressed by ptr, returning the value that
// was removed and the (possibly unchanged) new root.
func removeAt(root *jsonval.Value, ptr pointer.Pointer) (removed, newRoot *jsonval.Value, err error) {
	parentPtr, ok := ptr.Parent()
	if !ok {
		return nil, nil, core.NewPointerError("cannot remove the document root", nil)
	}

	parent, err := jsonval.Navigate(root, parentPtr)
	if err != nil {
		return nil, nil, core.NewPointerError(fmt.Sprintf("resolving parent of %s", ptr.Encode()), err)
	}

	last, _ := ptr.Last()
	switch parent.Kind() {
	case jsonval.Object:
		old, found, derr := parent.DeleteObjectKey(last)
		if derr != nil {
			return nil, nil, core.NewPointerError(ptr.Encode(), derr)
		}
		if !found {
			return nil, nil, core.NewPointerError(fmt.Sprintf("key %q does not exist at %s", last, parentPtr.Encode()), nil)
		}
		return old, root, nil
	case jsonval.Array:
		idx, _, perr := pointer.ParseArrayIndex(last, parent.Len(), false)
		if perr != nil {
			return nil, nil, core.NewPointerError(ptr.Encode(), perr)
		}
		old, rerr := parent.RemoveArrayElement(idx)
		if rerr != nil {
			return nil, nil, core.NewPointerError(ptr.Encode(), rerr)
		}
		return old, root, nil
	default:
		return nil, nil, core.NewPointerError(fmt.Sprintf("%s is not a container", parentPtr.Encode()), nil)
	}
}
