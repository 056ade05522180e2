package jsonval

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SetObjectKey sets key to val, preserving key position if it already
// exists and appending at the end otherwise (orderedmap.Set's own
// behavior). v must be an Object.
func (v *Value) SetObjectKey(key string, val *Value) error {
	if v.kind != Object {
		return fmt.Errorf("jsonval: cannot set key %q on a %s", key, v.kind)
	}
	if v.obj == nil {
		v.obj = orderedmap.New[string, *Value]()
	}
	v.obj.Set(key, val)
	return nil
}

// DeleteObjectKey removes key, returning the value that was there and
// whether it existed. v must be an Object.
func (v *Value) DeleteObjectKey(key string) (*Value, bool, error) {
	if v.kind != Object {
		return nil, false, fmt.Errorf("jsonval: cannot delete key %q from a %s", key, v.kind)
	}
	old, ok := v.obj.Get(key)
	if ok {
		v.obj.Delete(key)
	}
	return old, ok, nil
}

// ReplaceArrayElement overwrites the element at idx. v must be an Array and
// idx must be in range.
func (v *Value) ReplaceArrayElement(idx int, val *Value) error {
	if v.kind != Array {
		return fmt.Errorf("jsonval: cannot index into a %s", v.kind)
	}
	if idx < 0 || idx >= len(v.arr) {
		return fmt.Errorf("jsonval: array index %d out of range (len %d)", idx, len(v.arr))
	}
	v.arr[idx] = val
	return nil
}

// InsertArrayElement inserts val at idx, shifting later elements right.
// idx == len(array) appends. v must be an Array.
func (v *Value) InsertArrayElement(idx int, val *Value) error {
	if v.kind != Array {
		return fmt.Errorf("jsonval: cannot index into a %s", v.kind)
	}
	if idx < 0 || idx > len(v.arr) {
		return fmt.Errorf("jsonval: array index %d out of range (len %d)", idx, len(v.arr))
	}
	v.arr = append(v.arr, nil)
	copy(v.arr[idx+1:], v.arr[idx:])
	v.arr[idx] = val
	return nil
}

// RemoveArrayElement removes and returns the element at idx. v must be an
// Array and idx must be in range.
func (v *Value) RemoveArrayElement(idx int) (*Value, error) {
	if v.kind != Array {
		return nil, fmt.Errorf("jsonval: cannot index into a %s", v.kind)
	}
	if idx < 0 || idx >= len(v.arr) {
		return nil, fmt.Errorf("jsonval: array index %d out of range (len %d)", idx, len(v.arr))
	}
	removed := v.arr[idx]
	v.arr = append(v.arr[:idx], v.arr[idx+1:]...)
	return removed, nil
}
