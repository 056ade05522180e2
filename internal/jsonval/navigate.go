package jsonval

import (
	"fmt"

	"github.com/jsonai/jsonai/internal/pointer"
)

// Navigate resolves ptr against root and returns the Value found there.
// The root value itself is returned for the empty pointer. An error is
// returned if any token along the path does not resolve -- an object key
// that is absent, an array index that is out of range, or a token applied
// to a scalar.
func Navigate(root *Value, ptr pointer.Pointer) (*Value, error) {
	cur := root
	for i, tok := range ptr {
		switch cur.Kind() {
		case Object:
			next, ok := cur.obj.Get(tok)
			if !ok {
				return nil, fmt.Errorf("key %q not found at %s", tok, pointer.Pointer(ptr[:i]).Encode())
			}
			cur = next
		case Array:
			idx, _, err := pointer.ParseArrayIndex(tok, len(cur.arr), false)
			if err != nil {
				return nil, fmt.Errorf("at %s: %w", pointer.Pointer(ptr[:i]).Encode(), err)
			}
			cur = cur.arr[idx]
		default:
			return nil, fmt.Errorf("cannot descend into %s at %s", cur.Kind(), pointer.Pointer(ptr[:i]).Encode())
		}
	}
	return cur, nil
}
