// Package jsonval implements JsonValue (spec §3): a recursive JSON variant
// that preserves object key order across a parse/mutate/serialize
// round-trip. Object storage is backed by github.com/wk8/go-ordered-map/v2
// rather than a plain Go map, and numbers are held as json.Number so a
// literal like "1.50" round-trips without drifting to "1.5".
package jsonval

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind discriminates the variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Object is the ordered string-to-Value mapping backing JSON objects.
type Object = orderedmap.OrderedMap[string, *Value]

// Value is the JsonValue variant from spec §3. The zero Value is a JSON
// null. Values are treated as immutable by convention once constructed;
// mutation (internal/mutate) always works through Clone to provide
// copy-on-write semantics.
type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []*Value
	obj  *Object
}

// NewNull returns a JSON null.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a JSON boolean.
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }

// NewString returns a JSON string.
func NewString(s string) *Value { return &Value{kind: String, str: s} }

// NewNumber returns a JSON number from its canonical decimal text.
func NewNumber(n json.Number) *Value { return &Value{kind: Number, num: n} }

// NewNumberFromInt returns a JSON number for an int64.
func NewNumberFromInt(n int64) *Value {
	return &Value{kind: Number, num: json.Number(fmt.Sprintf("%d", n))}
}

// NewArray returns a JSON array wrapping items. A nil slice is treated the
// same as an empty array.
func NewArray(items []*Value) *Value {
	if items == nil {
		items = []*Value{}
	}
	return &Value{kind: Array, arr: items}
}

// NewObject returns an empty JSON object ready for Set calls.
func NewObject() *Value {
	return &Value{kind: Object, obj: orderedmap.New[string, *Value]()}
}

func (v *Value) Kind() Kind      { return v.kind }
func (v *Value) IsNull() bool    { return v.kind == Null }
func (v *Value) IsObject() bool  { return v.kind == Object }
func (v *Value) IsArray() bool   { return v.kind == Array }
func (v *Value) BoolVal() bool   { return v.b }
func (v *Value) NumberVal() json.Number { return v.num }
func (v *Value) StringVal() string      { return v.str }

// ArrayVal returns the underlying element slice. Callers must not mutate it
// in place; use Clone plus reassignment instead.
func (v *Value) ArrayVal() []*Value { return v.arr }

// ObjectVal returns the underlying ordered map. Callers must not mutate it
// in place outside of the mutate package's copy-on-write helpers.
func (v *Value) ObjectVal() *Object { return v.obj }

// Len returns the number of elements (array) or keys (object); 0 otherwise.
func (v *Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		if v.obj == nil {
			return 0
		}
		return v.obj.Len()
	default:
		return 0
	}
}

// Clone deep-copies v. Mutation operations always clone from the root so
// the caller's original tree is left untouched on both success and
// failure (spec §4.8 mutation purity).
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case Array:
		arr := make([]*Value, len(v.arr))
		for i, e := range v.arr {
			arr[i] = e.Clone()
		}
		return &Value{kind: Array, arr: arr}
	case Object:
		om := orderedmap.New[string, *Value](v.obj.Len())
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			om.Set(p.Key, p.Value.Clone())
		}
		return &Value{kind: Object, obj: om}
	default:
		cp := *v
		return &cp
	}
}

// Equal reports structural equality: same kind, same scalar value, same
// array elements in order, same object keys (in any order) mapping to
// equal values. Numbers compare by their canonical decimal text, matching
// the "numbers stringified canonically" rule in spec §4.5.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == other.b
	case Number:
		return canonicalNumber(v.num) == canonicalNumber(other.num)
	case String:
		return v.str == other.str
	case Array:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			ov, ok := other.obj.Get(p.Key)
			if !ok || !p.Value.Equal(ov) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// canonicalNumber normalizes a json.Number's decimal text for comparison
// and for indexed_text. Integers and floats both pass through Go's decimal
// formatting unchanged; this only strips a superfluous leading "+".
func canonicalNumber(n json.Number) string {
	s := n.String()
	if len(s) > 0 && s[0] == '+' {
		return s[1:]
	}
	return s
}

// UnmarshalJSON implements recursive, order-preserving decoding. Objects
// decode through orderedmap.OrderedMap, which itself dispatches each
// member's raw bytes back into Value.UnmarshalJSON -- this is what keeps
// the whole tree order-preserving without a bespoke tokenizer.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("jsonval: empty value")
	}

	switch trimmed[0] {
	case 'n':
		*v = Value{kind: Null}
		return nil
	case 't':
		*v = Value{kind: Bool, b: true}
		return nil
	case 'f':
		*v = Value{kind: Bool, b: false}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("jsonval: invalid string %s: %w", trimmed, err)
		}
		*v = Value{kind: String, str: s}
		return nil
	case '{':
		om := orderedmap.New[string, *Value]()
		if err := json.Unmarshal(trimmed, om); err != nil {
			return fmt.Errorf("jsonval: invalid object: %w", err)
		}
		// encoding/json stores a JSON null member as a nil pointer without
		// calling UnmarshalJSON; replace those with explicit Null values.
		for p := om.Oldest(); p != nil; p = p.Next() {
			if p.Value == nil {
				p.Value = NewNull()
			}
		}
		*v = Value{kind: Object, obj: om}
		return nil
	case '[':
		var arr []*Value
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return fmt.Errorf("jsonval: invalid array: %w", err)
		}
		if arr == nil {
			arr = []*Value{}
		}
		for i, e := range arr {
			if e == nil {
				arr[i] = NewNull()
			}
		}
		*v = Value{kind: Array, arr: arr}
		return nil
	default:
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("jsonval: invalid number %s: %w", trimmed, err)
		}
		*v = Value{kind: Number, num: n}
		return nil
	}
}

// MarshalJSON implements the symmetric encode side of UnmarshalJSON.
func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	switch v.kind {
	case Null:
		return []byte("null"), nil
	case Bool:
		if v.b {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Number:
		if v.num == "" {
			return []byte("0"), nil
		}
		return []byte(v.num.String()), nil
	case String:
		return json.Marshal(v.str)
	case Array:
		if v.arr == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.arr)
	case Object:
		if v.obj == nil {
			return []byte("{}"), nil
		}
		return v.obj.MarshalJSON()
	default:
		return nil, fmt.Errorf("jsonval: unknown kind %d", v.kind)
	}
}

// Parse decodes a single JSON document from data into a Value tree.
func Parse(data []byte) (*Value, error) {
	var v Value
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// Reject trailing non-whitespace garbage after the first value, matching
	// a strict single-document parser (spec §4.2).
	var extra json.RawMessage
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("jsonval: trailing content after document")
	}
	return &v, nil
}
