package jsonval

import "strings"

// Leaf is a single scalar leaf found while walking a Value: its dot-joined
// field path relative to the value it was found in, and its tokenized text
// form per the indexing rules in spec §4.4 (decimal form for numbers,
// "true"/"false" for booleans, nothing for null).
type Leaf struct {
	Path string
	Text string
}

// Leaves walks v depth-first and returns every scalar leaf reachable from
// it, labeled with a dot-joined path. Object keys contribute their name;
// array elements are transparent (an array of strings at field "tags"
// contributes leaves at path "tags", not "tags.0"), matching the
// dynamically discovered field-per-leaf-path model in spec §4.4. Null
// leaves are walked but contribute no indexed text.
func Leaves(v *Value) []Leaf {
	var out []Leaf
	walkLeaves(v, "", &out)
	return out
}

func walkLeaves(v *Value, path string, out *[]Leaf) {
	if v == nil {
		return
	}
	switch v.kind {
	case Object:
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			childPath := p.Key
			if path != "" {
				childPath = path + "." + p.Key
			}
			walkLeaves(p.Value, childPath, out)
		}
	case Array:
		for _, e := range v.arr {
			walkLeaves(e, path, out)
		}
	case Null:
		// Null contributes no indexed text but does occupy a field path, so
		// record it with empty text to keep field discovery observing it.
		*out = append(*out, Leaf{Path: path, Text: ""})
	case Bool:
		text := "false"
		if v.b {
			text = "true"
		}
		*out = append(*out, Leaf{Path: path, Text: text})
	case Number:
		*out = append(*out, Leaf{Path: path, Text: canonicalNumber(v.num)})
	case String:
		*out = append(*out, Leaf{Path: path, Text: v.str})
	}
}

// FieldNames returns the distinct, order-stable set of dot-joined leaf
// field paths reachable from v.
func FieldNames(v *Value) []string {
	seen := make(map[string]bool)
	var names []string
	for _, l := range Leaves(v) {
		if l.Path == "" || seen[l.Path] {
			continue
		}
		seen[l.Path] = true
		names = append(names, l.Path)
	}
	return names
}

// FieldValue looks up the single leaf value at a dot-joined field path
// within v, returning its raw Value and whether it was found. Used by
// exact-mode matching, which compares against the pre-tokenization form.
func FieldValue(v *Value, field string) (*Value, bool) {
	if field == "" {
		return v, true
	}
	parts := strings.Split(field, ".")
	cur := v
	for i, part := range parts {
		if cur == nil {
			return nil, false
		}
		switch cur.kind {
		case Object:
			next, ok := cur.obj.Get(part)
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			// Arrays are transparent in field paths (see walkLeaves); search
			// every element for one that resolves the remaining path.
			rest := strings.Join(parts[i:], ".")
			for _, e := range cur.arr {
				if found, ok := FieldValue(e, rest); ok {
					return found, true
				}
			}
			return nil, false
		default:
			return nil, false
		}
	}
	return cur, true
}
