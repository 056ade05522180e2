package ingest

import (
	"bytes"
	"encoding/json"
	"io"
)

// dupFrame tracks one open object/array while re-scanning raw JSON tokens
// for duplicate object keys. jsonval's decoder (via go-ordered-map) is
// last-key-wins, matching encoding/json -- this scan exists purely to
// surface the warning spec §4.11 requires, not to change parse outcome.
type dupFrame struct {
	kind        byte // '{' or '['
	label       string
	keys        map[string]bool
	awaitingKey bool
	pendingKey  string
	idx         int
}

// findDuplicateKeys re-tokenizes data and returns a best-effort JSON
// Pointer-shaped path for every object key seen more than once at the same
// nesting level. It never errors: malformed input is reported by the real
// parse in jsonval.Parse, not here.
func findDuplicateKeys(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	var stack []*dupFrame
	var dupes []string

	labelForNewContainer := func() string {
		if len(stack) == 0 {
			return ""
		}
		top := stack[len(stack)-1]
		if top.kind == '{' {
			return top.label + "/" + top.pendingKey
		}
		return top.label + "/" + itoaDup(top.idx)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF || err != nil {
			break
		}
		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{', '[':
				label := labelForNewContainer()
				kind := byte('{')
				if t == '[' {
					kind = '['
				}
				stack = append(stack, &dupFrame{kind: kind, label: label, keys: map[string]bool{}, awaitingKey: kind == '{'})
			case '}', ']':
				if len(stack) == 0 {
					continue
				}
				stack = stack[:len(stack)-1]
				if len(stack) > 0 {
					parent := stack[len(stack)-1]
					if parent.kind == '{' {
						parent.awaitingKey = true
					} else {
						parent.idx++
					}
				}
			}
		default:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if top.kind == '{' {
				if top.awaitingKey {
					key, _ := t.(string)
					if top.keys[key] {
						dupes = append(dupes, top.label+"/"+key)
					}
					top.keys[key] = true
					top.pendingKey = key
					top.awaitingKey = false
				} else {
					top.awaitingKey = true
				}
			} else {
				top.idx++
			}
		}
	}
	return dupes
}

func itoaDup(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	return string(buf[pos:])
}
