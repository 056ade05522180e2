// Package pointer implements RFC 6901 JSON Pointers: parsing, rendering,
// and the escape handling that every other jsonai component (shredder,
// dedup, mutator) builds on. It is the single source of truth for pointer
// semantics named in spec §4.1.
package pointer

import (
	"fmt"
	"strconv"
	"strings"
)

// Pointer is an ordered sequence of decoded tokens. The empty Pointer
// denotes the document root. Every non-root Pointer has exactly one parent,
// obtained by dropping its last token (see Parent).
type Pointer []string

// Root returns the empty pointer, addressing the document root.
func Root() Pointer {
	return Pointer{}
}

// Decode parses the RFC 6901 wire form of a pointer into its decoded
// tokens. The empty string decodes to the root pointer. A non-empty
// pointer must start with "/"; anything else is a parse error. Decode does
// not interpret tokens as array indices -- that happens downstream, once
// the token is matched against a concrete JsonValue (see ParseArrayIndex).
func Decode(s string) (Pointer, error) {
	if s == "" {
		return Root(), nil
	}
	if s[0] != '/' {
		return nil, fmt.Errorf("pointer: %q must be empty or start with '/'", s)
	}

	raw := strings.Split(s[1:], "/")
	tokens := make(Pointer, len(raw))
	for i, r := range raw {
		tok, err := DecodeToken(r)
		if err != nil {
			return nil, fmt.Errorf("pointer: %q: %w", s, err)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// DecodeToken unescapes a single raw (still-escaped) RFC 6901 token. The
// order of replacement -- "~1" before "~0" -- is load-bearing: reversing it
// corrupts any key that legitimately contains the two-character sequence
// "~1" in its escaped form. A "~" not followed by "0" or "1" is rejected.
func DecodeToken(raw string) (string, error) {
	if err := validateTilde(raw); err != nil {
		return "", err
	}
	unescaped := strings.ReplaceAll(raw, "~1", "/")
	unescaped = strings.ReplaceAll(unescaped, "~0", "~")
	return unescaped, nil
}

// validateTilde rejects a raw token containing a "~" that is not
// immediately followed by "0" or "1".
func validateTilde(raw string) error {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '~' {
			continue
		}
		if i+1 >= len(raw) || (raw[i+1] != '0' && raw[i+1] != '1') {
			return fmt.Errorf("invalid escape at offset %d in token %q", i, raw)
		}
	}
	return nil
}

// Encode renders the pointer tokens to their RFC 6901 wire form.
func (p Pointer) Encode() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range p {
		b.WriteByte('/')
		b.WriteString(EncodeToken(tok))
	}
	return b.String()
}

// EncodeToken escapes a single decoded token for the wire form. The order
// of replacement -- "~" to "~0" before "/" to "~1" -- mirrors DecodeToken's
// reverse order and is equally load-bearing.
func EncodeToken(tok string) string {
	escaped := strings.ReplaceAll(tok, "~", "~0")
	escaped = strings.ReplaceAll(escaped, "/", "~1")
	return escaped
}

// Parent returns the pointer obtained by dropping the last token, and false
// if p is already the root pointer.
func (p Pointer) Parent() (Pointer, bool) {
	if len(p) == 0 {
		return nil, false
	}
	parent := make(Pointer, len(p)-1)
	copy(parent, p[:len(p)-1])
	return parent, true
}

// Last returns the final token and true, or "" and false if p is the root.
func (p Pointer) Last() (string, bool) {
	if len(p) == 0 {
		return "", false
	}
	return p[len(p)-1], true
}

// Depth is the number of tokens in the pointer; the root has depth 0.
func (p Pointer) Depth() int {
	return len(p)
}

// Child returns a new pointer with tok appended.
func (p Pointer) Child(tok string) Pointer {
	child := make(Pointer, len(p)+1)
	copy(child, p)
	child[len(p)] = tok
	return child
}

// IsPrefixOf reports whether p is a proper prefix of other -- i.e. p
// addresses an ancestor (strict container) of the value other addresses.
// This relation, ContainmentOrder in spec §3, drives deduplication.
func (p Pointer) IsPrefixOf(other Pointer) bool {
	if len(p) >= len(other) {
		return false
	}
	for i, tok := range p {
		if other[i] != tok {
			return false
		}
	}
	return true
}

// Equal reports whether p and other address the same location.
func (p Pointer) Equal(other Pointer) bool {
	if len(p) != len(other) {
		return false
	}
	for i, tok := range p {
		if other[i] != tok {
			return false
		}
	}
	return true
}

// ParseArrayIndex interprets tok as an array index against an array of the
// given length, per spec §4.1. forAdd relaxes the bound to allow an index
// equal to length (append-by-index) and the "-" append sentinel; both are
// rejected for set/delete, where forAdd is false.
//
// Leading zeros are rejected except for the literal token "0", and every
// character must be an ASCII digit.
func ParseArrayIndex(tok string, length int, forAdd bool) (idx int, isAppend bool, err error) {
	if tok == "-" {
		if !forAdd {
			return 0, false, fmt.Errorf("array index %q (append) is only valid for add", tok)
		}
		return length, true, nil
	}
	if tok == "" {
		return 0, false, fmt.Errorf("array index token must not be empty")
	}
	if len(tok) > 1 && tok[0] == '0' {
		return 0, false, fmt.Errorf("array index %q has a leading zero", tok)
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false, fmt.Errorf("array index %q is not a non-negative integer", tok)
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false, fmt.Errorf("array index %q: %w", tok, err)
	}
	if forAdd {
		if n > length {
			return 0, false, fmt.Errorf("array index %d out of range for add (len=%d)", n, length)
		}
	} else if n >= length {
		return 0, false, fmt.Errorf("array index %d out of range (len=%d)", n, length)
	}
	return n, false, nil
}
