// Package output renders jsonai's three result shapes -- match, hit, and
// value -- into the envelope (or bare array) the CLI writes to stdout,
// applying field projection and byte-budget truncation (spec §4.10).
package output

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsonai/jsonai/internal/core"
	"github.com/jsonai/jsonai/internal/dedup"
	"github.com/jsonai/jsonai/internal/jsonval"
	"github.com/jsonai/jsonai/internal/tokenizer"
)

// Meta is the envelope header common to every non-bare response.
type Meta struct {
	Total            int  `json:"total"`
	Truncated        bool `json:"truncated,omitempty"`
	EstimatedTokens  int  `json:"estimated_tokens"`
}

// Options configures rendering.
type Options struct {
	Mode      core.OutputMode
	Bare      bool
	Select    []string // dot-path leaf projection; empty means no projection
	MaxBytes  int      // 0 means unbounded
	Pretty    bool
	CountOnly bool // print only the meta envelope, with an empty results/hits array
}

// matchResult is one element of a "match" mode results array.
type matchResult struct {
	DocID      int64           `json:"doc_id"`
	SourceFile string          `json:"source_file"`
	Pointer    string          `json:"pointer"`
	Record     json.RawMessage `json:"record"`
}

// hitResult is one element of a "hit" mode hits array.
type hitResult struct {
	File    string          `json:"file"`
	Pointer string          `json:"pointer"`
	Record  json.RawMessage `json:"record"`
	Score   float64         `json:"score"`
}

// Render serializes hits per opts and returns the bytes to write to stdout.
//
// --count-only never suppresses the envelope entirely (spec §6.3): it
// renders meta.total against the real hit count with an empty
// results/hits array, skipping per-record projection and serialization
// since no record body is ever emitted.
func Render(hits []dedup.Hit, opts Options) ([]byte, error) {
	counter, err := tokenizer.NewTokenizer(tokenizer.NameCL100K)
	if err != nil {
		return nil, core.NewEngineError("initializing token counter", err)
	}

	if opts.CountOnly {
		return renderEnvelopeBudgeted(nil, opts, counter, len(hits))
	}

	bodies, err := renderBodies(hits, opts)
	if err != nil {
		return nil, err
	}

	if opts.Bare {
		return renderBareBudgeted(bodies, opts, counter)
	}
	return renderEnvelopeBudgeted(bodies, opts, counter, len(hits))
}

func renderBodies(hits []dedup.Hit, opts Options) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, len(hits))
	for i, h := range hits {
		projected, err := project(h.Record.Payload, opts.Select)
		if err != nil {
			return nil, err
		}
		recordJSON, err := projected.MarshalJSON()
		if err != nil {
			return nil, core.NewEngineError("serializing record", err)
		}

		switch opts.Mode {
		case core.OutputValue:
			out[i] = recordJSON
		case core.OutputHit:
			b, err := json.Marshal(hitResult{
				File:    h.Record.SourceFile,
				Pointer: h.Record.Pointer.Encode(),
				Record:  recordJSON,
				Score:   h.Score,
			})
			if err != nil {
				return nil, core.NewEngineError("serializing hit", err)
			}
			out[i] = b
		default: // core.OutputMatch
			b, err := json.Marshal(matchResult{
				DocID:      h.Record.DocID,
				SourceFile: h.Record.SourceFile,
				Pointer:    h.Record.Pointer.Encode(),
				Record:     recordJSON,
			})
			if err != nil {
				return nil, core.NewEngineError("serializing result", err)
			}
			out[i] = b
		}
	}
	return out, nil
}

// project restricts v to the dot-path leaf fields named in fields, omitting
// (never nulling) any that are absent. An empty fields list returns v
// unchanged.
func project(v *jsonval.Value, fields []string) (*jsonval.Value, error) {
	if len(fields) == 0 {
		return v, nil
	}
	out := jsonval.NewObject()
	for _, f := range fields {
		fv, ok := jsonval.FieldValue(v, f)
		if !ok {
			continue
		}
		if err := out.SetObjectKey(f, fv); err != nil {
			return nil, core.NewEngineError(fmt.Sprintf("projecting field %q", f), err)
		}
	}
	return out, nil
}

func arrayKey(mode core.OutputMode) string {
	if mode == core.OutputHit {
		return "hits"
	}
	return "results"
}

// renderEnvelopeBudgeted serializes bodies one-by-one into the envelope's
// array, stopping before exceeding opts.MaxBytes and marking
// meta.truncated, per spec §4.10. If even an empty envelope cannot fit the
// budget, it errors (exit code 2).
func renderEnvelopeBudgeted(bodies []json.RawMessage, opts Options, counter tokenizer.Tokenizer, total int) ([]byte, error) {
	key := arrayKey(opts.Mode)

	build := func(n int, truncated bool) ([]byte, error) {
		var buf bytes.Buffer
		buf.WriteString(`{"meta":{"total":`)
		fmt.Fprintf(&buf, "%d", total)
		if truncated {
			buf.WriteString(`,"truncated":true`)
		}
		buf.WriteString(`,"estimated_tokens":0},"`)
		buf.WriteString(key)
		buf.WriteString(`":[`)
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(bodies[i])
		}
		buf.WriteString(`]}`)
		return finalize(buf.Bytes(), opts, counter, total, truncated, key)
	}

	if opts.MaxBytes <= 0 {
		return build(len(bodies), false)
	}

	empty, err := build(0, len(bodies) > 0)
	if err != nil {
		return nil, err
	}
	if len(empty) > opts.MaxBytes {
		return nil, core.NewUsageError(fmt.Sprintf("--max-bytes %d cannot fit an empty envelope (%d bytes)", opts.MaxBytes, len(empty)), nil)
	}

	kept := 0
	for kept < len(bodies) {
		candidate, err := build(kept+1, kept+1 < len(bodies))
		if err != nil {
			return nil, err
		}
		if len(candidate) > opts.MaxBytes {
			break
		}
		kept++
	}
	return build(kept, kept < len(bodies))
}

// renderBareBudgeted is the --bare counterpart: a top-level JSON array, no
// envelope, so the byte budget has no meta overhead to reserve.
func renderBareBudgeted(bodies []json.RawMessage, opts Options, counter tokenizer.Tokenizer) ([]byte, error) {
	build := func(n int) []byte {
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i := 0; i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.Write(bodies[i])
		}
		buf.WriteByte(']')
		return buf.Bytes()
	}

	if opts.MaxBytes <= 0 {
		return finalizeBare(build(len(bodies)), opts, counter)
	}

	empty := build(0)
	if len(empty) > opts.MaxBytes {
		return nil, core.NewUsageError(fmt.Sprintf("--max-bytes %d cannot fit an empty array (%d bytes)", opts.MaxBytes, len(empty)), nil)
	}

	kept := 0
	for kept < len(bodies) {
		candidate := build(kept + 1)
		if len(candidate) > opts.MaxBytes {
			break
		}
		kept++
	}
	return finalizeBare(build(kept), opts, counter)
}

func finalize(data []byte, opts Options, counter tokenizer.Tokenizer, total int, truncated bool, key string) ([]byte, error) {
	var pretty []byte
	var err error
	if opts.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, core.NewEngineError("pretty-printing output", err)
		}
		pretty = buf.Bytes()
	} else {
		pretty = data
	}

	tokens := counter.Count(string(pretty))
	rewritten := bytes.Replace(pretty, []byte(`"estimated_tokens":0`), []byte(fmt.Sprintf(`"estimated_tokens":%d`, tokens)), 1)
	return rewritten, err
}

func finalizeBare(data []byte, opts Options, counter tokenizer.Tokenizer) ([]byte, error) {
	if opts.Pretty {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, core.NewEngineError("pretty-printing output", err)
		}
		return buf.Bytes(), nil
	}
	return data, nil
}
