// Package core defines the data types and error taxonomy shared across every
// pipeline stage in jsonai: ingest, shred, index, query, search, dedup,
// mutate, overflow, and output all speak in terms of the types defined here.
package core

import "fmt"

// ExitCode is the process exit code returned by the jsonai CLI.
type ExitCode int

const (
	// ExitSuccess indicates a search returned at least one match, or a
	// mutation command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitNoMatch indicates a search completed without error but matched
	// zero records. The envelope is still emitted on stdout.
	ExitNoMatch ExitCode = 1

	// ExitError covers every failure mode in the taxonomy below: usage,
	// input, parse, pointer, patch-test, and engine errors.
	ExitError ExitCode = 2
)

// Kind classifies an Error by the taxonomy in spec §7. It exists separately
// from the Go error chain so callers can branch on category without string
// matching.
type Kind string

const (
	KindUsage        Kind = "usage"
	KindInput        Kind = "input"
	KindParse        Kind = "parse"
	KindPointer      Kind = "pointer"
	KindPatchFailed  Kind = "patch_test_failed"
	KindEngine       Kind = "engine"
)

// Error is jsonai's single error type. It carries an exit code and a
// taxonomy Kind so cli.Execute can map any failure to the right process exit
// status without a type switch per call site.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface. If an underlying cause is present it
// is appended after a colon.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause so errors.Is/errors.As can traverse the
// chain, e.g. to detect a wrapped os.ErrNotExist from an InputError.
func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the process exit code for this error's Kind. Every Kind in
// the taxonomy except success maps to ExitError (2); NoMatch is represented
// by the absence of an error, not by an Error value.
func (e *Error) Code() int {
	return int(ExitError)
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// NewUsageError reports malformed flags or mutually exclusive options.
func NewUsageError(msg string, err error) *Error { return newError(KindUsage, msg, err) }

// NewInputError reports a missing file, permission failure, or an unmatched
// glob pattern encountered while resolving input specs.
func NewInputError(msg string, err error) *Error { return newError(KindInput, msg, err) }

// NewParseError reports invalid JSON, an invalid pointer, or an invalid
// patch document. Callers should fold file path and line/column information
// into msg themselves (spec §7.3 requires both in the error text).
func NewParseError(msg string, err error) *Error { return newError(KindParse, msg, err) }

// NewPointerError reports a pointer that failed to resolve, a parent that is
// not a container, or an out-of-range array index.
func NewPointerError(msg string, err error) *Error { return newError(KindPointer, msg, err) }

// NewPatchTestFailed reports a `test` operation within a patch that did not
// match the document.
func NewPatchTestFailed(msg string) *Error { return newError(KindPatchFailed, msg, nil) }

// NewEngineError reports a search-index build or query-compile failure, such
// as a regex the engine cannot compile.
func NewEngineError(msg string, err error) *Error { return newError(KindEngine, msg, err) }
