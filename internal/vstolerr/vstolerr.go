// Package vstolerr defines the discriminated error kinds returned across
// the variant set-algebra engine and its TSV boundary.
package vstolerr

import "fmt"

// Kind discriminates the error categories the engine can surface.
type Kind string

const (
	// MalformedInput covers a missing mandatory column, an unparseable
	// position, or a locus inversion while reading a TSV.
	MalformedInput Kind = "MalformedInput"

	// UnknownVariantCallingMethod belongs to vcf2tsv dispatch (parser
	// side). No code path in this build returns it: the vcf2tsv stub exits
	// with ExitUsage and a "not implemented" message instead.
	UnknownVariantCallingMethod Kind = "UnknownVariantCallingMethod"

	// UnknownAttribute is raised when a filter predicate names an
	// attribute outside the fixed resolver vocabulary.
	UnknownAttribute Kind = "UnknownAttribute"

	// InvalidPredicate is raised when a quantifier/operator/attribute
	// combination is not legal (e.g. a non-numeric attribute compared
	// with "<").
	InvalidPredicate Kind = "InvalidPredicate"

	// InvalidParameters is raised for negative distances, overlap
	// fractions outside [0,1], or an empty input list where at least one
	// is required.
	InvalidParameters Kind = "InvalidParameters"

	// IOFailure covers file read/write errors.
	IOFailure Kind = "IOFailure"
)

// Error is the discriminated result type propagated synchronously from
// every top-level engine operation. Propagation policy: nothing is
// recovered locally, and a single error aborts the whole operation.
type Error struct {
	Kind   Kind
	Msg    string
	Detail string // offending record ID, predicate, line number, etc.
	Err    error  // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Msg, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an Error of the given kind with no detail.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf constructs an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WithDetail attaches a detail string (offending record/predicate) and
// returns the receiver for chaining.
func (e *Error) WithDetail(detail string) *Error {
	e.Detail = detail
	return e
}

// WithErr attaches a wrapped cause and returns the receiver for chaining.
func (e *Error) WithErr(err error) *Error {
	e.Err = err
	return e
}
