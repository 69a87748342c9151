// Package derrors provides coded domain errors. Services construct these at
// the point where an infrastructure fact (see pkg/platform/sentinel) or an
// input problem becomes a caller-visible condition; transports map codes to
// their wire representation without inspecting messages.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for programmatic handling.
type Code string

const (
	// CodeValidation: input violates a data-model constraint (negative pay,
	// broken total-compensation identity, years ordering).
	CodeValidation Code = "validation"
	// CodeInvalidInput: malformed value at a trust boundary (unparseable id,
	// unknown level).
	CodeInvalidInput Code = "invalid_input"
	// CodeBadRequest: malformed request shape (bad JSON, bad query param).
	CodeBadRequest Code = "bad_request"
	// CodeInvalidQuery: pagination bounds outside the supported range.
	CodeInvalidQuery Code = "invalid_query"
	// CodeNotFound: referenced entity does not exist.
	CodeNotFound Code = "not_found"
	// CodeReferential: a record references a non-existent company, role or
	// location.
	CodeReferential Code = "referential"
	// CodeConflict: uniqueness violation on create.
	CodeConflict Code = "conflict"
	// CodeEmptyPopulation: generator invoked with no base entities to sample.
	CodeEmptyPopulation Code = "empty_population"
	// CodeNoData: aggregation over an empty filtered set.
	CodeNoData Code = "no_data"
	// CodeInternal: unexpected infrastructure failure.
	CodeInternal Code = "internal"
)

// Error is a domain error with a stable code and a human-readable message.
type Error struct {
	Code    Code
	Message string
	cause   error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap annotates an underlying error with a domain code and message. The
// cause stays reachable through errors.Is/As chains.
func Wrap(cause error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// HasCode reports whether err (or anything it wraps) is a domain error with
// the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// GetCode extracts the domain code from err, defaulting to CodeInternal for
// non-domain errors so callers never branch on a zero code.
func GetCode(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
