// Package errors provides structured error handling for apncat.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitNotFound = 3 // Resource not found
	ExitStorage  = 4 // Catalog storage failure
)

// Error is the structured error type for apncat.
type Error struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *Error) Error() string {
	msg := e.Message

	// Include details in error message (sorted for deterministic output)
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for Error.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &Error{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &Error{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	// Field and conversion errors.
	ErrInvalidDimension = &Error{
		Code:     "INVALID_DIMENSION",
		Message:  "field dimension out of range or truth table length mismatch",
		ExitCode: ExitInput,
	}

	ErrUnparseableField = &Error{
		Code:     "UNPARSEABLE_FIELD",
		Message:  "polynomial string does not match the required grammar",
		ExitCode: ExitInput,
	}

	ErrReduciblePolynomial = &Error{
		Code:     "REDUCIBLE_POLYNOMIAL",
		Message:  "supplied polynomial is not irreducible over GF(2)",
		ExitCode: ExitInput,
	}

	ErrUnsupportedConversion = &Error{
		Code:     "UNSUPPORTED_CONVERSION",
		Message:  "no representation or field context available for conversion",
		ExitCode: ExitInput,
	}

	ErrInvalidGenerator = &Error{
		Code:     "INVALID_GENERATOR",
		Message:  "generator must be a nonzero field element",
		ExitCode: ExitInput,
	}

	ErrNoDefaultField = &Error{
		Code:     "NO_DEFAULT_FIELD",
		Message:  "no default irreducible polynomial known for this dimension",
		ExitCode: ExitInput,
	}

	// Invariant errors.
	ErrUnknownInvariant = &Error{
		Code:     "UNKNOWN_INVARIANT",
		Message:  "unknown invariant",
		ExitCode: ExitInput,
	}

	// Catalog errors.
	ErrCatalogNotFound = &Error{
		Code:     "CATALOG_NOT_FOUND",
		Message:  "no catalog exists for this dimension",
		ExitCode: ExitNotFound,
	}

	ErrCatalogCorrupted = &Error{
		Code:     "CATALOG_CORRUPTED",
		Message:  "catalog file is corrupted",
		ExitCode: ExitStorage,
	}

	ErrDuplicateFunction = &Error{
		Code:     "DUPLICATE_FUNCTION",
		Message:  "function already present in the catalog",
		ExitCode: ExitInput,
	}

	ErrEmptyInputList = &Error{
		Code:     "EMPTY_INPUT_LIST",
		Message:  "input list is empty",
		ExitCode: ExitNotFound,
	}

	// Config errors.
	ErrConfigInvalid = &Error{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var ae *Error
	if errors.As(err, &ae) {
		return &Error{
			Code:       ae.Code,
			Message:    fmt.Sprintf("%s: %s", msg, ae.Message),
			Details:    ae.Details,
			Suggestion: ae.Suggestion,
			Cause:      err,
			ExitCode:   ae.ExitCode,
		}
	}

	return &Error{
		Code:     ErrGeneral.Code,
		Message:  msg,
		Cause:    err,
		ExitCode: ErrGeneral.ExitCode,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return &Error{
			Code:       ae.Code,
			Message:    ae.Message,
			Details:    details,
			Suggestion: ae.Suggestion,
			Cause:      ae.Cause,
			ExitCode:   ae.ExitCode,
		}
	}

	return &Error{
		Code:     ErrGeneral.Code,
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ErrGeneral.ExitCode,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var ae *Error
	if errors.As(err, &ae) {
		return &Error{
			Code:       ae.Code,
			Message:    ae.Message,
			Details:    ae.Details,
			Suggestion: suggestion,
			Cause:      ae.Cause,
			ExitCode:   ae.ExitCode,
		}
	}

	return &Error{
		Code:       ErrGeneral.Code,
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ErrGeneral.ExitCode,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ae *Error
	if errors.As(err, &ae) {
		return ae.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ErrGeneral.Code
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
