// Package common provides shared utilities and types used across the
// application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Parsing errors.
	ErrNoInvoiceID   = errors.New("no invoice id found")
	ErrNoInvoiceDate = errors.New("no invoice date found")
	ErrBadDate       = errors.New("date did not parse under any accepted format")
	ErrNoPatients    = errors.New("no patient names found")
	ErrEmptyAIResult = errors.New("text generation service returned an empty result")

	// Storage errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ParseError is a structural invoice parse failure: a required field could
// not be located or understood. It is fatal for that invoice and carries
// enough context for the caller to log and re-route the source file.
type ParseError struct {
	Err      error
	Filename string
	Field    string // which field failed: invoice id, invoice date, patient names
	Pattern  string // the pattern that failed to match, if any
	Found    string // the text that matched but could not be interpreted, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%s: unable to parse %s", e.Filename, e.Field)
	if e.Found != "" {
		msg += fmt.Sprintf(" (found %q)", e.Found)
	}
	if e.Pattern != "" {
		msg += fmt.Sprintf(" (pattern %q)", e.Pattern)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a structural parse failure for one invoice field.
func NewParseError(filename, field, pattern string, err error) error {
	return &ParseError{Filename: filename, Field: field, Pattern: pattern, Err: err}
}

// IsParseFailure reports whether err is a structural parse failure that
// should route the source file to the unprocessed area.
func IsParseFailure(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
