package tickscan

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input has no header line.
var ErrEmptyInput = errors.New("input has no header line")

// ErrMissingColumn indicates a required column absent from the header.
type ErrMissingColumn struct {
	Name string
}

func (e *ErrMissingColumn) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Name)
}

// ErrMalformedRecord indicates a data record that could not be decoded:
// a missing required field, a non-numeric quantity, or a product too
// long for packed keys.
//
// Under PolicyAbort (the default) the scan stops with this error; under
// PolicySkip the record is counted and its line number recorded on the
// Result instead. The underlying error is available via errors.Unwrap.
type ErrMalformedRecord struct {
	Line  uint64
	cause error
}

func (e *ErrMalformedRecord) Error() string {
	return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.cause)
}

func (e *ErrMalformedRecord) Unwrap() error { return e.cause }
