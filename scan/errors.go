package scan

import "fmt"

// ErrRecordTooLarge indicates a record that does not fit the scan buffer.
// The buffer must be sized above the longest possible record; hitting
// this error means the precondition was violated, not that input is lost.
type ErrRecordTooLarge struct {
	Capacity int
}

func (e *ErrRecordTooLarge) Error() string {
	return fmt.Sprintf("record exceeds buffer capacity of %d bytes", e.Capacity)
}

// ErrColumnOrder is a caller contract violation: columns must be
// requested in non-decreasing index order within a record.
type ErrColumnOrder struct {
	Requested int
	Consumed  int
}

func (e *ErrColumnOrder) Error() string {
	return fmt.Sprintf("column %d requested after column %d was consumed; columns must be read in ascending order", e.Requested, e.Consumed)
}

// ErrMissingField indicates a record with fewer fields than requested.
type ErrMissingField struct {
	Col  int
	Line uint64
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("record at line %d has no field %d", e.Line, e.Col)
}

// ErrTruncatedRecord indicates a final record with no newline terminator,
// surfaced only under strict final-record handling.
type ErrTruncatedRecord struct {
	Line uint64
}

func (e *ErrTruncatedRecord) Error() string {
	return fmt.Sprintf("truncated record at line %d: input ended without newline", e.Line)
}
