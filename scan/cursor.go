package scan

import "github.com/hupe1980/tickscan/field"

// Cursor advances through newline-terminated records and extracts
// comma-delimited fields from the current one.
//
// Within a record, fields must be requested in ascending column order;
// a decreasing index fails with ErrColumnOrder. Borrowed results
// (Bytes, View) alias the cursor's buffer and are invalidated by the
// next refill; the generation counter tracks this.
type Cursor interface {
	field.Source

	// Next advances to the next record, sliding and refilling the buffer
	// as needed. It returns false at clean end of input.
	Next() (bool, error)

	// Bytes returns the raw bytes of field col, aliasing the buffer.
	Bytes(col int) ([]byte, error)

	// View points v at the bytes of field col without copying.
	View(col int, v *field.View) error

	// Text returns field col as an owned string.
	Text(col int) (string, error)

	// PackedKey returns field col folded into a uint64 key.
	PackedKey(col int) (uint64, error)

	// Int parses field col as a decimal integer.
	Int(col int) (int64, error)

	// Line returns the 1-based number of the current record.
	Line() uint64
}
