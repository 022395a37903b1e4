package field

import (
	"errors"
	"fmt"
)

// ErrStaleView is returned when a View is read after its source buffer
// has been refilled; the aliased bytes may have been overwritten.
var ErrStaleView = errors.New("view invalidated by buffer refill")

// ErrKeyTooLong indicates a field too long for packed-key encoding.
type ErrKeyTooLong struct {
	Length int
}

func (e *ErrKeyTooLong) Error() string {
	return fmt.Sprintf("field of %d bytes exceeds packed key limit of %d", e.Length, MaxKeyLen)
}

// ErrInvalidNumber indicates a field that is not a decimal integer.
type ErrInvalidNumber struct {
	Raw string
}

func (e *ErrInvalidNumber) Error() string {
	return fmt.Sprintf("invalid integer field %q", e.Raw)
}
