package conv

import "unsafe"

// BytesToString returns a string aliasing b's backing array without copying.
// The result is only valid while b remains unmodified.
func BytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b)) //nolint:gosec // zero-copy by design; lifetime documented
}

// StringToBytes returns a byte slice aliasing s's backing array without
// copying. The result must not be written to.
func StringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s)) //nolint:gosec // zero-copy by design; lifetime documented
}
