package field

// MaxKeyLen is the longest field that fits a packed key. Packing carries
// the low byte of each position into successive bytes of a uint64; an
// eighth byte would leave no room to distinguish lengths, so longer
// fields are rejected rather than silently truncated.
const MaxKeyLen = 7

// PackKey folds up to MaxKeyLen ASCII bytes into a uint64, first byte in
// the lowest lane. Two distinct keys within the limit always pack to
// distinct values. The empty field packs to 0.
func PackKey(b []byte) (uint64, error) {
	if len(b) > MaxKeyLen {
		return 0, &ErrKeyTooLong{Length: len(b)}
	}
	var x uint64
	for i := len(b) - 1; i >= 0; i-- {
		x = x<<8 | uint64(b[i])
	}
	return x, nil
}

// MustPackKey packs a known-short constant key, panicking on misuse.
// Intended for fixed filter values resolved at setup time.
func MustPackKey(s string) uint64 {
	x, err := PackKey([]byte(s))
	if err != nil {
		panic(err)
	}
	return x
}

// UnpackKey reverses PackKey. Valid only for keys of non-zero ASCII
// bytes, which is what PackKey produces for the supported character set.
func UnpackKey(x uint64) string {
	var buf [MaxKeyLen]byte
	n := 0
	for x != 0 && n < MaxKeyLen {
		buf[n] = byte(x)
		x >>= 8
		n++
	}
	return string(buf[:n])
}
