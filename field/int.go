package field

// ParseInt decodes a decimal integer directly from field bytes, without
// an intermediate string. An optional leading minus sign is accepted;
// any other non-digit byte fails with ErrInvalidNumber.
func ParseInt(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, &ErrInvalidNumber{Raw: ""}
	}
	neg := b[0] == '-'
	digits := b
	if neg {
		digits = b[1:]
		if len(digits) == 0 {
			return 0, &ErrInvalidNumber{Raw: string(b)}
		}
	}
	var x int64
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, &ErrInvalidNumber{Raw: string(b)}
		}
		x = x*10 + int64(c-'0')
	}
	if neg {
		x = -x
	}
	return x, nil
}
