package swar

import "encoding/binary"

const (
	ones = 0x0101010101010101
	msbs = 0x8080808080808080
)

// HasZeroByte reports whether any of the 8 byte lanes of x is zero.
func HasZeroByte(x uint64) bool {
	return (x-ones)&^x&msbs != 0
}

// Broadcast replicates b into all 8 lanes of a word.
func Broadcast(b byte) uint64 {
	return ones * uint64(b)
}

// IndexByte returns the offset of the first occurrence of c in buf[from:lim],
// scanning one byte at a time, or -1 if c does not occur.
func IndexByte(buf []byte, from, lim int, c byte) int {
	for i := from; i < lim; i++ {
		if buf[i] == c {
			return i
		}
	}
	return -1
}

// IndexByteSWAR behaves exactly like IndexByte but probes 8 bytes per step.
//
// A byte-wise prologue advances to the next 8-byte-aligned offset so the wide
// loads run aligned; a byte-wise epilogue covers the tail. Wide loads never
// touch bytes at or beyond lim.
func IndexByteSWAR(buf []byte, from, lim int, c byte) int {
	pos := from
	for pos < lim && pos&7 != 0 {
		if buf[pos] == c {
			return pos
		}
		pos++
	}
	mask := Broadcast(c)
	for pos+8 <= lim {
		w := binary.LittleEndian.Uint64(buf[pos:])
		if HasZeroByte(w ^ mask) {
			break
		}
		pos += 8
	}
	for pos < lim {
		if buf[pos] == c {
			return pos
		}
		pos++
	}
	return -1
}
