package field

import "github.com/hupe1980/tickscan/internal/conv"

// Source is the owner of the memory a View aliases. Its generation
// advances on every refill that may overwrite that memory.
type Source interface {
	Generation() uint64
}

// View is a reusable, mutable handle onto field bytes living in a scan
// buffer. Setting it allocates nothing; the trade-off is a bounded
// lifetime. Reads fail with ErrStaleView once the source buffer has been
// refilled, unless the view has been compacted into owned storage first.
//
// A View is not safe for concurrent use.
type View struct {
	src Source
	b   []byte
	gen uint64
}

// Set points the view at b, whose lifetime is governed by src.
func (v *View) Set(src Source, b []byte) {
	v.src = src
	v.b = b
	v.gen = src.Generation()
}

func (v *View) stale() bool {
	return v.src != nil && v.src.Generation() != v.gen
}

// Bytes returns the aliased bytes. The slice is valid only until the
// source's next refill.
func (v *View) Bytes() ([]byte, error) {
	if v.stale() {
		return nil, ErrStaleView
	}
	return v.b, nil
}

// Len returns the field length. Valid even for stale views.
func (v *View) Len() int { return len(v.b) }

// String copies the field into an owned string.
func (v *View) String() (string, error) {
	b, err := v.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EqualString compares the field against s without allocating.
func (v *View) EqualString(s string) (bool, error) {
	b, err := v.Bytes()
	if err != nil {
		return false, err
	}
	return conv.BytesToString(b) == s, nil
}

// Compact copies the aliased bytes into owned storage, detaching the
// view from its source. Required before retaining the value past the
// current record, e.g. as a map key.
func (v *View) Compact() error {
	if v.src == nil {
		return nil
	}
	if v.stale() {
		return ErrStaleView
	}
	owned := make([]byte, len(v.b))
	copy(owned, v.b)
	v.b = owned
	v.src = nil
	return nil
}
