package scan

import (
	"fmt"
	"io"

	"github.com/hupe1980/tickscan/field"
	"github.com/hupe1980/tickscan/internal/swar"
)

// DefaultBufferSize is the default cursor buffer capacity.
const DefaultBufferSize = 256 * 1024

// MinBufferSize is the smallest accepted buffer capacity. Anything
// smaller cannot hold even a trivial record plus terminator.
const MinBufferSize = 16

// Config controls a buffered cursor.
type Config struct {
	// BufferSize is the fixed buffer capacity. It must exceed the longest
	// record in the input; 0 selects DefaultBufferSize.
	BufferSize int

	// SWAR selects the 8-byte-parallel newline scan instead of the
	// byte-wise one. Both produce identical results.
	SWAR bool

	// StrictFinal rejects a final record that ends without a newline
	// instead of parsing it best-effort.
	StrictFinal bool
}

// Buffered is a Cursor reading sequentially from an io.Reader through a
// single fixed-capacity buffer.
type Buffered struct {
	r   io.Reader
	buf []byte

	pos int // read position within the current record
	lim int // end of filled region
	end int // offset of the current record's newline (== lim when truncated)
	eol int // offset just past the current record, where the next one starts

	col     int    // next unconsumed column of the current record
	line    uint64 // records delivered so far
	gen     uint64 // refill generation, invalidates borrowed views
	eof     bool   // reader exhausted
	started bool

	swarScan    bool
	strictFinal bool
}

// NewBuffered creates a cursor over r.
func NewBuffered(r io.Reader, cfg Config) (*Buffered, error) {
	size := cfg.BufferSize
	if size == 0 {
		size = DefaultBufferSize
	}
	if size < MinBufferSize {
		return nil, fmt.Errorf("buffer size %d below minimum of %d", size, MinBufferSize)
	}
	return &Buffered{
		r:           r,
		buf:         make([]byte, size),
		swarScan:    cfg.SWAR,
		strictFinal: cfg.StrictFinal,
	}, nil
}

// Generation implements field.Source.
func (c *Buffered) Generation() uint64 { return c.gen }

// Line returns the 1-based number of the current record.
func (c *Buffered) Line() uint64 { return c.line }

// Next advances to the next record. After it returns true, the whole
// record is resident in the buffer and fields may be extracted without
// further I/O.
func (c *Buffered) Next() (bool, error) {
	if c.started {
		c.pos = c.eol // skip whatever the caller did not consume
	}
	c.started = true
	c.col = 0

	for {
		if i := c.indexNewline(c.pos, c.lim); i >= 0 {
			c.end = i
			c.eol = i + 1
			c.line++
			return true, nil
		}

		if c.eof {
			if c.pos == c.lim {
				return false, nil
			}
			// Final record without a terminator.
			if c.strictFinal {
				return false, &ErrTruncatedRecord{Line: c.line + 1}
			}
			c.end = c.lim
			c.eol = c.lim
			c.line++
			return true, nil
		}

		if c.pos == 0 && c.lim == len(c.buf) {
			return false, &ErrRecordTooLarge{Capacity: len(c.buf)}
		}

		if err := c.fill(); err != nil {
			return false, err
		}
	}
}

// fill compacts the unconsumed tail to the buffer start and appends more
// input. Every fill bumps the generation: borrowed views alias offsets
// that the compaction or the appended bytes may have rewritten.
func (c *Buffered) fill() error {
	copy(c.buf, c.buf[c.pos:c.lim])
	c.lim -= c.pos
	c.pos = 0
	c.gen++

	for c.lim < len(c.buf) {
		n, err := c.r.Read(c.buf[c.lim:])
		c.lim += n
		if err == io.EOF {
			c.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
	return nil
}

func (c *Buffered) indexNewline(from, lim int) int {
	if c.swarScan {
		return swar.IndexByteSWAR(c.buf, from, lim, '\n')
	}
	return swar.IndexByte(c.buf, from, lim, '\n')
}

// fieldSpan locates field col within the current record, honoring the
// forward-only discipline. The span excludes delimiters.
func (c *Buffered) fieldSpan(col int) (start, end int, err error) {
	if col < c.col {
		return 0, 0, &ErrColumnOrder{Requested: col, Consumed: c.col}
	}
	for c.col < col {
		i := swar.IndexByte(c.buf, c.pos, c.end, ',')
		if i < 0 {
			c.pos = c.end
			return 0, 0, &ErrMissingField{Col: col, Line: c.line}
		}
		c.pos = i + 1
		c.col++
	}
	start = c.pos
	if i := swar.IndexByte(c.buf, c.pos, c.end, ','); i >= 0 {
		end = i
		c.pos = i + 1
	} else {
		end = c.end
		c.pos = c.end
	}
	c.col++
	return start, end, nil
}

// Bytes returns the raw bytes of field col. The slice aliases the
// buffer and is valid only until the next refill.
func (c *Buffered) Bytes(col int) ([]byte, error) {
	start, end, err := c.fieldSpan(col)
	if err != nil {
		return nil, err
	}
	return c.buf[start:end], nil
}

// View points v at field col without copying.
func (c *Buffered) View(col int, v *field.View) error {
	b, err := c.Bytes(col)
	if err != nil {
		return err
	}
	v.Set(c, b)
	return nil
}

// Text returns field col as an owned string.
func (c *Buffered) Text(col int) (string, error) {
	b, err := c.Bytes(col)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// PackedKey returns field col folded into a uint64 key.
func (c *Buffered) PackedKey(col int) (uint64, error) {
	b, err := c.Bytes(col)
	if err != nil {
		return 0, err
	}
	return field.PackKey(b)
}

// Int parses field col as a decimal integer.
func (c *Buffered) Int(col int) (int64, error) {
	b, err := c.Bytes(col)
	if err != nil {
		return 0, err
	}
	return field.ParseInt(b)
}
