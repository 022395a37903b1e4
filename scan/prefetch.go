package scan

import (
	"fmt"
	"io"
)

// DefaultRegionSize is the default prefetch region size.
const DefaultRegionSize = 64 * 1024

// Prefetcher turns an io.ReaderAt into a sequential stream with
// double-buffered read-ahead: while one region is being consumed, the
// read for the next region is already in flight. At most one fill is
// pending at any time, and the consumer blocks only when it needs bytes
// the in-flight read has not yet delivered.
//
// Layered under a Buffered cursor, the cursor's own slide-and-refill
// protocol keeps every record contiguous even when it spans two regions.
type Prefetcher struct {
	src     io.ReaderAt
	regions [2][]byte

	cur     []byte // unread remainder of the active region
	pending chan fillResult
	slot    int   // region with the in-flight fill
	nextOff int64 // file offset of the fill after the pending one

	eof bool
	err error
}

type fillResult struct {
	n   int
	err error
}

// NewPrefetcher starts read-ahead on src. regionSize 0 selects
// DefaultRegionSize.
func NewPrefetcher(src io.ReaderAt, regionSize int) (*Prefetcher, error) {
	if regionSize == 0 {
		regionSize = DefaultRegionSize
	}
	if regionSize < 1 {
		return nil, fmt.Errorf("region size %d must be positive", regionSize)
	}
	p := &Prefetcher{
		src:     src,
		pending: make(chan fillResult, 1),
	}
	p.regions[0] = make([]byte, regionSize)
	p.regions[1] = make([]byte, regionSize)
	p.issue(0)
	return p, nil
}

// issue starts an asynchronous fill of the given region slot at the next
// file offset. The result channel is buffered, so the goroutine never
// outlives its send.
func (p *Prefetcher) issue(slot int) {
	p.slot = slot
	off := p.nextOff
	p.nextOff += int64(len(p.regions[slot]))
	buf := p.regions[slot]
	go func() {
		n, err := p.src.ReadAt(buf, off)
		p.pending <- fillResult{n: n, err: err}
	}()
}

// Read implements io.Reader.
func (p *Prefetcher) Read(b []byte) (int, error) {
	for len(p.cur) == 0 {
		if p.err != nil {
			return 0, p.err
		}
		if p.eof {
			return 0, io.EOF
		}

		res := <-p.pending
		active := p.slot
		if res.err != nil && res.err != io.EOF {
			p.err = fmt.Errorf("prefetch read at offset %d: %w", p.nextOff-int64(len(p.regions[active])), res.err)
			return 0, p.err
		}
		if res.err == io.EOF || res.n < len(p.regions[active]) {
			p.eof = true
		}
		p.cur = p.regions[active][:res.n]

		// Overlap the next region's I/O with consumption of this one.
		if !p.eof {
			p.issue(1 - active)
		}
	}

	n := copy(b, p.cur)
	p.cur = p.cur[n:]
	return n, nil
}
