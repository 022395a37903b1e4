package tickscan

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/resource"
	"github.com/hupe1980/tickscan/scan"
)

// Compressed-format magic bytes.
var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// stream is one scan's assembled input pipeline:
// blob → (prefetch) → byte counting → (rate limit) → (decompression).
type stream struct {
	r       io.Reader
	count   *countingReader
	closers []io.Closer
}

func (s *stream) bytesRead() int64 { return s.count.n.Load() }

func (s *stream) Close() error {
	var first error
	// Innermost last: decoders drain from the layers beneath them.
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type countingReader struct {
	r io.Reader
	n atomic.Int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n.Add(int64(n))
	return n, err
}

// openStream builds the input pipeline for one scan over blob.
func openStream(ctx context.Context, blob blobstore.Blob, o *Options) (*stream, error) {
	s := &stream{}

	var base io.Reader
	if o.PrefetchRegionSize > 0 {
		p, err := scan.NewPrefetcher(blob, o.PrefetchRegionSize)
		if err != nil {
			return nil, err
		}
		base = p
	} else if blob.Size() == 0 {
		base = bytes.NewReader(nil)
	} else {
		rc, err := blob.ReadRange(0, blob.Size())
		if err != nil {
			return nil, fmt.Errorf("open input range: %w", err)
		}
		s.closers = append(s.closers, rc)
		base = rc
	}

	s.count = &countingReader{r: base}
	var r io.Reader = s.count

	if o.Controller != nil {
		r = resource.NewRateLimitedReader(ctx, r, o.Controller)
	}

	r, err := decompress(r, o.Compression, s)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.r = r
	return s, nil
}

// decompress wraps r with the requested (or sniffed) decoder.
func decompress(r io.Reader, c Compression, s *stream) (io.Reader, error) {
	if c == CompressionNone {
		return r, nil
	}

	if c == CompressionAuto {
		br := bufio.NewReader(r)
		head, err := br.Peek(4)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("sniff compression: %w", err)
		}
		switch {
		case bytes.HasPrefix(head, magicGzip):
			c = CompressionGzip
		case bytes.HasPrefix(head, magicZstd):
			c = CompressionZstd
		case bytes.HasPrefix(head, magicLZ4):
			c = CompressionLZ4
		default:
			return br, nil
		}
		r = br
	}

	switch c {
	case CompressionGzip:
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open gzip input: %w", err)
		}
		s.closers = append(s.closers, zr)
		return zr, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("open zstd input: %w", err)
		}
		s.closers = append(s.closers, closerFunc(func() error { zr.Close(); return nil }))
		return zr, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	default:
		return r, nil
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
