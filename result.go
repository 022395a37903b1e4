package tickscan

import (
	"fmt"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/field"
)

// ProductStats is the aggregate for one product.
type ProductStats struct {
	// Product is the product key as it appeared in the input.
	Product string

	// Records is the number of matched records for the product.
	Records int64

	// Buys and Sells partition Records by side.
	Buys  int64
	Sells int64

	// AvgMaxQty is the mean over matched records of the largest of the
	// three quantity columns.
	AvgMaxQty float64
}

func (s ProductStats) String() string {
	return fmt.Sprintf("%s: cnt=%d buy=%d sell=%d avg qty=%.2f",
		s.Product, s.Records, s.Buys, s.Sells, s.AvgMaxQty)
}

// Result holds the outcome of one scan. It is immutable and safe for
// concurrent reads.
type Result struct {
	keyMode KeyMode
	packed  *aggregate.Store[uint64]
	owned   *aggregate.Store[string]

	records uint64
	matched uint64
	skipped uint64

	skippedLines *roaring.Bitmap

	bytesRead int64
	duration  time.Duration
}

// Records is the number of data records consumed, excluding the header.
func (r *Result) Records() uint64 { return r.records }

// Matched is the number of records that passed the source filter and
// were aggregated.
func (r *Result) Matched() uint64 { return r.matched }

// Skipped is the number of malformed records dropped under PolicySkip.
func (r *Result) Skipped() uint64 { return r.skipped }

// SkippedLines returns the 1-based line numbers of skipped records in
// ascending order. Empty unless PolicySkip dropped records.
func (r *Result) SkippedLines() []uint64 {
	if r.skippedLines == nil || r.skippedLines.IsEmpty() {
		return nil
	}
	lines := make([]uint64, 0, r.skippedLines.GetCardinality())
	it := r.skippedLines.Iterator()
	for it.HasNext() {
		lines = append(lines, uint64(it.Next()))
	}
	return lines
}

// BytesRead is the number of input bytes consumed from the blob, before
// decompression.
func (r *Result) BytesRead() int64 { return r.bytesRead }

// Duration is the wall-clock time the scan took.
func (r *Result) Duration() time.Duration { return r.duration }

// Len is the number of distinct products aggregated.
func (r *Result) Len() int {
	if r.keyMode == KeyModeOwned {
		return r.owned.Len()
	}
	return r.packed.Len()
}

// Product returns the stats for one product.
func (r *Result) Product(name string) (ProductStats, bool) {
	var (
		acc *aggregate.Accumulator
		ok  bool
	)
	if r.keyMode == KeyModeOwned {
		acc, ok = r.owned.Get(name)
	} else {
		key, err := field.PackKey([]byte(name))
		if err != nil {
			return ProductStats{}, false
		}
		acc, ok = r.packed.Get(key)
	}
	if !ok {
		return ProductStats{}, false
	}
	return statsFor(name, acc), true
}

// Products returns the stats for every product, sorted by product name.
func (r *Result) Products() []ProductStats {
	out := make([]ProductStats, 0, r.Len())
	if r.keyMode == KeyModeOwned {
		r.owned.ForEach(func(key string, acc *aggregate.Accumulator) bool {
			out = append(out, statsFor(key, acc))
			return true
		})
	} else {
		r.packed.ForEach(func(key uint64, acc *aggregate.Accumulator) bool {
			out = append(out, statsFor(field.UnpackKey(key), acc))
			return true
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Product < out[j].Product })
	return out
}

func statsFor(name string, acc *aggregate.Accumulator) ProductStats {
	return ProductStats{
		Product:   name,
		Records:   acc.Records(),
		Buys:      acc.Buys(),
		Sells:     acc.Sells(),
		AvgMaxQty: acc.AvgMaxQty(),
	}
}
