package tickscan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/tickscan/aggregate"
	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/field"
	"github.com/hupe1980/tickscan/internal/conv"
	"github.com/hupe1980/tickscan/scan"
)

// ctxCheckInterval is how many records pass between context checks.
// Power of two so the modulo folds to a mask.
const ctxCheckInterval = 8192

// Scanner aggregates transaction records from a blob. It is reusable:
// each Scan opens a fresh input pipeline over the same blob.
type Scanner struct {
	blob blobstore.Blob
	opts Options

	filterKey uint64
	buyKey    uint64
}

// New creates a Scanner over blob with the given options.
func New(blob blobstore.Blob, optFns ...func(*Options)) (*Scanner, error) {
	if blob == nil {
		return nil, errors.New("tickscan: nil blob")
	}

	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.BufferSize != 0 && opts.BufferSize < scan.MinBufferSize {
		return nil, fmt.Errorf("tickscan: buffer size %d below minimum %d", opts.BufferSize, scan.MinBufferSize)
	}

	filterKey, err := field.PackKey([]byte(opts.SourceFilter))
	if err != nil {
		return nil, fmt.Errorf("tickscan: source filter %q: %w", opts.SourceFilter, err)
	}
	buyKey, err := field.PackKey([]byte(opts.BuyValue))
	if err != nil {
		return nil, fmt.Errorf("tickscan: buy value %q: %w", opts.BuyValue, err)
	}

	return &Scanner{
		blob:      blob,
		opts:      opts,
		filterKey: filterKey,
		buyKey:    buyKey,
	}, nil
}

// Scan reads the blob once and aggregates every record whose source
// column matches the configured filter.
func (s *Scanner) Scan(ctx context.Context) (*Result, error) {
	if err := s.opts.Controller.AcquireScan(ctx); err != nil {
		return nil, err
	}
	defer s.opts.Controller.ReleaseScan()

	start := time.Now()
	res, err := s.scan(ctx)

	duration := time.Since(start)
	var records, matched, skipped uint64
	var bytesRead int64
	if res != nil {
		res.duration = duration
		records, matched, skipped = res.records, res.matched, res.skipped
		bytesRead = res.bytesRead
	}
	if s.opts.Logger != nil {
		s.opts.Logger.LogScan(ctx, records, matched, skipped, bytesRead, duration, err)
	}
	if s.opts.Metrics != nil {
		s.opts.Metrics.RecordScan(records, matched, skipped, bytesRead, duration, err)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Scanner) scan(ctx context.Context) (*Result, error) {
	st, err := openStream(ctx, s.blob, &s.opts)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	cur, err := scan.NewBuffered(st.r, scan.Config{
		BufferSize:  s.opts.BufferSize,
		SWAR:        s.opts.SWAR,
		StrictFinal: s.opts.StrictFinalRecord,
	})
	if err != nil {
		return nil, err
	}

	headers, err := readHeader(cur)
	if err != nil {
		return nil, err
	}
	plan, err := buildPlan(headers, s.opts.Columns)
	if err != nil {
		return nil, err
	}

	res := &Result{keyMode: s.opts.KeyMode}
	if s.opts.KeyMode == KeyModeOwned {
		res.owned = aggregate.NewStringStore()
	} else {
		res.packed = aggregate.NewPackedStore()
	}
	if s.opts.Malformed == PolicySkip {
		res.skippedLines = roaring.New()
	}

	for {
		ok, err := cur.Next()
		if err != nil {
			// Cursor errors end the stream: a truncated final record
			// can be skipped, but there is nothing after it.
			if handled, herr := s.malformed(res, cur.Line()+1, err); !handled {
				res.bytesRead = st.bytesRead()
				return res, herr
			}
			break
		}
		if !ok {
			break
		}
		res.records++

		if res.records%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				res.bytesRead = st.bytesRead()
				return res, ctx.Err()
			default:
			}
		}

		matched, err := s.consume(cur, plan, res)
		if err != nil {
			if handled, herr := s.malformed(res, cur.Line(), err); !handled {
				res.bytesRead = st.bytesRead()
				return res, herr
			}
			continue
		}
		if matched {
			res.matched++
		}
	}

	res.bytesRead = st.bytesRead()
	return res, nil
}

// consume extracts one record per the plan and folds it into res.
// A nil error with matched=false means the record failed the source
// filter; a non-nil error means the record is malformed.
func (s *Scanner) consume(cur scan.Cursor, plan extractPlan, res *Result) (matched bool, err error) {
	var (
		buy           bool
		ord, wrk, exc int64
		prodKey       uint64
		prodBytes     []byte
		keyTooLong    *field.ErrKeyTooLong
	)
	ownedKeys := s.opts.KeyMode == KeyModeOwned

	for _, step := range plan.steps {
		switch step.role {
		case roleSource:
			k, err := cur.PackedKey(step.col)
			if err != nil {
				// A source wider than a packed key cannot equal the
				// filter value; treat it as a non-match, not an error.
				if errors.As(err, &keyTooLong) {
					return false, nil
				}
				return false, err
			}
			if k != s.filterKey {
				return false, nil
			}

		case roleProduct:
			if ownedKeys {
				prodBytes, err = cur.Bytes(step.col)
			} else {
				prodKey, err = cur.PackedKey(step.col)
			}
			if err != nil {
				return false, err
			}

		case roleSide:
			k, err := cur.PackedKey(step.col)
			if err != nil {
				// Anything that is not the buy value is a sell,
				// including sides too wide to pack.
				if !errors.As(err, &keyTooLong) {
					return false, err
				}
				k = 0
			}
			buy = k == s.buyKey

		case roleOrd:
			if ord, err = cur.Int(step.col); err != nil {
				return false, err
			}
		case roleWrk:
			if wrk, err = cur.Int(step.col); err != nil {
				return false, err
			}
		case roleExc:
			if exc, err = cur.Int(step.col); err != nil {
				return false, err
			}
		}
	}

	var acc *aggregate.Accumulator
	if ownedKeys {
		// Look up with a borrowed string first; copy the key only when
		// the product is new.
		var ok bool
		if acc, ok = res.owned.Get(conv.BytesToString(prodBytes)); !ok {
			acc = res.owned.GetOrCreate(string(prodBytes))
		}
	} else {
		acc = res.packed.GetOrCreate(prodKey)
	}

	acc.Count()
	acc.BuySell(buy)
	acc.AddQty(ord, wrk, exc)
	return true, nil
}

// malformed applies the malformed-record policy to err at line.
// handled=true means the record was skipped and the scan continues.
func (s *Scanner) malformed(res *Result, line uint64, err error) (handled bool, out error) {
	if !isRecordError(err) {
		return false, err
	}
	if s.opts.Malformed == PolicySkip {
		res.skipped++
		res.skippedLines.Add(uint32(line))
		return true, nil
	}
	return false, &ErrMalformedRecord{Line: line, cause: err}
}

// isRecordError reports whether err condemns a single record rather
// than the whole scan.
func isRecordError(err error) bool {
	var (
		missing   *scan.ErrMissingField
		truncated *scan.ErrTruncatedRecord
		badNumber *field.ErrInvalidNumber
		tooLong   *field.ErrKeyTooLong
	)
	return errors.As(err, &missing) ||
		errors.As(err, &truncated) ||
		errors.As(err, &badNumber) ||
		errors.As(err, &tooLong)
}
