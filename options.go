package tickscan

import (
	"github.com/hupe1980/tickscan/resource"
	"github.com/hupe1980/tickscan/scan"
)

// MalformedPolicy decides what happens to records that cannot be decoded.
type MalformedPolicy int

const (
	// PolicyAbort stops the scan at the first malformed record.
	PolicyAbort MalformedPolicy = iota
	// PolicySkip drops malformed records, counting them and recording
	// their line numbers on the Result.
	PolicySkip
)

// KeyMode selects how product keys are stored.
type KeyMode int

const (
	// KeyModePacked folds products of up to 7 ASCII bytes into uint64
	// keys: no allocation, no byte hashing. Longer products are
	// malformed under this mode.
	KeyModePacked KeyMode = iota
	// KeyModeOwned copies products into string keys of any length.
	KeyModeOwned
)

// Compression selects input decompression.
type Compression int

const (
	// CompressionAuto sniffs gzip, zstd and lz4 magic bytes.
	CompressionAuto Compression = iota
	// CompressionNone reads the input as-is, skipping detection.
	CompressionNone
	// CompressionGzip, CompressionZstd and CompressionLZ4 force a codec.
	CompressionGzip
	CompressionZstd
	CompressionLZ4
)

// ColumnNames are the required header names to resolve. Their order in
// the file is irrelevant.
type ColumnNames struct {
	Source  string
	Product string
	Side    string
	OrdQty  string
	WrkQty  string
	ExcQty  string
}

// DefaultColumns matches the canonical transaction file header.
var DefaultColumns = ColumnNames{
	Source:  "Source",
	Product: "Prod",
	Side:    "B/S",
	OrdQty:  "OrdQty",
	WrkQty:  "WrkQty",
	ExcQty:  "ExcQty",
}

// Options configures a Scanner.
type Options struct {
	// BufferSize is the cursor buffer capacity. It must exceed the
	// longest record in the input. 0 selects scan.DefaultBufferSize.
	BufferSize int

	// SWAR enables the 8-byte-parallel newline scan.
	SWAR bool

	// PrefetchRegionSize enables double-buffered read-ahead with the
	// given region size when > 0.
	PrefetchRegionSize int

	// StrictFinalRecord rejects a final record with no newline instead
	// of parsing it best-effort.
	StrictFinalRecord bool

	// Malformed selects the malformed-record policy.
	Malformed MalformedPolicy

	// KeyMode selects packed or owned product keys.
	KeyMode KeyMode

	// SourceFilter is the source column value a record must match to be
	// aggregated. Must fit a packed key.
	SourceFilter string

	// BuyValue is the side column value counted as a buy; anything else
	// counts as a sell. Must fit a packed key.
	BuyValue string

	// Columns are the header names to resolve.
	Columns ColumnNames

	// Compression selects input decompression.
	Compression Compression

	// Logger receives structured scan logs. Nil discards them.
	Logger *Logger

	// Metrics receives per-scan measurements. Nil discards them.
	Metrics MetricsCollector

	// Controller bounds scan concurrency and input throughput.
	// Nil imposes no limits.
	Controller *resource.Controller
}

// DefaultOptions are the options used by New before applying overrides.
var DefaultOptions = Options{
	BufferSize:   scan.DefaultBufferSize,
	SWAR:         true,
	SourceFilter: "ToClnt",
	BuyValue:     "Buy",
	Columns:      DefaultColumns,
}

// WithBufferSize sets the cursor buffer capacity.
func WithBufferSize(size int) func(*Options) {
	return func(o *Options) {
		o.BufferSize = size
	}
}

// WithByteScan disables the SWAR newline scan in favor of the byte-wise
// one. Intended for comparison runs; results are identical.
func WithByteScan() func(*Options) {
	return func(o *Options) {
		o.SWAR = false
	}
}

// WithPrefetch enables double-buffered read-ahead. regionSize 0 selects
// scan.DefaultRegionSize.
func WithPrefetch(regionSize int) func(*Options) {
	return func(o *Options) {
		if regionSize == 0 {
			regionSize = scan.DefaultRegionSize
		}
		o.PrefetchRegionSize = regionSize
	}
}

// WithStrictFinalRecord rejects a truncated final record.
func WithStrictFinalRecord() func(*Options) {
	return func(o *Options) {
		o.StrictFinalRecord = true
	}
}

// WithMalformedPolicy sets the malformed-record policy.
func WithMalformedPolicy(p MalformedPolicy) func(*Options) {
	return func(o *Options) {
		o.Malformed = p
	}
}

// WithKeyMode sets the product key mode.
func WithKeyMode(m KeyMode) func(*Options) {
	return func(o *Options) {
		o.KeyMode = m
	}
}

// WithSourceFilter sets the source value records must match.
func WithSourceFilter(value string) func(*Options) {
	return func(o *Options) {
		o.SourceFilter = value
	}
}

// WithColumns sets the header names to resolve.
func WithColumns(c ColumnNames) func(*Options) {
	return func(o *Options) {
		o.Columns = c
	}
}

// WithCompression forces or disables input decompression.
func WithCompression(c Compression) func(*Options) {
	return func(o *Options) {
		o.Compression = c
	}
}

// WithLogger sets the logger.
func WithLogger(l *Logger) func(*Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m MetricsCollector) func(*Options) {
	return func(o *Options) {
		o.Metrics = m
	}
}

// WithController sets the resource controller.
func WithController(c *resource.Controller) func(*Options) {
	return func(o *Options) {
		o.Controller = c
	}
}
