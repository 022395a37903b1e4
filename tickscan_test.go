package tickscan

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tickscan/blobstore"
	"github.com/hupe1980/tickscan/resource"
	"github.com/hupe1980/tickscan/testutil"
)

const sampleCSV = `Source,Prod,B/S,OrdQty,WrkQty,ExcQty
ToClnt,ABC,Buy,100,50,80
ToSrc,ABC,Sell,10,10,10
ToClnt,ABC,Sell,20,30,25
`

func openBlob(t *testing.T, data []byte) blobstore.Blob {
	t.Helper()

	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "input.csv", data))

	blob, err := store.Open(ctx, "input.csv")
	require.NoError(t, err)
	t.Cleanup(func() { _ = blob.Close() })
	return blob
}

func TestScanAggregates(t *testing.T) {
	sc, err := New(openBlob(t, []byte(sampleCSV)))
	require.NoError(t, err)

	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 3, res.Records())
	require.EqualValues(t, 2, res.Matched())
	require.EqualValues(t, 0, res.Skipped())
	require.Equal(t, 1, res.Len())

	abc, ok := res.Product("ABC")
	require.True(t, ok)
	require.EqualValues(t, 2, abc.Records)
	require.EqualValues(t, 1, abc.Buys)
	require.EqualValues(t, 1, abc.Sells)
	require.InDelta(t, 65.0, abc.AvgMaxQty, 1e-9) // (max(100,50,80)+max(20,30,25))/2

	require.Equal(t, "ABC: cnt=2 buy=1 sell=1 avg qty=65.00", abc.String())
}

func TestScanConfigurationsAgree(t *testing.T) {
	rng := testutil.NewRNG(42)
	var buf bytes.Buffer
	products := []string{"ABC", "XYZ", "Q", "LONGPRD"}
	require.NoError(t, testutil.GenerateCSV(&buf, rng, products, 5000))
	data := buf.Bytes()

	baseline := scanWith(t, data)

	configs := map[string][]func(*Options){
		"byte scan":    {WithByteScan()},
		"tiny buffer":  {WithBufferSize(64)},
		"prefetch":     {WithPrefetch(512)},
		"owned keys":   {WithKeyMode(KeyModeOwned)},
		"all together": {WithByteScan(), WithBufferSize(64), WithPrefetch(512), WithKeyMode(KeyModeOwned)},
	}
	for name, optFns := range configs {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, baseline, scanWith(t, data, optFns...))
		})
	}
}

func scanWith(t *testing.T, data []byte, optFns ...func(*Options)) []ProductStats {
	t.Helper()

	sc, err := New(openBlob(t, data), optFns...)
	require.NoError(t, err)
	res, err := sc.Scan(context.Background())
	require.NoError(t, err)
	return res.Products()
}

func TestScanIsRepeatable(t *testing.T) {
	sc, err := New(openBlob(t, []byte(sampleCSV)))
	require.NoError(t, err)

	first, err := sc.Scan(context.Background())
	require.NoError(t, err)
	second, err := sc.Scan(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Products(), second.Products())
	require.Equal(t, first.Records(), second.Records())
}

func TestScanCompressed(t *testing.T) {
	compressors := map[string]func(t *testing.T, data []byte) []byte{
		"gzip": func(t *testing.T, data []byte) []byte {
			var buf bytes.Buffer
			w := gzip.NewWriter(&buf)
			_, err := w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			return buf.Bytes()
		},
		"zstd": func(t *testing.T, data []byte) []byte {
			var buf bytes.Buffer
			w, err := zstd.NewWriter(&buf)
			require.NoError(t, err)
			_, err = w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			return buf.Bytes()
		},
		"lz4": func(t *testing.T, data []byte) []byte {
			var buf bytes.Buffer
			w := lz4.NewWriter(&buf)
			_, err := w.Write(data)
			require.NoError(t, err)
			require.NoError(t, w.Close())
			return buf.Bytes()
		},
	}

	plain := scanWith(t, []byte(sampleCSV))

	for name, compress := range compressors {
		t.Run(name, func(t *testing.T) {
			data := compress(t, []byte(sampleCSV))
			require.Equal(t, plain, scanWith(t, data))
			// Sniffing layered over read-ahead.
			require.Equal(t, plain, scanWith(t, data, WithPrefetch(32)))
		})
	}
}

func TestScanSourceFilter(t *testing.T) {
	sc, err := New(openBlob(t, []byte(sampleCSV)), WithSourceFilter("ToSrc"))
	require.NoError(t, err)

	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 1, res.Matched())
	abc, ok := res.Product("ABC")
	require.True(t, ok)
	require.EqualValues(t, 0, abc.Buys)
	require.EqualValues(t, 1, abc.Sells)
	require.InDelta(t, 10.0, abc.AvgMaxQty, 1e-9)
}

func TestScanReorderedColumns(t *testing.T) {
	const reordered = `ExcQty,B/S,Prod,OrdQty,Source,WrkQty
80,Buy,ABC,100,ToClnt,50
10,Sell,ABC,10,ToSrc,10
25,Sell,ABC,20,ToClnt,30
`
	res := scanWith(t, []byte(reordered))
	require.Equal(t, scanWith(t, []byte(sampleCSV)), res)
}

func TestScanMissingColumn(t *testing.T) {
	sc, err := New(openBlob(t, []byte("Source,Prod,B/S,OrdQty,WrkQty\nToClnt,ABC,Buy,1,2\n")))
	require.NoError(t, err)

	_, err = sc.Scan(context.Background())
	var missing *ErrMissingColumn
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "ExcQty", missing.Name)
}

func TestScanEmptyInput(t *testing.T) {
	sc, err := New(openBlob(t, nil))
	require.NoError(t, err)

	_, err = sc.Scan(context.Background())
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestScanMalformedAbort(t *testing.T) {
	const input = `Source,Prod,B/S,OrdQty,WrkQty,ExcQty
ToClnt,ABC,Buy,100,50,80
ToClnt,ABC,Buy,oops,50,80
ToClnt,ABC,Sell,20,30,25
`
	sc, err := New(openBlob(t, []byte(input)))
	require.NoError(t, err)

	_, err = sc.Scan(context.Background())
	var malformed *ErrMalformedRecord
	require.ErrorAs(t, err, &malformed)
	require.EqualValues(t, 3, malformed.Line)
}

func TestScanMalformedSkip(t *testing.T) {
	const input = `Source,Prod,B/S,OrdQty,WrkQty,ExcQty
ToClnt,ABC,Buy,100,50,80
ToClnt,ABC,Buy,oops,50,80
ToClnt,ABC,Sell
ToClnt,ABC,Sell,20,30,25
`
	sc, err := New(openBlob(t, []byte(input)), WithMalformedPolicy(PolicySkip))
	require.NoError(t, err)

	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 2, res.Skipped())
	require.Equal(t, []uint64{3, 4}, res.SkippedLines())

	abc, ok := res.Product("ABC")
	require.True(t, ok)
	require.EqualValues(t, 2, abc.Records)
	require.InDelta(t, 65.0, abc.AvgMaxQty, 1e-9)
}

func TestScanLongProductPackedVsOwned(t *testing.T) {
	const input = `Source,Prod,B/S,OrdQty,WrkQty,ExcQty
ToClnt,VERYLONGPRODUCT,Buy,1,2,3
`
	sc, err := New(openBlob(t, []byte(input)))
	require.NoError(t, err)
	_, err = sc.Scan(context.Background())
	var malformed *ErrMalformedRecord
	require.ErrorAs(t, err, &malformed)

	sc, err = New(openBlob(t, []byte(input)), WithKeyMode(KeyModeOwned))
	require.NoError(t, err)
	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	stats, ok := res.Product("VERYLONGPRODUCT")
	require.True(t, ok)
	require.EqualValues(t, 1, stats.Buys)
	require.InDelta(t, 3.0, stats.AvgMaxQty, 1e-9)
}

func TestScanTruncatedFinalRecord(t *testing.T) {
	const input = "Source,Prod,B/S,OrdQty,WrkQty,ExcQty\nToClnt,ABC,Buy,100,50,80" // no trailing newline

	// Best-effort parses the final record.
	res := scanWith(t, []byte(input))
	require.Len(t, res, 1)
	require.EqualValues(t, 1, res[0].Records)

	// Strict rejects it.
	sc, err := New(openBlob(t, []byte(input)), WithStrictFinalRecord())
	require.NoError(t, err)
	_, err = sc.Scan(context.Background())
	var malformed *ErrMalformedRecord
	require.ErrorAs(t, err, &malformed)

	// Strict plus skip drops it.
	sc, err = New(openBlob(t, []byte(input)), WithStrictFinalRecord(), WithMalformedPolicy(PolicySkip))
	require.NoError(t, err)
	skipRes, err := sc.Scan(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, skipRes.Skipped())
	require.Equal(t, 0, skipRes.Len())
}

func TestScanContextCancellation(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(testutil.Header + "\n")
	for i := 0; i < 3*ctxCheckInterval; i++ {
		fmt.Fprintf(&buf, "ToClnt,P%d,Buy,1,2,3\n", i%10)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sc, err := New(openBlob(t, buf.Bytes()))
	require.NoError(t, err)
	_, err = sc.Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanInvalidOptions(t *testing.T) {
	blob := openBlob(t, []byte(sampleCSV))

	_, err := New(nil)
	require.Error(t, err)

	_, err = New(blob, WithBufferSize(4))
	require.Error(t, err)

	_, err = New(blob, WithSourceFilter("WAYTOOLONGFILTER"))
	require.Error(t, err)
}

func TestScanWithControllerAndObservability(t *testing.T) {
	rng := testutil.NewRNG(7)
	var buf bytes.Buffer
	require.NoError(t, testutil.GenerateCSV(&buf, rng, []string{"AAA", "BBB"}, 200))

	ctrl := resource.NewController(resource.Config{
		MaxConcurrentScans: 1,
		IOLimitBytesPerSec: 1 << 20,
	})
	var metrics capturingMetrics

	sc, err := New(openBlob(t, buf.Bytes()),
		WithController(ctrl),
		WithLogger(NoopLogger()),
		WithMetrics(&metrics),
	)
	require.NoError(t, err)

	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	require.EqualValues(t, 200, res.Records())
	require.Equal(t, res.Records(), metrics.records)
	require.Equal(t, res.BytesRead(), metrics.bytesRead)
	require.Positive(t, res.BytesRead())
	require.NoError(t, metrics.err)
}

type capturingMetrics struct {
	records   uint64
	bytesRead int64
	err       error
}

func (m *capturingMetrics) RecordScan(records, _, _ uint64, bytesRead int64, _ time.Duration, err error) {
	m.records = records
	m.bytesRead = bytesRead
	m.err = err
}

func TestScanHugeProductSetOwnedKeys(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(testutil.Header + "\n")
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&buf, "ToClnt,PRODUCT-%04d,Buy,%d,%d,%d\n", i, i+1, i+2, i+3)
	}

	res := scanWith(t, buf.Bytes(), WithKeyMode(KeyModeOwned))
	require.Len(t, res, 500)

	// Products() sorts by name; PRODUCT-%04d sorts numerically too.
	for i, stats := range res {
		require.Equal(t, fmt.Sprintf("PRODUCT-%04d", i), stats.Product)
		require.InDelta(t, float64(i+3), stats.AvgMaxQty, 1e-9)
	}
}

func TestScanLocalStore(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trades.csv"), []byte(sampleCSV), 0o600))

	store := blobstore.NewLocalStore(dir)
	blob, err := store.Open(context.Background(), "trades.csv")
	require.NoError(t, err)
	defer blob.Close()

	sc, err := New(blob)
	require.NoError(t, err)
	res, err := sc.Scan(context.Background())
	require.NoError(t, err)

	abc, ok := res.Product("ABC")
	require.True(t, ok)
	require.EqualValues(t, 2, abc.Records)
}

