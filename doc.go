// Package tickscan ingests delimited transaction files at high
// throughput and produces per-product aggregate statistics.
//
// The aggregation itself is deliberately simple (record counts, buy/sell
// counts, average involved quantity); the point of the package is the
// allocation-frugal streaming pipeline underneath it:
//
//   - a fixed-capacity byte buffer with a slide-and-refill protocol that
//     keeps every record fully resident before parsing (package scan)
//   - an 8-byte-parallel (SWAR) newline scan
//   - field decoding without per-record allocation: reusable buffer
//     views with generation-checked lifetimes, and short string keys
//     packed into uint64 values (package field)
//   - double-buffered asynchronous read-ahead that overlaps I/O with
//     parsing (scan.Prefetcher)
//   - a concurrency-safe per-product accumulator store with atomic
//     get-or-create semantics (package aggregate)
//
// Input location is abstracted by package blobstore (local mmap-backed
// files, in-memory blobs, S3, MinIO); gzip, zstd and lz4 compressed
// input is detected and decoded transparently.
//
// # Quick start
//
//	ctx := context.Background()
//	store := blobstore.NewLocalStore("/data")
//	blob, err := store.Open(ctx, "trades.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer blob.Close()
//
//	sc, err := tickscan.New(blob,
//	    tickscan.WithPrefetch(64*1024),
//	    tickscan.WithMalformedPolicy(tickscan.PolicySkip),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := sc.Scan(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range res.Products() {
//	    fmt.Println(p)
//	}
//
// The input format is strict comma-separated text with a single header
// line: no quoting, no escaping, no embedded delimiters. Records whose
// source column does not match the configured filter value are filtered
// out but still scanned.
package tickscan
