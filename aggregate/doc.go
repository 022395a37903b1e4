// Package aggregate accumulates per-product statistics during a scan.
//
// The store is safe for concurrent producers even though a single scan
// drives it from one goroutine: GetOrCreate installs at most one
// accumulator per distinct key, so sharded multi-scanner ingestion can
// share a store without changes here.
package aggregate
