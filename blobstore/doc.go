// Package blobstore abstracts where input files live.
//
// A scan needs two access patterns from its input: positional reads for
// the double-buffered prefetcher, and a single sequential stream for
// plain or compressed input. Blob serves both via io.ReaderAt and
// ReadRange.
//
// # Built-in implementations
//
//   - LocalStore: local filesystem, memory-mapped
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with range reads
//   - minio.Store: MinIO and S3-compatible object stores
//
// Implementations must be safe for concurrent use.
package blobstore
