// Package s3 implements blobstore.BlobStore for Amazon S3.
//
// Positional reads are served via ranged GetObject requests; sequential
// scans should prefer ReadRange, which streams one GET instead of
// issuing a request per buffer fill.
package s3
