// Package scan implements the streaming record cursor.
//
// A cursor owns a fixed-capacity byte buffer and guarantees that the
// bytes of the current record are fully resident before any field is
// extracted. When the remaining bytes cannot contain a complete record,
// the unconsumed tail is compacted to the buffer start and more input is
// appended ("slide and refill"). Fields are requested by column index in
// ascending order only; the cursor never re-scans backwards.
//
// Two input strategies satisfy the same contract: a plain buffered
// cursor over an io.Reader, and the same cursor layered on a Prefetcher
// that overlaps positional reads of the next region with parsing of the
// current one.
package scan
