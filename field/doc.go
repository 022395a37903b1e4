// Package field interprets raw delimited-field bytes.
//
// Four decoding modes are offered, from most to least allocating:
//
//   - owned text: copy the field into a fresh string
//   - reusable view: alias the field bytes in place, invalidated by the
//     next buffer refill (tracked via a generation counter)
//   - packed key: fold up to 7 ASCII bytes into a uint64 for cheap
//     hashing and equality
//   - parsed integer: decode decimal digits directly from bytes
package field
