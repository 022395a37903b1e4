// Package conv provides zero-copy byte/string conversions.
//
// The conversions alias the input's backing memory instead of copying it.
// A string produced by BytesToString must never outlive a mutation of the
// source slice; callers that retain the value past the source's lifetime
// must copy first.
package conv
