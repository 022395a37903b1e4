// Package testutil provides deterministic helpers for tests and
// benchmarks: a seeded RNG and synthetic transaction-file generation.
package testutil
