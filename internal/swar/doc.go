// Package swar implements wide-word delimiter scanning.
//
// SWAR ("SIMD within a register") probes 8 bytes per step using ordinary
// 64-bit arithmetic: the target byte is broadcast across a word, XORed
// against the input, and the classic has-zero-byte trick tests all eight
// lanes at once. No assembly, no platform dispatch.
package swar
