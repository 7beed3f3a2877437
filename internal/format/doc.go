// Package format derives UI-ready fields from raw backend records.
//
// Everything here is pure and deterministic: no I/O, no clock reads, no
// randomness. The same input always produces the same output, including the
// hashed fallback colors for unknown category names, which stay stable
// across processes.
package format
