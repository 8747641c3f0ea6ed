// Package errors provides unified error handling for the seiskit streaming
// core. It implements structured error types with machine-readable codes for
// every failure class of the accumulator: bad construction arguments,
// transform registration failures, header divergence between buffer and
// packet, and strict-mode continuity violations (gaps and overlaps).
package errors
