// Package signal implements the predefined stateful transforms applied by
// the realtime accumulator, together with the per-transform carry-over
// memory that makes multi-packet running computations possible.
//
// Every transform honors the same call contract: it receives the packet
// being appended, the memory slots it privately owns, and its registration
// options, and returns the replacement sample array. Transforms are pure
// with respect to everything except their own memory slots and must
// tolerate being re-invoked with freshly reset memory after a detected
// discontinuity.
//
// Predefined transforms and their declared memory arity:
//
//	scale          0  multiply samples by a constant factor
//	integrate      1  running time integral
//	differentiate  1  first difference derivative
//	boxcar         1  boxcar (moving window) average
//	tauc           2  bandwidth-limited dominant period estimator
//	mwpintegral    1  windowed moment integral (Mwp)
//
// Names are resolved case-insensitively, with a unique-prefix fallback
// ("int" resolves to "integrate"); an ambiguous prefix is rejected.
package signal
