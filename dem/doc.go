// Package dem holds the in-memory representation of a detector error model (DEM).
//
// A DEM describes how physical error mechanisms flip the parity of detectors
// and logical observables in a quantum error-correcting circuit. Each "error"
// line of the input declares one mechanism, its probability, and the detectors
// (D<n>) and logical observables (L<n>) whose parity it flips:
//
//	error(0.001) D0 D1
//	error[heralded](0.002) D1 L0
//
// The model is built once by Parse and is read-only afterwards. Mechanism
// probabilities and capability flags are carried as metadata; the constraint
// encoders only care about parity membership.
package dem
