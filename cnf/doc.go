// Package cnf compiles parity and cardinality constraints into propositional
// clauses that any CNF-accepting decision procedure can consume.
//
// Variables are DIMACS-style positive integers and literals are signed
// integers, so a clause is simply a slice of non-zero ints. The Allocator
// issues primary variables (one per error mechanism) followed by auxiliary
// variables created during encoding; clauses accumulate into a Formula.
//
// Two encoders are provided. Xor compiles "x1 ⊕ ... ⊕ xn = p" through a
// balanced tree of Tseitin XOR gates, keeping the propagation depth of every
// input logarithmic. Totalizer compiles "at most k of these are true" as a
// binary merge tree of unary counters whose intermediate rungs stay available,
// so the bound k can be changed afterwards with unit clauses only.
package cnf
