package cnf

// Xor appends to f clauses equivalent to "lits[0] ⊕ ... ⊕ lits[n-1] = parity".
//
// The literals are paired up into a balanced binary tree of Tseitin XOR gates,
// one fresh auxiliary per internal node, and the root is unit-forced to the
// target parity. A chain would be logically equivalent with the same number of
// auxiliaries, but the tree bounds the propagation depth of every input to
// O(log n), which matters to solvers on long parity chains.
//
// An empty input at parity 1 is a contradiction: it is reported by marking f
// unsatisfiable rather than silently encoding zero clauses. An empty input at
// parity 0 holds trivially and adds nothing.
func Xor(a *Allocator, f *Formula, lits []int, parity bool) {
	switch len(lits) {
	case 0:
		if parity {
			f.SetUnsat()
		}
		return
	case 1:
		if parity {
			f.AddClause(lits[0])
		} else {
			f.AddClause(-lits[0])
		}
		return
	}
	root := XorGate(a, f, lits)
	if parity {
		f.AddClause(root)
	} else {
		f.AddClause(-root)
	}
}

// XorGate appends to f the clauses defining a literal equal to the exclusive
// or of lits, and returns that literal. It is the building block for
// conditions of the form "at least one of these parities is odd", where the
// parity outcome must stay free instead of being forced.
// lits must not be empty.
func XorGate(a *Allocator, f *Formula, lits []int) int {
	if len(lits) == 0 {
		panic("XOR gate over no literal")
	}
	level := append([]int(nil), lits...)
	for len(level) > 1 {
		next := level[:0:len(level)]
		var i int
		for i = 0; i+1 < len(level); i += 2 {
			y := a.Aux()
			xorGate2(f, level[i], level[i+1], y)
			next = append(next, y)
		}
		if i < len(level) { // Odd leftover: carried up unchanged.
			next = append(next, level[i])
		}
		level = next
	}
	return level[0]
}

// xorGate2 encodes y = x1 ⊕ x2 with the standard 4-clause gate.
func xorGate2(f *Formula, x1, x2, y int) {
	f.AddClause(-x1, -x2, -y)
	f.AddClause(x1, x2, -y)
	f.AddClause(x1, -x2, y)
	f.AddClause(-x1, x2, y)
}
