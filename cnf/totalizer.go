package cnf

import "fmt"

// A totNode is one node of the totalizer merge tree. Nodes are arena-allocated
// and addressed by index, never by pointer, so a built network can be shared
// read-only across queries.
type totNode struct {
	left, right int   // Child indices in the arena, -1 for a leaf.
	rungs       []int // rungs[i] true implies at least i+1 inputs below are true.
}

// A Totalizer is a persistent counting network over a fixed set of input
// literals. Building it appends the merge clauses to a formula once; the
// actual bound is applied afterwards through AtMost or AtLeast, which only
// produce unit literals over already-built rungs. Tightening or loosening the
// bound therefore never rebuilds the network, as long as the input set does
// not change.
type Totalizer struct {
	nodes  []totNode
	root   int
	inputs []int
}

// NewTotalizer builds the counting network over the given input literals,
// appending its defining clauses to f. The merge implications are encoded in
// both directions, so the rung values are exact counts, not just upper bounds.
func NewTotalizer(a *Allocator, f *Formula, lits []int) *Totalizer {
	t := &Totalizer{inputs: append([]int(nil), lits...), root: -1}
	if len(t.inputs) > 0 {
		t.root = t.build(a, f, 0, len(t.inputs))
	}
	return t
}

// N returns the number of input literals.
func (t *Totalizer) N() int {
	return len(t.inputs)
}

// Outputs returns the root rungs: Outputs()[i] is true iff at least i+1
// inputs are true. The returned slice must not be modified.
func (t *Totalizer) Outputs() []int {
	if t.root < 0 {
		return nil
	}
	return t.nodes[t.root].rungs
}

// AtMost returns the unit literals realizing "at most k inputs are true".
// For k >= N the constraint is vacuous and no literal is returned. k must not
// be negative.
// The literals can be added as unit clauses for a one-shot solve, or passed
// as assumptions to an incremental solver so the bound can be retracted.
func (t *Totalizer) AtMost(k int) []int {
	if k < 0 {
		panic(fmt.Sprintf("at most %d inputs requested", k))
	}
	if t.root < 0 || k >= len(t.inputs) {
		return nil
	}
	out := t.nodes[t.root].rungs
	units := make([]int, 0, len(out)-k)
	for i := k; i < len(out); i++ {
		units = append(units, -out[i])
	}
	return units
}

// AtLeast returns the unit literals realizing "at least k inputs are true",
// the symmetric construction over the same rungs. k must not exceed N.
func (t *Totalizer) AtLeast(k int) []int {
	if k <= 0 {
		return nil
	}
	if k > len(t.inputs) {
		panic(fmt.Sprintf("at least %d of %d inputs requested", k, len(t.inputs)))
	}
	out := t.nodes[t.root].rungs
	units := make([]int, 0, k)
	for i := 0; i < k; i++ {
		units = append(units, out[i])
	}
	return units
}

// build constructs the subtree counting inputs[lo:hi] and returns its arena
// index.
func (t *Totalizer) build(a *Allocator, f *Formula, lo, hi int) int {
	if hi-lo == 1 {
		t.nodes = append(t.nodes, totNode{left: -1, right: -1, rungs: []int{t.inputs[lo]}})
		return len(t.nodes) - 1
	}
	mid := lo + (hi-lo)/2
	left := t.build(a, f, lo, mid)
	right := t.build(a, f, mid, hi)
	rungs := make([]int, hi-lo)
	for i := range rungs {
		rungs[i] = a.Aux()
	}
	merge(f, t.nodes[left].rungs, t.nodes[right].rungs, rungs)
	t.nodes = append(t.nodes, totNode{left: left, right: right, rungs: rungs})
	return len(t.nodes) - 1
}

// merge appends the clauses relating the sorted rungs of two children to the
// rungs of their parent: out[i+j-1] holds iff some split i+j of true inputs
// exists across the children. Both implication directions are emitted.
func merge(f *Formula, left, right, out []int) {
	p, q := len(left), len(right)
	for i := 0; i <= p; i++ {
		for j := 0; j <= q; j++ {
			if i+j >= 1 {
				// left[i-1] ∧ right[j-1] → out[i+j-1], with the
				// vacuous "at least 0" terms omitted.
				clause := make([]int, 0, 3)
				if i > 0 {
					clause = append(clause, -left[i-1])
				}
				if j > 0 {
					clause = append(clause, -right[j-1])
				}
				clause = append(clause, out[i+j-1])
				f.AddClause(clause...)
			}
			if i+j+1 <= p+q {
				// out[i+j] → left[i] ∨ right[j], with the
				// impossible "more than all" terms omitted.
				clause := make([]int, 0, 3)
				clause = append(clause, -out[i+j])
				if i < p {
					clause = append(clause, left[i])
				}
				if j < q {
					clause = append(clause, right[j])
				}
				f.AddClause(clause...)
			}
		}
	}
}
