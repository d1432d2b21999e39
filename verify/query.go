package verify

import (
	"sort"

	"github.com/satqec/demsat/cnf"
	"github.com/satqec/demsat/dem"
)

// A Query is the bound-independent compilation of a model: the parity
// constraints of every detector and observable, the logical trigger
// disjunction, and the counting network over the primary variables. The
// weight bound itself is applied per decision, either as unit clauses on a
// copy (Bounded) or as assumptions (AtMost), so one Query serves a whole
// search.
type Query struct {
	Formula   *cnf.Formula
	Primaries []int // Primary literal of each mechanism, in model order.
	tot       *cnf.Totalizer
}

// Build compiles the model. It is deterministic: encoding the same model
// twice yields identical clause sets.
//
// Detector constraints are encoded at parity 0. Each observable with at least
// one contributing mechanism gets an XOR gate literal for its parity, and one
// clause requires at least one such gate to be true: a logical error is any
// undetected flip of at least one observable. Observables no mechanism flips
// cannot trigger; if none can, the formula is marked unsatisfiable so the
// caller can report the anomaly without invoking a solver.
func Build(m *dem.Model) *Query {
	alloc := cnf.NewAllocator()
	f := cnf.NewFormula()
	primaries := make([]int, len(m.Mechanisms))
	for i := range m.Mechanisms {
		primaries[i] = alloc.Primary(i)
	}
	for _, members := range m.DetectorMembers() {
		if len(members) == 0 {
			continue // No contributor: even parity holds trivially.
		}
		cnf.Xor(alloc, f, lits(primaries, members), false)
	}
	var triggers []int
	for _, members := range m.ObservableMembers() {
		if len(members) == 0 {
			continue
		}
		triggers = append(triggers, cnf.XorGate(alloc, f, lits(primaries, members)))
	}
	if len(triggers) == 0 {
		f.SetUnsat()
	} else {
		f.AddClause(triggers...)
	}
	tot := cnf.NewTotalizer(alloc, f, primaries)
	if f.NbVars < alloc.NbVars() {
		f.NbVars = alloc.NbVars()
	}
	return &Query{Formula: f, Primaries: primaries, tot: tot}
}

// AtMost returns the unit literals bounding the number of active mechanisms,
// suitable as assumptions for an incremental engine.
func (q *Query) AtMost(k int) []int {
	return q.tot.AtMost(k)
}

// Bounded returns a standalone formula with the weight bound applied as unit
// clauses, for engines that solve each query from scratch.
func (q *Query) Bounded(k int) *cnf.Formula {
	f := q.Formula.Copy()
	for _, unit := range q.AtMost(k) {
		f.AddClause(unit)
	}
	return f
}

// Witness extracts from a satisfying model the mechanisms that are active,
// in increasing index order.
func (q *Query) Witness(model []bool) []int {
	var active []int
	for i, v := range q.Primaries {
		if v-1 < len(model) && model[v-1] {
			active = append(active, i)
		}
	}
	sort.Ints(active)
	return active
}

func lits(primaries []int, members []int) []int {
	ls := make([]int, len(members))
	for i, m := range members {
		ls[i] = primaries[m]
	}
	return ls
}
