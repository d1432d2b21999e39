package cnf

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the status of a formula or of a solver verdict.
type Status byte

const (
	// Indet means the formula is not proven sat or unsat yet.
	Indet = Status(iota)
	// Sat means the formula is satisfiable.
	Sat
	// Unsat means the formula is unsatisfiable.
	Unsat
	// Unknown means the decision procedure gave up before reaching a verdict.
	Unknown
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Unknown:
		return "UNKNOWN"
	default:
		panic("invalid status")
	}
}

// An Allocator issues globally unique decision variables for one encoding run.
// Primary variables are issued first, one per error mechanism; auxiliary
// variables are issued on demand while encoders run. Allocators are never
// shared across concurrent encoding contexts.
type Allocator struct {
	nb     int
	sealed bool // Set once the first auxiliary is issued.
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Primary issues the variable of the given mechanism. It must be called once
// per mechanism, in index order, before any auxiliary is issued.
func (a *Allocator) Primary(mechanism int) int {
	if a.sealed {
		panic("primary variable requested after auxiliaries were issued")
	}
	if mechanism != a.nb {
		panic(fmt.Sprintf("primary variable for mechanism %d requested, expected %d", mechanism, a.nb))
	}
	a.nb++
	return a.nb
}

// Aux issues a fresh auxiliary variable, never previously returned.
func (a *Allocator) Aux() int {
	a.sealed = true
	a.nb++
	return a.nb
}

// NbVars returns the number of variables issued so far.
func (a *Allocator) NbVars() int {
	return a.nb
}

// A Formula is a clause buffer: a conjunction of disjunctions of literals.
// The zero status is Indet; encoders set Unsat when they detect a trivial
// contradiction, so callers can short-circuit without invoking a solver.
type Formula struct {
	NbVars  int
	Clauses [][]int
	Status  Status
}

// NewFormula returns an empty formula.
func NewFormula() *Formula {
	return &Formula{}
}

// AddClause appends the disjunction of the given literals.
// It takes ownership of lits.
func (f *Formula) AddClause(lits ...int) {
	for _, l := range lits {
		if l == 0 {
			panic("null literal in clause")
		}
		v := l
		if v < 0 {
			v = -v
		}
		if v > f.NbVars {
			f.NbVars = v
		}
	}
	f.Clauses = append(f.Clauses, lits)
}

// SetUnsat marks the formula as trivially unsatisfiable.
func (f *Formula) SetUnsat() {
	f.Status = Unsat
}

// Copy returns an independent formula sharing no clause storage with f.
// It allows a bound-independent encoding to be specialized per query.
func (f *Formula) Copy() *Formula {
	clauses := make([][]int, len(f.Clauses))
	for i, c := range f.Clauses {
		clauses[i] = append([]int(nil), c...)
	}
	return &Formula{NbVars: f.NbVars, Clauses: clauses, Status: f.Status}
}

// CNF returns a DIMACS CNF representation of the formula.
func (f *Formula) CNF() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p cnf %d %d\n", f.NbVars, len(f.Clauses))
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			sb.WriteString(strconv.Itoa(lit))
			sb.WriteByte(' ')
		}
		sb.WriteString("0\n")
	}
	return sb.String()
}
