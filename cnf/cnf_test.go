package cnf

import (
	"strings"
	"testing"
)

func TestAllocator(t *testing.T) {
	a := NewAllocator()
	for i := 0; i < 5; i++ {
		if v := a.Primary(i); v != i+1 {
			t.Errorf("primary for mechanism %d: expected %d, got %d", i, i+1, v)
		}
	}
	seen := make(map[int]bool)
	for i := 0; i < 100; i++ {
		v := a.Aux()
		if v <= 5 {
			t.Errorf("auxiliary %d collides with a primary", v)
		}
		if seen[v] {
			t.Errorf("auxiliary %d issued twice", v)
		}
		seen[v] = true
	}
	if a.NbVars() != 105 {
		t.Errorf("expected 105 vars issued, got %d", a.NbVars())
	}
}

func TestAllocatorPrimaryAfterAux(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic when issuing a primary after an auxiliary")
		}
	}()
	a := NewAllocator()
	a.Primary(0)
	a.Aux()
	a.Primary(1)
}

func TestAllocatorPrimaryOrder(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected a panic when issuing primaries out of order")
		}
	}()
	a := NewAllocator()
	a.Primary(1)
}

func TestFormula(t *testing.T) {
	f := NewFormula()
	f.AddClause(1, -3)
	f.AddClause(2)
	if f.NbVars != 3 {
		t.Errorf("expected 3 vars, got %d", f.NbVars)
	}
	if f.Status != Indet {
		t.Errorf("expected INDETERMINATE status, got %v", f.Status)
	}
	cp := f.Copy()
	cp.AddClause(-4)
	cp.Clauses[0][0] = 7
	if f.NbVars != 3 || len(f.Clauses) != 2 || f.Clauses[0][0] != 1 {
		t.Errorf("copy shares storage with the original: %v", f.Clauses)
	}
	f.SetUnsat()
	if f.Status != Unsat || cp.Status != Indet {
		t.Errorf("status not independent between copies")
	}
}

func TestFormulaCNF(t *testing.T) {
	f := NewFormula()
	f.AddClause(1, 2, -3)
	f.AddClause(-1)
	out := f.CNF()
	if !strings.HasPrefix(out, "p cnf 3 2\n") {
		t.Errorf("invalid DIMACS prolog in %q", out)
	}
	if !strings.Contains(out, "1 2 -3 0\n") || !strings.Contains(out, "-1 0\n") {
		t.Errorf("invalid DIMACS clauses in %q", out)
	}
}

// satisfies reports whether the assignment makes every clause true.
// Bit v-1 of assign is the binding of variable v.
func satisfies(clauses [][]int, assign uint) bool {
	for _, clause := range clauses {
		ok := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			if (assign>>(v-1))&1 == 1 == (lit > 0) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
