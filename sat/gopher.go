package sat

import (
	"context"

	"github.com/crillab/gophersat/solver"

	"github.com/satqec/demsat/cnf"
)

// Gopher decides CNF formulas with the gophersat solver. Each call solves
// from scratch; gophersat offers no interruption, so cancellation is only
// honored before the solve starts.
type Gopher struct{}

// NewGopher returns a gophersat-backed decision procedure.
func NewGopher() *Gopher {
	return &Gopher{}
}

// Decide implements Decider.
func (g *Gopher) Decide(ctx context.Context, f *cnf.Formula) (Result, error) {
	if f.Status == cnf.Unsat {
		return Result{Status: cnf.Unsat}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{Status: cnf.Unknown}, err
	}
	s := solver.New(solver.ParseSlice(f.Clauses))
	switch s.Solve() {
	case solver.Sat:
		model := make([]bool, f.NbVars)
		copy(model, s.Model())
		return Result{Status: cnf.Sat, Model: model}, nil
	case solver.Unsat:
		return Result{Status: cnf.Unsat}, nil
	default:
		return Result{Status: cnf.Unknown}, nil
	}
}
