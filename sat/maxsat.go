package sat

import (
	"context"
	"strconv"

	"github.com/crillab/gophersat/maxsat"

	"github.com/satqec/demsat/cnf"
)

// MaxSat minimizes over CNF formulas with gophersat's weighted partial MaxSAT
// engine: the formula's clauses become hard constraints and each cost literal
// contributes a weight-1 soft clause preferring it false. The optimum model
// therefore activates as few cost literals as possible.
type MaxSat struct{}

// NewMaxSat returns a MaxSAT-backed optimizing decision procedure.
func NewMaxSat() *MaxSat {
	return &MaxSat{}
}

// Decide implements Decider: with no cost literal at all, the optimization
// degenerates to a plain satisfiability check over the hard clauses.
func (m *MaxSat) Decide(ctx context.Context, f *cnf.Formula) (Result, error) {
	return m.Minimize(ctx, f, nil)
}

// Minimize implements Minimizer. The engine is not interruptible, so
// cancellation is only honored before the solve starts.
func (m *MaxSat) Minimize(ctx context.Context, f *cnf.Formula, costLits []int) (Result, error) {
	if f.Status == cnf.Unsat {
		return Result{Status: cnf.Unsat}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{Status: cnf.Unknown}, err
	}
	constrs := make([]maxsat.Constr, 0, len(f.Clauses)+len(costLits))
	for _, clause := range f.Clauses {
		lits := make([]maxsat.Lit, len(clause))
		for i, l := range clause {
			lits[i] = msLit(l)
		}
		constrs = append(constrs, maxsat.HardClause(lits...))
	}
	for _, l := range costLits {
		constrs = append(constrs, maxsat.SoftClause(msLit(-l)))
	}
	model, _ := maxsat.New(constrs...).Solve()
	if model == nil {
		return Result{Status: cnf.Unsat}, nil
	}
	bindings := make([]bool, f.NbVars)
	for v := 1; v <= f.NbVars; v++ {
		bindings[v-1] = model[varName(v)]
	}
	return Result{Status: cnf.Sat, Model: bindings}, nil
}

func msLit(l int) maxsat.Lit {
	if l < 0 {
		return maxsat.Not(varName(-l))
	}
	return maxsat.Var(varName(l))
}

func varName(v int) string {
	return "x" + strconv.Itoa(v)
}
