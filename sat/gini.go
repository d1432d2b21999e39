package sat

import (
	"context"
	"time"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/satqec/demsat/cnf"
)

// pollInterval is how often a running gini solve is checked against the
// context while waiting for a verdict.
const pollInterval = 10 * time.Millisecond

// Gini decides CNF formulas with the gini solver. Cancellation is honored
// mid-solve. Gini also mints incremental sessions, in which appended clauses
// persist and bounds are passed as retractable assumptions, so successive
// queries over the same network reuse everything the engine has learned.
type Gini struct{}

// NewGini returns a gini-backed decision procedure.
func NewGini() *Gini {
	return &Gini{}
}

// Decide implements Decider.
func (s *Gini) Decide(ctx context.Context, f *cnf.Formula) (Result, error) {
	if f.Status == cnf.Unsat {
		return Result{Status: cnf.Unsat}, nil
	}
	g := gini.New()
	addClauses(g, f.Clauses)
	return solve(ctx, g, f.NbVars)
}

// Session implements Incremental. Each session owns a fresh engine: variable
// numbering is private to one search run, so sessions are never shared.
func (s *Gini) Session() Assumer {
	return &giniSession{g: gini.New()}
}

type giniSession struct {
	g      *gini.Gini
	nbVars int
	unsat  bool // An appended formula was trivially unsatisfiable.
}

// Append implements Assumer.
func (s *giniSession) Append(f *cnf.Formula) {
	if f.Status == cnf.Unsat {
		s.unsat = true
		return
	}
	addClauses(s.g, f.Clauses)
	if f.NbVars > s.nbVars {
		s.nbVars = f.NbVars
	}
}

// Assume implements Assumer. The unit literals hold for this decision only.
func (s *giniSession) Assume(ctx context.Context, units []int) (Result, error) {
	if s.unsat {
		return Result{Status: cnf.Unsat}, nil
	}
	for _, u := range units {
		s.g.Assume(z.Dimacs2Lit(u))
	}
	return solve(ctx, s.g, s.nbVars)
}

func addClauses(g *gini.Gini, clauses [][]int) {
	for _, clause := range clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
}

// solve runs the solver, polling for cancellation. Without a cancelable
// context it blocks directly on the engine.
func solve(ctx context.Context, g *gini.Gini, nbVars int) (Result, error) {
	if ctx.Done() == nil {
		return fromVerdict(g.Solve(), g, nbVars), nil
	}
	if err := ctx.Err(); err != nil {
		return Result{Status: cnf.Unknown}, err
	}
	h := g.GoSolve()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			h.Stop()
			return Result{Status: cnf.Unknown}, ctx.Err()
		case <-ticker.C:
			if verdict, done := h.Test(); done {
				return fromVerdict(verdict, g, nbVars), nil
			}
		}
	}
}

// fromVerdict converts gini's 1/-1/0 verdict, extracting the model on 1.
func fromVerdict(verdict int, g *gini.Gini, nbVars int) Result {
	switch verdict {
	case 1:
		model := make([]bool, nbVars)
		known := int(g.MaxVar()) // Vars beyond the engine's table stay false.
		if known > nbVars {
			known = nbVars
		}
		for v := 1; v <= known; v++ {
			model[v-1] = g.Value(z.Var(v).Pos())
		}
		return Result{Status: cnf.Sat, Model: model}
	case -1:
		return Result{Status: cnf.Unsat}
	default:
		return Result{Status: cnf.Unknown}
	}
}
