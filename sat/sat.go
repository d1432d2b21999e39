// Package sat adapts concrete solver engines to the decision-procedure
// contract the search driver relies on: take a CNF formula, answer Sat with a
// model, Unsat, or Unknown. The search driver never knows which engine is
// active; richer engine capabilities (incremental assumptions, native
// optimization) are exposed as optional interfaces it can upgrade to.
package sat

import (
	"context"

	"github.com/satqec/demsat/cnf"
)

// A Result is a solver verdict. Model is indexed by variable-1 and is only
// meaningful when Status is Sat; variables absent from every clause are
// reported false.
type Result struct {
	Status cnf.Status
	Model  []bool
}

// A Decider is a one-shot decision procedure over plain CNF. This is the
// baseline contract: every backend supports it, and the encoders in package
// cnf guarantee it is always sufficient.
//
// A verdict of Unknown (typically a timeout or cancellation) is not an error:
// it is a distinct result category the caller must not conflate with Unsat.
// Errors are reserved for failures of the engine itself.
type Decider interface {
	Decide(ctx context.Context, f *cnf.Formula) (Result, error)
}

// An Assumer is an incremental decision procedure: clauses accumulate across
// calls and each decision is taken under retractable unit assumptions. The
// search driver uses it to share one counting network across all weight
// bounds, re-solving with different rung assumptions instead of re-encoding.
type Assumer interface {
	// Append adds the clauses of f to the persistent problem.
	Append(f *cnf.Formula)
	// Assume decides the accumulated problem under the given unit literals.
	Assume(ctx context.Context, units []int) (Result, error)
}

// An Incremental mints fresh Assumer sessions. Each session owns its own
// engine state and variable space, so one session serves exactly one search
// run and sessions are never shared across concurrent runs.
type Incremental interface {
	Session() Assumer
}

// A Minimizer is an optimizing decision procedure: it returns a model of f
// minimizing the number of true literals among costLits, or Unsat if the hard
// clauses cannot be satisfied. Backends with native optimization (MaxSAT)
// implement it, letting the search driver skip the bound iteration entirely.
type Minimizer interface {
	Minimize(ctx context.Context, f *cnf.Formula, costLits []int) (Result, error)
}
