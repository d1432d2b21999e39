// Package verify compiles detector error models into decision queries and
// drives a solver backend over weight bounds to find the minimum weight of an
// undetected logical error, or to prove a claimed bound unreachable.
package verify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/satqec/demsat/cnf"
	"github.com/satqec/demsat/dem"
	"github.com/satqec/demsat/sat"
)

// Incomplete is reported when the decision procedure stopped (timeout,
// cancellation, UNKNOWN) before the search reached a verdict. It is never a
// statement about satisfiability; the Result carries the last confirmed
// bound.
var Incomplete = errors.New("solver stopped before a verdict was reached")

// ErrNoLogical is reported when no combination of mechanisms, up to and
// including all of them, produces a logical error. A well-formed model of a
// real code always has some logical error pattern, so this usually means the
// model is malformed rather than the code infinitely robust.
var ErrNoLogical = errors.New("no mechanism combination flips a logical observable")

// Strategy selects how MinWeight explores candidate bounds.
type Strategy byte

const (
	// Linear tries k = 0, 1, 2... and stops at the first feasible bound.
	// Cheapest when the true minimum is small, the common case when
	// checking a claimed code distance.
	Linear = Strategy(iota)
	// Binary bisects the bound interval, exploiting that feasibility is
	// monotone in k: a witness of weight w stays a witness for every
	// larger bound.
	Binary
)

// A Result is the outcome of a search or a capacity check.
type Result struct {
	Status  cnf.Status
	Weight  int   // Minimum witness weight found, -1 if none.
	Witness []int // Active mechanism indices of a minimum witness.
	Bound   int   // Largest bound proven unreachable, -1 if none.
}

// A Searcher drives decision queries against one solver backend.
type Searcher struct {
	dec      sat.Decider
	strategy Strategy
	log      logrus.FieldLogger
}

// An Option configures a Searcher.
type Option func(*Searcher)

// WithStrategy selects the bound exploration strategy.
func WithStrategy(st Strategy) Option {
	return func(s *Searcher) { s.strategy = st }
}

// WithLogger makes the searcher log each decided query.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Searcher) { s.log = log }
}

// New returns a searcher using the given decision procedure. If dec also
// implements sat.Incremental, each search runs on one incremental session
// with per-bound assumptions; if it implements sat.Minimizer, MinWeight
// collapses to a single optimizing call.
func New(dec sat.Decider, options ...Option) *Searcher {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Searcher{dec: dec, log: discard}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// MinWeight searches the minimum number of simultaneously active mechanisms
// producing an undetected logical error. The returned witness reaches that
// minimum. Cancellation is honored between queries; encoders are not
// resumable, so a query already running is only abandoned if the backend
// itself supports interruption.
func (s *Searcher) MinWeight(ctx context.Context, m *dem.Model) (Result, error) {
	q := Build(m)
	n := len(q.Primaries)
	if q.Formula.Status == cnf.Unsat {
		return Result{Status: cnf.Unsat, Weight: -1, Bound: n}, ErrNoLogical
	}
	if minimizer, ok := s.dec.(sat.Minimizer); ok {
		return s.minimize(ctx, q, minimizer)
	}
	decide := s.decider(q)
	if s.strategy == Binary {
		return s.binary(ctx, q, decide)
	}
	return s.linear(ctx, q, decide)
}

// Tolerates checks whether the code survives every pattern of at most t
// simultaneous mechanisms. Status Unsat means it does. Status Sat means it
// does not, and the Result carries a counterexample with its actual weight,
// which may be below t.
func (s *Searcher) Tolerates(ctx context.Context, m *dem.Model, t int) (Result, error) {
	if t < 0 {
		return Result{Weight: -1, Bound: -1}, fmt.Errorf("invalid bound %d", t)
	}
	q := Build(m)
	if q.Formula.Status == cnf.Unsat {
		s.log.Warn("no observable is flippable; code trivially tolerates any bound")
		return Result{Status: cnf.Unsat, Weight: -1, Bound: t}, nil
	}
	res, err := s.decider(q)(ctx, t)
	switch {
	case err != nil:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, fmt.Errorf("%w: %v", Incomplete, err)
	case res.Status == cnf.Unknown:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, Incomplete
	case res.Status == cnf.Sat:
		witness := q.Witness(res.Model)
		return Result{Status: cnf.Sat, Weight: len(witness), Witness: witness, Bound: -1}, nil
	default:
		return Result{Status: cnf.Unsat, Weight: -1, Bound: t}, nil
	}
}

// MinWeightDecomposed splits the model into independent components and takes
// the minimum over them. Components whose observables cannot be flipped are
// skipped; if that leaves none, the same anomaly as an exhausted search is
// reported.
func (s *Searcher) MinWeightDecomposed(ctx context.Context, m *dem.Model) (Result, error) {
	best := Result{Status: cnf.Unsat, Weight: -1, Bound: len(m.Mechanisms)}
	found := false
	for _, comp := range dem.Components(m) {
		if comp.Model.NbObservables() == 0 {
			continue
		}
		res, err := s.MinWeight(ctx, comp.Model)
		if errors.Is(err, ErrNoLogical) {
			continue
		}
		if err != nil {
			return res, err
		}
		witness := make([]int, len(res.Witness))
		for i, idx := range res.Witness {
			witness[i] = comp.Mechs[idx]
		}
		sort.Ints(witness)
		if !found || res.Weight < best.Weight {
			best = Result{Status: cnf.Sat, Weight: res.Weight, Witness: witness, Bound: res.Weight - 1}
			found = true
		}
	}
	if !found {
		return best, ErrNoLogical
	}
	return best, nil
}

// decider returns the per-bound decision function, upgrading to the
// incremental path when the backend supports assumptions: the formula is
// appended once and only the rung assumptions change across bounds.
func (s *Searcher) decider(q *Query) func(context.Context, int) (sat.Result, error) {
	if inc, ok := s.dec.(sat.Incremental); ok {
		assumer := inc.Session()
		assumer.Append(q.Formula)
		return func(ctx context.Context, k int) (sat.Result, error) {
			return assumer.Assume(ctx, q.AtMost(k))
		}
	}
	return func(ctx context.Context, k int) (sat.Result, error) {
		return s.dec.Decide(ctx, q.Bounded(k))
	}
}

func (s *Searcher) linear(ctx context.Context, q *Query, decide func(context.Context, int) (sat.Result, error)) (Result, error) {
	bound := -1
	for k := 0; k <= len(q.Primaries); k++ {
		if err := ctx.Err(); err != nil {
			return Result{Status: cnf.Unknown, Weight: -1, Bound: bound}, fmt.Errorf("%w: %v", Incomplete, err)
		}
		res, err := decide(ctx, k)
		s.log.WithFields(logrus.Fields{"bound": k, "status": res.Status}).Debug("query decided")
		switch {
		case err != nil:
			return Result{Status: cnf.Unknown, Weight: -1, Bound: bound}, fmt.Errorf("%w: %v", Incomplete, err)
		case res.Status == cnf.Unknown:
			return Result{Status: cnf.Unknown, Weight: -1, Bound: bound}, Incomplete
		case res.Status == cnf.Sat:
			witness := q.Witness(res.Model)
			return Result{Status: cnf.Sat, Weight: len(witness), Witness: witness, Bound: bound}, nil
		}
		bound = k
	}
	return Result{Status: cnf.Unsat, Weight: -1, Bound: len(q.Primaries)}, ErrNoLogical
}

func (s *Searcher) binary(ctx context.Context, q *Query, decide func(context.Context, int) (sat.Result, error)) (Result, error) {
	n := len(q.Primaries)
	res, err := decide(ctx, n)
	s.log.WithFields(logrus.Fields{"bound": n, "status": res.Status}).Debug("query decided")
	switch {
	case err != nil:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, fmt.Errorf("%w: %v", Incomplete, err)
	case res.Status == cnf.Unknown:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, Incomplete
	case res.Status == cnf.Unsat:
		return Result{Status: cnf.Unsat, Weight: -1, Bound: n}, ErrNoLogical
	}
	witness := q.Witness(res.Model)
	lo, hi := -1, len(witness) // All bounds <= lo proven unreachable; hi is feasible.
	for hi > lo+1 {
		if err := ctx.Err(); err != nil {
			return Result{Status: cnf.Unknown, Weight: -1, Bound: lo}, fmt.Errorf("%w: %v", Incomplete, err)
		}
		mid := lo + (hi-lo)/2
		res, err := decide(ctx, mid)
		s.log.WithFields(logrus.Fields{"bound": mid, "status": res.Status}).Debug("query decided")
		switch {
		case err != nil:
			return Result{Status: cnf.Unknown, Weight: -1, Bound: lo}, fmt.Errorf("%w: %v", Incomplete, err)
		case res.Status == cnf.Unknown:
			return Result{Status: cnf.Unknown, Weight: -1, Bound: lo}, Incomplete
		case res.Status == cnf.Sat:
			witness = q.Witness(res.Model)
			hi = len(witness) // The model may use fewer mechanisms than mid.
		default:
			lo = mid
		}
	}
	return Result{Status: cnf.Sat, Weight: hi, Witness: witness, Bound: lo}, nil
}

func (s *Searcher) minimize(ctx context.Context, q *Query, minimizer sat.Minimizer) (Result, error) {
	res, err := minimizer.Minimize(ctx, q.Formula, q.Primaries)
	s.log.WithField("status", res.Status).Debug("optimum computed")
	switch {
	case err != nil:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, fmt.Errorf("%w: %v", Incomplete, err)
	case res.Status == cnf.Unknown:
		return Result{Status: cnf.Unknown, Weight: -1, Bound: -1}, Incomplete
	case res.Status == cnf.Unsat:
		return Result{Status: cnf.Unsat, Weight: -1, Bound: len(q.Primaries)}, ErrNoLogical
	}
	witness := q.Witness(res.Model)
	return Result{Status: cnf.Sat, Weight: len(witness), Witness: witness, Bound: len(witness) - 1}, nil
}
