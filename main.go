// demsat verifies the fault distance of a quantum error-correcting code from
// its detector error model, by compiling the model into SAT queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/satqec/demsat/cnf"
	"github.com/satqec/demsat/dem"
	"github.com/satqec/demsat/sat"
	"github.com/satqec/demsat/verify"
)

func main() {
	var (
		backend  string
		tolerate int
		binary   bool
		split    bool
		timeout  time.Duration
		verbose  bool
	)
	flag.StringVar(&backend, "backend", "gophersat", "solver backend: gophersat, gini or maxsat")
	flag.IntVar(&tolerate, "tolerate", -1, "verify the code tolerates the given number of errors, instead of searching the minimum weight")
	flag.BoolVar(&binary, "binary", false, "bisect the weight bound instead of increasing it linearly")
	flag.BoolVar(&split, "split", false, "search independent model components separately")
	flag.DurationVar(&timeout, "timeout", 0, "abort the search after this duration (0: no limit)")
	flag.BoolVar(&verbose, "verbose", false, "log each decided query")
	flag.Parse()
	if len(flag.Args()) != 1 {
		fmt.Fprintf(os.Stderr, "Syntax : %s [options] file.dem\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Args()[0]
	model, err := parse(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	fmt.Printf("c %s: %d mechanisms, %d detectors, %d observables\n",
		path, len(model.Mechanisms), model.NbDetectors(), model.NbObservables())

	dec, err := newBackend(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	options := []verify.Option{verify.WithLogger(log)}
	if binary {
		options = append(options, verify.WithStrategy(verify.Binary))
	}
	searcher := verify.New(dec, options...)

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if tolerate >= 0 {
		capacity(ctx, searcher, model, tolerate)
	} else {
		minWeight(ctx, searcher, model, split)
	}
}

func parse(path string) (*dem.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %v", path, err)
	}
	defer f.Close()
	model, err := dem.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("could not parse %q: %v", path, err)
	}
	return model, nil
}

func newBackend(name string) (sat.Decider, error) {
	switch name {
	case "gophersat":
		return sat.NewGopher(), nil
	case "gini":
		return sat.NewGini(), nil
	case "maxsat":
		return sat.NewMaxSat(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

func capacity(ctx context.Context, searcher *verify.Searcher, model *dem.Model, t int) {
	res, err := searcher.Tolerates(ctx, model, t)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		os.Exit(1)
	}
	if res.Status == cnf.Unsat {
		fmt.Printf("the code tolerates %d simultaneous errors\n", t)
		return
	}
	fmt.Printf("the code does not tolerate %d simultaneous errors\n", t)
	fmt.Printf("counterexample weight: %d\nmechanisms: %v\n", res.Weight, res.Witness)
}

func minWeight(ctx context.Context, searcher *verify.Searcher, model *dem.Model, split bool) {
	var (
		res verify.Result
		err error
	)
	if split {
		res, err = searcher.MinWeightDecomposed(ctx, model)
	} else {
		res, err = searcher.MinWeight(ctx, model)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		if res.Bound >= 0 {
			fmt.Printf("no logical error of weight <= %d exists\n", res.Bound)
		}
		os.Exit(1)
	}
	fmt.Printf("minimum logical error weight: %d\n", res.Weight)
	fmt.Printf("witness mechanisms: %v\n", res.Witness)
}
