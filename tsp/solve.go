// Package tsp - solver entry points.
//
// Solve wires the pipeline: dist.New on the parsed instance, constructive
// tour building, local-search refinement, and result shaping back into the
// file's original node identifiers. SolveFile adds the tsplib.ParseFile
// front end for callers holding only a path.
//
// Parallel multi-start (Options.Starts > 1): each worker owns a read-only
// view of the instance weights and a private candidate tour, starting from
// a different node (or, for the ant colony, a different RNG stream). Only
// the minimum-cost tour survives, ties resolved by the lowest worker index
// so the reduction is deterministic. No tour is ever shared across
// goroutines during search.
package tsp

import (
	"sync"
	"time"

	"github.com/jaroslavszkandera/tsp-solver/dist"
	"github.com/jaroslavszkandera/tsp-solver/tsplib"
)

// Solve runs the configured pipeline on a parsed instance.
//
// Degenerate dimensions are valid successes, not errors: dimension 0 yields
// an empty tour, dimension 1 a single-node tour, both at cost 0.
//
// Errors: ErrNilInstance, ErrBadOptions, ErrUnsupportedAlgorithm,
// ErrStartOutOfRange, and dist.ErrUnsupportedMetric /
// dist.ErrMalformedInstance propagated unchanged from model construction.
// Construction and improvement never fail on a valid instance.
func Solve(inst *tsplib.Instance, opts Options) (Result, error) {
	began := time.Now()

	if inst == nil {
		return Result{}, ErrNilInstance
	}
	if err := validateOptions(opts); err != nil {
		return Result{}, err
	}

	n := inst.Dimension
	if n == 0 {
		return Result{Tour: []int{}, Nodes: []int{}, Stats: Stats{Elapsed: time.Since(began)}}, nil
	}
	if opts.StartNode < 0 || opts.StartNode >= n {
		return Result{}, ErrStartOutOfRange
	}

	model, err := dist.New(inst)
	if err != nil {
		return Result{}, err
	}

	if n == 1 {
		return Result{
			Tour:  []int{0},
			Nodes: []int{nodeID(inst, 0)},
			Stats: Stats{Elapsed: time.Since(began)},
		}, nil
	}

	res, err := runStarts(model, opts)
	if err != nil {
		return Result{}, err
	}

	// Anchor and orient the winning tour for reproducible reporting.
	if err = rotateToStart(res.Tour, opts.StartNode); err != nil {
		return Result{}, err
	}
	canonicalizeOrientation(res.Tour)

	res.Nodes = make([]int, n)
	for i, v := range res.Tour {
		res.Nodes[i] = nodeID(inst, v)
	}
	res.Stats.Elapsed = time.Since(began)

	return res, nil
}

// SolveFile parses the instance at path and solves it.
// Parse errors (*tsplib.ParseError) propagate unchanged.
func SolveFile(path string, opts Options) (Result, error) {
	inst, err := tsplib.ParseFile(path)
	if err != nil {
		return Result{}, err
	}

	return Solve(inst, opts)
}

// nodeID maps an internal index to the instance's declared identifier,
// defaulting to 1-based numbering for hand-built instances without IDs.
func nodeID(inst *tsplib.Instance, i int) int {
	if inst.IDs != nil {
		return inst.IDs[i]
	}

	return i + 1
}

// workerOutcome is one start's candidate tour.
type workerOutcome struct {
	tour  []int
	cost  float64
	stats Stats
	err   error
}

// runStarts executes Options.Starts independent searches and keeps the
// minimum-cost tour. Contract: n >= 2, options validated.
func runStarts(m dist.Model, opts Options) (Result, error) {
	n := m.Dim()
	starts := opts.Starts
	if starts < 2 {
		starts = 1
	}
	// Distinct constructive starts only exist per node; extra workers would
	// duplicate work deterministically for the non-stochastic algorithms.
	if opts.Algo != AntColony && starts > n {
		starts = n
	}

	outcomes := make([]workerOutcome, starts)
	var wg sync.WaitGroup
	for k := 0; k < starts; k++ {
		wg.Add(1)
		go func(k int) {
			defer wg.Done()
			outcomes[k] = runOne(m, opts, k)
		}(k)
	}
	wg.Wait()

	best := -1
	for k := range outcomes {
		if outcomes[k].err != nil {
			return Result{}, outcomes[k].err
		}
		// Strict < keeps the lowest worker index on cost ties.
		if best == -1 || outcomes[k].cost < outcomes[best].cost {
			best = k
		}
	}

	return Result{
		Tour: outcomes[best].tour,
		Cost: outcomes[best].cost,
		Stats: Stats{
			Passes: outcomes[best].stats.Passes,
			Moves:  outcomes[best].stats.Moves,
		},
	}, nil
}

// runOne executes worker k's search: a rotated start node for the
// deterministic algorithms, a derived RNG stream for the ant colony.
func runOne(m dist.Model, opts Options, k int) workerOutcome {
	n := m.Dim()

	if opts.Algo == AntColony {
		w := dist.Prefetch(m)
		tour, _ := antColony(w, n, opts, deriveRNG(opts.Seed, uint64(k)))
		// Polish: the colony's best tour may still contain crossings.
		out, cost, stats, err := Improve(m, tour, opts)
		if err != nil {
			return workerOutcome{err: err}
		}

		return workerOutcome{tour: out, cost: cost, stats: stats}
	}

	start := (opts.StartNode + k) % n
	tour, err := NearestNeighbor(m, start)
	if err != nil {
		return workerOutcome{err: err}
	}

	if opts.Algo == ConstructOnly {
		return workerOutcome{tour: tour, cost: Cost(m, tour)}
	}

	out, cost, stats, err := Improve(m, tour, opts)
	if err != nil {
		return workerOutcome{err: err}
	}

	return workerOutcome{tour: out, cost: cost, stats: stats}
}
