// SPDX-License-Identifier: MIT
// Package tsp: options, result types and sentinel error set.
// This file defines ONLY the configuration surface and package-level
// sentinel errors. All solvers MUST return these sentinels and tests MUST
// check them via errors.Is. No solver panics on user-triggered conditions.

package tsp

import (
	"errors"
	"time"
)

var (
	// ErrNilInstance is returned when Solve receives a nil instance.
	ErrNilInstance = errors.New("tsp: nil instance")

	// ErrBadOptions indicates an internally inconsistent Options value
	// (negative tolerance, negative budgets, non-positive ant counts, ...).
	ErrBadOptions = errors.New("tsp: invalid options")

	// ErrStartOutOfRange is returned when StartNode ∉ [0..n-1].
	ErrStartOutOfRange = errors.New("tsp: start node out of range")

	// ErrNotPermutation signals a tour that is not a permutation of 0..n-1.
	ErrNotPermutation = errors.New("tsp: tour is not a permutation")

	// ErrUnsupportedAlgorithm rejects an Algo value this package cannot route.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")
)

// Algo selects the solving strategy.
type Algo int

const (
	// LocalSearch is nearest-neighbor construction followed by 2-opt
	// (and, with Options.OrOpt, alternating Or-opt) passes to a joint
	// local optimum. The default.
	LocalSearch Algo = iota

	// AntColony is an elitist ant system followed by a 2-opt polish.
	AntColony

	// ConstructOnly stops after nearest-neighbor construction. Useful for
	// baselines and for isolating improvement gains in benchmarks.
	ConstructOnly
)

// String implements fmt.Stringer for logs and test output.
func (a Algo) String() string {
	switch a {
	case LocalSearch:
		return "local-search"
	case AntColony:
		return "ant-colony"
	case ConstructOnly:
		return "construct-only"
	default:
		return "unknown"
	}
}

// Options configures a solver run. Zero value is NOT usable; start from
// DefaultOptions and override.
type Options struct {
	// Algo selects the strategy (see the Algo constants).
	Algo Algo

	// StartNode anchors construction and the reported tour orientation.
	// Must lie in [0..n-1].
	StartNode int

	// MaxPasses caps improvement passes; 0 means run to a local optimum.
	// One pass is a full neighborhood scan applying the single best move.
	MaxPasses int

	// TimeLimit is a soft wall-clock budget, checked only between whole
	// passes so move application stays atomic and the tour always remains
	// a valid permutation. 0 means unlimited.
	TimeLimit time.Duration

	// Eps is the strict-improvement tolerance: a move is accepted only when
	// its delta < -Eps. Must be >= 0.
	Eps float64

	// OrOpt layers Or-opt (chain relocation, lengths 1..3) passes after
	// 2-opt converges, alternating until neither neighborhood improves.
	OrOpt bool

	// Starts is the number of constructive starts explored in parallel,
	// each from a different initial node, keeping the minimum-cost tour.
	// Values < 2 mean a single start.
	Starts int

	// Seed drives every stochastic component (ant colony). Same seed ⇒
	// identical results. 0 selects a fixed default stream.
	Seed int64

	// Ant-colony knobs, used only when Algo == AntColony.
	Ants          int     // ants per iteration (capped at n)
	Iterations    int     // colony iterations
	Alpha         float64 // pheromone influence
	Beta          float64 // heuristic (1/d) influence
	Evaporation   float64 // per-iteration pheromone decay in [0,1)
	Q             float64 // deposit scale: each ant adds Q/length
	InitPheromone float64 // initial trail level
	MinPheromone  float64 // evaporation floor
	ElitistWeight float64 // extra deposit weight for the global best tour
}

// DefaultOptions returns the baseline configuration: deterministic local
// search from node 0, unlimited passes, Or-opt enabled, single start, and
// the ant-colony parameters of the classic elitist ant system.
func DefaultOptions() Options {
	return Options{
		Algo:          LocalSearch,
		StartNode:     0,
		MaxPasses:     0,
		TimeLimit:     0,
		Eps:           1e-9,
		OrOpt:         true,
		Starts:        1,
		Seed:          0,
		Ants:          50,
		Iterations:    250,
		Alpha:         1.0,
		Beta:          3.0,
		Evaporation:   0.1,
		Q:             100.0,
		InitPheromone: 0.1,
		MinPheromone:  1e-5,
		ElitistWeight: 1.0,
	}
}

// Option mutates an Options value; use with NewOptions for call-site brevity.
type Option func(*Options)

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// WithAlgo selects the solving strategy.
func WithAlgo(a Algo) Option { return func(o *Options) { o.Algo = a } }

// WithStartNode sets the construction start and tour orientation anchor.
func WithStartNode(v int) Option { return func(o *Options) { o.StartNode = v } }

// WithMaxPasses caps improvement passes (0 ⇒ local optimum).
func WithMaxPasses(v int) Option { return func(o *Options) { o.MaxPasses = v } }

// WithTimeLimit sets the soft wall-clock budget (0 ⇒ unlimited).
func WithTimeLimit(d time.Duration) Option { return func(o *Options) { o.TimeLimit = d } }

// WithOrOpt toggles the Or-opt neighborhood.
func WithOrOpt(enabled bool) Option { return func(o *Options) { o.OrOpt = enabled } }

// WithStarts sets the number of parallel constructive starts.
func WithStarts(v int) Option { return func(o *Options) { o.Starts = v } }

// WithSeed fixes the stochastic stream.
func WithSeed(v int64) Option { return func(o *Options) { o.Seed = v } }

// validateOptions rejects inconsistent configurations with ErrBadOptions.
// StartNode range needs the instance and is checked separately.
func validateOptions(o Options) error {
	if o.TimeLimit < 0 || o.Eps < 0 || o.MaxPasses < 0 {
		return ErrBadOptions
	}
	switch o.Algo {
	case LocalSearch, AntColony, ConstructOnly:
	default:
		return ErrUnsupportedAlgorithm
	}
	if o.Algo == AntColony {
		if o.Ants <= 0 || o.Iterations <= 0 {
			return ErrBadOptions
		}
		if o.Evaporation < 0 || o.Evaporation >= 1 {
			return ErrBadOptions
		}
		if o.Q <= 0 || o.InitPheromone <= 0 || o.MinPheromone <= 0 || o.ElitistWeight < 0 {
			return ErrBadOptions
		}
	}

	return nil
}

// Stats carries run telemetry alongside the tour.
type Stats struct {
	// Passes is the total number of improvement passes executed.
	Passes int
	// Moves is the number of accepted improving moves.
	Moves int
	// Elapsed is the wall-clock duration of the whole run.
	Elapsed time.Duration
}

// Result is the outcome of a solver run.
type Result struct {
	// Tour is a permutation of the internal indices 0..n-1, cyclic
	// (the last node connects back to the first), anchored at StartNode.
	Tour []int

	// Nodes is Tour mapped through the instance's original (1-based)
	// identifiers, for reporting against the input file.
	Nodes []int

	// Cost is the total cyclic tour length under the instance's metric.
	Cost float64

	Stats Stats
}
