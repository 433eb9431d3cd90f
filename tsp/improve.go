// Package tsp - improvement driver shared by the local-search neighborhoods.
package tsp

import (
	"math"
	"time"

	"github.com/jaroslavszkandera/tsp-solver/dist"
)

// driftTol bounds the acceptable divergence between the incrementally
// tracked cost and a full recomputation. The integral TSPLIB metrics should
// never diverge at all; real-valued explicit tables may accumulate
// float64 rounding, which the per-pass reconciliation resets.
const driftTol = 1e-6

// searchState carries the prefetched weights, the running cost and the
// shared pass/time budget across alternating 2-opt and Or-opt phases.
type searchState struct {
	w   []float64 // flat n×n weights
	n   int
	eps float64

	deadline  time.Time // zero ⇒ unlimited
	maxPasses int       // 0 ⇒ unlimited

	cost   float64
	passes int
	moves  int
}

// newSearchState derives the improvement budget from opts. The deadline is
// fixed here, so alternated phases consume one shared wall-clock budget.
func newSearchState(w []float64, n int, opts Options) *searchState {
	s := &searchState{w: w, n: n, eps: opts.Eps, maxPasses: opts.MaxPasses}
	if opts.TimeLimit > 0 {
		s.deadline = time.Now().Add(opts.TimeLimit)
	}

	return s
}

// budgetLeft reports whether another pass may start. Checked only between
// whole passes: moves are atomic and the tour is always a valid permutation.
func (s *searchState) budgetLeft() bool {
	if s.maxPasses > 0 && s.passes >= s.maxPasses {
		return false
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return false
	}

	return true
}

// reconcile validates the running total against a full recomputation once
// per pass, resetting it when float64 drift exceeds driftTol. An explicit
// consistency check, not an optimization: the running cost and the tour must
// never diverge beyond rounding.
func (s *searchState) reconcile(tour []int) {
	full := costFromBuffer(s.w, s.n, tour)
	if math.Abs(full-s.cost) > driftTol {
		s.cost = full
	}
}

// passTwoOpt performs one best-improvement 2-opt pass in place.
// Returns false at a 2-opt local optimum.
func (s *searchState) passTwoOpt(tour []int) bool {
	s.passes++
	i, j, delta, ok := bestTwoOptMove(s.w, s.n, tour, s.eps)
	if !ok {
		return false
	}
	reverseSegment(tour, i+1, j)
	s.cost += delta
	s.moves++
	s.reconcile(tour)

	return true
}

// passOrOpt performs one best-improvement Or-opt pass, returning the
// rebuilt tour. Returns moved == false at an Or-opt local optimum.
func (s *searchState) passOrOpt(tour []int) (next []int, moved bool) {
	s.passes++
	p, L, q, delta, ok := bestOrOptMove(s.w, s.n, tour, s.eps)
	if !ok {
		return tour, false
	}
	next = applyOrOpt(tour, p, L, q)
	s.cost += delta
	s.moves++
	s.reconcile(next)

	return next, true
}

// Improve refines tour to a joint local optimum of the configured
// neighborhoods: 2-opt passes until exhausted, then (when opts.OrOpt)
// Or-opt passes, looping back to 2-opt after any Or-opt acceptance until
// neither neighborhood improves or the budget runs out. The returned cost
// is never above the input tour's cost.
//
// Errors: ErrNotPermutation for an invalid tour, ErrBadOptions /
// ErrUnsupportedAlgorithm via option validation.
func Improve(m dist.Model, tour []int, opts Options) ([]int, float64, Stats, error) {
	began := time.Now()
	if err := validateOptions(opts); err != nil {
		return nil, 0, Stats{}, err
	}
	n := m.Dim()
	if err := ValidateTour(tour, n); err != nil {
		return nil, 0, Stats{}, err
	}

	cur := copyTour(tour)
	s := newSearchState(dist.Prefetch(m), n, opts)
	s.cost = costFromBuffer(s.w, n, cur)

	for {
		improved := false

		for s.budgetLeft() && s.passTwoOpt(cur) {
			improved = true
		}

		if opts.OrOpt {
			for s.budgetLeft() {
				next, moved := s.passOrOpt(cur)
				if !moved {
					break
				}
				copy(cur, next)
				improved = true
			}
		}

		if !improved || !s.budgetLeft() {
			break
		}
	}

	stats := Stats{Passes: s.passes, Moves: s.moves, Elapsed: time.Since(began)}

	return cur, s.cost, stats, nil
}
