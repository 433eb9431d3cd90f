// Package tsp - 2-opt local search.
//
// TwoOpt performs deterministic best-improvement 2-opt on an open cyclic
// tour: each pass scans every pair of non-adjacent edges (i,i+1), (j,j+1)
// and applies the single most improving reversal of tour[i+1..j], with
//
//	Δ = w(t_i,t_j) + w(t_{i+1},t_{j+1}) − w(t_i,t_{i+1}) − w(t_j,t_{j+1}).
//
// Passes repeat until no move improves by more than Options.Eps, the pass
// cap is reached, or the wall-clock budget runs out.
//
// Design:
//   - Deterministic scanning, ties broken by the smallest (i, j) pair:
//     for a fixed instance and initial tour the accepted-move sequence is
//     reproducible.
//   - Weights are prefetched into a flat buffer (dist.Prefetch) so the
//     O(n²) candidate scan performs no interface calls and no allocation.
//   - Budget checks happen only between whole passes; an applied move is
//     never interrupted, so the tour is a valid permutation at all times.
//   - Cost is tracked incrementally by accepted deltas and reconciled
//     against a full recomputation once per pass (see searchState).
//
// Complexity: O(n²) per pass; O(n) on each accepted move (reversal);
// O(n²) extra space for the prefetched weights.
package tsp

import "github.com/jaroslavszkandera/tsp-solver/dist"

// bestTwoOptMove returns the most improving 2-opt move, or ok == false when
// no candidate improves by more than eps. Candidates are edge-index pairs
// (i, j) with 0 <= i, i+2 <= j <= n-1, excluding the cyclically adjacent
// (0, n-1) combination; on equal deltas the smallest (i, j) wins because the
// scan only replaces the incumbent on strict improvement.
func bestTwoOptMove(w []float64, n int, tour []int, eps float64) (bi, bj int, bd float64, ok bool) {
	var (
		i, j, a, b, c, d int
		delta            float64
	)
	bd = -eps

	for i = 0; i <= n-3; i++ {
		a = tour[i]
		b = tour[i+1]
		for j = i + 2; j <= n-1; j++ {
			if i == 0 && j == n-1 {
				// Edges (0,1) and (n-1,0) share the start node; reversing
				// between them is the identity on the cycle.
				continue
			}
			c = tour[j]
			d = tour[(j+1)%n]

			delta = (w[a*n+c] + w[b*n+d]) - (w[a*n+b] + w[c*n+d])
			if delta < bd {
				bi, bj, bd = i, j, delta
				ok = true
			}
		}
	}

	return bi, bj, bd, ok
}

// TwoOpt runs best-improvement 2-opt passes on tour until a local optimum
// or the Options budget is exhausted. The input is not mutated; the
// improved tour and its cyclic cost are returned.
//
// Errors: ErrNotPermutation for an invalid tour, ErrBadOptions /
// ErrUnsupportedAlgorithm via option validation.
func TwoOpt(m dist.Model, tour []int, opts Options) ([]int, float64, error) {
	if err := validateOptions(opts); err != nil {
		return nil, 0, err
	}
	n := m.Dim()
	if err := ValidateTour(tour, n); err != nil {
		return nil, 0, err
	}

	cur := copyTour(tour)
	s := newSearchState(dist.Prefetch(m), n, opts)
	s.cost = costFromBuffer(s.w, n, cur)

	for s.budgetLeft() {
		if !s.passTwoOpt(cur) {
			break
		}
	}

	return cur, s.cost, nil
}
