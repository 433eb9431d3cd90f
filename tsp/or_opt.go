// Package tsp - Or-opt local search.
//
// Or-opt relocates a short chain of 1-3 consecutive nodes to a different
// position in the tour, keeping the chain's direction. It escapes some
// local optima 2-opt cannot leave, at O(n²) per pass like 2-opt.
//
// Move anatomy for a chain tour[p..p+L-1] reinserted after position q:
//
//	removal:   Δ₋ = w(a,d) − w(a,b) − w(c,d)
//	insertion: Δ₊ = w(u,b) + w(c,v) − w(u,v)
//
// with a,b = chain predecessor and head, c,d = chain tail and successor,
// u,v = the split edge endpoints. Total Δ = Δ₋ + Δ₊.
//
// Chains never include position 0, so the reported start stays anchored and
// scan order is trivially deterministic (L, then p, then q, ascending).
package tsp

import "github.com/jaroslavszkandera/tsp-solver/dist"

// maxChain is the longest chain Or-opt relocates.
const maxChain = 3

// bestOrOptMove returns the most improving relocation, or ok == false when
// none improves by more than eps. Ties keep the first candidate in
// (L, p, q) ascending scan order.
func bestOrOptMove(w []float64, n int, tour []int, eps float64) (bp, bl, bq int, bd float64, ok bool) {
	var (
		L, p, q, a, b, c, d, u, v int
		remove, delta             float64
	)
	bd = -eps

	for L = 1; L <= maxChain && L <= n-2; L++ {
		for p = 1; p+L <= n; p++ {
			a = tour[p-1]
			b = tour[p]
			c = tour[p+L-1]
			d = tour[(p+L)%n]

			remove = w[a*n+d] - w[a*n+b] - w[c*n+d]

			for q = 0; q < n; q++ {
				// Skip edges touching the removed chain: (p-1,p) .. (p+L-1,p+L).
				if q >= p-1 && q <= p+L-1 {
					continue
				}
				u = tour[q]
				v = tour[(q+1)%n]

				delta = remove + w[u*n+b] + w[c*n+v] - w[u*n+v]
				if delta < bd {
					bp, bl, bq, bd = p, L, q, delta
					ok = true
				}
			}
		}
	}

	return bp, bl, bq, bd, ok
}

// applyOrOpt rebuilds the tour with chain tour[p..p+L-1] moved to directly
// follow the node currently at position q. Runs only on accepted moves.
//
// Complexity: O(n) time and space.
func applyOrOpt(tour []int, p, L, q int) []int {
	n := len(tour)
	after := tour[q] // identified by value: positions shift during rebuild
	chain := make([]int, L)
	copy(chain, tour[p:p+L])

	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i >= p && i < p+L {
			continue
		}
		out = append(out, tour[i])
		if tour[i] == after {
			out = append(out, chain...)
		}
	}

	return out
}

// OrOpt runs best-improvement Or-opt passes on tour until a local optimum
// or the Options budget is exhausted. The input is not mutated.
//
// Errors: ErrNotPermutation for an invalid tour, ErrBadOptions /
// ErrUnsupportedAlgorithm via option validation.
func OrOpt(m dist.Model, tour []int, opts Options) ([]int, float64, error) {
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
		next, moved := s.passOrOpt(cur)
		if !moved {
			break
		}
		copy(cur, next)
	}

	return cur, s.cost, nil
}
