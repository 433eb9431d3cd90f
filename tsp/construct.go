// Package tsp - nearest-neighbor tour construction.
package tsp

import "github.com/jaroslavszkandera/tsp-solver/dist"

// NearestNeighbor builds an initial tour greedily: starting from start, it
// repeatedly appends the unvisited node closest to the current endpoint,
// breaking distance ties by the smallest node index so the result is fully
// deterministic. The cycle closes implicitly (open cyclic representation).
//
// Contracts:
//   - m non-nil; 0 <= start < m.Dim() unless Dim() == 0.
//   - Every node appears exactly once in the output; Dim() == 0 yields an
//     empty tour.
//
// Complexity: O(n²) time, O(n) space. The naive scan is fine here: the
// improvement phase dominates at the instance sizes this solver targets.
func NearestNeighbor(m dist.Model, start int) ([]int, error) {
	n := m.Dim()
	if n == 0 {
		return []int{}, nil
	}
	if start < 0 || start >= n {
		return nil, ErrStartOutOfRange
	}

	var (
		tour    = make([]int, 0, n)
		visited = make([]bool, n)
		cur     = start
		i, next int
		best, d float64
	)

	tour = append(tour, start)
	visited[start] = true

	for len(tour) < n {
		next = -1
		for i = 0; i < n; i++ {
			if visited[i] {
				continue
			}
			d = m.At(cur, i)
			// Strict < keeps the smallest-index winner on ties because
			// candidates are scanned in ascending index order.
			if next == -1 || d < best {
				next = i
				best = d
			}
		}
		tour = append(tour, next)
		visited[next] = true
		cur = next
	}

	return tour, nil
}
