// Package tsp - tour utilities shared by construction and improvement.
//
// A tour here is an OPEN cyclic sequence: a permutation of 0..n-1 of length
// exactly n, with an implicit closing edge from the last node back to the
// first. Every transformation in this package preserves permutation
// validity; nothing ever drops or duplicates a node.
//
// Provided helpers:
//   - ValidateTour: enforce the permutation invariant.
//   - Cost: total cyclic length under a distance model.
//   - reverseSegment: in-place segment reversal (the 2-opt primitive).
//   - rotateToStart: cyclic shift so tour[0] == start.
//   - canonicalizeOrientation: unique direction for a fixed start.
//
// Design:
//   - No logging, no panics on user input - only sentinel errors from
//     types.go.
//   - O(n) time for all helpers; in-place mutation where possible.
package tsp

import "github.com/jaroslavszkandera/tsp-solver/dist"

// ValidateTour checks that tour is a permutation of {0..n-1} of length n.
// n == 0 admits only the empty tour.
//
// Complexity: O(n) time, O(n) space.
func ValidateTour(tour []int, n int) error {
	if len(tour) != n {
		return ErrNotPermutation
	}
	seen := make([]bool, n)

	var i, v int
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return ErrNotPermutation
		}
		if seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}

	return nil
}

// Cost returns the total cyclic length of tour under m, including the
// closing edge tour[n-1] → tour[0]. Degenerate tours (n < 2) cost 0.
//
// Contract: tour is a valid permutation over m.Dim() nodes (ValidateTour).
//
// Complexity: O(n).
func Cost(m dist.Model, tour []int) float64 {
	n := len(tour)
	if n < 2 {
		return 0
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += m.At(tour[i], tour[i+1])
	}
	sum += m.At(tour[n-1], tour[0])

	return sum
}

// costFromBuffer is Cost over a prefetched flat n×n weight buffer.
// Hot-path variant used by local search to avoid interface calls.
//
// Complexity: O(n).
func costFromBuffer(w []float64, n int, tour []int) float64 {
	if len(tour) < 2 {
		return 0
	}

	var (
		sum float64
		i   int
	)
	for i = 0; i < len(tour)-1; i++ {
		sum += w[tour[i]*n+tour[i+1]]
	}
	sum += w[tour[len(tour)-1]*n+tour[0]]

	return sum
}

// reverseSegment reverses the inclusive range tour[i..k] in place.
// This is the 2-opt move primitive.
//
// Contract: 0 <= i < k < len(tour).
//
// Complexity: O(k-i) time, O(1) space.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// rotateToStart cyclically shifts tour in place so tour[0] == start.
// Returns ErrStartOutOfRange when start does not occur in the tour.
//
// Complexity: O(n) time, O(n) space for the scratch copy.
func rotateToStart(tour []int, start int) error {
	n := len(tour)
	pivot := -1

	var i int
	for i = 0; i < n; i++ {
		if tour[i] == start {
			pivot = i
			break
		}
	}
	if pivot == -1 {
		return ErrStartOutOfRange
	}
	if pivot == 0 {
		return nil
	}

	tmp := make([]int, n)
	copy(tmp, tour)
	for i = 0; i < n; i++ {
		tour[i] = tmp[(pivot+i)%n]
	}

	return nil
}

// canonicalizeOrientation fixes the traversal direction under a fixed
// tour[0]: when the successor tour[1] exceeds the predecessor tour[n-1],
// the interior [1..n-1] is reversed. Cyclic cost is direction-invariant for
// symmetric metrics, so this only makes reported tours reproducible.
//
// Complexity: O(n) time, O(1) space.
func canonicalizeOrientation(tour []int) {
	n := len(tour)
	if n < 3 {
		return
	}
	if tour[1] > tour[n-1] {
		reverseSegment(tour, 1, n-1)
	}
}

// copyTour returns an independent copy of tour.
func copyTour(tour []int) []int {
	out := make([]int, len(tour))
	copy(out, tour)

	return out
}
