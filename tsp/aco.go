// Package tsp - elitist ant system.
//
// antColony is the stochastic constructor behind Algo == AntColony: a
// colony of ants builds tours edge by edge, preferring edges with strong
// pheromone trails (weight alpha) and short distances (weight beta).
// Trails evaporate each iteration down to a floor, completed ants deposit
// Q/length on their edges, and the global best tour receives an extra
// elitist deposit. The best tour over all iterations wins; Solve then
// applies a 2-opt polish so the pipeline never returns a tour a cheap
// local move could still shorten.
//
// Determinism: all randomness comes from the caller-provided RNG; a fixed
// Options.Seed reproduces the exact ant trajectories.
//
// Complexity: O(Iterations · Ants · n²) time, O(n²) space for the trail and
// heuristic surfaces.
package tsp

import (
	"math"
	"math/rand"
)

// heuristicFloor avoids zero-probability edges and division by zero on
// zero-distance pairs, mirroring the classic formulation.
const heuristicFloor = 1e-9

// ant is one tour under construction.
type ant struct {
	tour    []int
	visited []bool
	cur     int
	length  float64
}

// reset reuses the ant's buffers for a fresh start node.
func (a *ant) reset(start int) {
	a.tour = a.tour[:0]
	a.tour = append(a.tour, start)
	for i := range a.visited {
		a.visited[i] = false
	}
	a.visited[start] = true
	a.cur = start
	a.length = 0
}

// visit appends node j at edge cost d.
func (a *ant) visit(j int, d float64) {
	a.tour = append(a.tour, j)
	a.visited[j] = true
	a.cur = j
	a.length += d
}

// antColony runs the colony over a prefetched weight buffer and returns the
// best tour with its cyclic length. Contract: n >= 2, options validated.
func antColony(w []float64, n int, opts Options, rng *rand.Rand) ([]int, float64) {
	// Heuristic surface η(i,j) = 1/d(i,j), floored.
	heur := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j && w[i*n+j] > heuristicFloor {
				heur[i*n+j] = 1.0 / w[i*n+j]
			} else {
				heur[i*n+j] = heuristicFloor
			}
		}
	}

	trail := make([]float64, n*n)
	for i := range trail {
		trail[i] = opts.InitPheromone
	}

	var (
		bestTour []int
		bestLen  = math.Inf(1)
	)

	ants := opts.Ants
	if ants > n {
		ants = n
	}
	colony := make([]*ant, ants)
	for k := range colony {
		colony[k] = &ant{tour: make([]int, 0, n), visited: make([]bool, n)}
	}

	probs := make([]float64, n) // per-step candidate weights, reused

	for iter := 0; iter < opts.Iterations; iter++ {
		for _, a := range colony {
			a.reset(rng.Intn(n))
			constructTour(a, w, heur, trail, n, opts, rng, probs)
			if len(a.tour) == n {
				a.length += w[a.cur*n+a.tour[0]]
				if a.length < bestLen {
					bestLen = a.length
					bestTour = append(bestTour[:0], a.tour...)
				}
			}
		}

		// Evaporation with floor.
		for i := range trail {
			trail[i] *= 1.0 - opts.Evaporation
			if trail[i] < opts.MinPheromone {
				trail[i] = opts.MinPheromone
			}
		}

		// Deposit proportional to tour quality.
		for _, a := range colony {
			if len(a.tour) != n || a.length <= heuristicFloor {
				continue
			}
			deposit(trail, n, a.tour, opts.Q/a.length)
		}

		// Elitist reinforcement of the global best.
		if opts.ElitistWeight > 0 && bestTour != nil {
			deposit(trail, n, bestTour, opts.ElitistWeight*opts.Q/bestLen)
		}
	}

	return bestTour, bestLen
}

// constructTour walks one ant from its start node to a full tour.
func constructTour(a *ant, w, heur, trail []float64, n int, opts Options, rng *rand.Rand, probs []float64) {
	var (
		j     int
		p     float64
		total float64
	)
	for step := 1; step < n; step++ {
		total = 0
		for j = 0; j < n; j++ {
			probs[j] = 0
			if a.visited[j] {
				continue
			}
			p = math.Pow(trail[a.cur*n+j], opts.Alpha) * math.Pow(heur[a.cur*n+j], opts.Beta)
			if !math.IsInf(p, 0) && !math.IsNaN(p) && p > heuristicFloor {
				probs[j] = p
				total += p
			}
		}

		if total <= heuristicFloor {
			// Degenerate trail state: fall back to a uniform random pick
			// among the unvisited so the tour always completes.
			j = fallbackPick(a.visited, n, rng)
		} else {
			j = roulettePick(probs, n, total, rng)
		}
		a.visit(j, w[a.cur*n+j])
	}
}

// roulettePick samples an index proportionally to probs (sum == total).
func roulettePick(probs []float64, n int, total float64, rng *rand.Rand) int {
	r := rng.Float64() * total
	var (
		cum  float64
		last = -1
	)
	for j := 0; j < n; j++ {
		if probs[j] <= 0 {
			continue
		}
		last = j
		cum += probs[j]
		if r <= cum {
			return j
		}
	}

	// Float64 rounding can leave r marginally above cum; the final positive
	// candidate absorbs it.
	return last
}

// fallbackPick returns a uniformly random unvisited node.
func fallbackPick(visited []bool, n int, rng *rand.Rand) int {
	count := 0
	for j := 0; j < n; j++ {
		if !visited[j] {
			count++
		}
	}
	k := rng.Intn(count)
	for j := 0; j < n; j++ {
		if visited[j] {
			continue
		}
		if k == 0 {
			return j
		}
		k--
	}

	// Unreachable: constructTour only runs while unvisited nodes remain.
	panic("tsp: no unvisited node left")
}

// deposit adds amount to both directions of every edge of tour.
func deposit(trail []float64, n int, tour []int, amount float64) {
	var u, v int
	for k := 0; k < n; k++ {
		u = tour[k]
		v = tour[(k+1)%n]
		trail[u*n+v] += amount
		trail[v*n+u] += amount
	}
}
