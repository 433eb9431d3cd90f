// Package tsp - deterministic RNG plumbing for the stochastic solver.
//
// All randomness flows through here: same Options.Seed ⇒ identical tours on
// every platform. math/rand.Rand is not goroutine-safe, so parallel starts
// derive one independent stream per worker instead of sharing.
package tsp

import "math/rand"

// defaultSeed is substituted when callers pass Seed == 0, keeping the
// zero-value configuration reproducible.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand for the given seed,
// applying the Seed == 0 substitution policy.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream index into an independent
// child seed using the SplitMix64 finalizer, so per-worker streams stay
// uncorrelated even for adjacent indices.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// deriveRNG builds the RNG for worker stream under the run seed.
func deriveRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rngFromSeed(deriveSeed(seed, stream))
}
