package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaroslavszkandera/tsp-solver/tsp"
)

func TestOrOpt_RelocatesSingleNode(t *testing.T) {
	m := newRing(t)

	// [0 1 3 2 4] costs 9; relocating node 3 between 2 and 4 restores the
	// ring at cost 5.
	start := []int{0, 1, 3, 2, 4}
	require.Equal(t, 9.0, tsp.Cost(m, start))

	tour, cost, err := tsp.OrOpt(m, start, tsp.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(tour, 5))
	require.Equal(t, 5.0, cost)
	require.Equal(t, cost, tsp.Cost(m, tour))
	require.Equal(t, []int{0, 1, 3, 2, 4}, start)
}

func TestOrOpt_RelocatesChain(t *testing.T) {
	m := newRing(t)

	// [0 3 4 1 2] costs 11; moving the pair (3,4) behind node 2 restores
	// the ring.
	start := []int{0, 3, 4, 1, 2}
	require.Equal(t, 11.0, tsp.Cost(m, start))

	tour, cost, err := tsp.OrOpt(m, start, tsp.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(tour, 5))
	require.Equal(t, 5.0, cost)
	require.Equal(t, cost, tsp.Cost(m, tour))
}

func TestOrOpt_KeepsStartAnchored(t *testing.T) {
	m := newRing(t)

	for _, start := range [][]int{
		{0, 1, 3, 2, 4},
		{2, 0, 4, 3, 1},
		{4, 2, 0, 3, 1},
	} {
		tour, _, err := tsp.OrOpt(m, start, tsp.DefaultOptions())
		require.NoError(t, err)
		// Chains never include position 0.
		require.Equal(t, start[0], tour[0])
	}
}

func TestOrOpt_StableAtLocalOptimum(t *testing.T) {
	m := newRing(t)

	first, cost1, err := tsp.OrOpt(m, []int{0, 1, 3, 2, 4}, tsp.DefaultOptions())
	require.NoError(t, err)

	again, cost2, err := tsp.OrOpt(m, first, tsp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, cost1, cost2)
	require.Equal(t, first, again)
}

func TestImprove_AlternatesNeighborhoods(t *testing.T) {
	m := newRing(t)

	tours := [][]int{
		{0, 2, 4, 1, 3},
		{0, 1, 3, 2, 4},
		{0, 3, 4, 1, 2},
		{3, 1, 4, 0, 2},
	}
	for _, start := range tours {
		tour, cost, stats, err := tsp.Improve(m, start, tsp.DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, tsp.ValidateTour(tour, 5))
		// Both neighborhoods together always recover the ring on this
		// instance.
		require.Equal(t, 5.0, cost)
		require.Equal(t, cost, tsp.Cost(m, tour))
		require.Positive(t, stats.Passes)
	}
}

func TestImprove_MonotonicAndIdempotent(t *testing.T) {
	m := newSquare(t)

	start := []int{0, 2, 1, 3}
	tour, cost, _, err := tsp.Improve(m, start, tsp.DefaultOptions())
	require.NoError(t, err)
	require.LessOrEqual(t, cost, tsp.Cost(m, start))

	again, cost2, stats, err := tsp.Improve(m, tour, tsp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, cost, cost2)
	require.Equal(t, tour, again)
	require.Zero(t, stats.Moves)
}

func TestImprove_WithoutOrOpt(t *testing.T) {
	m := newSquare(t)

	opts := tsp.NewOptions(tsp.WithOrOpt(false))
	tour, cost, _, err := tsp.Improve(m, []int{0, 2, 1, 3}, opts)
	require.NoError(t, err)
	require.Equal(t, 40.0, cost)
	require.Equal(t, cost, tsp.Cost(m, tour))
}

func TestImprove_TimeBudget(t *testing.T) {
	m := newRing(t)

	// An already expired deadline still returns a valid tour at the
	// starting cost.
	opts := tsp.DefaultOptions()
	opts.TimeLimit = 1 // nanosecond
	start := []int{0, 2, 4, 1, 3}

	tour, cost, _, err := tsp.Improve(m, start, opts)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(tour, 5))
	require.Equal(t, cost, tsp.Cost(m, tour))
	require.LessOrEqual(t, cost, tsp.Cost(m, start))
}
