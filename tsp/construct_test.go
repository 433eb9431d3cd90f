package tsp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaroslavszkandera/tsp-solver/dist"
	"github.com/jaroslavszkandera/tsp-solver/tsp"
	"github.com/jaroslavszkandera/tsp-solver/tsplib"
)

// newSquare returns the 10x10 axis-aligned square under EUC_2D. Side 10,
// diagonal nint(sqrt(200)) = 14, optimal perimeter 40.
func newSquare(t *testing.T) dist.Model {
	t.Helper()
	m, err := dist.New(&tsplib.Instance{
		Name:       "square4",
		Type:       "TSP",
		Dimension:  4,
		WeightType: tsplib.Euc2D,
		Coords: []tsplib.Coord{
			{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
		},
	})
	require.NoError(t, err)

	return m
}

// newRing returns a 5-node explicit instance whose optimum is the ring
// 0-1-2-3-4 (adjacent weight 1, all other pairs 3, optimum 5).
func newRing(t *testing.T) dist.Model {
	t.Helper()
	const n = 5
	w := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case i == j:
			case (i+1)%n == j || (j+1)%n == i:
				w[i*n+j] = 1
			default:
				w[i*n+j] = 3
			}
		}
	}
	m, err := dist.New(&tsplib.Instance{
		Name:         "ring5",
		Type:         "TSP",
		Dimension:    n,
		WeightType:   tsplib.Explicit,
		WeightFormat: tsplib.FullMatrix,
		Weights:      w,
	})
	require.NoError(t, err)

	return m
}

func TestNearestNeighbor_Square(t *testing.T) {
	m := newSquare(t)

	for start := 0; start < 4; start++ {
		tour, err := tsp.NearestNeighbor(m, start)
		require.NoError(t, err)
		require.NoError(t, tsp.ValidateTour(tour, 4))
		require.Equal(t, start, tour[0])
		// Greedy walks the perimeter from any corner of a square.
		require.Equal(t, 40.0, tsp.Cost(m, tour))
	}
}

func TestNearestNeighbor_TieBreaksToSmallestIndex(t *testing.T) {
	m := newSquare(t)

	// From corner 0 both neighbors 1 and 3 sit at distance 10;
	// the smaller index must win.
	tour, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2, 3}, tour)
}

func TestNearestNeighbor_Ring(t *testing.T) {
	m := newRing(t)

	tour, err := tsp.NearestNeighbor(m, 2)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(tour, 5))
	require.Equal(t, 2, tour[0])
	require.Equal(t, 5.0, tsp.Cost(m, tour))
}

func TestNearestNeighbor_StartOutOfRange(t *testing.T) {
	m := newSquare(t)

	for _, start := range []int{-1, 4, 17} {
		_, err := tsp.NearestNeighbor(m, start)
		require.ErrorIs(t, err, tsp.ErrStartOutOfRange)
	}
}

func TestNearestNeighbor_Deterministic(t *testing.T) {
	m := newRing(t)

	first, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := tsp.NearestNeighbor(m, 0)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}
