// SPDX-License-Identifier: MIT
package tsp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jaroslavszkandera/tsp-solver/dist"
	"github.com/jaroslavszkandera/tsp-solver/tsp"
	"github.com/jaroslavszkandera/tsp-solver/tsplib"
)

func squareInstance() *tsplib.Instance {
	return &tsplib.Instance{
		Name:       "square4",
		Type:       "TSP",
		Dimension:  4,
		WeightType: tsplib.Euc2D,
		Coords: []tsplib.Coord{
			{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0},
		},
	}
}

func TestSolve_SquareOptimum(t *testing.T) {
	for _, algo := range []tsp.Algo{tsp.LocalSearch, tsp.ConstructOnly, tsp.AntColony} {
		t.Run(algo.String(), func(t *testing.T) {
			opts := tsp.DefaultOptions()
			opts.Algo = algo
			// Trim the colony: 4 nodes need no 250 iterations.
			if algo == tsp.AntColony {
				opts.Ants = 4
				opts.Iterations = 10
			}

			res, err := tsp.Solve(squareInstance(), opts)
			require.NoError(t, err)
			require.NoError(t, tsp.ValidateTour(res.Tour, 4))
			// Every 4-node tour is either the perimeter (40) or crossed
			// (48); construction alone already walks the perimeter here
			// and the refining algorithms cannot do worse.
			require.Equal(t, 40.0, res.Cost)
			require.Equal(t, 0, res.Tour[0])
			require.Positive(t, res.Stats.Elapsed)
		})
	}
}

func TestSolve_StartInvariantCost(t *testing.T) {
	inst := squareInstance()
	for start := 0; start < 4; start++ {
		opts := tsp.NewOptions(tsp.WithStartNode(start))
		res, err := tsp.Solve(inst, opts)
		require.NoError(t, err)
		require.Equal(t, 40.0, res.Cost)
		// The report anchors at the requested start.
		require.Equal(t, start, res.Tour[0])
	}
}

func TestSolve_CanonicalOrientation(t *testing.T) {
	res, err := tsp.Solve(squareInstance(), tsp.DefaultOptions())
	require.NoError(t, err)
	// With the start anchored, the smaller neighbor leads.
	require.Less(t, res.Tour[1], res.Tour[len(res.Tour)-1])
}

func TestSolve_NodesAreFileIdentifiers(t *testing.T) {
	res, err := tsp.Solve(squareInstance(), tsp.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, res.Nodes, 4)
	for i, v := range res.Tour {
		require.Equal(t, v+1, res.Nodes[i])
	}
}

func TestSolve_Degenerate(t *testing.T) {
	t.Run("dimension 0", func(t *testing.T) {
		res, err := tsp.Solve(&tsplib.Instance{
			Name: "empty", Type: "TSP", WeightType: tsplib.Euc2D,
		}, tsp.DefaultOptions())
		require.NoError(t, err)
		require.Empty(t, res.Tour)
		require.Empty(t, res.Nodes)
		require.Zero(t, res.Cost)
	})

	t.Run("dimension 1", func(t *testing.T) {
		res, err := tsp.Solve(&tsplib.Instance{
			Name: "single", Type: "TSP", Dimension: 1,
			WeightType: tsplib.Euc2D,
			Coords:     []tsplib.Coord{{X: 3, Y: 4}},
		}, tsp.DefaultOptions())
		require.NoError(t, err)
		require.Equal(t, []int{0}, res.Tour)
		require.Equal(t, []int{1}, res.Nodes)
		require.Zero(t, res.Cost)
	})
}

func TestSolve_InputErrors(t *testing.T) {
	_, err := tsp.Solve(nil, tsp.DefaultOptions())
	require.ErrorIs(t, err, tsp.ErrNilInstance)

	_, err = tsp.Solve(squareInstance(), tsp.NewOptions(tsp.WithStartNode(9)))
	require.ErrorIs(t, err, tsp.ErrStartOutOfRange)

	bad := tsp.DefaultOptions()
	bad.Algo = tsp.Algo(99)
	_, err = tsp.Solve(squareInstance(), bad)
	require.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)

	colony := tsp.DefaultOptions()
	colony.Algo = tsp.AntColony
	colony.Ants = 0
	_, err = tsp.Solve(squareInstance(), colony)
	require.ErrorIs(t, err, tsp.ErrBadOptions)

	threeD := squareInstance()
	threeD.WeightType = tsplib.EdgeWeightType("EUC_3D")
	_, err = tsp.Solve(threeD, tsp.DefaultOptions())
	require.ErrorIs(t, err, dist.ErrUnsupportedMetric)
}

func TestSolve_MultiStartDeterministic(t *testing.T) {
	opts := tsp.NewOptions(tsp.WithStarts(4), tsp.WithSeed(11))

	first, err := tsp.Solve(squareInstance(), opts)
	require.NoError(t, err)
	again, err := tsp.Solve(squareInstance(), opts)
	require.NoError(t, err)

	require.Equal(t, first.Tour, again.Tour)
	require.Equal(t, first.Cost, again.Cost)
}

func TestSolve_MultiStartNeverWorse(t *testing.T) {
	inst := squareInstance()

	single, err := tsp.Solve(inst, tsp.DefaultOptions())
	require.NoError(t, err)
	multi, err := tsp.Solve(inst, tsp.NewOptions(tsp.WithStarts(8)))
	require.NoError(t, err)

	require.LessOrEqual(t, multi.Cost, single.Cost)
}

func TestSolve_ConstructOnlyMatchesGreedy(t *testing.T) {
	inst := squareInstance()
	m, err := dist.New(inst)
	require.NoError(t, err)
	greedy, err := tsp.NearestNeighbor(m, 0)
	require.NoError(t, err)

	opts := tsp.NewOptions(tsp.WithAlgo(tsp.ConstructOnly))
	res, err := tsp.Solve(inst, opts)
	require.NoError(t, err)
	require.Equal(t, tsp.Cost(m, greedy), res.Cost)
}

func TestSolve_TimeLimit(t *testing.T) {
	opts := tsp.NewOptions(tsp.WithTimeLimit(50 * time.Millisecond))
	res, err := tsp.Solve(squareInstance(), opts)
	require.NoError(t, err)
	require.NoError(t, tsp.ValidateTour(res.Tour, 4))
}

func TestSolveFile(t *testing.T) {
	res, err := tsp.SolveFile("testdata/square4.tsp", tsp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 40.0, res.Cost)
	require.Equal(t, []int{1, 2, 3, 4}, res.Nodes)
}

func TestSolveFile_ExplicitInstance(t *testing.T) {
	// All 3-node tours traverse every edge once: 1 + 2 + 3.
	res, err := tsp.SolveFile("../tsplib/testdata/gr3.tsp", tsp.DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 6.0, res.Cost)
	require.Len(t, res.Tour, 3)
}

func TestSolveFile_Errors(t *testing.T) {
	_, err := tsp.SolveFile("testdata/no-such-file.tsp", tsp.DefaultOptions())
	require.Error(t, err)

	_, err = tsp.SolveFile("testdata/truncated.tsp", tsp.DefaultOptions())
	require.ErrorIs(t, err, tsplib.ErrMissingSection)
}
