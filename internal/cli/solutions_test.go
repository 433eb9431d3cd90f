package cli

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOptima(t *testing.T) {
	optima, err := loadOptima("testdata/solutions")
	require.NoError(t, err)

	require.Equal(t, 2579.0, optima["a280"])
	require.Equal(t, 10628.0, optima["att48"])
	// Trailing annotation stripped.
	require.Equal(t, 6859.0, optima["ulysses16"])
	require.Len(t, optima, 6)
}

func TestLoadOptima_MissingFile(t *testing.T) {
	_, err := loadOptima("testdata/no-such-solutions")
	require.Error(t, err)
}

func TestEvaluate(t *testing.T) {
	optima := map[string]float64{"att48": 10628, "zero": 0}

	optimal, gap, ok := evaluate("att48", 10628, optima)
	require.True(t, ok)
	require.Equal(t, 10628.0, optimal)
	require.Zero(t, gap)

	_, gap, ok = evaluate("att48", 11159.4, optima)
	require.True(t, ok)
	require.InDelta(t, 5.0, gap, 1e-9)

	// Name matching is case-insensitive and drops the extension.
	_, _, ok = evaluate("ATT48.tsp", 10628, optima)
	require.True(t, ok)

	_, _, ok = evaluate("unknown", 1, optima)
	require.False(t, ok)

	// Degenerate optimum of zero.
	_, gap, ok = evaluate("zero", 0, optima)
	require.True(t, ok)
	require.Zero(t, gap)
	_, gap, ok = evaluate("zero", 3, optima)
	require.True(t, ok)
	require.True(t, math.IsInf(gap, 1))
}
