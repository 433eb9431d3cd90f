package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

// runSolveCmd executes the solve command with args, returning its stdout.
func runSolveCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newSolveCmd()
	cmd.SetContext(withLogger(context.Background(), newLogger(io.Discard, log.FatalLevel)))
	cmd.SetArgs(args)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()

	return out.String(), err
}

func TestSolveCmd_ReportsTour(t *testing.T) {
	out, err := runSolveCmd(t, "testdata/square4.tsp")
	require.NoError(t, err)

	require.Contains(t, out, "square4 (4 nodes)")
	require.Contains(t, out, "tour cost: 40.00")
	// Short tours print the full route as file identifiers.
	require.Contains(t, out, "route:     [1 2 3 4]")
}

func TestSolveCmd_GapAgainstOptima(t *testing.T) {
	out, err := runSolveCmd(t, "--optima", "testdata/solutions", "testdata/square4.tsp")
	require.NoError(t, err)
	require.Contains(t, out, "optimal:   40 (gap 0.00%)")
}

func TestSolveCmd_Algorithms(t *testing.T) {
	for _, algo := range []string{"local", "aco", "greedy"} {
		t.Run(algo, func(t *testing.T) {
			args := []string{"--algo", algo, "testdata/square4.tsp"}
			if algo == "aco" {
				args = append([]string{"--ants", "4", "--iterations", "10"}, args...)
			}
			out, err := runSolveCmd(t, args...)
			require.NoError(t, err)
			require.Contains(t, out, "tour cost: 40.00")
		})
	}

	_, err := runSolveCmd(t, "--algo", "brute-force", "testdata/square4.tsp")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown algorithm")
}

func TestSolveCmd_ConfigFile(t *testing.T) {
	out, err := runSolveCmd(t, "--config", "testdata/config.toml", "testdata/square4.tsp")
	require.NoError(t, err)
	require.Contains(t, out, "tour cost: 40.00")
}

func TestSolveCmd_FlagsOverrideConfig(t *testing.T) {
	// The file selects aco; the flag forces greedy construction.
	out, err := runSolveCmd(t,
		"--config", "testdata/config.toml", "--algo", "greedy", "testdata/square4.tsp")
	require.NoError(t, err)
	require.Contains(t, out, "tour cost: 40.00")
	// Greedy construction reports no improvement passes.
	require.NotContains(t, out, "passes:")
}

func TestSolveCmd_Errors(t *testing.T) {
	_, err := runSolveCmd(t, "testdata/no-such-instance.tsp")
	require.Error(t, err)

	_, err = runSolveCmd(t, "--config", "testdata/bad.toml", "testdata/square4.tsp")
	require.Error(t, err)
}

func TestSetVersion(t *testing.T) {
	SetVersion("v1.2.0", "abc123", "2026-01-01")
	if version != "v1.2.0" || commit != "abc123" || date != "2026-01-01" {
		t.Errorf("SetVersion stored %q %q %q", version, commit, date)
	}
	if !strings.HasPrefix(version, "v") {
		t.Errorf("version %q should keep its prefix", version)
	}
}
