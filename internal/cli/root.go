package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string // semantic version, e.g. "v1.2.0"
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion records the version information shown by --version. The main
// package calls it with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the tspsolve CLI under ctx and returns the first command
// error. The --verbose flag raises logging from info to debug; the logger
// is attached to the command context for all subcommands.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "tspsolve",
		Short:        "tspsolve finds short tours for TSPLIB instances",
		Long:         `tspsolve parses TSPLIB-formatted travelling-salesman instances and searches for short tours using greedy construction, 2-opt and Or-opt local search, or an elitist ant colony.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("tspsolve %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newSolveCmd())

	return root.ExecuteContext(ctx)
}
