// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaroslavszkandera/tsp-solver/tsp"
	"github.com/jaroslavszkandera/tsp-solver/tsplib"
)

// maxRouteNodes caps printed routes; larger tours report only their length.
const maxRouteNodes = 30

// solveFlags holds the command-line overrides for the solve command.
// Only flags the user actually set override the config file.
type solveFlags struct {
	config string
	optima string

	algo      string
	start     int
	starts    int
	maxPasses int
	timeLimit time.Duration
	orOpt     bool
	seed      int64

	ants          int
	iterations    int
	alpha         float64
	beta          float64
	evaporation   float64
	q             float64
	initPheromone float64
	minPheromone  float64
	elitistWeight float64
}

func newSolveCmd() *cobra.Command {
	var flags solveFlags

	cmd := &cobra.Command{
		Use:   "solve <instance.tsp>",
		Short: "Solve a TSPLIB instance",
		Long: `Solve parses a TSPLIB-formatted instance and searches for a short tour.

Algorithms:
  local   greedy construction refined by 2-opt and Or-opt (default)
  aco     elitist ant colony, polished by local search
  greedy  nearest-neighbor construction only

Examples:
  tspsolve solve berlin52.tsp
  tspsolve solve --algo aco --ants 30 --iterations 500 att48.tsp
  tspsolve solve --starts 8 --optima solutions a280.tsp`,
		Args: cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runSolve(c, &flags, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.config, "config", "", "TOML configuration file")
	f.StringVar(&flags.optima, "optima", "", "catalogue of known optima for gap reporting")

	f.StringVar(&flags.algo, "algo", "local", "algorithm: local, aco or greedy")
	f.IntVar(&flags.start, "start", 0, "start node index (0-based)")
	f.IntVar(&flags.starts, "starts", 1, "parallel independent starts")
	f.IntVar(&flags.maxPasses, "max-passes", 0, "cap on improvement passes (0 = unlimited)")
	f.DurationVar(&flags.timeLimit, "time-limit", 0, "wall-clock budget (0 = unlimited)")
	f.BoolVar(&flags.orOpt, "or-opt", true, "enable Or-opt relocation moves")
	f.Int64Var(&flags.seed, "seed", 0, "RNG seed for stochastic search (0 = default)")

	f.IntVar(&flags.ants, "ants", 0, "colony size")
	f.IntVar(&flags.iterations, "iterations", 0, "colony iterations")
	f.Float64Var(&flags.alpha, "alpha", 0, "pheromone influence")
	f.Float64Var(&flags.beta, "beta", 0, "heuristic influence")
	f.Float64Var(&flags.evaporation, "evaporation", 0, "pheromone evaporation rate")
	f.Float64Var(&flags.q, "q", 0, "pheromone deposit factor")
	f.Float64Var(&flags.initPheromone, "init-pheromone", 0, "initial pheromone level")
	f.Float64Var(&flags.minPheromone, "min-pheromone", 0, "pheromone floor")
	f.Float64Var(&flags.elitistWeight, "elitist-weight", 0, "global-best reinforcement weight")

	return cmd
}

// buildOptions layers the three configuration sources: defaults, then the
// optional TOML file, then explicitly set flags.
func buildOptions(cmd *cobra.Command, flags *solveFlags) (tsp.Options, error) {
	cfg := defaultRunConfig()
	if flags.config != "" {
		var err error
		if cfg, err = loadConfig(flags.config); err != nil {
			return tsp.Options{}, err
		}
	}

	set := cmd.Flags().Changed
	if set("algo") {
		cfg.Search.Algo = flags.algo
	}
	if set("start") {
		cfg.Search.Start = flags.start
	}
	if set("starts") {
		cfg.Search.Starts = flags.starts
	}
	if set("max-passes") {
		cfg.Search.MaxPasses = flags.maxPasses
	}
	if set("time-limit") {
		cfg.Search.TimeLimit = duration(flags.timeLimit)
	}
	if set("or-opt") {
		cfg.Search.OrOpt = flags.orOpt
	}
	if set("seed") {
		cfg.Search.Seed = flags.seed
	}
	if set("ants") {
		cfg.Colony.Ants = flags.ants
	}
	if set("iterations") {
		cfg.Colony.Iterations = flags.iterations
	}
	if set("alpha") {
		cfg.Colony.Alpha = flags.alpha
	}
	if set("beta") {
		cfg.Colony.Beta = flags.beta
	}
	if set("evaporation") {
		cfg.Colony.Evaporation = flags.evaporation
	}
	if set("q") {
		cfg.Colony.Q = flags.q
	}
	if set("init-pheromone") {
		cfg.Colony.InitPheromone = flags.initPheromone
	}
	if set("min-pheromone") {
		cfg.Colony.MinPheromone = flags.minPheromone
	}
	if set("elitist-weight") {
		cfg.Colony.ElitistWeight = flags.elitistWeight
	}

	return cfg.options()
}

func runSolve(cmd *cobra.Command, flags *solveFlags, path string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	opts, err := buildOptions(cmd, flags)
	if err != nil {
		return err
	}

	logger.Debugf("parsing %s", path)
	inst, err := tsplib.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Infof("parsed %s: %d nodes, %s", inst.Name, inst.Dimension, inst.WeightType)
	if inst.Comment != "" {
		logger.Debugf("comment: %s", inst.Comment)
	}

	p := newProgress(logger)
	res, err := tsp.Solve(inst, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("%s search finished", opts.Algo))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "instance:  %s (%d nodes)\n", inst.Name, inst.Dimension)
	fmt.Fprintf(out, "tour cost: %.2f\n", res.Cost)
	fmt.Fprintf(out, "elapsed:   %s\n", res.Stats.Elapsed.Round(time.Millisecond))
	if res.Stats.Passes > 0 {
		fmt.Fprintf(out, "passes:    %d (%d improving moves)\n", res.Stats.Passes, res.Stats.Moves)
	}
	if n := len(res.Nodes); n > 0 && n <= maxRouteNodes {
		fmt.Fprintf(out, "route:     %v\n", res.Nodes)
	}

	if flags.optima == "" {
		return nil
	}
	optima, err := loadOptima(flags.optima)
	if err != nil {
		logger.Warnf("could not load optima: %v", err)
		return nil
	}
	if optimal, gap, ok := evaluate(inst.Name, res.Cost, optima); ok {
		fmt.Fprintf(out, "optimal:   %.0f (gap %.2f%%)\n", optimal, gap)
	} else {
		logger.Debugf("no known optimum for %s", inst.Name)
	}

	return nil
}
