package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jaroslavszkandera/tsp-solver/tsp"
)

// duration decodes TOML duration strings such as "500ms" or "2s".
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)

	return nil
}

// runConfig is the TOML file representation of a solver configuration.
// Flags given on the command line override whatever the file sets.
type runConfig struct {
	Search searchConfig `toml:"search"`
	Colony colonyConfig `toml:"colony"`
}

type searchConfig struct {
	Algo      string   `toml:"algo"` // "local", "aco" or "greedy"
	Start     int      `toml:"start"`
	Starts    int      `toml:"starts"`
	MaxPasses int      `toml:"max_passes"`
	TimeLimit duration `toml:"time_limit"`
	OrOpt     bool     `toml:"or_opt"`
	Seed      int64    `toml:"seed"`
}

type colonyConfig struct {
	Ants          int     `toml:"ants"`
	Iterations    int     `toml:"iterations"`
	Alpha         float64 `toml:"alpha"`
	Beta          float64 `toml:"beta"`
	Evaporation   float64 `toml:"evaporation"`
	Q             float64 `toml:"q"`
	InitPheromone float64 `toml:"init_pheromone"`
	MinPheromone  float64 `toml:"min_pheromone"`
	ElitistWeight float64 `toml:"elitist_weight"`
}

// defaultRunConfig mirrors tsp.DefaultOptions so a partial TOML file only
// overrides the keys it names.
func defaultRunConfig() runConfig {
	o := tsp.DefaultOptions()

	return runConfig{
		Search: searchConfig{
			Algo:      "local",
			Start:     o.StartNode,
			Starts:    o.Starts,
			MaxPasses: o.MaxPasses,
			TimeLimit: duration(o.TimeLimit),
			OrOpt:     o.OrOpt,
			Seed:      o.Seed,
		},
		Colony: colonyConfig{
			Ants:          o.Ants,
			Iterations:    o.Iterations,
			Alpha:         o.Alpha,
			Beta:          o.Beta,
			Evaporation:   o.Evaporation,
			Q:             o.Q,
			InitPheromone: o.InitPheromone,
			MinPheromone:  o.MinPheromone,
			ElitistWeight: o.ElitistWeight,
		},
	}
}

// loadConfig decodes the TOML file at path over the defaults.
// Unknown keys are rejected so typos surface instead of silently falling
// back to defaults.
func loadConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return runConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return runConfig{}, fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}

// parseAlgo maps a CLI algorithm name to the solver's enum.
func parseAlgo(name string) (tsp.Algo, error) {
	switch name {
	case "local":
		return tsp.LocalSearch, nil
	case "aco":
		return tsp.AntColony, nil
	case "greedy":
		return tsp.ConstructOnly, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want local, aco or greedy)", name)
	}
}

// options converts the file representation into solver options.
func (c runConfig) options() (tsp.Options, error) {
	algo, err := parseAlgo(c.Search.Algo)
	if err != nil {
		return tsp.Options{}, err
	}

	o := tsp.DefaultOptions()
	o.Algo = algo
	o.StartNode = c.Search.Start
	o.Starts = c.Search.Starts
	o.MaxPasses = c.Search.MaxPasses
	o.TimeLimit = time.Duration(c.Search.TimeLimit)
	o.OrOpt = c.Search.OrOpt
	o.Seed = c.Search.Seed
	o.Ants = c.Colony.Ants
	o.Iterations = c.Colony.Iterations
	o.Alpha = c.Colony.Alpha
	o.Beta = c.Colony.Beta
	o.Evaporation = c.Colony.Evaporation
	o.Q = c.Colony.Q
	o.InitPheromone = c.Colony.InitPheromone
	o.MinPheromone = c.Colony.MinPheromone
	o.ElitistWeight = c.Colony.ElitistWeight

	return o, nil
}
