package cli

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// loadOptima reads a catalogue of known optimal tour lengths, one
// "name : value" pair per line. Names are matched case-insensitively;
// trailing annotations after the numeric value are ignored, as are lines
// without a colon. The format follows the solution tables published with
// TSPLIB.
func loadOptima(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	optima := make(map[string]float64)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name, rest, found := strings.Cut(sc.Text(), ":")
		if !found {
			continue
		}
		// "a280 : 2579 (conjectured)" -> key "a280", value 2579.
		key, _, _ := strings.Cut(strings.TrimSpace(name), " ")
		numeric, _, _ := strings.Cut(strings.TrimSpace(rest), " ")
		v, err := strconv.ParseFloat(numeric, 64)
		if err != nil {
			return nil, fmt.Errorf("solutions %s: bad value for %q: %w", path, key, err)
		}
		optima[strings.ToLower(key)] = v
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return optima, nil
}

// evaluate looks up the known optimum for an instance name and returns it
// with the relative gap of found in percent. ok is false when the
// catalogue has no entry for the name; the name's extension, if any, is
// stripped before the lookup.
func evaluate(name string, found float64, optima map[string]float64) (optimal, gapPct float64, ok bool) {
	base, _, _ := strings.Cut(name, ".")
	optimal, ok = optima[strings.ToLower(base)]
	if !ok {
		return 0, 0, false
	}

	switch {
	case optimal == 0 && found == 0:
		gapPct = 0
	case optimal == 0:
		gapPct = math.Inf(1)
	default:
		gapPct = (found - optimal) / optimal * 100
	}

	return optimal, gapPct, true
}
