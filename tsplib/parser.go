// Package tsplib reads Travelling Salesman Problem instances in the TSPLIB
// text format into an immutable Instance.
//
// Supported surface:
//   - Header block of "KEY : VALUE" lines (NAME, TYPE, COMMENT, DIMENSION,
//     EDGE_WEIGHT_TYPE, EDGE_WEIGHT_FORMAT; unknown keys are ignored).
//   - NODE_COORD_SECTION with "<index> <x> <y>" records, 1-based indices.
//   - EDGE_WEIGHT_SECTION in FULL_MATRIX, UPPER_ROW, LOWER_ROW,
//     UPPER_DIAG_ROW and LOWER_DIAG_ROW layouts, reshaped into a dense
//     symmetric table.
//   - DISPLAY_DATA_SECTION / TOUR_SECTION are skipped; EOF ends the input.
//
// Design:
//   - Eager validation: no partial Instance ever escapes. A declared
//     DIMENSION that disagrees with the data is an error, never a silent
//     truncation.
//   - Strict sentinels wrapped in *ParseError (see types.go) carrying the
//     offending line number.
//   - The parser does not judge whether an EDGE_WEIGHT_TYPE is solvable;
//     unrecognized types pass through as long as their data section is
//     internally consistent. The distance layer rejects what it cannot
//     compute.
//
// Complexity: O(L + n²) time for L input lines, O(n²) space for explicit
// tables, O(n) for coordinate instances.
package tsplib

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// section is the parser's current position in the file.
type section int

const (
	inHeader section = iota
	inCoords
	inWeights
	inSkipped // DISPLAY_DATA_SECTION, TOUR_SECTION: consumed, not parsed
)

// coordRecord is one NODE_COORD_SECTION line before renumbering.
type coordRecord struct {
	id int
	c  Coord
}

// ParseFile opens path and parses it via Parse.
func ParseFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tsplib: open instance: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse consumes one TSPLIB instance from r and returns the populated
// Instance, or a *ParseError describing the first defect found.
func Parse(r io.Reader) (*Instance, error) {
	var (
		inst    Instance
		sec     = inHeader
		line    string
		lineNum int
		coords  []coordRecord
		weights []float64
		sawDim  bool
	)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for sc.Scan() {
		lineNum++
		line = strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "EOF" {
			break
		}

		// Section keywords switch the state machine regardless of the
		// current section.
		switch line {
		case "NODE_COORD_SECTION":
			if !sawDim || inst.Dimension <= 0 {
				return nil, parseErrf(lineNum, ErrMissingHeader, "NODE_COORD_SECTION before a positive DIMENSION")
			}
			sec = inCoords
			continue
		case "EDGE_WEIGHT_SECTION":
			if !sawDim || inst.Dimension <= 0 {
				return nil, parseErrf(lineNum, ErrMissingHeader, "EDGE_WEIGHT_SECTION before a positive DIMENSION")
			}
			sec = inWeights
			continue
		case "DISPLAY_DATA_SECTION", "TOUR_SECTION":
			sec = inSkipped
			continue
		}

		switch sec {
		case inHeader:
			if err := parseHeaderLine(&inst, line, lineNum, &sawDim); err != nil {
				return nil, err
			}
		case inCoords:
			rec, err := parseCoordLine(line, lineNum)
			if err != nil {
				return nil, err
			}
			if len(coords) == inst.Dimension {
				return nil, parseErrf(lineNum, ErrDimensionMismatch,
					"more than DIMENSION=%d coordinate records", inst.Dimension)
			}
			coords = append(coords, rec)
		case inWeights:
			var err error
			if weights, err = appendWeights(weights, line, lineNum); err != nil {
				return nil, err
			}
		case inSkipped:
			// Swallow display/tour data without affecting indices.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Line: lineNum, Msg: err.Error(), Err: ErrBadSyntax}
	}

	if err := requireHeaders(&inst); err != nil {
		return nil, err
	}

	// EXPLICIT (and unknown types that listed weights) go through reshape;
	// everything else must have a complete coordinate section.
	if inst.WeightType == Explicit || (!inst.WeightType.CoordBased() && len(weights) > 0) {
		if err := finishExplicit(&inst, weights); err != nil {
			return nil, err
		}
		return &inst, nil
	}
	if err := finishCoords(&inst, coords); err != nil {
		return nil, err
	}

	return &inst, nil
}

// parseHeaderLine handles one "KEY : VALUE" pair from the header block.
// Unknown keys are ignored per the TSPLIB convention; a header line without a
// colon is malformed.
func parseHeaderLine(inst *Instance, line string, lineNum int, sawDim *bool) error {
	key, value, found := strings.Cut(line, ":")
	if !found {
		return parseErrf(lineNum, ErrBadSyntax, "expected KEY : VALUE or a section keyword, found %q", line)
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	switch key {
	case "NAME":
		inst.Name = value
	case "TYPE":
		inst.Type = value
	case "COMMENT":
		// Multiple COMMENT lines are concatenated, matching common usage.
		if inst.Comment != "" {
			inst.Comment += "; "
		}
		inst.Comment += value
	case "DIMENSION":
		n, err := strconv.Atoi(value)
		if err != nil {
			return parseErrf(lineNum, ErrBadSyntax, "DIMENSION %q is not an integer", value)
		}
		inst.Dimension = n
		*sawDim = true
	case "EDGE_WEIGHT_TYPE":
		inst.WeightType = EdgeWeightType(strings.ToUpper(value))
	case "EDGE_WEIGHT_FORMAT":
		inst.WeightFormat = EdgeWeightFormat(strings.ToUpper(value))
	}

	return nil
}

// parseCoordLine tokenizes "<index> <x> <y>"; extra trailing fields are
// tolerated (some instances append display data).
func parseCoordLine(line string, lineNum int) (coordRecord, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return coordRecord{}, parseErrf(lineNum, ErrBadSyntax, "expected <index> <x> <y>, found %q", line)
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return coordRecord{}, parseErrf(lineNum, ErrBadSyntax, "node index %q is not an integer", fields[0])
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return coordRecord{}, parseErrf(lineNum, ErrBadSyntax, "x coordinate %q is not numeric", fields[1])
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return coordRecord{}, parseErrf(lineNum, ErrBadSyntax, "y coordinate %q is not numeric", fields[2])
	}

	return coordRecord{id: id, c: Coord{X: x, Y: y}}, nil
}

// appendWeights parses every whitespace-separated number on an
// EDGE_WEIGHT_SECTION line. TSPLIB wraps rows arbitrarily, so no per-line
// count is enforced here; the total is checked during reshape.
func appendWeights(dst []float64, line string, lineNum int) ([]float64, error) {
	for _, tok := range strings.Fields(line) {
		w, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, parseErrf(lineNum, ErrBadSyntax, "edge weight %q is not numeric", tok)
		}
		if w < 0 {
			return nil, parseErrf(lineNum, ErrNegativeWeight, "edge weight %g is negative", w)
		}
		dst = append(dst, w)
	}

	return dst, nil
}

// requireHeaders enforces the mandatory header fields after the scan.
func requireHeaders(inst *Instance) error {
	if inst.Name == "" {
		return parseErrf(0, ErrMissingHeader, "NAME is missing")
	}
	if inst.Type == "" {
		return parseErrf(0, ErrMissingHeader, "TYPE is missing")
	}
	if inst.Dimension <= 0 {
		return parseErrf(0, ErrMissingHeader, "DIMENSION is missing or not positive")
	}
	if inst.WeightType == "" {
		return parseErrf(0, ErrMissingHeader, "EDGE_WEIGHT_TYPE is missing")
	}
	if inst.WeightType == Explicit && inst.WeightFormat == "" {
		return parseErrf(0, ErrMissingHeader, "EDGE_WEIGHT_FORMAT is required for EXPLICIT")
	}

	return nil
}

// finishCoords validates the coordinate section and renumbers nodes to
// 0-based contiguous internal indices, preserving the declared identifiers
// in IDs. Declared indices must form a permutation of 1..n.
func finishCoords(inst *Instance, coords []coordRecord) error {
	n := inst.Dimension
	if len(coords) == 0 {
		return parseErrf(0, ErrMissingSection, "edge weight type %s requires NODE_COORD_SECTION", inst.WeightType)
	}
	if len(coords) != n {
		return parseErrf(0, ErrDimensionMismatch,
			"DIMENSION is %d but NODE_COORD_SECTION has %d records", n, len(coords))
	}

	seen := make([]bool, n)
	inst.IDs = make([]int, n)
	inst.Coords = make([]Coord, n)
	for k, rec := range coords {
		if rec.id < 1 || rec.id > n {
			return parseErrf(0, ErrBadSyntax, "node index %d outside 1..%d", rec.id, n)
		}
		if seen[rec.id-1] {
			return parseErrf(0, ErrBadSyntax, "duplicate node index %d", rec.id)
		}
		seen[rec.id-1] = true
		inst.IDs[k] = rec.id
		inst.Coords[k] = rec.c
	}

	return nil
}

// finishExplicit reshapes the collected weight stream into a dense symmetric
// n×n table according to the declared layout. Any count mismatch is a parse
// error; FULL_MATRIX input must already be symmetric.
func finishExplicit(inst *Instance, weights []float64) error {
	n := inst.Dimension
	if len(weights) == 0 {
		return parseErrf(0, ErrMissingSection, "EXPLICIT requires EDGE_WEIGHT_SECTION")
	}

	var want int
	switch inst.WeightFormat {
	case FullMatrix:
		want = n * n
	case UpperRow, LowerRow:
		want = n * (n - 1) / 2
	case UpperDiagRow, LowerDiagRow:
		want = n * (n + 1) / 2
	default:
		return parseErrf(0, ErrUnknownFormat, "EDGE_WEIGHT_FORMAT %q", inst.WeightFormat)
	}
	if len(weights) != want {
		return parseErrf(0, ErrDimensionMismatch,
			"%s with DIMENSION %d needs %d weights, found %d", inst.WeightFormat, n, want, len(weights))
	}

	table := make([]float64, n*n)
	set := func(i, j int, w float64) {
		table[i*n+j] = w
		table[j*n+i] = w
	}

	k := 0
	switch inst.WeightFormat {
	case FullMatrix:
		copy(table, weights)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if table[i*n+j] != table[j*n+i] {
					return parseErrf(0, ErrAsymmetry,
						"FULL_MATRIX entry (%d,%d)=%g differs from (%d,%d)=%g",
						i+1, j+1, table[i*n+j], j+1, i+1, table[j*n+i])
				}
			}
		}
	case UpperRow:
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				set(i, j, weights[k])
				k++
			}
		}
	case LowerRow:
		for i := 0; i < n; i++ {
			for j := 0; j < i; j++ {
				set(i, j, weights[k])
				k++
			}
		}
	case UpperDiagRow:
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				set(i, j, weights[k])
				k++
			}
		}
	case LowerDiagRow:
		for i := 0; i < n; i++ {
			for j := 0; j <= i; j++ {
				set(i, j, weights[k])
				k++
			}
		}
	}

	inst.Weights = table
	inst.IDs = make([]int, n)
	for i := range inst.IDs {
		inst.IDs[i] = i + 1
	}

	return nil
}
