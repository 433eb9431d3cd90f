// SPDX-License-Identifier: MIT
// Package tsplib: instance model and sentinel error set.
//
// This file defines ONLY the parsed-instance data types and the package-level
// sentinel errors. All parse failures wrap one of these sentinels inside a
// *ParseError so callers can match the category via errors.Is while still
// reading the offending line number.

package tsplib

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingHeader is returned when a required header field
	// (NAME, TYPE, DIMENSION, EDGE_WEIGHT_TYPE) is absent.
	ErrMissingHeader = errors.New("tsplib: required header field missing")

	// ErrBadSyntax indicates a line that cannot be tokenized as its section
	// demands (non-numeric coordinate, malformed KEY : VALUE pair, ...).
	ErrBadSyntax = errors.New("tsplib: malformed line")

	// ErrDimensionMismatch indicates that the declared DIMENSION does not
	// match the number of data records found in a section.
	ErrDimensionMismatch = errors.New("tsplib: dimension does not match data")

	// ErrMissingSection is returned when the data section required by the
	// declared edge weight type never appears before EOF.
	ErrMissingSection = errors.New("tsplib: required data section missing")

	// ErrUnknownFormat marks an EDGE_WEIGHT_FORMAT this parser cannot reshape.
	ErrUnknownFormat = errors.New("tsplib: unknown edge weight format")

	// ErrNegativeWeight rejects explicit tables with negative entries.
	ErrNegativeWeight = errors.New("tsplib: negative edge weight")

	// ErrAsymmetry rejects FULL_MATRIX tables that are not symmetric.
	// Asymmetric instances are outside this solver's scope.
	ErrAsymmetry = errors.New("tsplib: explicit matrix is not symmetric")
)

// EdgeWeightType is the declared distance rule of an instance.
// Unrecognized values are carried verbatim; whether they are solvable is
// decided by the distance layer, not the parser.
type EdgeWeightType string

const (
	// Euc2D is the Euclidean metric rounded to the nearest integer.
	Euc2D EdgeWeightType = "EUC_2D"
	// Ceil2D is the Euclidean metric rounded up.
	Ceil2D EdgeWeightType = "CEIL_2D"
	// Geo is the TSPLIB great-circle metric over latitude/longitude pairs.
	Geo EdgeWeightType = "GEO"
	// Att is the pseudo-Euclidean metric of the att48/att532 instances.
	Att EdgeWeightType = "ATT"
	// Explicit means distances are listed in an EDGE_WEIGHT_SECTION.
	Explicit EdgeWeightType = "EXPLICIT"
)

// CoordBased reports whether the type computes distances from coordinates.
func (t EdgeWeightType) CoordBased() bool {
	switch t {
	case Euc2D, Ceil2D, Geo, Att:
		return true
	default:
		return false
	}
}

// EdgeWeightFormat is the declared layout of an EDGE_WEIGHT_SECTION.
type EdgeWeightFormat string

const (
	FullMatrix   EdgeWeightFormat = "FULL_MATRIX"
	UpperRow     EdgeWeightFormat = "UPPER_ROW"
	LowerRow     EdgeWeightFormat = "LOWER_ROW"
	UpperDiagRow EdgeWeightFormat = "UPPER_DIAG_ROW"
	LowerDiagRow EdgeWeightFormat = "LOWER_DIAG_ROW"
)

// Coord is one planar (or latitude/longitude, for GEO) node position.
type Coord struct {
	X float64
	Y float64
}

// Instance is a fully parsed TSPLIB problem. It is immutable after Parse:
// no function in this module mutates a returned Instance.
//
// Exactly one of Coords / Weights is populated, consistent with WeightType:
// coordinate metrics carry Coords (len == Dimension), EXPLICIT carries
// Weights as a dense symmetric Dimension×Dimension table in row-major order.
// Node indices are 0-based and contiguous internally; IDs preserves the
// 1-based identifiers declared by the file for round-trip reporting.
type Instance struct {
	Name         string
	Type         string
	Comment      string
	Dimension    int
	WeightType   EdgeWeightType
	WeightFormat EdgeWeightFormat // empty unless declared
	IDs          []int
	Coords       []Coord
	Weights      []float64
}

// Weight returns the explicit table entry (i, j). Contract: the instance is
// EXPLICIT and both indices are in [0..Dimension-1]; violations are
// programmer errors and panic via slice bounds.
func (in *Instance) Weight(i, j int) float64 {
	return in.Weights[i*in.Dimension+j]
}

// ParseError reports a parse failure with its input position. Err is one of
// the package sentinels, reachable through errors.Is / errors.Unwrap.
type ParseError struct {
	Line int    // 1-based input line, 0 when the failure is file-global
	Msg  string // human-readable context (expected vs. found)
	Err  error
}

// Error renders "tsplib: line N: msg" or "tsplib: msg" for global failures.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("tsplib: line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("tsplib: %s", e.Msg)
}

// Unwrap exposes the sentinel category for errors.Is.
func (e *ParseError) Unwrap() error { return e.Err }

// parseErrf builds a *ParseError wrapping sentinel err at the given line.
func parseErrf(line int, err error, format string, args ...any) error {
	return &ParseError{Line: line, Err: err, Msg: fmt.Sprintf(format, args...)}
}
