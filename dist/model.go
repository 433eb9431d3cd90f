// Package dist turns a parsed tsplib.Instance into a distance model: a pure,
// symmetric function over 0-based node indices implementing the instance's
// declared metric.
//
// Supported metrics and their numeric semantics follow the published TSPLIB
// reference definitions exactly:
//
//   - EUC_2D:  nint(sqrt(dx²+dy²)), round to nearest with ties away from zero.
//   - CEIL_2D: ceil(sqrt(dx²+dy²)).
//   - GEO:     great-circle distance on an idealized sphere (RRR=6378.388 km)
//     with the DDD.MM degree/minute coordinate convention and final
//     truncation: (int)(RRR*acos(q)+1.0).
//   - ATT:     rij=sqrt((dx²+dy²)/10), tij=nint(rij), bumped by one when
//     tij < rij.
//   - EXPLICIT: direct table lookup.
//
// Design:
//   - Model construction does all validation and per-node precomputation
//     (GEO radians); At itself is branch-light, allocation-free and safe for
//     concurrent readers.
//   - At never fails on valid indices. Out-of-range indices are programmer
//     errors and panic via slice bounds, mirroring the table contract.
//   - Distances are float64 end to end; integer metrics yield exactly
//     integral values, so equality checks in tests are sound.
package dist

import (
	"errors"
	"fmt"
	"math"

	"github.com/jaroslavszkandera/tsp-solver/tsplib"
)

// ErrUnsupportedMetric is returned by New for an edge weight type that was
// parsed but has no distance implementation here. Callers must surface it;
// silently defaulting to another metric would corrupt every cost downstream.
var ErrUnsupportedMetric = errors.New("dist: unsupported edge weight type")

// ErrMalformedInstance signals an Instance whose populated fields do not
// match its declared weight type (nil coordinates for a coordinate metric,
// missing table for EXPLICIT). Parse never produces such instances; this
// guards hand-built ones.
var ErrMalformedInstance = errors.New("dist: instance data inconsistent with weight type")

// Model is a symmetric distance oracle over node indices 0..Dim()-1.
//
// Invariants for every model built by New:
//
//	At(i, i) == 0, At(i, j) == At(j, i), At(i, j) >= 0.
type Model interface {
	// Dim returns the number of nodes.
	Dim() int

	// At returns the distance between nodes i and j.
	// Contract: 0 <= i, j < Dim(); violations panic.
	At(i, j int) float64
}

// New builds the Model matching inst.WeightType.
//
// Errors: ErrUnsupportedMetric for a metric without an implementation,
// ErrMalformedInstance for inconsistent hand-built instances.
//
// Complexity: O(n) setup for GEO (radian precomputation), O(1) otherwise;
// EXPLICIT shares the instance's table without copying.
func New(inst *tsplib.Instance) (Model, error) {
	if inst == nil {
		return nil, ErrMalformedInstance
	}
	n := inst.Dimension

	if inst.WeightType == tsplib.Explicit {
		if len(inst.Weights) != n*n {
			return nil, fmt.Errorf("dist: EXPLICIT table is %d entries, want %d: %w",
				len(inst.Weights), n*n, ErrMalformedInstance)
		}
		return &table{n: n, w: inst.Weights}, nil
	}

	if inst.WeightType.CoordBased() && len(inst.Coords) != n {
		return nil, fmt.Errorf("dist: %d coordinates for dimension %d: %w",
			len(inst.Coords), n, ErrMalformedInstance)
	}

	switch inst.WeightType {
	case tsplib.Euc2D:
		return &coords{pts: inst.Coords, fn: euc2D}, nil
	case tsplib.Ceil2D:
		return &coords{pts: inst.Coords, fn: ceil2D}, nil
	case tsplib.Att:
		return &coords{pts: inst.Coords, fn: att}, nil
	case tsplib.Geo:
		return newGeo(inst.Coords), nil
	default:
		return nil, fmt.Errorf("dist: %q: %w", inst.WeightType, ErrUnsupportedMetric)
	}
}

// Prefetch copies the full n×n distance surface of m into a flat row-major
// buffer, removing interface indirection from hot loops. Local search reads
// w[i*n+j] instead of calling At per candidate move.
//
// Complexity: O(n²) time and space.
func Prefetch(m Model) []float64 {
	n := m.Dim()
	w := make([]float64, n*n)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			w[i*n+j] = m.At(i, j)
		}
	}

	return w
}

// table serves EXPLICIT instances by direct lookup into the dense table.
type table struct {
	n int
	w []float64
}

func (t *table) Dim() int { return t.n }

func (t *table) At(i, j int) float64 {
	if i < 0 || i >= t.n || j < 0 || j >= t.n {
		panic(fmt.Sprintf("dist: index (%d,%d) out of range for dimension %d", i, j, t.n))
	}
	return t.w[i*t.n+j]
}

// coords computes coordinate-based metrics on demand through fn.
type coords struct {
	pts []tsplib.Coord
	fn  func(a, b tsplib.Coord) float64
}

func (c *coords) Dim() int { return len(c.pts) }

func (c *coords) At(i, j int) float64 {
	if i == j {
		return 0
	}
	return c.fn(c.pts[i], c.pts[j])
}

// nint is TSPLIB's integer rounding: nearest integer, ties away from zero.
// math.Round implements exactly that.
func nint(x float64) float64 { return math.Round(x) }

// euc2D is the rounded Euclidean metric.
func euc2D(a, b tsplib.Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y

	return nint(math.Sqrt(dx*dx + dy*dy))
}

// ceil2D is the Euclidean metric rounded up.
func ceil2D(a, b tsplib.Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y

	return math.Ceil(math.Sqrt(dx*dx + dy*dy))
}

// att is the pseudo-Euclidean metric of att48/att532.
func att(a, b tsplib.Coord) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	rij := math.Sqrt((dx*dx + dy*dy) / 10.0)
	tij := nint(rij)
	if tij < rij {
		return tij + 1
	}

	return tij
}

// geoPI and geoRadius are the constants from the TSPLIB reference
// implementation. geoPI is deliberately the truncated 3.141592, not math.Pi:
// reproducing published optimal costs requires the reference value.
const (
	geoPI     = 3.141592
	geoRadius = 6378.388
)

// geo precomputes per-node radians so At touches no trigonometric
// conversion on the hot path.
type geo struct {
	lat []float64
	lon []float64
}

// newGeo converts DDD.MM coordinates (X = latitude, Y = longitude) into
// radians per the TSPLIB convention: degrees = int part, minutes = fraction,
// radians = PI*(deg + 5*min/3)/180.
func newGeo(pts []tsplib.Coord) *geo {
	g := &geo{
		lat: make([]float64, len(pts)),
		lon: make([]float64, len(pts)),
	}
	for i, p := range pts {
		g.lat[i] = geoRadians(p.X)
		g.lon[i] = geoRadians(p.Y)
	}

	return g
}

func geoRadians(v float64) float64 {
	deg := math.Trunc(v)
	min := v - deg

	return geoPI * (deg + 5.0*min/3.0) / 180.0
}

func (g *geo) Dim() int { return len(g.lat) }

// At follows the reference formula verbatim, including the final
// (int)(...+1.0) truncation.
func (g *geo) At(i, j int) float64 {
	if i == j {
		return 0
	}
	q1 := math.Cos(g.lon[i] - g.lon[j])
	q2 := math.Cos(g.lat[i] - g.lat[j])
	q3 := math.Cos(g.lat[i] + g.lat[j])

	return math.Trunc(geoRadius*math.Acos(0.5*((1.0+q1)*q2-(1.0-q1)*q3)) + 1.0)
}
