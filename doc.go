// Package tspsolver solves symmetric travelling-salesman instances in the
// TSPLIB file format.
//
// The pipeline runs in four stages, each its own package:
//
//	tsplib/ - parse .tsp files: headers, node coordinates, explicit
//	          weight matrices in all standard layouts
//	dist/   - turn a parsed instance into a distance model using the
//	          TSPLIB-exact metrics (EUC_2D, CEIL_2D, GEO, ATT, EXPLICIT)
//	tsp/    - build and refine tours: nearest-neighbor construction,
//	          2-opt and Or-opt local search, an elitist ant colony, and
//	          parallel multi-start orchestration
//	cmd/    - the tspsolve CLI
//
// Typical use:
//
//	res, err := tsp.SolveFile("berlin52.tsp", tsp.DefaultOptions())
//	if err != nil { ... }
//	fmt.Println(res.Cost, res.Nodes)
//
// All searches are deterministic for a fixed instance, options and seed.
package tspsolver
