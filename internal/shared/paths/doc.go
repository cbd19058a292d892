// Package paths turns caller-relative paths into absolute ones.
//
// The project root is computed once, either from FILES_ROOT or by climbing
// from the working directory to the nearest directory holding the marker file
// (go.mod by default), and then carried in a Resolver value:
//
//	r, err := paths.FromConfig(cfg.Paths)
//	csvPath := r.Resolve("data/report.csv")  // <root>/data/report.csv
//
// When the working directory is inside a dependency install directory
// (vendor/ by default), the directory containing it is the root instead.
package paths
