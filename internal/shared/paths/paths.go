package paths

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/config"
	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
)

// Resolver joins relative paths onto a fixed root
type Resolver struct {
	Root string
}

// NewResolver creates a resolver for an already known root
func NewResolver(root string) (Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Resolver{}, errs.Path("resolve", root, err)
	}
	if filesystem.Classify(abs) != filesystem.Directory {
		return Resolver{}, errs.Path("resolve", abs, fmt.Errorf("%w: root is not a directory", errs.ErrInvalidPath))
	}
	return Resolver{Root: abs}, nil
}

// FromConfig discovers the root described by cfg and builds a resolver
func FromConfig(cfg config.PathsConfig) (Resolver, error) {
	if cfg.Root != "" {
		return NewResolver(cfg.Root)
	}
	start, err := config.StartDir()
	if err != nil {
		return Resolver{}, err
	}
	root, err := DiscoverRoot(start, cfg.RootMarker, cfg.InstallDir)
	if err != nil {
		return Resolver{}, err
	}
	return Resolver{Root: root}, nil
}

// DiscoverRoot finds the project root for start. When start sits inside a
// dependency install directory (installDir, e.g. "vendor"), the directory
// holding that install directory is the root. Otherwise the nearest ancestor
// containing marker wins.
func DiscoverRoot(start, marker, installDir string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errs.Path("discover root", start, err)
	}
	if root, ok := InstallRoot(abs, installDir); ok {
		return root, nil
	}
	return filesystem.FindProjectRoot(abs, marker)
}

// InstallRoot returns the prefix of path before its first installDir
// segment.
func InstallRoot(path, installDir string) (string, bool) {
	if installDir == "" {
		return "", false
	}
	sep := string(filepath.Separator)
	clean := filepath.Clean(path) + sep
	idx := strings.Index(clean, sep+installDir+sep)
	if idx < 0 {
		return "", false
	}
	if idx == 0 {
		return sep, true
	}
	return clean[:idx], true
}

// Resolve returns rel joined onto the root. Absolute paths are cleaned and
// returned as-is.
func (r Resolver) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(r.Root, rel)
}

// ResolveAll resolves every element of rels
func (r Resolver) ResolveAll(rels []string) []string {
	out := make([]string, len(rels))
	for i, rel := range rels {
		out[i] = r.Resolve(rel)
	}
	return out
}

// Rel reports path relative to the root, for display
func (r Resolver) Rel(path string) string {
	rel, err := filepath.Rel(r.Root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
