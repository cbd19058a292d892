package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/GriffinCanCode/fileaccess/internal/shared/id"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Node is one element of a PathTree. Files have nil Children; directories
// (only present when folders are included) have non-nil Children, possibly
// empty.
type Node struct {
	Path     string
	Children PathTree
}

// IsDir reports whether the node is a directory group.
func (n Node) IsDir() bool {
	return n.Children != nil
}

// PathTree is a nested directory listing in directory-listing order.
type PathTree []Node

// Walk lists dir recursively. Regular files become leaves with absolute
// paths. Directories are transparent unless includeFolders is set, in which
// case each appears as a Node holding its own listing.
//
// Siblings are stat-ed and descended concurrently; the result keeps listing
// order regardless of completion order. An entry that is neither a file nor
// a directory fails the walk with errs.ErrInvalidFileType.
func (o *Ops) Walk(ctx context.Context, dir string, includeFolders bool) (PathTree, error) {
	op := id.NewOpID(id.WalkPrefix)
	timer := monitoring.NewTimer(o.metrics, "walk")

	abs, err := filepath.Abs(dir)
	if err != nil {
		timer.Stop(err)
		return nil, errs.Path("walk", dir, err)
	}

	tree, err := o.walk(ctx, abs, includeFolders)
	elapsed := timer.Stop(err)
	if err != nil {
		o.log.Debug("walk failed", opField(op), zap.String("dir", abs), zap.Error(err))
		return nil, err
	}

	o.log.Debug("walk complete",
		opField(op),
		zap.String("dir", abs),
		zap.Bool("include_folders", includeFolders),
		zap.Duration("elapsed", elapsed),
	)
	return tree, nil
}

func (o *Ops) walk(ctx context.Context, dir string, includeFolders bool) (PathTree, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errs.Path("walk", dir, fmt.Errorf("%w: %w", errs.ErrInvalidPath, err))
	}
	o.metrics.AddWalkEntries(len(entries))

	results := make([]PathTree, len(entries))
	g, gctx := errgroup.WithContext(ctx)

	for i, entry := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			p := filepath.Join(dir, entry.Name())
			info, err := os.Stat(p)
			if err != nil {
				return errs.Path("walk", p, err)
			}

			switch {
			case info.IsDir():
				sub, err := o.walk(gctx, p, includeFolders)
				if err != nil {
					return err
				}
				if includeFolders {
					results[i] = PathTree{{Path: p, Children: sub}}
				} else {
					results[i] = sub
				}
			case info.Mode().IsRegular():
				results[i] = PathTree{{Path: p}}
			default:
				return errs.Path("walk", p, errs.ErrInvalidFileType)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tree := make(PathTree, 0, len(entries))
	for _, r := range results {
		tree = append(tree, r...)
	}
	return tree, nil
}

// Flatten returns every file leaf of tree in order. Directory nodes
// contribute their children, not their own path.
func Flatten(tree PathTree) []string {
	out := []string{}
	var visit func(PathTree)
	visit = func(t PathTree) {
		for _, n := range t {
			if n.IsDir() {
				visit(n.Children)
				continue
			}
			out = append(out, n.Path)
		}
	}
	visit(tree)
	return out
}

// Find walks dir and returns the first path whose final segment is name, or
// "" when nothing matches. With includeFolders a directory can match too; it
// is checked before its contents.
func (o *Ops) Find(ctx context.Context, dir, name string, includeFolders bool) (string, error) {
	tree, err := o.Walk(ctx, dir, includeFolders)
	if err != nil {
		return "", err
	}
	return findIn(tree, name), nil
}

func findIn(tree PathTree, name string) string {
	for _, n := range tree {
		if filepath.Base(n.Path) == name {
			return n.Path
		}
		if n.IsDir() {
			if p := findIn(n.Children, name); p != "" {
				return p
			}
		}
	}
	return ""
}

// FindProjectRoot climbs from start (a directory, searched first) toward the
// filesystem root and returns the first directory containing marker.
func FindProjectRoot(start, marker string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", errs.Path("find root", start, err)
	}

	root, _, err := AscendFind(filepath.Join(abs, marker), false,
		func(parent, segment string, _ bool) (string, bool, error) {
			if parent == "" && segment == "" {
				return "", false, errs.Path("find root", abs, fmt.Errorf("%w: no %s in any ancestor", errs.ErrNoRootFound, marker))
			}
			if Exists(filepath.Join(parent, marker)) {
				return parent, true, nil
			}
			return "", false, nil
		})
	return root, err
}
