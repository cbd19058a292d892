package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/GriffinCanCode/fileaccess/internal/shared/id"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// Glob returns the regular files under dir whose slash-separated path
// relative to dir matches pattern ("**/*.csv", "data/{a,b}.txt"). Results
// are absolute and sorted.
func (o *Ops) Glob(ctx context.Context, dir, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	if Classify(dir) != Directory {
		return nil, errs.Path("glob", dir, errs.ErrInvalidPath)
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, errs.Path("glob", dir, err)
	}

	op := id.NewOpID(id.GlobPrefix)
	var (
		mu      sync.Mutex
		matches []string
	)
	conf := fastwalk.Config{Follow: false}

	err = fastwalk.Walk(&conf, root, func(p string, d os.DirEntry, err error) error {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			mu.Lock()
			matches = append(matches, p)
			mu.Unlock()
		}
		return nil
	})
	if err != nil {
		return nil, errs.Path("glob", dir, err)
	}

	sort.Strings(matches)
	o.log.Debug("glob complete", opField(op), zap.String("dir", root), zap.String("pattern", pattern), zap.Int("matches", len(matches)))
	return matches, nil
}
