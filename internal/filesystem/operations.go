package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/GriffinCanCode/fileaccess/internal/shared/id"
	"go.uber.org/zap"
)

// EnsurePath creates every missing segment of path from the root down. The
// final segment becomes an empty file when isFile is set, otherwise a
// directory. Existing segments are left alone, so a second call is a no-op.
func (o *Ops) EnsurePath(path string, isFile bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errs.Path("ensure", path, err)
	}

	_, _, err = AscendFind(abs, true, func(parent, segment string, last bool) (struct{}, bool, error) {
		if parent == "" && segment == "" {
			return struct{}{}, false, nil
		}

		p := filepath.Join(parent, segment)
		if Exists(p) {
			return struct{}{}, false, nil
		}

		if last && isFile {
			f, err := os.OpenFile(p, os.O_RDONLY|os.O_CREATE, 0o644)
			if err != nil {
				return struct{}{}, false, errs.Path("ensure", p, err)
			}
			o.log.Debug("created file", zap.String("path", p))
			return struct{}{}, false, f.Close()
		}

		if err := os.Mkdir(p, 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return struct{}{}, false, errs.Path("ensure", p, err)
		}
		o.log.Debug("created directory", zap.String("path", p))
		return struct{}{}, false, nil
	})
	return err
}

// EnsureExists creates path as an empty file, with its parents, when
// nothing is there yet.
func (o *Ops) EnsureExists(path string) error {
	if Exists(path) {
		return nil
	}
	return o.EnsurePath(path, true)
}

// DeleteAll removes each path recursively, in order. A missing path or a
// symlink is refused with errs.ErrCannotDelete unless ignoreErrors is set,
// in which case it is skipped. The first refusal stops the remaining
// deletions.
func (o *Ops) DeleteAll(paths []string, ignoreErrors bool) error {
	op := id.NewOpID(id.DeletePrefix)

	for _, p := range paths {
		var reason error
		switch Classify(p) {
		case Invalid:
			reason = errs.ErrInvalidPath
		case Link:
			reason = errs.ErrInvalidFileType
		}

		if reason != nil {
			if ignoreErrors {
				o.log.Debug("skipping delete", opField(op), zap.String("path", p), zap.Error(reason))
				continue
			}
			return errs.Path("delete", p, fmt.Errorf("%w: %w", errs.ErrCannotDelete, reason))
		}

		if err := os.RemoveAll(p); err != nil {
			if ignoreErrors {
				o.log.Warn("delete failed", opField(op), zap.String("path", p), zap.Error(err))
				continue
			}
			return errs.Path("delete", p, err)
		}
		o.metrics.IncDeletions()
		o.log.Debug("deleted", opField(op), zap.String("path", p))
	}
	return nil
}
