package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsurePathCreatesFile(t *testing.T) {
	base := filepath.Join(t.TempDir(), "x")
	require.NoError(t, os.Mkdir(base, 0o755))
	target := filepath.Join(base, "y", "z.txt")
	ops := NewOps(Config{})

	require.NoError(t, ops.EnsurePath(target, true))
	assert.Equal(t, Directory, Classify(filepath.Join(base, "y")))
	assert.Equal(t, File, Classify(target))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	// Second call leaves content untouched.
	require.NoError(t, os.WriteFile(target, []byte("keep"), 0o644))
	require.NoError(t, ops.EnsurePath(target, true))
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestEnsurePathDirectory(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, NewOps(Config{}).EnsurePath(target, false))
	assert.Equal(t, Directory, Classify(target))
}

func TestEnsurePathThroughFileFails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	err := NewOps(Config{}).EnsurePath(filepath.Join(blocker, "child.txt"), true)
	assert.Error(t, err)
}

func TestEnsureExists(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "new", "file.csv")
	ops := NewOps(Config{})

	require.NoError(t, ops.EnsureExists(target))
	assert.Equal(t, File, Classify(target))

	require.NoError(t, ops.EnsureExists(dir))
	assert.Equal(t, Directory, Classify(dir))
}

func TestDeleteAll(t *testing.T) {
	dir := makeTree(t, "a/1.txt", "a/b/2.txt", "c.txt")
	metrics := monitoring.NewMetrics()
	ops := NewOps(Config{Metrics: metrics})

	err := ops.DeleteAll([]string{filepath.Join(dir, "a"), filepath.Join(dir, "c.txt")}, false)
	require.NoError(t, err)

	assert.False(t, Exists(filepath.Join(dir, "a")))
	assert.False(t, Exists(filepath.Join(dir, "c.txt")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Deletions))
}

func TestDeleteAllMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	ops := NewOps(Config{})

	err := ops.DeleteAll([]string{missing}, false)
	assert.ErrorIs(t, err, errs.ErrInvalidPath)
	assert.ErrorIs(t, err, errs.ErrCannotDelete)

	var pe *errs.PathError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, missing, pe.Path)

	assert.NoError(t, ops.DeleteAll([]string{missing}, true))
}

func TestDeleteAllRefusesLinks(t *testing.T) {
	dir := makeTree(t, "real.txt")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real.txt"), link))
	ops := NewOps(Config{})

	err := ops.DeleteAll([]string{link}, false)
	assert.ErrorIs(t, err, errs.ErrInvalidFileType)
	assert.True(t, Exists(link))

	require.NoError(t, ops.DeleteAll([]string{link}, true))
	assert.True(t, Exists(link), "ignored links are skipped, not removed")
}

func TestDeleteAllStopsAtFirstFailure(t *testing.T) {
	dir := makeTree(t, "keep.txt")
	keep := filepath.Join(dir, "keep.txt")

	err := NewOps(Config{}).DeleteAll([]string{filepath.Join(dir, "missing"), keep}, false)
	assert.Error(t, err)
	assert.True(t, Exists(keep))
}
