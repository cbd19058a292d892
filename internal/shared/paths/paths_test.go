package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GriffinCanCode/fileaccess/internal/config"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstallRoot(t *testing.T) {
	tests := []struct {
		path   string
		dir    string
		want   string
		wantOK bool
	}{
		{"/home/me/proj/vendor/github.com/x/y", "vendor", "/home/me/proj", true},
		{"/home/me/proj/vendor", "vendor", "/home/me/proj", true},
		{"/vendor/x", "vendor", "/", true},
		{"/home/me/proj/vendored/x", "vendor", "", false},
		{"/home/me/proj", "vendor", "", false},
		{"/home/me/proj/vendor/x", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := InstallRoot(tt.path, tt.dir)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscoverRootByMarker(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module x\n"), 0o644))
	start := filepath.Join(root, "internal", "pkg")
	require.NoError(t, os.MkdirAll(start, 0o755))

	got, err := DiscoverRoot(start, "go.mod", "vendor")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDiscoverRootInsideInstallDir(t *testing.T) {
	root := t.TempDir()
	start := filepath.Join(root, "vendor", "example.com", "lib")
	require.NoError(t, os.MkdirAll(start, 0o755))

	got, err := DiscoverRoot(start, "no-such-marker-91c2", "vendor")
	require.NoError(t, err)
	assert.Equal(t, root, got)
}

func TestDiscoverRootNotFound(t *testing.T) {
	_, err := DiscoverRoot(t.TempDir(), "no-such-marker-91c2", "vendor")
	assert.ErrorIs(t, err, errs.ErrNoRootFound)
}

func TestResolver(t *testing.T) {
	root := t.TempDir()
	r, err := NewResolver(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "data", "a.csv"), r.Resolve("data/a.csv"))
	assert.Equal(t, "/etc/hosts", r.Resolve("/etc/../etc/hosts"))
	assert.Equal(t, []string{filepath.Join(root, "a"), filepath.Join(root, "b")}, r.ResolveAll([]string{"a", "b"}))
	assert.Equal(t, filepath.Join("data", "a.csv"), r.Rel(filepath.Join(root, "data", "a.csv")))
	assert.Equal(t, "/elsewhere", r.Rel("/elsewhere"))
}

func TestNewResolverRejectsFiles(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	_, err := NewResolver(file)
	assert.ErrorIs(t, err, errs.ErrInvalidPath)
}

func TestFromConfigExplicitRoot(t *testing.T) {
	root := t.TempDir()

	r, err := FromConfig(config.PathsConfig{Root: root, RootMarker: "go.mod"})
	require.NoError(t, err)
	assert.Equal(t, root, r.Root)
}

func TestFromConfigDiscovers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "marker.txt"), nil, 0o644))
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	t.Chdir(sub)

	r, err := FromConfig(config.PathsConfig{RootMarker: "marker.txt", InstallDir: "vendor"})
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(r.Root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
