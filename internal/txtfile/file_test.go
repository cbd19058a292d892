package txtfile

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitChunks(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want []string
	}{
		{"even", "abcdef", 3, []string{"ab", "cd", "ef"}},
		{"remainder to last", "samplessss", 3, []string{"sam", "ple", "ssss"}},
		{"one", "abc", 1, []string{"abc"}},
		{"zero clamps to one", "abc", 0, []string{"abc"}},
		{"more than length", "ab", 5, []string{"a", "b"}},
		{"empty", "", 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitChunks(tt.text, tt.n)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, strings.Join(got, ""))
		})
	}
}

func TestOpen(t *testing.T) {
	ops := filesystem.NewOps(filesystem.Config{})
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing.txt"), ops, "")
	assert.ErrorIs(t, err, errs.ErrInvalidPath)

	_, err = Open(dir, ops, "")
	assert.ErrorIs(t, err, errs.ErrInvalidPath)

	f, err := OpenOrCreate(filepath.Join(dir, "src", "sample.txt"), ops, "")
	require.NoError(t, err)
	assert.Equal(t, filesystem.File, filesystem.Classify(f.Path()))
}

func TestWriteStreamThenReadStream(t *testing.T) {
	metrics := monitoring.NewMetrics()
	ops := filesystem.NewOps(filesystem.Config{ChunkSize: 4, Metrics: metrics})
	ctx := context.Background()

	f, err := OpenOrCreate(filepath.Join(t.TempDir(), "src", "sample.txt"), ops, "")
	require.NoError(t, err)

	require.NoError(t, f.Set("samplessss").WriteStream(ctx, 3))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Chunks.WithLabelValues("write")))

	raw, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, "samplessss", string(raw))

	f.Set("")
	text, err := f.ReadStream(ctx)
	require.NoError(t, err)
	assert.Equal(t, "samplessss", text)
	assert.Equal(t, "samplessss", f.Text())
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.Chunks.WithLabelValues("read")))
}

func TestReadWrite(t *testing.T) {
	ctx := context.Background()
	f, err := OpenOrCreate(filepath.Join(t.TempDir(), "notes.md"), filesystem.NewOps(filesystem.Config{}), "")
	require.NoError(t, err)

	text, err := f.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, f.Write(ctx, "one\ntwo\n"))
	text, err = f.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", text)
	assert.Equal(t, []string{"one", "two"}, slices.Collect(f.Lines()))
}

func TestWriteStreamEncodesLatin1(t *testing.T) {
	ctx := context.Background()
	f, err := OpenOrCreate(filepath.Join(t.TempDir(), "latin.txt"), filesystem.NewOps(filesystem.Config{}), "iso-8859-1")
	require.NoError(t, err)

	require.NoError(t, f.Set("café crème").WriteStream(ctx, 4))

	raw, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9 cr\xe8me"), raw)

	text, err := f.ReadStream(ctx)
	require.NoError(t, err)
	assert.Equal(t, "café crème", text)
}

func TestProbes(t *testing.T) {
	ctx := context.Background()
	f, err := OpenOrCreate(filepath.Join(t.TempDir(), "plain.txt"), filesystem.NewOps(filesystem.Config{}), "")
	require.NoError(t, err)
	require.NoError(t, f.Write(ctx, strings.Repeat("plain ascii text line\n", 20)))

	isText, err := f.IsText()
	require.NoError(t, err)
	assert.True(t, isText)

	enc, err := f.DetectEncoding()
	require.NoError(t, err)
	assert.NotEmpty(t, enc)
}
