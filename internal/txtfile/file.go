package txtfile

import (
	"context"
	"iter"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/logging"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"go.uber.org/zap"
)

// File is a text file plus a buffered body. A File is not safe for
// concurrent use.
type File struct {
	path     string
	ops      *filesystem.Ops
	encoding string
	log      *logging.Logger

	text string
}

// Open wraps an existing regular file. An empty encoding uses the Ops default.
func Open(path string, ops *filesystem.Ops, encoding string) (*File, error) {
	if filesystem.Classify(path) != filesystem.File {
		return nil, errs.Path("open txt", path, errs.ErrInvalidPath)
	}
	return &File{
		path:     path,
		ops:      ops,
		encoding: encoding,
		log:      ops.Logger().Component("txt").With(zap.String("path", path)),
	}, nil
}

// OpenOrCreate creates path, with its parent directories, when missing and
// then opens it.
func OpenOrCreate(path string, ops *filesystem.Ops, encoding string) (*File, error) {
	if err := ops.EnsureExists(path); err != nil {
		return nil, err
	}
	return Open(path, ops, encoding)
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Text returns the buffered body.
func (f *File) Text() string { return f.text }

// Set replaces the buffered body and returns f for chaining.
func (f *File) Set(text string) *File {
	f.text = text
	return f
}

// Read returns the whole decoded file and buffers it.
func (f *File) Read(ctx context.Context) (string, error) {
	data, err := f.ops.ReadAll(ctx, f.path)
	if err != nil {
		return "", err
	}
	f.text = string(data)
	return f.text, nil
}

// Write replaces the file contents with text in one chunk.
func (f *File) Write(ctx context.Context, text string) error {
	return f.ops.WriteStream(ctx, f.path, filesystem.Strings(text), filesystem.WriteOptions{Encoding: f.encoding})
}

// WriteStream writes the buffered body split into n chunks.
func (f *File) WriteStream(ctx context.Context, n int) error {
	parts := SplitChunks(f.text, n)
	chunks := 0
	err := f.ops.WriteStream(ctx, f.path, filesystem.Strings(parts...), filesystem.WriteOptions{
		Encoding: f.encoding,
		OnData:   func([]byte) { chunks++ },
	})
	if err != nil {
		return err
	}
	f.log.Debug("wrote text", zap.Int("chunks", chunks), zap.Int("bytes", len(f.text)))
	return nil
}

// ReadStream reads the file chunk by chunk and buffers the decoded text.
func (f *File) ReadStream(ctx context.Context) (string, error) {
	text, err := filesystem.ReadStream(ctx, f.ops, f.path, filesystem.ReadOptions[*strings.Builder, string]{
		Encoding: f.encoding,
		Initial:  &strings.Builder{},
		OnData: func(b *strings.Builder, chunk []byte) (*strings.Builder, error) {
			b.Write(chunk)
			return b, nil
		},
		OnEnd: func(b *strings.Builder) (string, error) {
			return b.String(), nil
		},
	})
	if err != nil {
		return "", err
	}
	f.text = text
	return text, nil
}

// Lines iterates the buffered body line by line without line terminators.
func (f *File) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		if f.text == "" {
			return
		}
		for line := range strings.Lines(f.text) {
			if !yield(strings.TrimSuffix(line, "\n")) {
				return
			}
		}
	}
}

// IsText reports whether the file content looks like text.
func (f *File) IsText() (bool, error) {
	return filesystem.IsText(f.path)
}

// DetectEncoding guesses the file charset.
func (f *File) DetectEncoding() (string, error) {
	return filesystem.DetectEncoding(f.path)
}

// SplitChunks cuts s into n pieces of len(s)/n bytes; the last piece takes
// the remainder. n is clamped to [1, len(s)]. An empty s yields no pieces.
func SplitChunks(s string, n int) []string {
	if s == "" {
		return nil
	}
	n = max(1, min(n, len(s)))
	size := len(s) / n
	parts := make([]string, 0, n)
	for i := range n - 1 {
		parts = append(parts, s[i*size:(i+1)*size])
	}
	return append(parts, s[(n-1)*size:])
}
