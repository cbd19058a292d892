package jsonfile

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/logging"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"go.uber.org/zap"
)

// File is a JSON, YAML or TOML document held as a mutable value tree.
// A File is not safe for concurrent use.
type File struct {
	path   string
	format Format
	ops    *filesystem.Ops
	log    *logging.Logger

	limits Limits
	text   string
	data   any
}

// Open wraps an existing document. The format comes from the extension.
func Open(path string, ops *filesystem.Ops) (*File, error) {
	format, ok := FormatFor(path)
	if !ok {
		return nil, errs.Path("open json", path, errs.ErrInvalidFileType)
	}
	if filesystem.Classify(path) != filesystem.File {
		return nil, errs.Path("open json", path, errs.ErrInvalidPath)
	}
	return &File{
		path:   path,
		format: format,
		ops:    ops,
		log:    ops.Logger().Component("json").With(zap.String("path", path)),
		limits: DefaultLimits(),
		data:   map[string]any{},
	}, nil
}

// OpenOrCreate creates path, with its parent directories, when missing and
// then opens it.
func OpenOrCreate(path string, ops *filesystem.Ops) (*File, error) {
	if _, ok := FormatFor(path); !ok {
		return nil, errs.Path("open json", path, errs.ErrInvalidFileType)
	}
	if err := ops.EnsureExists(path); err != nil {
		return nil, err
	}
	return Open(path, ops)
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Format returns the document syntax.
func (f *File) Format() Format { return f.format }

// SetLimits replaces the size and depth bounds used by ReadJSON.
func (f *File) SetLimits(l Limits) { f.limits = l }

// Data returns the root of the value tree.
func (f *File) Data() any { return f.data }

// SetFull replaces the whole tree. The root must be an object or an array.
func (f *File) SetFull(data any) error {
	data = normalize(data)
	switch data.(type) {
	case map[string]any, []any:
		f.data = data
		return nil
	}
	return fmt.Errorf("%w: root must be object or array, got %s", errs.ErrParseStructure, describe(data))
}

// Get returns the value addressed by steps, or an empty array when a
// predicate matched nothing.
func (f *File) Get(steps ...Step) (any, error) {
	_, res, err := walk(f.data, steps, nil)
	return res, err
}

// Set assigns key on the object addressed by steps and returns that object.
func (f *File) Set(steps []Step, key string, value any) (any, error) {
	return f.mutate(steps, setKey(key, normalize(value)))
}

// SetIndex assigns element i of the array addressed by steps, growing it
// with nulls when i is past the end.
func (f *File) SetIndex(steps []Step, i int, value any) (any, error) {
	return f.mutate(steps, setIndex(i, normalize(value)))
}

// SetWhere replaces the first element equal to old in the array addressed by
// steps. Nothing changes when old is absent.
func (f *File) SetWhere(steps []Step, old, value any) (any, error) {
	return f.mutate(steps, setWhere(old, normalize(value)))
}

// Push appends value to the array addressed by steps.
func (f *File) Push(steps []Step, value any) (any, error) {
	return f.mutate(steps, push(normalize(value)))
}

func (f *File) mutate(steps []Step, mut mutator) (any, error) {
	tree, res, err := walk(f.data, steps, mut)
	if err != nil {
		return nil, errs.Path("update", f.path, err)
	}
	f.data = tree
	return res, nil
}

// Read returns the raw decoded text and keeps it on the File.
func (f *File) Read(ctx context.Context) (string, error) {
	data, err := f.ops.ReadAll(ctx, f.path)
	if err != nil {
		return "", err
	}
	f.text = string(data)
	return f.text, nil
}

// Write replaces the file contents with text.
func (f *File) Write(ctx context.Context, text string) error {
	return f.ops.WriteStream(ctx, f.path, filesystem.Strings(text), filesystem.WriteOptions{})
}

// ReadJSON reads and decodes the file into the value tree. An empty file
// decodes to an empty object.
func (f *File) ReadJSON(ctx context.Context) (any, error) {
	text, err := f.Read(ctx)
	if err != nil {
		return nil, err
	}
	if text == "" {
		f.data = map[string]any{}
		return f.data, nil
	}

	if err := f.limits.validateSize(len(text)); err != nil {
		return nil, errs.Path("read json", f.path, err)
	}
	parsed, err := Decode([]byte(text), f.format)
	if err != nil {
		return nil, errs.Path("read json", f.path, err)
	}
	if err := f.limits.validateDepth(parsed); err != nil {
		return nil, errs.Path("read json", f.path, err)
	}
	if err := f.SetFull(parsed); err != nil {
		return nil, errs.Path("read json", f.path, err)
	}
	f.log.Debug("decoded document", zap.Stringer("format", f.format))
	return f.data, nil
}

// WriteJSON encodes the value tree and replaces the file with it.
func (f *File) WriteJSON(ctx context.Context) error {
	out, err := Encode(f.data, f.format)
	if err != nil {
		return errs.Path("write json", f.path, err)
	}
	if err := f.ops.WriteStream(ctx, f.path, filesystem.Bytes(out), filesystem.WriteOptions{}); err != nil {
		return err
	}
	f.text = string(out)
	return nil
}
