package csvfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/GriffinCanCode/fileaccess/internal/logging"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"go.uber.org/zap"
)

var extensions = []string{".csv", ".csv.gz", ".csv.zst"}

// File is a CSV file on disk plus the last parsed or staged snapshot of its
// header and rows. A File is not safe for concurrent use.
type File struct {
	path string
	ops  *filesystem.Ops
	opts Options
	log  *logging.Logger

	text       string
	header     []string
	rows       []Row
	lineLength int

	headerSet bool
	dataSet   bool
}

// Open wraps an existing .csv file.
func Open(path string, ops *filesystem.Ops, opts Options) (*File, error) {
	if !hasCSVExtension(path) {
		return nil, errs.Path("open csv", path, errs.ErrInvalidFileType)
	}
	if filesystem.Classify(path) != filesystem.File {
		return nil, errs.Path("open csv", path, errs.ErrInvalidPath)
	}
	return &File{
		path: path,
		ops:  ops,
		opts: opts,
		log:  ops.Logger().Component("csv").With(zap.String("path", path)),
	}, nil
}

// OpenOrCreate creates path, with its parent directories, when missing and
// then opens it.
func OpenOrCreate(path string, ops *filesystem.Ops, opts Options) (*File, error) {
	if !hasCSVExtension(path) {
		return nil, errs.Path("open csv", path, errs.ErrInvalidFileType)
	}
	if err := ops.EnsureExists(path); err != nil {
		return nil, err
	}
	return Open(path, ops, opts)
}

func hasCSVExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Header returns the current header.
func (f *File) Header() []string { return f.header }

// Data returns the current rows.
func (f *File) Data() []Row { return f.rows }

// Shape returns the row count and the fixed line length.
func (f *File) Shape() (rows, columns int) {
	return len(f.rows), f.lineLength
}

// Read returns the whole decoded text and keeps it on the File.
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
	return f.ops.WriteStream(ctx, f.path, filesystem.Strings(text), filesystem.WriteOptions{Encoding: f.opts.Encoding})
}

// ReadCSV parses the file chunk by chunk and replaces the header and rows.
func (f *File) ReadCSV(ctx context.Context) ([]Row, error) {
	parser := NewParser(f.opts)

	st, err := filesystem.ReadStream(ctx, f.ops, f.path, filesystem.ReadOptions[State, State]{
		Encoding: f.opts.Encoding,
		Initial:  parser.Start(),
		OnData: func(st State, chunk []byte) (State, error) {
			return parser.Feed(st, chunk), nil
		},
		OnEnd: func(st State) (State, error) {
			return parser.Finish(st), nil
		},
	})
	if err != nil {
		return nil, err
	}

	f.header = st.Header
	f.rows = st.Rows
	f.lineLength = st.LineLength
	f.headerSet = false
	f.dataSet = false
	f.ops.Metrics().AddRowsParsed(len(st.Rows))

	f.log.Debug("parsed csv",
		zap.Int("rows", len(st.Rows)),
		zap.Int("line_length", st.LineLength),
		zap.Int("header_width", len(st.Header)),
	)
	return f.rows, nil
}

// SetHeader stages a header for writing. It fails once a header is staged.
func (f *File) SetHeader(header []string) error {
	if f.headerSet {
		return errs.Path("set header", f.path, errs.ErrAlreadyInitialized)
	}
	f.header = header
	f.headerSet = true
	if len(header) > 0 {
		f.lineLength = len(header)
	}
	return nil
}

// SetData stages rows for writing. It fails once data is staged.
func (f *File) SetData(rows []Row) error {
	if f.dataSet {
		return errs.Path("set data", f.path, errs.ErrAlreadyInitialized)
	}
	f.rows = rows
	f.dataSet = true
	if f.lineLength == 0 && len(rows) > 0 {
		f.lineLength = len(rows[0])
	}
	return nil
}

// AppendLine stages more rows after the current ones.
func (f *File) AppendLine(rows ...Row) {
	f.rows = append(f.rows, rows...)
	if f.lineLength == 0 && len(f.rows) > 0 {
		f.lineLength = len(f.rows[0])
	}
}

// WriteCSV replaces the file with the header and rows, streamed in the
// given number of pieces.
func (f *File) WriteCSV(ctx context.Context, chunks int) error {
	parts := Chunks(f.rows, f.header, chunks, true, f.opts.delimiter())
	if err := f.writeParts(ctx, parts, false); err != nil {
		return err
	}
	f.ops.Metrics().AddRowsWritten(len(f.rows))
	f.log.Debug("wrote csv", zap.Int("rows", len(f.rows)), zap.Int("chunks", len(parts)))
	return nil
}

// AppendCSV appends the staged rows without a header, then clears them so
// the next batch can be staged.
func (f *File) AppendCSV(ctx context.Context, chunks int) error {
	if len(f.rows) == 0 {
		return nil
	}
	parts := renderChunks(f.rows, nil, f.width(f.rows[0]), chunks, f.opts.delimiter())
	if err := f.writeParts(ctx, parts, true); err != nil {
		return err
	}
	f.ops.Metrics().AddRowsWritten(len(f.rows))
	f.log.Debug("appended csv", zap.Int("rows", len(f.rows)))

	f.rows = nil
	f.dataSet = false
	return nil
}

// AppendCSVLine appends a single row to the file.
func (f *File) AppendCSVLine(ctx context.Context, row Row) error {
	line := Render([]Row{normalize(row, f.width(row))}, nil, f.opts.delimiter())
	if err := f.writeParts(ctx, []string{line}, true); err != nil {
		return err
	}
	f.ops.Metrics().AddRowsWritten(1)
	return nil
}

// Reset drops the header, rows and staging flags.
func (f *File) Reset() {
	f.text = ""
	f.header = nil
	f.rows = nil
	f.lineLength = 0
	f.headerSet = false
	f.dataSet = false
}

func (f *File) writeParts(ctx context.Context, parts []string, appendMode bool) error {
	err := f.ops.WriteStream(ctx, f.path, filesystem.Strings(parts...), filesystem.WriteOptions{
		Append:   appendMode,
		Encoding: f.opts.Encoding,
	})
	if err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// width is the header width, else the known line length, else the row's own.
func (f *File) width(row Row) int {
	switch {
	case len(f.header) > 0:
		return len(f.header)
	case f.lineLength > 0:
		return f.lineLength
	default:
		return len(row)
	}
}
