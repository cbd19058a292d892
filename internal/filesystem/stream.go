package filesystem

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"slices"

	"github.com/GriffinCanCode/fileaccess/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/GriffinCanCode/fileaccess/internal/shared/id"
	"go.uber.org/zap"
)

// ReadOptions are the hooks for ReadStream. A is the fold accumulator and R
// the final result.
type ReadOptions[A, R any] struct {
	// Encoding overrides the Ops default ("auto" detects)
	Encoding string
	// Initial is the accumulator handed to the first OnData call
	Initial A
	// OnData folds one chunk into the accumulator. chunk is only valid for
	// the duration of the call.
	OnData func(acc A, chunk []byte) (A, error)
	// OnEnd turns the final accumulator into the result
	OnEnd func(acc A) (R, error)
	// OnError observes the error that aborts the read
	OnError func(err error)
}

// ReadStream reads path in chunks of the configured size and folds them
// through opts. The path must classify as File. Paths ending in .gz or .zst
// are decompressed, and non-UTF-8 encodings are decoded before OnData sees
// the bytes.
func ReadStream[A, R any](ctx context.Context, o *Ops, path string, opts ReadOptions[A, R]) (R, error) {
	var zero R
	if Classify(path) != File {
		return zero, errs.Path("read", path, errs.ErrInvalidPath)
	}

	op := id.NewOpID(id.ReadPrefix)
	timer := monitoring.NewTimer(o.metrics, "read")
	fail := func(err error) (R, error) {
		timer.Stop(err)
		if opts.OnError != nil {
			opts.OnError(err)
		}
		o.log.Debug("read failed", opField(op), zap.String("path", path), zap.Error(err))
		return zero, err
	}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = o.encoding
	}
	r, closers, err := openReader(path, encoding)
	if err != nil {
		return fail(errs.Path("read", path, err))
	}
	defer closers.close()

	acc := opts.Initial
	buf := make([]byte, o.chunkSize)
	chunks := 0
	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}

		n, rerr := io.ReadFull(r, buf)
		if n > 0 {
			chunks++
			o.metrics.AddRead(n)
			if opts.OnData != nil {
				if acc, err = opts.OnData(acc, buf[:n]); err != nil {
					return fail(err)
				}
			}
		}
		if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
			break
		}
		if rerr != nil {
			return fail(errs.Path("read", path, rerr))
		}
	}

	var result R
	if opts.OnEnd != nil {
		if result, err = opts.OnEnd(acc); err != nil {
			return fail(err)
		}
	}

	elapsed := timer.Stop(nil)
	o.log.Debug("read complete",
		opField(op),
		zap.String("path", path),
		zap.Int("chunks", chunks),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}

// ReadAll returns the decoded contents of path.
func (o *Ops) ReadAll(ctx context.Context, path string) ([]byte, error) {
	return ReadStream(ctx, o, path, ReadOptions[[]byte, []byte]{
		OnData: func(acc []byte, chunk []byte) ([]byte, error) {
			return append(acc, chunk...), nil
		},
		OnEnd: func(acc []byte) ([]byte, error) {
			if acc == nil {
				acc = []byte{}
			}
			return acc, nil
		},
	})
}

// WriteOptions are the hooks for WriteStream.
type WriteOptions struct {
	// Append opens the file for appending instead of truncating it
	Append bool
	// Encoding overrides the Ops default; "auto" writes UTF-8
	Encoding string
	// OnData observes each chunk before it is written
	OnData func(chunk []byte)
	// OnEnd runs after every chunk is flushed and the file is closed
	OnEnd func()
	// OnError observes the error that aborts the write
	OnError func(err error)
}

// sink buffers writes and reports backpressure once highWater bytes are
// pending, like a stream whose write() returns false.
type sink struct {
	bw        *bufio.Writer
	highWater int
}

func newSink(w io.Writer, highWater int) *sink {
	return &sink{bw: bufio.NewWriterSize(w, 2*highWater), highWater: highWater}
}

// write buffers p and reports whether more can be accepted before a drain.
func (s *sink) write(p []byte) (bool, error) {
	if _, err := s.bw.Write(p); err != nil {
		return false, err
	}
	return s.bw.Buffered() < s.highWater, nil
}

// drain blocks until everything buffered has reached the underlying writer.
func (s *sink) drain() error {
	return s.bw.Flush()
}

// WriteStream writes each chunk of chunks to path, which must already
// classify as File. When the sink reports backpressure the loop waits for a
// drain before taking the next chunk. The file is compressed when its
// extension asks for it.
func (o *Ops) WriteStream(ctx context.Context, path string, chunks iter.Seq[[]byte], opts WriteOptions) (err error) {
	if Classify(path) != File {
		return errs.Path("write", path, errs.ErrInvalidPath)
	}

	op := id.NewOpID(id.WritePrefix)
	timer := monitoring.NewTimer(o.metrics, "write")
	defer func() {
		elapsed := timer.Stop(err)
		if err != nil {
			if opts.OnError != nil {
				opts.OnError(err)
			}
			o.log.Debug("write failed", opField(op), zap.String("path", path), zap.Error(err))
			return
		}
		o.log.Debug("write complete", opField(op), zap.String("path", path), zap.Duration("elapsed", elapsed))
	}()

	flags := os.O_WRONLY | os.O_TRUNC
	if opts.Append {
		flags = os.O_WRONLY | os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0)
	if err != nil {
		return errs.Path("write", path, err)
	}
	closers := closeStack{f.Close}

	encoding := opts.Encoding
	if encoding == "" {
		encoding = o.encoding
	}

	cw, closeCompress, err := compressWriter(f, path)
	if err != nil {
		closers.close()
		return errs.Path("write", path, err)
	}
	closers = append(closers, closeCompress)

	ew, closeEncode, err := encodeWriter(cw, encoding)
	if err != nil {
		closers.close()
		return errs.Path("write", path, err)
	}
	closers = append(closers, closeEncode)

	s := newSink(ew, o.highWaterMark)
	closers = append(closers, s.drain)

	for chunk := range chunks {
		if err := ctx.Err(); err != nil {
			closers.close()
			return err
		}
		if opts.OnData != nil {
			opts.OnData(chunk)
		}

		ok, err := s.write(chunk)
		if err != nil {
			closers.close()
			return errs.Path("write", path, err)
		}
		o.metrics.AddWrite(len(chunk))

		if !ok {
			o.metrics.IncDrains()
			if err := s.drain(); err != nil {
				closers.close()
				return errs.Path("write", path, err)
			}
		}
	}

	if err := closers.close(); err != nil {
		return errs.Path("write", path, fmt.Errorf("close: %w", err))
	}
	if opts.OnEnd != nil {
		opts.OnEnd()
	}
	return nil
}

// Strings adapts text values to a chunk sequence.
func Strings(parts ...string) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		for _, p := range parts {
			if !yield([]byte(p)) {
				return
			}
		}
	}
}

// Bytes adapts byte slices to a chunk sequence. A single value is a
// one-element sequence.
func Bytes(parts ...[]byte) iter.Seq[[]byte] {
	return slices.Values(parts)
}
