package filesystem

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
)

// Compression is inferred from the path extension.
type Compression int

const (
	NoCompression Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the codec implied by path's extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return NoCompression
	}
}

const detectSampleSize = 4096

// closeStack closes layered readers or writers innermost first.
type closeStack []func() error

func (c closeStack) close() error {
	var first error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens path and layers decompression and decoding over it.
func openReader(path, encoding string) (io.Reader, closeStack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	closers := closeStack{f.Close}

	var r io.Reader = f
	switch CompressionFor(path) {
	case Gzip:
		gz, err := gzip.NewReader(f)
		if err != nil {
			closers.close()
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		closers = append(closers, gz.Close)
		r = gz
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			closers.close()
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		closers = append(closers, func() error { zr.Close(); return nil })
		r = zr
	}

	r, err = decodeReader(r, encoding)
	if err != nil {
		closers.close()
		return nil, nil, err
	}
	return r, closers, nil
}

// decodeReader converts r from the named encoding to UTF-8. "auto" sniffs a
// sample with chardet first.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	label := normalizeEncoding(encoding)
	if label == "auto" {
		br := bufio.NewReaderSize(r, detectSampleSize)
		sample, _ := br.Peek(detectSampleSize)
		label = normalizeEncoding(DetectCharset(sample))
		r = br
	}
	if isPassthrough(label) {
		return r, nil
	}

	decoded, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", label, err)
	}
	return decoded, nil
}

// encodeWriter converts UTF-8 written to the returned writer into the named
// encoding. The close func flushes any partial sequence.
func encodeWriter(w io.Writer, encoding string) (io.Writer, func() error, error) {
	label := normalizeEncoding(encoding)
	if label == "auto" || isPassthrough(label) {
		return w, func() error { return nil }, nil
	}

	enc, _ := charset.Lookup(label)
	if enc == nil {
		return nil, nil, fmt.Errorf("encode %s: unsupported encoding", label)
	}
	ew := enc.NewEncoder().Writer(w)
	if c, ok := ew.(io.Closer); ok {
		return ew, c.Close, nil
	}
	return ew, func() error { return nil }, nil
}

// compressWriter wraps w according to path's extension.
func compressWriter(w io.Writer, path string) (io.Writer, func() error, error) {
	switch CompressionFor(path) {
	case Gzip:
		gz := gzip.NewWriter(w)
		return gz, gz.Close, nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		return zw, zw.Close, nil
	default:
		return w, func() error { return nil }, nil
	}
}

// DetectCharset guesses the encoding of sample, falling back to utf-8
func DetectCharset(sample []byte) string {
	if len(sample) == 0 {
		return "utf-8"
	}
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(sample)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

func normalizeEncoding(encoding string) string {
	return strings.ToLower(strings.TrimSpace(encoding))
}

func isPassthrough(label string) bool {
	switch label {
	case "", "utf-8", "utf8", "binary", "raw", "ascii", "us-ascii":
		return true
	}
	return false
}
