package csvfile

import (
	"bytes"
	"strings"
)

// Options configures parsing and serialization.
type Options struct {
	// Delimiter separates columns; zero means ','
	Delimiter rune
	// HeaderLines is how many leading lines form the header
	HeaderLines int
	// Columns controls type coercion of data cells
	Columns ColumnOptions
	// Encoding of the file on disk; empty uses the stream default
	Encoding string
}

// DefaultOptions is comma-delimited with one header line and default
// coercion.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		HeaderLines: 1,
		Columns:     DefaultColumnOptions(),
	}
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// State is the accumulator of one parse. It is owned by whoever holds it:
// Feed and Finish take a State and return the next one.
type State struct {
	// LineLength is the column count fixed by the first line, 0 until then
	LineLength int
	// PendingTail is text after the last newline, not yet a complete line
	PendingTail string
	// Header is the widest header line seen so far
	Header []string
	// Rows are the coerced data rows so far
	Rows []Row
	// HeaderLines is how many leading lines are header
	HeaderLines int
	// LinesSeen counts complete lines consumed
	LinesSeen int
}

// Parser turns chunks of delimited text into rows. It holds only
// configuration; all progress lives in State.
type Parser struct {
	opts Options
}

// NewParser creates a parser for opts.
func NewParser(opts Options) Parser {
	return Parser{opts: opts}
}

// Start returns the empty state for a new parse.
func (p Parser) Start() State {
	return State{HeaderLines: p.opts.HeaderLines}
}

// Feed consumes one chunk. Chunks may split lines or columns anywhere; the
// unterminated remainder is carried in PendingTail.
func (p Parser) Feed(st State, chunk []byte) State {
	if bytes.IndexByte(chunk, '\n') < 0 {
		st.PendingTail += string(chunk)
		return st
	}

	lines := strings.Split(st.PendingTail+string(chunk), "\n")
	st.PendingTail = lines[len(lines)-1]

	for _, line := range lines[:len(lines)-1] {
		st = p.line(st, line)
	}
	return st
}

func (p Parser) line(st State, line string) State {
	isHeader := st.LinesSeen < st.HeaderLines
	st.LinesSeen++

	width := st.LineLength
	if isHeader {
		width = 0
	}
	columns := splitLine(line, p.opts.delimiter(), width)

	if st.LineLength == 0 {
		st.LineLength = len(columns)
	}

	if isHeader {
		if len(columns) > len(st.Header) {
			st.Header = columns
		}
		return st
	}

	st.Rows = append(st.Rows, CoerceAll(columns, p.opts.Columns))
	return st
}

// Finish flushes PendingTail as the final data row. That line is never a
// header, even when fewer than HeaderLines lines were seen. An empty tail,
// left by a trailing newline, adds nothing.
func (p Parser) Finish(st State) State {
	if st.PendingTail == "" {
		return st
	}

	columns := splitLine(st.PendingTail, p.opts.delimiter(), st.LineLength)
	st.PendingTail = ""
	st.LinesSeen++
	if st.LineLength == 0 {
		st.LineLength = len(columns)
	}
	st.Rows = append(st.Rows, CoerceAll(columns, p.opts.Columns))
	return st
}

// Parse runs the whole text as a single chunk.
func (p Parser) Parse(text string) State {
	return p.Finish(p.Feed(p.Start(), []byte(text)))
}
