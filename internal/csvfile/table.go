package csvfile

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Head renders the header and the first n rows as a table.
func (f *File) Head(w io.Writer, n int) error {
	return RenderTable(w, f.header, f.rows, n)
}

// RenderTable writes up to n rows as an aligned table. Columns beyond the
// header are named by index.
func RenderTable(w io.Writer, header []string, rows []Row, n int) error {
	if n > len(rows) {
		n = len(rows)
	}
	if n < 0 {
		n = 0
	}

	width := len(header)
	for _, r := range rows[:n] {
		width = max(width, len(r))
	}

	names := make([]string, width)
	for i := range names {
		if i < len(header) && header[i] != "" {
			names[i] = header[i]
		} else {
			names[i] = strconv.Itoa(i)
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header(names)
	for _, r := range rows[:n] {
		line := normalize(r, width).Strings()
		if err := table.Append(line); err != nil {
			return fmt.Errorf("table row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render table: %w", err)
	}
	return nil
}
