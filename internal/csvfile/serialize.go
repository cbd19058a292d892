package csvfile

import "strings"

// ToText renders header and rows as comma-delimited lines.
func ToText(rows []Row, header []string) string {
	return Render(rows, header, ',')
}

// Render renders header and rows with delim. Every row is padded with
// empty cells or truncated to the header width, or to the first row's width
// when there is no header. Cells are not quoted.
func Render(rows []Row, header []string, delim rune) string {
	if len(header) == 0 && len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	width := Width(rows, header)
	if len(header) > 0 {
		writeLine(&b, header, delim)
	}
	writeRows(&b, rows, width, delim)
	return b.String()
}

// Width is the column count rows are normalized to.
func Width(rows []Row, header []string) int {
	if len(header) > 0 {
		return len(header)
	}
	if len(rows) > 0 {
		return len(rows[0])
	}
	return 0
}

// SplitRows cuts rows into n contiguous slices of len(rows)/n, the last one
// taking the remainder. n is clamped to [1, len(rows)].
func SplitRows(rows []Row, n int) [][]Row {
	if n > len(rows) {
		n = len(rows)
	}
	if n < 1 {
		n = 1
	}

	size := len(rows) / n
	out := make([][]Row, n)
	for i := 0; i < n; i++ {
		start := i * size
		end := start + size
		if i == n-1 {
			end = len(rows)
		}
		out[i] = rows[start:end]
	}
	return out
}

// Chunks renders rows as n text chunks for a streamed write. The header,
// when withHeader is set, goes at the head of the first chunk only. All
// chunks are normalized to the header width even when it is not written.
func Chunks(rows []Row, header []string, n int, withHeader bool, delim rune) []string {
	width := Width(rows, header)
	if !withHeader {
		header = nil
	}
	return renderChunks(rows, header, width, n, delim)
}

func renderChunks(rows []Row, header []string, width, n int, delim rune) []string {
	parts := SplitRows(rows, n)
	out := make([]string, len(parts))
	for i, part := range parts {
		var b strings.Builder
		if i == 0 && len(header) > 0 {
			writeLine(&b, header, delim)
		}
		writeRows(&b, part, width, delim)
		out[i] = b.String()
	}
	return out
}

func writeRows(b *strings.Builder, rows []Row, width int, delim rune) {
	for _, row := range rows {
		writeLine(b, normalize(row, width).Strings(), delim)
	}
}

func writeLine(b *strings.Builder, cells []string, delim rune) {
	for i, c := range cells {
		if i > 0 {
			b.WriteRune(delim)
		}
		b.WriteString(c)
	}
	b.WriteByte('\n')
}

func normalize(row Row, width int) Row {
	if len(row) == width {
		return row
	}
	if len(row) > width {
		return row[:width]
	}
	out := make(Row, width)
	copy(out, row)
	for i := len(row); i < width; i++ {
		out[i] = Text("")
	}
	return out
}
