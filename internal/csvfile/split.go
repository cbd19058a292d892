package csvfile

import "strings"

// splitLine splits line on delim. With width > 0 it stops after width-1
// delimiters and keeps the rest of the line, delimiters included, as the
// last column.
func splitLine(line string, delim rune, width int) []string {
	sep := string(delim)
	if width <= 0 {
		return strings.Split(line, sep)
	}
	return strings.SplitN(line, sep, width)
}
