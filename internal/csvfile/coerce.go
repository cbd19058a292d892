package csvfile

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// ColumnOptions controls how raw column text becomes a Cell.
type ColumnOptions struct {
	// Trim strips both ends and takes precedence over LTrim and RTrim
	Trim  bool
	LTrim bool
	RTrim bool
	// ParseBooleans turns exactly "true" and "false" into booleans
	ParseBooleans bool
	// ParseNumbers turns numeric literals into numbers
	ParseNumbers bool
}

// DefaultColumnOptions trims and parses booleans and numbers.
func DefaultColumnOptions() ColumnOptions {
	return ColumnOptions{
		Trim:          true,
		ParseBooleans: true,
		ParseNumbers:  true,
	}
}

var numberPattern = regexp.MustCompile(`^[-+]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][-+]?\d+)?$|^[-+]?(?:Infinity|NaN)$`)

// Coerce converts one column. Text that matches no enabled rule stays text.
func Coerce(column string, opts ColumnOptions) Cell {
	switch {
	case opts.Trim:
		column = strings.TrimSpace(column)
	case opts.LTrim:
		column = strings.TrimLeftFunc(column, unicode.IsSpace)
	case opts.RTrim:
		column = strings.TrimRightFunc(column, unicode.IsSpace)
	}

	if opts.ParseBooleans {
		switch column {
		case "true":
			return Bool(true)
		case "false":
			return Bool(false)
		}
	}

	if opts.ParseNumbers && numberPattern.MatchString(column) {
		if f, ok := parseNumber(column); ok {
			return Number(f)
		}
	}
	return Text(column)
}

// CoerceAll converts every column of a split line.
func CoerceAll(columns []string, opts ColumnOptions) Row {
	row := make(Row, len(columns))
	for i, c := range columns {
		row[i] = Coerce(c, opts)
	}
	return row
}

func parseNumber(s string) (float64, bool) {
	unsigned := strings.TrimLeft(s, "+-")
	switch unsigned {
	case "NaN":
		return math.NaN(), true
	case "Infinity":
		if strings.HasPrefix(s, "-") {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range literals still parse to ±Inf.
		if errors.Is(err, strconv.ErrRange) {
			return f, true
		}
		return 0, false
	}
	return f, true
}
