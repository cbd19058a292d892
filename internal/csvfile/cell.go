package csvfile

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the type a cell was coerced to.
type Kind uint8

const (
	TextKind Kind = iota
	NumberKind
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case NumberKind:
		return "number"
	case BoolKind:
		return "boolean"
	default:
		return "text"
	}
}

// Cell is one column value: text, number or boolean.
type Cell struct {
	kind Kind
	text string
	num  float64
	b    bool
}

// Row is one parsed line.
type Row []Cell

// Text makes a text cell.
func Text(s string) Cell { return Cell{kind: TextKind, text: s} }

// Number makes a numeric cell.
func Number(f float64) Cell { return Cell{kind: NumberKind, num: f} }

// Bool makes a boolean cell.
func Bool(b bool) Cell { return Cell{kind: BoolKind, b: b} }

// Kind returns the cell type.
func (c Cell) Kind() Kind { return c.kind }

// AsText returns the text of a text cell.
func (c Cell) AsText() (string, bool) { return c.text, c.kind == TextKind }

// AsNumber returns the value of a numeric cell.
func (c Cell) AsNumber() (float64, bool) { return c.num, c.kind == NumberKind }

// AsBool returns the value of a boolean cell.
func (c Cell) AsBool() (bool, bool) { return c.b, c.kind == BoolKind }

// Value returns the cell as string, float64 or bool.
func (c Cell) Value() any {
	switch c.kind {
	case NumberKind:
		return c.num
	case BoolKind:
		return c.b
	default:
		return c.text
	}
}

// Equal compares kind and value. NaN equals NaN.
func (c Cell) Equal(o Cell) bool {
	if c.kind != o.kind {
		return false
	}
	switch c.kind {
	case NumberKind:
		if math.IsNaN(c.num) && math.IsNaN(o.num) {
			return true
		}
		return c.num == o.num
	case BoolKind:
		return c.b == o.b
	default:
		return c.text == o.text
	}
}

// String renders the cell the way it is written to a CSV line.
func (c Cell) String() string {
	switch c.kind {
	case NumberKind:
		return FormatNumber(c.num)
	case BoolKind:
		return strconv.FormatBool(c.b)
	default:
		return c.text
	}
}

// Equal reports whether two rows hold equal cells.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Values returns the row as plain Go values.
func (r Row) Values() []any {
	out := make([]any, len(r))
	for i, c := range r {
		out[i] = c.Value()
	}
	return out
}

// Strings renders every cell.
func (r Row) Strings() []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = c.String()
	}
	return out
}

// TextRow builds a row of text cells.
func TextRow(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Text(v)
	}
	return row
}

// FormatNumber renders f in shortest round-trip form: plain decimal notation
// between 1e-6 and 1e21, exponent notation outside it, and the literals
// NaN, Infinity and -Infinity.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}
