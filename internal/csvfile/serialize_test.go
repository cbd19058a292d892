package csvfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToTextEmpty(t *testing.T) {
	assert.Equal(t, "", ToText(nil, nil))
}

func TestToText(t *testing.T) {
	rows := []Row{{Number(1), Text("x"), Bool(true)}, {Number(2.5), Text("y"), Bool(false)}}

	assert.Equal(t, "a,b,c\n1,x,true\n2.5,y,false\n", ToText(rows, []string{"a", "b", "c"}))
	assert.Equal(t, "1,x,true\n2.5,y,false\n", ToText(rows, nil))
	assert.Equal(t, "a,b\n", ToText(nil, []string{"a", "b"}))
}

func TestToTextPadsAndTruncates(t *testing.T) {
	rows := []Row{
		{Number(1)},
		{Number(1), Number(2), Number(3), Number(4)},
		{Number(1), Number(2), Number(3)},
	}

	got := ToText(rows, []string{"a", "b", "c"})
	assert.Equal(t, "a,b,c\n1,,\n1,2,3\n1,2,3\n", got)

	// Without a header the first row sets the width.
	assert.Equal(t, "1\n1\n1\n", ToText(rows, nil))
}

func TestRenderDelimiter(t *testing.T) {
	assert.Equal(t, "a;b\n1;2\n", Render([]Row{{Number(1), Number(2)}}, []string{"a", "b"}, ';'))
}

func TestRoundTrip(t *testing.T) {
	header := []string{"id", "name", "score", "active"}
	rows := []Row{
		{Number(1), Text("alice"), Number(3.5), Bool(true)},
		{Number(2), Text("bob"), Number(-1e-7), Bool(false)},
		{Number(3), Text("carol"), Number(1e21), Bool(true)},
	}

	st := NewParser(DefaultOptions()).Parse(ToText(rows, header))

	assert.Equal(t, header, st.Header)
	require.Len(t, st.Rows, len(rows))
	for i := range rows {
		assert.True(t, rows[i].Equal(st.Rows[i]), "row %d: %v != %v", i, rows[i], st.Rows[i])
	}
}

func TestSplitRows(t *testing.T) {
	rows := make([]Row, 7)
	for i := range rows {
		rows[i] = Row{Number(float64(i))}
	}

	parts := SplitRows(rows, 3)
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 2)
	assert.Len(t, parts[1], 2)
	assert.Len(t, parts[2], 3, "last slice takes the remainder")

	assert.Len(t, SplitRows(rows, 0), 1)
	assert.Len(t, SplitRows(rows, 100), 7)
	assert.Len(t, SplitRows(nil, 4), 1)
}

func TestChunks(t *testing.T) {
	rows := []Row{{Number(1)}, {Number(2)}, {Number(3), Number(9)}}
	header := []string{"a", "b"}

	parts := Chunks(rows, header, 2, true, ',')
	assert.Equal(t, []string{"a,b\n1,\n", "2,\n3,9\n"}, parts)
	assert.Equal(t, ToText(rows, header), strings.Join(parts, ""))

	parts = Chunks(rows, header, 2, false, ',')
	assert.Equal(t, []string{"1,\n", "2,\n3,9\n"}, parts, "width still follows the header")
}
