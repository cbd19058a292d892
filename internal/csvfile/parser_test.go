package csvfile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedChunks parses text split at the given cut offsets.
func feedChunks(p Parser, text string, cuts []int) State {
	st := p.Start()
	prev := 0
	for _, c := range cuts {
		st = p.Feed(st, []byte(text[prev:c]))
		prev = c
	}
	st = p.Feed(st, []byte(text[prev:]))
	return p.Finish(st)
}

func assertSameParse(t *testing.T, want, got State) {
	t.Helper()
	assert.Equal(t, want.Header, got.Header)
	assert.Equal(t, want.LineLength, got.LineLength)
	require.Len(t, got.Rows, len(want.Rows))
	for i := range want.Rows {
		assert.True(t, want.Rows[i].Equal(got.Rows[i]), "row %d: %v != %v", i, want.Rows[i], got.Rows[i])
	}
}

func TestParseScenario(t *testing.T) {
	st := NewParser(DefaultOptions()).Parse("h1,h2\n1,2\n3,4")

	assert.Equal(t, []string{"h1", "h2"}, st.Header)
	assert.Equal(t, []Row{{Number(1), Number(2)}, {Number(3), Number(4)}}, st.Rows)
	assert.Equal(t, 2, st.LineLength)
	assert.Empty(t, st.PendingTail)
}

func TestParseChunkBoundaryIndependence(t *testing.T) {
	texts := []string{
		"h1,h2\n1,2\n3,4",
		"h1,h2\n1,2\n3,4\n",
		"name,score,ok\n alice , 3.5 ,true\nbob,NaN,false\ncarol,-Infinity,maybe\n",
		"a,b\n\n1,2\n",
		"only,header\n",
		"x\n",
		"",
		"h\n1,2,3\n4\n",
	}
	opts := []Options{DefaultOptions(), {Delimiter: ',', HeaderLines: 2, Columns: DefaultColumnOptions()}, {Delimiter: ','}}
	rng := rand.New(rand.NewSource(7))

	for _, o := range opts {
		p := NewParser(o)
		for _, text := range texts {
			whole := p.Parse(text)

			// Byte at a time.
			var every []int
			for i := 1; i < len(text); i++ {
				every = append(every, i)
			}
			assertSameParse(t, whole, feedChunks(p, text, every))

			// Random cut sets.
			for trial := 0; trial < 50 && len(text) > 1; trial++ {
				var cuts []int
				for i := 1; i < len(text); i++ {
					if rng.Intn(3) == 0 {
						cuts = append(cuts, i)
					}
				}
				assertSameParse(t, whole, feedChunks(p, text, cuts))
			}
		}
	}
}

func TestParseMultiLineHeaderWidestWins(t *testing.T) {
	p := NewParser(Options{Delimiter: ',', HeaderLines: 3, Columns: DefaultColumnOptions()})
	st := p.Parse("a,b\nname,age,city\nx\n1,2,3\n")

	assert.Equal(t, []string{"name", "age", "city"}, st.Header)
	assert.Equal(t, 2, st.LineLength, "line length is fixed by the first line")
	assert.Equal(t, []Row{{Number(1), Text("2,3")}}, st.Rows, "header lines never become rows")
}

func TestParseBoundedSplit(t *testing.T) {
	st := NewParser(DefaultOptions()).Parse("a,b\n1,2,3,4\n5\n")

	require.Len(t, st.Rows, 2)
	assert.Equal(t, Row{Number(1), Text("2,3,4")}, st.Rows[0])
	assert.Equal(t, Row{Number(5)}, st.Rows[1], "short rows are not padded on read")
}

func TestParseTailNeverHeader(t *testing.T) {
	st := NewParser(DefaultOptions()).Parse("h1,h2")

	assert.Empty(t, st.Header)
	assert.Equal(t, []Row{TextRow("h1", "h2")}, st.Rows)
}

func TestParseNoHeader(t *testing.T) {
	st := NewParser(Options{Delimiter: ';', Columns: DefaultColumnOptions()}).Parse("1;a\n2;b\n")

	assert.Empty(t, st.Header)
	assert.Equal(t, []Row{{Number(1), Text("a")}, {Number(2), Text("b")}}, st.Rows)
}

func TestParseBlankLineIsRow(t *testing.T) {
	st := NewParser(DefaultOptions()).Parse("a,b\n\n1,2\n")

	require.Len(t, st.Rows, 2)
	assert.Equal(t, Row{Text("")}, st.Rows[0])
}

func TestParseKeepsCarriageReturn(t *testing.T) {
	st := NewParser(Options{Delimiter: ','}).Parse("a,b\r\n1,2\r\n")

	require.Len(t, st.Rows, 2)
	assert.Equal(t, TextRow("1", "2\r"), st.Rows[1])
}

func TestParseRawColumns(t *testing.T) {
	st := NewParser(Options{Delimiter: ',', HeaderLines: 1}).Parse("a,b\n 1 ,true\n")

	assert.Equal(t, []Row{TextRow(" 1 ", "true")}, st.Rows)
}

func TestFeedOwnsState(t *testing.T) {
	p := NewParser(DefaultOptions())
	st := p.Feed(p.Start(), []byte("h1,h2\n1,"))
	assert.Equal(t, "1,", st.PendingTail)
	assert.Equal(t, 1, st.LinesSeen)

	st = p.Feed(st, []byte("2"))
	assert.Equal(t, "1,2", st.PendingTail)
	assert.Empty(t, st.Rows)

	st = p.Finish(st)
	assert.Equal(t, []Row{{Number(1), Number(2)}}, st.Rows)
	assert.Empty(t, st.PendingTail)
}
