/*
Package csvfile reads and writes delimited text files.

# Parsing

Parser consumes a file as arbitrary chunks. Lines may be split anywhere
between chunks; the unterminated remainder is carried in State.PendingTail
until the next newline arrives. The first HeaderLines complete lines form the
header (the widest one wins) and never become rows. The first line fixes
State.LineLength, after which lines are split into at most that many columns
and any further delimiters stay in the last column.

Data cells are coerced per ColumnOptions: trimmed, then "true"/"false" become
booleans, then numeric literals (including Infinity and NaN) become numbers.
Everything else stays text.

	parser := csvfile.NewParser(csvfile.DefaultOptions())
	st := parser.Start()
	for _, chunk := range chunks {
		st = parser.Feed(st, chunk)
	}
	st = parser.Finish(st)

# Writing

Render pads or truncates rows to the header width. Chunks splits rows into
pieces for a streamed write, with the header only on the first piece. Nothing
is quoted or escaped.

# Files

File ties the parser and serializer to a path through filesystem.Ops:

	f, err := csvfile.Open(path, ops, csvfile.DefaultOptions())
	rows, err := f.ReadCSV(ctx)
	_ = f.Head(os.Stdout, 5)
*/
package csvfile
