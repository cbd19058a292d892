package main

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/fileaccess/internal/csvfile"
	"github.com/spf13/cobra"
)

// csvFlags are the parser settings shared by the csv subcommands.
type csvFlags struct {
	delimiter   string
	headerLines int
	raw         bool
	encoding    string
}

func (f *csvFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "column delimiter (default FILES_CSV_DELIMITER)")
	cmd.Flags().IntVar(&f.headerLines, "header-lines", -1, "leading header lines (default FILES_CSV_HEADER_LINES)")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "keep cells as text")
	cmd.Flags().StringVar(&f.encoding, "encoding", "", "file encoding (default FILES_ENCODING, \"auto\" detects)")
}

func (a *app) csvOptions(f csvFlags) (csvfile.Options, error) {
	opts := csvfile.DefaultOptions()
	opts.Delimiter = a.cfg.CSV.DelimiterRune()
	opts.HeaderLines = a.cfg.CSV.HeaderLines
	opts.Encoding = f.encoding

	if f.delimiter != "" {
		if utf8.RuneCountInString(f.delimiter) != 1 {
			return opts, fmt.Errorf("delimiter must be a single character, got %q", f.delimiter)
		}
		opts.Delimiter, _ = utf8.DecodeRuneInString(f.delimiter)
	}
	if f.headerLines >= 0 {
		opts.HeaderLines = f.headerLines
	}
	if f.raw {
		opts.Columns = csvfile.ColumnOptions{}
	}
	return opts, nil
}

func newCSVCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Read, write and summarize CSV files",
	}
	cmd.AddCommand(newCSVReadCmd(a), newCSVWriteCmd(a), newCSVDescribeCmd(a))
	return cmd
}

func (a *app) openCSV(cmd *cobra.Command, path string, flags csvFlags) (*csvfile.File, error) {
	p, err := a.resolve(path)
	if err != nil {
		return nil, err
	}
	opts, err := a.csvOptions(flags)
	if err != nil {
		return nil, err
	}
	f, err := csvfile.Open(p, a.ops, opts)
	if err != nil {
		return nil, err
	}
	if _, err := f.ReadCSV(cmd.Context()); err != nil {
		return nil, err
	}
	return f, nil
}

func newCSVReadCmd(a *app) *cobra.Command {
	var flags csvFlags
	var limit int
	cmd := &cobra.Command{
		Use:   "read <file>",
		Short: "Parse a CSV file and print it as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openCSV(cmd, args[0], flags)
			if err != nil {
				return err
			}
			n := limit
			if n <= 0 {
				n = len(f.Data())
			}
			if err := f.Head(a.stdout, n); err != nil {
				return err
			}
			rows, cols := f.Shape()
			a.printf("%d rows, %d columns\n", rows, cols)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "print at most n rows (0 prints all)")
	return cmd
}

func newCSVDescribeCmd(a *app) *cobra.Command {
	var flags csvFlags
	cmd := &cobra.Command{
		Use:   "describe <file>",
		Short: "Print count, mean, stddev, min, median and max of numeric columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openCSV(cmd, args[0], flags)
			if err != nil {
				return err
			}
			stats := f.Describe()
			rows := make([]csvfile.Row, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, csvfile.Row{
					csvfile.Text(s.Name),
					csvfile.Number(float64(s.Count)),
					csvfile.Number(s.Mean),
					csvfile.Number(s.StdDev),
					csvfile.Number(s.Min),
					csvfile.Number(s.Median),
					csvfile.Number(s.Max),
				})
			}
			header := []string{"column", "count", "mean", "stddev", "min", "median", "max"}
			return csvfile.RenderTable(a.stdout, header, rows, len(rows))
		},
	}
	flags.register(cmd)
	return cmd
}

func newCSVWriteCmd(a *app) *cobra.Command {
	var flags csvFlags
	var header string
	var chunks int
	var appendRows bool
	cmd := &cobra.Command{
		Use:   "write <file>",
		Short: "Write delimited rows from stdin to a CSV file",
		Long: `Reads delimited rows from stdin, one per line, and writes them to file.

The file and its parent directories are created when missing. Rows are
padded or truncated to the header width. With --append the rows are added
to the end of the file without a header.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			opts, err := a.csvOptions(flags)
			if err != nil {
				return err
			}
			input, err := io.ReadAll(a.stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			inputOpts := opts
			inputOpts.HeaderLines = 0
			rows := csvfile.NewParser(inputOpts).Parse(string(input)).Rows

			f, err := csvfile.OpenOrCreate(p, a.ops, opts)
			if err != nil {
				return err
			}
			if header != "" {
				if err := f.SetHeader(strings.Split(header, string(opts.Delimiter))); err != nil {
					return err
				}
			}
			if appendRows {
				f.AppendLine(rows...)
				return f.AppendCSV(cmd.Context(), chunks)
			}
			if err := f.SetData(rows); err != nil {
				return err
			}
			return f.WriteCSV(cmd.Context(), chunks)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&header, "header", "", "header line, delimited like the rows")
	cmd.Flags().IntVar(&chunks, "chunks", 1, "number of pieces the output is streamed in")
	cmd.Flags().BoolVar(&appendRows, "append", false, "append rows without a header")
	return cmd
}
