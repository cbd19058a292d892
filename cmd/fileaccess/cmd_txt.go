package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/txtfile"
	"github.com/spf13/cobra"
)

func newTxtCmd(a *app) *cobra.Command {
	var encoding string
	cmd := &cobra.Command{
		Use:   "txt",
		Short: "Stream plain text files",
	}
	cmd.PersistentFlags().StringVar(&encoding, "encoding", "", "file encoding (default FILES_ENCODING, \"auto\" detects)")
	cmd.AddCommand(newTxtReadCmd(a, &encoding), newTxtWriteCmd(a, &encoding))
	return cmd
}

func newTxtReadCmd(a *app, encoding *string) *cobra.Command {
	return &cobra.Command{
		Use:   "read <file>",
		Short: "Print a text file, decoded to UTF-8",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			f, err := txtfile.Open(p, a.ops, *encoding)
			if err != nil {
				return err
			}
			text, err := f.ReadStream(cmd.Context())
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, text)
			return err
		},
	}
}

func newTxtWriteCmd(a *app, encoding *string) *cobra.Command {
	var chunks int
	cmd := &cobra.Command{
		Use:   "write <file> [text...]",
		Short: "Replace a text file with the arguments, or stdin when none are given",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			text := strings.Join(args[1:], " ")
			if len(args) == 1 {
				input, err := io.ReadAll(a.stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(input)
			}

			f, err := txtfile.OpenOrCreate(p, a.ops, *encoding)
			if err != nil {
				return err
			}
			return f.Set(text).WriteStream(cmd.Context(), chunks)
		},
	}
	cmd.Flags().IntVar(&chunks, "chunks", 1, "number of pieces the text is streamed in")
	return cmd
}
