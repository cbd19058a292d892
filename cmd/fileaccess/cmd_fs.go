package main

import (
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/filesystem"
	"github.com/spf13/cobra"
)

func newWalkCmd(a *app) *cobra.Command {
	var folders, flat bool
	cmd := &cobra.Command{
		Use:   "walk <dir>",
		Short: "Print the tree under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			tree, err := a.ops.Walk(cmd.Context(), dir, folders || !flat)
			if err != nil {
				return err
			}
			if flat {
				for _, p := range filesystem.Flatten(tree) {
					a.printf("%s\n", a.display(p))
				}
				return nil
			}
			a.printTree(tree, 0)
			return nil
		},
	}
	cmd.Flags().BoolVar(&folders, "folders", false, "keep directory nodes (implied unless --flat)")
	cmd.Flags().BoolVar(&flat, "flat", false, "print one file path per line")
	return cmd
}

func (a *app) printTree(tree filesystem.PathTree, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range tree {
		if n.IsDir() {
			a.printf("%s%s/\n", indent, filepath.Base(n.Path))
			a.printTree(n.Children, depth+1)
			continue
		}
		a.printf("%s%s\n", indent, filepath.Base(n.Path))
	}
}

func newFindCmd(a *app) *cobra.Command {
	var folders bool
	cmd := &cobra.Command{
		Use:   "find <dir> <name>",
		Short: "Print the first path under dir whose last segment is name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			found, err := a.ops.Find(cmd.Context(), dir, args[1], folders)
			if err != nil {
				return err
			}
			if found == "" {
				return errNotFound(args[1])
			}
			a.printf("%s\n", a.display(found))
			return nil
		},
	}
	cmd.Flags().BoolVar(&folders, "folders", false, "match directories too")
	return cmd
}

func newGlobCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "glob <dir> <pattern>",
		Short: "Print files under dir matching a doublestar pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			matches, err := a.ops.Glob(cmd.Context(), dir, args[1])
			if err != nil {
				return err
			}
			for _, m := range matches {
				a.printf("%s\n", a.display(m))
			}
			return nil
		},
	}
}

func newStatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stat <path>",
		Short: "Classify a path; for files also print MIME type and charset",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			kind := filesystem.Classify(p)
			a.printf("type: %s\n", kind)
			if kind != filesystem.File {
				return nil
			}
			mime, err := filesystem.ContentType(p)
			if err != nil {
				return err
			}
			enc, err := filesystem.DetectEncoding(p)
			if err != nil {
				return err
			}
			a.printf("mime: %s\nencoding: %s\n", mime, enc)
			return nil
		},
	}
}

func newEnsureCmd(a *app) *cobra.Command {
	var dir bool
	cmd := &cobra.Command{
		Use:   "ensure <path>",
		Short: "Create a file (or directory with --dir) and any missing parents",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := a.resolve(args[0])
			if err != nil {
				return err
			}
			return a.ops.EnsurePath(p, !dir)
		},
	}
	cmd.Flags().BoolVar(&dir, "dir", false, "the final segment is a directory")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	var ignore bool
	cmd := &cobra.Command{
		Use:   "rm <path>...",
		Short: "Recursively delete files and directories; symlinks are refused",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			targets, err := a.resolveAll(args)
			if err != nil {
				return err
			}
			return a.ops.DeleteAll(targets, ignore)
		},
	}
	cmd.Flags().BoolVar(&ignore, "ignore-errors", false, "skip missing paths and links instead of failing")
	return cmd
}

func newRootPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the project root used to resolve relative paths",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if a.rootErr != nil {
				return a.rootErr
			}
			a.printf("%s\n", a.resolver.Root)
			return nil
		},
	}
}
