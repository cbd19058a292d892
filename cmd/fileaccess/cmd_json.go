package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/jsonfile"
	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

func newJSONCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "json",
		Short: "Query and edit JSON, YAML and TOML documents",
		Long: `Paths are dot-separated steps. A plain step is an object key (or an
array index); a bracketed step selects the first array element:

  users.[id=2].name    element whose "id" field equals 2
  tags.[=beta]         element equal to "beta"

Values are parsed as JSON and fall back to plain strings.`,
	}
	cmd.AddCommand(newJSONGetCmd(a), newJSONSetCmd(a), newJSONPushCmd(a))
	return cmd
}

// parseSteps turns "users.[id=2].name" into key and predicate steps.
func parseSteps(path string) ([]jsonfile.Step, error) {
	if path == "" || path == "." {
		return nil, nil
	}
	var steps []jsonfile.Step
	for _, part := range strings.Split(path, ".") {
		if !strings.HasPrefix(part, "[") {
			if part == "" {
				return nil, fmt.Errorf("empty step in %q", path)
			}
			steps = append(steps, jsonfile.Key(part))
			continue
		}
		inner, ok := strings.CutSuffix(part[1:], "]")
		if !ok {
			return nil, fmt.Errorf("unterminated step %q", part)
		}
		field, value, ok := strings.Cut(inner, "=")
		if !ok {
			return nil, fmt.Errorf("step %q needs field=value", part)
		}
		if field == "" {
			steps = append(steps, jsonfile.Equals(parseValue(value)))
		} else {
			steps = append(steps, jsonfile.Where(field, parseValue(value)))
		}
	}
	return steps, nil
}

// parseValue reads s as a JSON value, or as a bare string when it is not one.
func parseValue(s string) any {
	var v any
	if err := sonic.UnmarshalString(s, &v); err != nil {
		return s
	}
	return v
}

func (a *app) openDoc(cmd *cobra.Command, path string) (*jsonfile.File, error) {
	p, err := a.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := jsonfile.Open(p, a.ops)
	if err != nil {
		return nil, err
	}
	if _, err := f.ReadJSON(cmd.Context()); err != nil {
		return nil, err
	}
	return f, nil
}

func (a *app) printValue(v any) error {
	out, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	a.printf("%s\n", out)
	return nil
}

func newJSONGetCmd(a *app) *cobra.Command {
	var query bool
	cmd := &cobra.Command{
		Use:   "get <file> [path]",
		Short: "Print the value at path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openDoc(cmd, args[0])
			if err != nil {
				return err
			}
			path := ""
			if len(args) == 2 {
				path = args[1]
			}

			if query {
				v, ok, err := f.Query(path)
				if err != nil {
					return err
				}
				if !ok {
					return errNotFound(path)
				}
				return a.printValue(v)
			}

			steps, err := parseSteps(path)
			if err != nil {
				return err
			}
			v, err := f.Get(steps...)
			if err != nil {
				return err
			}
			return a.printValue(v)
		},
	}
	cmd.Flags().BoolVarP(&query, "query", "q", false, "treat path as a gjson query (\"users.#(age>40).name\")")
	return cmd
}

func newJSONSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <file> <path> <value>",
		Short: "Set the key or array index named by the last step of path",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openDoc(cmd, args[0])
			if err != nil {
				return err
			}
			steps, err := parseSteps(args[1])
			if err != nil {
				return err
			}
			if len(steps) == 0 {
				return fmt.Errorf("set needs a non-empty path")
			}
			last := strings.Split(args[1], ".")
			key := last[len(last)-1]
			if strings.HasPrefix(key, "[") {
				return fmt.Errorf("last step of %q must be a key", args[1])
			}
			value := parseValue(args[2])
			parent := steps[:len(steps)-1]

			target, err := f.Get(parent...)
			if err != nil {
				return err
			}
			if _, isArray := target.([]any); isArray {
				idx, err := strconv.Atoi(key)
				if err != nil {
					return fmt.Errorf("index %q into array: %w", key, err)
				}
				if _, err := f.SetIndex(parent, idx, value); err != nil {
					return err
				}
			} else if _, err := f.Set(parent, key, value); err != nil {
				return err
			}
			return f.WriteJSON(cmd.Context())
		},
	}
}

func newJSONPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <file> <path> <value>",
		Short: "Append a value to the array at path",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.openDoc(cmd, args[0])
			if err != nil {
				return err
			}
			steps, err := parseSteps(args[1])
			if err != nil {
				return err
			}
			if _, err := f.Push(steps, parseValue(args[2])); err != nil {
				return err
			}
			return f.WriteJSON(cmd.Context())
		},
	}
}
