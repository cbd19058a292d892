package jsonfile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// Format is the on-disk syntax of a value tree.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
)

func (f Format) String() string {
	switch f {
	case YAML:
		return "yaml"
	case TOML:
		return "toml"
	default:
		return "json"
	}
}

// FormatFor picks the format from path's extension.
func FormatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, true
	case ".yaml", ".yml":
		return YAML, true
	case ".toml":
		return TOML, true
	default:
		return JSON, false
	}
}

// Decode parses data in format f into a tree of map[string]any, []any,
// string, float64, bool and nil.
func Decode(data []byte, f Format) (any, error) {
	var parsed any
	var err error
	switch f {
	case YAML:
		err = yaml.Unmarshal(data, &parsed)
	case TOML:
		err = toml.Unmarshal(data, &parsed)
	default:
		err = sonic.Unmarshal(data, &parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("%s parse error: %w", f, err)
	}
	return normalize(parsed), nil
}

// Encode renders v in format f. JSON is indented by two spaces.
func Encode(v any, f Format) ([]byte, error) {
	var out []byte
	var err error
	switch f {
	case YAML:
		out, err = yaml.Marshal(v)
	case TOML:
		out, err = toml.Marshal(v)
	default:
		out, err = sonic.MarshalIndent(v, "", "  ")
		if err == nil {
			out = append(out, '\n')
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s encoding error: %w", f, err)
	}
	return out, nil
}

// normalize maps decoder-specific types onto the JSON value set.
func normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		for k, e := range n {
			n[k] = normalize(e)
		}
		return n
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, e := range n {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range n {
			n[i] = normalize(e)
		}
		return n
	case string, bool, float64, nil:
		return n
	case time.Time:
		return n.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return n.String()
	}
	if f, ok := toFloat(v); ok {
		return f
	}
	return v
}
