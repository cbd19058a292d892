package jsonfile

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

// Query evaluates a gjson path ("users.#(age>40).name", "items.#") against
// the current tree. The second result is false when nothing matched.
func (f *File) Query(path string) (any, bool, error) {
	raw, err := sonic.Marshal(f.data)
	if err != nil {
		return nil, false, fmt.Errorf("query %q: %w", path, err)
	}
	res := gjson.GetBytes(raw, path)
	if !res.Exists() {
		return nil, false, nil
	}
	return normalize(res.Value()), true, nil
}
