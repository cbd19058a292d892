package jsonfile

import (
	"fmt"
	"strconv"

	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
)

// Step addresses one level of a value tree: either an object key, or a
// predicate selecting the first matching array element.
type Step struct {
	key   string
	match func(v any, i int) bool
}

// Key steps into an object member.
func Key(k string) Step { return Step{key: k} }

// Match steps into the first array element for which fn returns true.
func Match(fn func(v any, i int) bool) Step { return Step{match: fn} }

// Equals matches array elements equal to v.
func Equals(v any) Step {
	return Match(func(e any, _ int) bool { return equalScalar(e, v) })
}

// Where matches array elements that are objects with field set to v.
func Where(field string, v any) Step {
	return Match(func(e any, _ int) bool {
		obj, ok := e.(map[string]any)
		return ok && equalScalar(obj[field], v)
	})
}

func (s Step) String() string {
	if s.match != nil {
		return "[match]"
	}
	return strconv.Quote(s.key)
}

// mutator replaces the addressed value. It is nil for reads.
type mutator func(v any) (any, error)

// walk follows steps from v. When a predicate matches nothing the result
// is an empty array and mut is not applied. The returned tree is v with the
// mutation written back, so slices that grew are reattached to their
// parents.
func walk(v any, steps []Step, mut mutator) (tree any, result any, err error) {
	if len(steps) == 0 {
		if mut == nil {
			return v, v, nil
		}
		nv, err := mut(v)
		if err != nil {
			return v, nil, err
		}
		return nv, nv, nil
	}

	step := steps[0]
	if step.match == nil {
		switch node := v.(type) {
		case map[string]any:
			child, res, err := walk(node[step.key], steps[1:], mut)
			if mut != nil && err == nil {
				node[step.key] = child
			}
			return node, res, err
		case []any:
			i, convErr := strconv.Atoi(step.key)
			if convErr != nil || i < 0 || i >= len(node) {
				return v, nil, fmt.Errorf("%w: key %s not at object", errs.ErrParseStructure, step)
			}
			child, res, err := walk(node[i], steps[1:], mut)
			if mut != nil && err == nil {
				node[i] = child
			}
			return node, res, err
		default:
			return v, nil, fmt.Errorf("%w: key %s applied to %s", errs.ErrParseStructure, step, describe(v))
		}
	}

	arr, ok := v.([]any)
	if !ok {
		return v, nil, fmt.Errorf("%w: predicate not at array (got %s)", errs.ErrParseStructure, describe(v))
	}
	for i, e := range arr {
		if !step.match(e, i) {
			continue
		}
		child, res, err := walk(e, steps[1:], mut)
		if mut != nil && err == nil {
			arr[i] = child
		}
		return arr, res, err
	}
	return arr, []any{}, nil
}

func setKey(key string, value any) mutator {
	return func(v any) (any, error) {
		obj, ok := v.(map[string]any)
		if !ok {
			return v, fmt.Errorf("%w: set %q: target is %s, not object", errs.ErrParseStructure, key, describe(v))
		}
		obj[key] = value
		return obj, nil
	}
}

func setIndex(i int, value any) mutator {
	return func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return v, fmt.Errorf("%w: set index %d: target is %s, not array", errs.ErrParseStructure, i, describe(v))
		}
		if i < 0 {
			return v, fmt.Errorf("%w: negative index %d", errs.ErrParseStructure, i)
		}
		for len(arr) <= i {
			arr = append(arr, nil)
		}
		arr[i] = value
		return arr, nil
	}
}

func setWhere(old, value any) mutator {
	return func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return v, fmt.Errorf("%w: replace: target is %s, not array", errs.ErrParseStructure, describe(v))
		}
		for i, e := range arr {
			if equalScalar(e, old) {
				arr[i] = value
				break
			}
		}
		return arr, nil
	}
}

func push(value any) mutator {
	return func(v any) (any, error) {
		arr, ok := v.([]any)
		if !ok {
			return v, fmt.Errorf("%w: push: target is %s, not array", errs.ErrParseStructure, describe(v))
		}
		return append(arr, value), nil
	}
}

// equalScalar compares strings, bools and numbers of any Go numeric type.
func equalScalar(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		fb, ok := toFloat(b)
		return ok && fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	if _, ok := toFloat(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
