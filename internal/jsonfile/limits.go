package jsonfile

import "fmt"

// Document limits applied when decoding from disk
const (
	DefaultMaxSize  = 16 * 1024 * 1024 // 16MB
	DefaultMaxDepth = 256
)

// Limits bounds what ReadJSON accepts. Zero fields disable the check.
type Limits struct {
	MaxSize  int
	MaxDepth int
}

// DefaultLimits returns the limits a new File starts with.
func DefaultLimits() Limits {
	return Limits{MaxSize: DefaultMaxSize, MaxDepth: DefaultMaxDepth}
}

// validateSize checks the raw document length
func (l Limits) validateSize(size int) error {
	if l.MaxSize > 0 && size > l.MaxSize {
		return fmt.Errorf("document size %d bytes exceeds maximum %d bytes", size, l.MaxSize)
	}
	return nil
}

// validateDepth checks nesting of a decoded tree
func (l Limits) validateDepth(v any) error {
	if l.MaxDepth <= 0 {
		return nil
	}
	return checkDepth(v, 0, l.MaxDepth)
}

func checkDepth(v any, depth, maxDepth int) error {
	if depth > maxDepth {
		return fmt.Errorf("nesting depth %d exceeds maximum %d", depth, maxDepth)
	}

	switch n := v.(type) {
	case map[string]any:
		for _, e := range n {
			if err := checkDepth(e, depth+1, maxDepth); err != nil {
				return err
			}
		}
	case []any:
		for _, e := range n {
			if err := checkDepth(e, depth+1, maxDepth); err != nil {
				return err
			}
		}
	}
	return nil
}
