package filesystem

import (
	"path/filepath"
	"strings"
)

// StepFunc is called once per path segment by AscendFind. parent is the
// absolute directory holding segment. last marks the final segment in
// iteration order. Returning found=true stops the iteration.
//
// After every segment has been visited without a result, StepFunc is called
// once more with parent and segment both empty and last=true. That sentinel
// call is where a caller decides between "nothing found" and a fallback.
type StepFunc[R any] func(parent, segment string, last bool) (result R, found bool, err error)

// AscendFind iterates the segments of path. With rootFirst it goes from the
// filesystem root down to path itself; otherwise it starts at path and
// climbs toward the root. It returns the first found result, or the result of
// the sentinel call.
func AscendFind[R any](path string, rootFirst bool, fn StepFunc[R]) (R, bool, error) {
	segments := splitSegments(path)
	n := len(segments)

	for k := 0; k < n; k++ {
		i := k
		if !rootFirst {
			i = n - 1 - k
		}
		parent := string(filepath.Separator) + filepath.Join(segments[:i]...)
		res, found, err := fn(parent, segments[i], k == n-1)
		if err != nil || found {
			return res, found, err
		}
	}
	return fn("", "", true)
}

func splitSegments(path string) []string {
	path = filepath.ToSlash(filepath.Clean(path))
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
