// Package errs defines the error taxonomy shared by every file-access package.
//
// Callers match categories with errors.Is against the sentinels below; the
// failing operation and path travel in a PathError wrapped around them.
package errs

import (
	"errors"
	"fmt"
)

// Error categories
var (
	// ErrInvalidPath reports a target that does not exist or has the wrong type for the operation
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidFileType reports a symlink or special file where a file or directory was expected
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrParseStructure reports a path step applied to a value of the wrong shape
	ErrParseStructure = errors.New("parse structure error")

	// ErrAlreadyInitialized reports a header or data set twice on a write-oriented wrapper
	ErrAlreadyInitialized = errors.New("already initialized")

	// ErrNoRootFound reports an ancestor search that reached the filesystem root without a marker
	ErrNoRootFound = errors.New("no root found")

	// ErrCannotDelete wraps the reason a path was refused by a delete
	ErrCannotDelete = errors.New("cannot delete")
)

// PathError records the operation and path that produced an error.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// Path builds a PathError.
func Path(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
