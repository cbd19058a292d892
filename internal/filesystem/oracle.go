package filesystem

import (
	"os"
)

// FileType is the classification of one path.
type FileType int

const (
	Invalid FileType = iota
	File
	Directory
	Link
)

func (t FileType) String() string {
	switch t {
	case File:
		return "FILE"
	case Directory:
		return "DIRECTORY"
	case Link:
		return "LINK"
	default:
		return "INVALID"
	}
}

// Classify stats path without following a final symlink. Missing paths and
// special files (devices, sockets, pipes) are Invalid.
func Classify(path string) FileType {
	info, err := os.Lstat(path)
	if err != nil {
		return Invalid
	}
	return classifyMode(info.Mode())
}

func classifyMode(mode os.FileMode) FileType {
	switch {
	case mode.IsRegular():
		return File
	case mode.IsDir():
		return Directory
	case mode&os.ModeSymlink != 0:
		return Link
	default:
		return Invalid
	}
}

// Exists reports whether anything is present at path. A dangling symlink
// exists.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
