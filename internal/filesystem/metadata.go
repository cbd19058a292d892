package filesystem

import (
	"os"
	"strings"

	"github.com/GriffinCanCode/fileaccess/internal/shared/errs"
	"github.com/gabriel-vasile/mimetype"
)

// ContentType detects the MIME type of the file at path.
func ContentType(path string) (string, error) {
	if Classify(path) != File {
		return "", errs.Path("content type", path, errs.ErrInvalidPath)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errs.Path("content type", path, err)
	}
	return mtype.String(), nil
}

// IsText reports whether the file at path holds text.
func IsText(path string) (bool, error) {
	if Classify(path) != File {
		return false, errs.Path("is text", path, errs.ErrInvalidPath)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, errs.Path("is text", path, err)
	}

	for m := mtype; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "text/") {
			return true, nil
		}
	}
	switch mtype.String() {
	case "application/json", "application/xml", "application/javascript":
		return true, nil
	}
	return false, nil
}

// DetectEncoding guesses the charset of the file at path from its first
// few kilobytes.
func DetectEncoding(path string) (string, error) {
	if Classify(path) != File {
		return "", errs.Path("detect encoding", path, errs.ErrInvalidPath)
	}
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Path("detect encoding", path, err)
	}
	defer f.Close()

	sample := make([]byte, detectSampleSize)
	n, _ := f.Read(sample)
	return DetectCharset(sample[:n]), nil
}
