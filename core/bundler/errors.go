package bundler

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrMissingFile = errors.New("local file not found")
	// ErrStale is returned by Check when the bundle on disk differs from a
	// fresh one.
	ErrStale = errors.New("bundle is out of date")
)

// MissingFileError is a local import that resolved to a path with no file
// behind it. ImportedBy is empty for the root file itself.
type MissingFileError struct {
	Path       string
	ImportedBy string
	LineNo     int
}

func (e *MissingFileError) Error() string {
	if e.ImportedBy == "" {
		return fmt.Sprintf("%s: %s", ErrMissingFile, e.Path)
	}
	return fmt.Sprintf("%s: %s (imported by %s:%d)", ErrMissingFile, e.Path, e.ImportedBy, e.LineNo)
}

func (e *MissingFileError) Unwrap() error {
	return ErrMissingFile
}

func (e *MissingFileError) Is(target error) bool {
	return target == fs.ErrNotExist
}
