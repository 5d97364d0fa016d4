package resolver

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrResolution = errors.New("cannot resolve local import")

type ResolutionError struct {
	Path   string
	LineNo int
	Line   string
	Reason string
}

func (e *ResolutionError) Error() string {
	line := strings.TrimRight(e.Line, "\r\n")
	if e.Path == "" {
		return fmt.Sprintf("%s %q: %s", ErrResolution, line, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s %q: %s", e.Path, e.LineNo, ErrResolution, line, e.Reason)
}

func (e *ResolutionError) Unwrap() error {
	return ErrResolution
}

// ProjectRootName is the local-module prefix for a project directory: its
// last path segment.
func ProjectRootName(projectRootPath string) string {
	return filepath.Base(filepath.Clean(projectRootPath))
}

// Resolver maps a local import line such as "from app.utils.io import read"
// to the file it refers to, here <projectRootPath>/utils/io.py.
type Resolver struct {
	projectRootPath string
	projectRoot     string
	extension       string
}

func NewResolver(projectRootPath, extension string) *Resolver {
	return &Resolver{
		projectRootPath: filepath.Clean(projectRootPath),
		projectRoot:     ProjectRootName(projectRootPath),
		extension:       extension,
	}
}

func (r *Resolver) ProjectRoot() string {
	return r.projectRoot
}

// Resolve picks the whitespace-separated token that mentions the project
// root (the last one if several do), drops its first dotted segment and
// turns the rest into a path under the project root directory.
func (r *Resolver) Resolve(line string) (string, error) {
	var chosen string
	for _, token := range strings.Fields(line) {
		if strings.Contains(token, r.projectRoot) {
			chosen = token
		}
	}
	if chosen == "" {
		return "", &ResolutionError{
			Line:   line,
			Reason: fmt.Sprintf("no token contains project root %q", r.projectRoot),
		}
	}

	chosen = strings.TrimRight(chosen, ",")
	segments := strings.Split(chosen, ".")[1:]
	if len(segments) == 0 {
		return "", &ResolutionError{
			Line:   line,
			Reason: fmt.Sprintf("%q names the project package, not a module inside it", chosen),
		}
	}
	for _, segment := range segments {
		if segment == "" {
			return "", &ResolutionError{
				Line:   line,
				Reason: fmt.Sprintf("empty path segment in %q", chosen),
			}
		}
	}

	relPath := filepath.Join(segments...) + r.extension
	return filepath.Join(r.projectRootPath, relPath), nil
}
