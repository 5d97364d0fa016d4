package walker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tristendillon/scriptexport/core/logger"
)

type SourceWalker interface {
	Walk(root string) ([]string, error)
}

// SourceWalkerImpl lists every file with the given extension below a
// project root. Exclude entries match a relative path prefix or any single
// path segment, the same way the file watcher applies them.
type SourceWalkerImpl struct {
	Extension string
	Exclude   []string
}

func NewSourceWalker(extension string, exclude []string) *SourceWalkerImpl {
	return &SourceWalkerImpl{
		Extension: extension,
		Exclude:   exclude,
	}
}

// Walk returns absolute paths, sorted.
func (w *SourceWalkerImpl) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var discovered []string
	err = filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if relPath == "." {
			return nil
		}

		if w.excluded(relPath) {
			if info.IsDir() {
				logger.Debug("Skipping directory: %s", relPath)
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && filepath.Ext(path) == w.Extension {
			discovered = append(discovered, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(discovered)
	return discovered, nil
}

func (w *SourceWalkerImpl) excluded(relPath string) bool {
	segments := strings.Split(relPath, string(filepath.Separator))
	for _, ex := range w.Exclude {
		ex = filepath.Clean(ex)
		if relPath == ex || strings.HasPrefix(relPath, ex+string(filepath.Separator)) {
			return true
		}
		for _, segment := range segments {
			if segment == ex {
				return true
			}
		}
	}
	return false
}

// Unreached returns the entries of all that are not in reached, keeping
// the order of all.
func Unreached(all, reached []string) []string {
	seen := make(map[string]bool, len(reached))
	for _, path := range reached {
		seen[path] = true
	}

	unreached := []string{}
	for _, path := range all {
		if !seen[path] {
			unreached = append(unreached, path)
		}
	}
	return unreached
}
