package bundler

import (
	"strings"

	"github.com/tristendillon/scriptexport/core/models"
)

// futureModule imports must precede every other statement in the bundle.
const futureModule = "__future__"

// objectSet is an insertion-ordered set of import objects.
type objectSet struct {
	objects []models.ImportObject
	seen    map[models.Key]bool
}

func newObjectSet() *objectSet {
	return &objectSet{seen: make(map[models.Key]bool)}
}

func (s *objectSet) add(obj models.ImportObject) {
	if s.seen[obj.Key()] {
		return
	}
	s.seen[obj.Key()] = true
	s.objects = append(s.objects, obj)
}

func (s *objectSet) join() string {
	parts := make([]string, len(s.objects))
	for i, obj := range s.objects {
		parts[i] = obj.String()
	}
	return strings.Join(parts, ", ")
}

// MergeLibraryImports folds every library import of every file into a
// minimal import block. Whole-module imports come first, one line per
// distinct (name, alias) in first-seen order, followed by one from-form line
// per source module in first-seen module order, each carrying the union of
// its symbols in first-seen order. A "from __future__" line, if any, is
// moved to the very top.
func MergeLibraryImports(files []*models.FileDetails) []string {
	modules := newObjectSet()
	var sourceModules []string
	symbols := make(map[string]*objectSet)

	for _, details := range files {
		for _, imp := range details.LibraryImports {
			if imp.Form() == models.WholeModuleImport {
				for _, obj := range imp.WholeModules {
					modules.add(obj)
				}
				continue
			}

			set, exists := symbols[imp.SourceModule]
			if !exists {
				set = newObjectSet()
				symbols[imp.SourceModule] = set
				sourceModules = append(sourceModules, imp.SourceModule)
			}
			for _, obj := range imp.NamedSymbols {
				set.add(obj)
			}
		}
	}

	lines := []string{}
	if set, exists := symbols[futureModule]; exists {
		lines = append(lines, "from "+futureModule+" import "+set.join())
	}
	for _, obj := range modules.objects {
		lines = append(lines, "import "+obj.String())
	}
	for _, module := range sourceModules {
		if module == futureModule {
			continue
		}
		lines = append(lines, "from "+module+" import "+symbols[module].join())
	}
	return lines
}
