package models

import "strings"

type ImportForm int

const (
	// WholeModuleImport is "import a, b as c".
	WholeModuleImport ImportForm = iota
	// FromImport is "from a import b, c as d".
	FromImport
)

func (f ImportForm) String() string {
	switch f {
	case WholeModuleImport:
		return "import"
	case FromImport:
		return "from"
	default:
		return "unknown"
	}
}

// LibraryImport is one parsed import statement that refers to code outside
// the bundled project. Exactly one of WholeModules or (SourceModule,
// NamedSymbols) is populated.
type LibraryImport struct {
	Raw          string
	WholeModules []ImportObject
	SourceModule string
	NamedSymbols []ImportObject
}

func (li *LibraryImport) Form() ImportForm {
	if li.SourceModule != "" {
		return FromImport
	}
	return WholeModuleImport
}

func (li *LibraryImport) String() string {
	if li.Form() == FromImport {
		return "from " + li.SourceModule + " import " + joinObjects(li.NamedSymbols)
	}
	return "import " + joinObjects(li.WholeModules)
}

func joinObjects(objects []ImportObject) string {
	parts := make([]string, len(objects))
	for i, obj := range objects {
		parts[i] = obj.String()
	}
	return strings.Join(parts, ", ")
}
