package parser

import "regexp"

type LineKind int

const (
	Plain LineKind = iota
	LocalImport
	LibraryImport
)

func (k LineKind) String() string {
	switch k {
	case Plain:
		return "plain"
	case LocalImport:
		return "local-import"
	case LibraryImport:
		return "library-import"
	default:
		return "unknown"
	}
}

var (
	libraryImportPattern = regexp.MustCompile(`^import\s`)
	libraryFromPattern   = regexp.MustCompile(`^from\s.*\bimport\b`)
)

// Classifier sorts raw source lines into local imports, library imports and
// plain code. It only looks at the start of each line: an import written
// inside a function body, a string literal or a parenthesised continuation
// is never recognised as one, and a column-zero line that merely looks like
// an import is always treated as one.
type Classifier struct {
	projectRoot string
	localImport *regexp.Regexp
	localFrom   *regexp.Regexp
}

// NewClassifier builds a classifier for the project whose top-level package
// is named projectRoot.
func NewClassifier(projectRoot string) *Classifier {
	quoted := regexp.QuoteMeta(projectRoot)
	return &Classifier{
		projectRoot: projectRoot,
		localImport: regexp.MustCompile(`^import\s+` + quoted),
		localFrom:   regexp.MustCompile(`^from\s+` + quoted + `.*\simport\b`),
	}
}

func (c *Classifier) ProjectRoot() string {
	return c.projectRoot
}

func (c *Classifier) Classify(line string) LineKind {
	if c.IsLocalImport(line) {
		return LocalImport
	}
	if c.IsLibraryImport(line) {
		return LibraryImport
	}
	return Plain
}

func (c *Classifier) IsLocalImport(line string) bool {
	return c.localFrom.MatchString(line) || c.localImport.MatchString(line)
}

func (c *Classifier) IsLibraryImport(line string) bool {
	return libraryImportPattern.MatchString(line) || libraryFromPattern.MatchString(line)
}
