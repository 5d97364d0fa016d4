package bundler

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/scriptexport/core/graph"
	"github.com/tristendillon/scriptexport/core/lang"
	"github.com/tristendillon/scriptexport/core/logger"
	"github.com/tristendillon/scriptexport/core/models"
	"github.com/tristendillon/scriptexport/core/parser"
	"github.com/tristendillon/scriptexport/core/resolver"
)

const DefaultExtension = ".py"

type Option func(*Exporter)

// WithExtension sets the source file extension appended to resolved local
// imports.
func WithExtension(extension string) Option {
	return func(e *Exporter) {
		e.extension = extension
	}
}

// Exporter bundles a project into one file. It owns all traversal state,
// so one instance serves exactly one bundle.
type Exporter struct {
	rootPath        string
	projectRootPath string
	extension       string

	classifier *parser.Classifier
	resolver   *resolver.Resolver
	graph      *graph.DependencyGraph

	visited        map[string]bool
	files          []*models.FileDetails
	libraryImports []string
	codeLines      []string
	collected      bool
}

func NewExporter(rootPath, projectRootPath string, opts ...Option) *Exporter {
	e := &Exporter{
		rootPath:        rootPath,
		projectRootPath: projectRootPath,
		extension:       DefaultExtension,
		graph:           graph.NewDependencyGraph(),
		visited:         make(map[string]bool),
		files:           []*models.FileDetails{},
	}
	for _, opt := range opts {
		opt(e)
	}

	projectRoot := resolver.ProjectRootName(projectRootPath)
	e.classifier = parser.NewClassifier(projectRoot)
	e.resolver = resolver.NewResolver(projectRootPath, e.extension)
	return e
}

// Collect discovers every local file reachable from the root file, then
// merges library imports and concatenates code in dependency-first order.
func (e *Exporter) Collect() error {
	if e.collected {
		return nil
	}

	root, err := filepath.Abs(e.rootPath)
	if err != nil {
		return fmt.Errorf("failed to resolve root file %s: %w", e.rootPath, err)
	}

	e.graph.AddNode(root)
	if err := e.collectFileDetails(root, "", 0); err != nil {
		return err
	}

	for _, cycle := range e.graph.DetectCycles() {
		names := make([]string, len(cycle))
		for i, path := range cycle {
			names[i] = e.RelPath(path)
		}
		logger.Warn("Import cycle: %s -> %s", strings.Join(names, " -> "), names[0])
	}

	e.libraryImports = MergeLibraryImports(e.files)
	e.codeLines = []string{}
	for _, details := range e.files {
		e.codeLines = append(e.codeLines, details.CodeLines...)
	}

	e.collected = true
	logger.Debug("Collected %d files, %d library import lines, %d code lines",
		len(e.files), len(e.libraryImports), len(e.codeLines))
	return nil
}

// collectFileDetails scans one file. A file is marked visited before its
// body is read, so an import cycle back to a file still being scanned is
// treated as already satisfied instead of being descended into again.
func (e *Exporter) collectFileDetails(path, importedBy string, importLineNo int) error {
	e.visited[path] = true
	logger.Debug("Scanning %s", e.RelPath(path))

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &MissingFileError{Path: path, ImportedBy: importedBy, LineNo: importLineNo}
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	details := models.NewFileDetails(path)
	details.Language = lang.Detect(path, content)
	if lang.Mismatch(e.extension, details.Language) {
		logger.Warn("%s looks like %s, not %s", e.RelPath(path), details.Language, lang.ExpectedFor(e.extension))
	}

	for i, line := range SplitLines(string(content)) {
		lineNo := i + 1

		switch e.classifier.Classify(line) {
		case parser.LocalImport:
			target, err := e.resolveLocalImport(path, lineNo, line)
			if err != nil {
				return err
			}
			details.LocalImports = append(details.LocalImports, target)
			e.graph.AddEdge(path, target)

			if e.visited[target] {
				logger.Debug("  %s:%d -> %s (already visited)", e.RelPath(path), lineNo, e.RelPath(target))
				continue
			}
			logger.Debug("  %s:%d -> %s", e.RelPath(path), lineNo, e.RelPath(target))
			if err := e.collectFileDetails(target, path, lineNo); err != nil {
				return err
			}

		case parser.LibraryImport:
			imp, err := parser.ParseLibraryImport(line)
			if err != nil {
				var parseErr *parser.ParseError
				if errors.As(err, &parseErr) {
					parseErr.Path = path
					parseErr.LineNo = lineNo
				}
				return err
			}
			details.LibraryImports = append(details.LibraryImports, imp)

		default:
			details.CodeLines = append(details.CodeLines, line)
		}
	}

	e.files = append(e.files, details)
	return nil
}

func (e *Exporter) resolveLocalImport(path string, lineNo int, line string) (string, error) {
	target, err := e.resolver.Resolve(line)
	if err != nil {
		var resErr *resolver.ResolutionError
		if errors.As(err, &resErr) {
			resErr.Path = path
			resErr.LineNo = lineNo
		}
		return "", err
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", target, err)
	}
	return abs, nil
}

// Files returns the scanned files in dependency-first order.
func (e *Exporter) Files() []*models.FileDetails {
	return e.files
}

// LibraryImports returns the merged import block, one statement per entry.
func (e *Exporter) LibraryImports() []string {
	return e.libraryImports
}

// CodeLines returns every plain line of every file, in file order.
func (e *Exporter) CodeLines() []string {
	return e.codeLines
}

func (e *Exporter) Graph() *graph.DependencyGraph {
	return e.graph
}

func (e *Exporter) ProjectRoot() string {
	return e.classifier.ProjectRoot()
}

// RelPath shortens path to be relative to the project root directory when
// it lives below it.
func (e *Exporter) RelPath(path string) string {
	root, err := filepath.Abs(e.projectRootPath)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// SplitLines splits content into lines that keep their line terminator. A
// final line without one gets "\n" appended so that files concatenated
// later never run into each other.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	} else {
		lines[len(lines)-1] += "\n"
	}
	return lines
}
