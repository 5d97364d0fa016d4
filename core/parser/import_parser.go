package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tristendillon/scriptexport/core/models"
)

const renameMarker = "as"

var (
	wholeModulePattern = regexp.MustCompile(`^import\s+(.+)$`)
	fromPattern        = regexp.MustCompile(`^from\s+(\S+)\s+import\s+(.+)$`)
)

// ParseLibraryImport parses a single line already classified as a library
// import. Whole-module form is tried before from-form.
func ParseLibraryImport(line string) (*models.LibraryImport, error) {
	raw := stripComment(strings.TrimSpace(line))

	if m := wholeModulePattern.FindStringSubmatch(raw); m != nil {
		modules, err := parseObjectList(m[1], line)
		if err != nil {
			return nil, err
		}
		return &models.LibraryImport{
			Raw:          raw,
			WholeModules: modules,
		}, nil
	}

	if m := fromPattern.FindStringSubmatch(raw); m != nil {
		list := m[2]
		if strings.HasPrefix(list, "(") && strings.HasSuffix(list, ")") {
			list = strings.TrimSpace(list[1 : len(list)-1])
			list = strings.TrimSuffix(list, ",")
		}
		symbols, err := parseObjectList(list, line)
		if err != nil {
			return nil, err
		}
		return &models.LibraryImport{
			Raw:          raw,
			SourceModule: m[1],
			NamedSymbols: symbols,
		}, nil
	}

	return nil, &ParseError{Line: line, Reason: "expected \"import <module>\" or \"from <module> import <name>\""}
}

// ParseImportObject parses one "name" or "name as alias" fragment.
func ParseImportObject(fragment string) (models.ImportObject, error) {
	fields := strings.Fields(fragment)
	switch {
	case len(fields) == 0:
		return models.ImportObject{}, &ParseError{Line: fragment, Reason: "empty import name"}
	case len(fields) == 1 && fields[0] != renameMarker:
		return models.ImportObject{Name: fields[0]}, nil
	case len(fields) == 3 && fields[1] == renameMarker:
		return models.ImportObject{Name: fields[0], Alias: fields[2]}, nil
	default:
		return models.ImportObject{}, &ParseError{Line: fragment, Reason: fmt.Sprintf("malformed import name %q", strings.TrimSpace(fragment))}
	}
}

func parseObjectList(list, line string) ([]models.ImportObject, error) {
	fragments := strings.Split(list, ",")
	objects := make([]models.ImportObject, 0, len(fragments))
	for _, fragment := range fragments {
		obj, err := ParseImportObject(fragment)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: line, Reason: pe.Reason}
			}
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// stripComment drops a trailing "# ..." comment. Import lines cannot carry
// string literals, so the first '#' always starts a comment.
func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return strings.TrimSpace(line[:i])
	}
	return line
}
