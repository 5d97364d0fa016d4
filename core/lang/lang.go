// Package lang guesses the language of scanned source files so that a
// bundle accidentally fed the wrong kind of file is flagged early.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/src-d/enry/v2"
)

// Python is the language name enry reports for Python sources.
const Python = "Python"

// Detect returns enry's best guess for the file, or "" when it has none.
func Detect(path string, content []byte) string {
	return enry.GetLanguage(filepath.Base(path), content)
}

// ExpectedFor returns the language a source extension implies, or "" when
// the extension is not one the bundler knows the import grammar of.
func ExpectedFor(extension string) string {
	switch strings.ToLower(extension) {
	case ".py", ".pyw", ".pyi":
		return Python
	default:
		return ""
	}
}

// Mismatch reports whether detected contradicts the extension's language.
// Unknown on either side is never a mismatch.
func Mismatch(extension, detected string) bool {
	expected := ExpectedFor(extension)
	return expected != "" && detected != "" && detected != expected
}
