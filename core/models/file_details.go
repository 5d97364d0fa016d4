package models

// FileDetails is everything the bundler keeps from one scanned source file.
// CodeLines hold the raw lines (trailing newline included) that were neither
// a local nor a library import.
type FileDetails struct {
	Path           string
	LibraryImports []*LibraryImport
	CodeLines      []string
	// LocalImports are the resolved paths of the local files this file
	// imports, in the order they appear.
	LocalImports []string
	Language     string
}

func NewFileDetails(path string) *FileDetails {
	return &FileDetails{
		Path:           path,
		LibraryImports: []*LibraryImport{},
		CodeLines:      []string{},
		LocalImports:   []string{},
	}
}
