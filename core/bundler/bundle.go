package bundler

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/tristendillon/scriptexport/core/logger"
	"github.com/tristendillon/scriptexport/core/models"
)

// Result summarises a finished bundle.
type Result struct {
	OutputPath  string
	Files       []*models.FileDetails
	ImportLines int
	CodeLines   int
	Bytes       int64
}

// Bundle discovers the project reachable from rootPath and writes the
// bundle to outputPath. Nothing is written when discovery fails.
func Bundle(rootPath, projectRootPath, outputPath string, opts ...Option) (*Result, error) {
	return NewExporter(rootPath, projectRootPath, opts...).Bundle(outputPath)
}

// Bundle collects, writes the bundle to outputPath and summarises it.
func (e *Exporter) Bundle(outputPath string) (*Result, error) {
	if err := e.Collect(); err != nil {
		return nil, err
	}

	n, err := e.Output(outputPath)
	if err != nil {
		return nil, err
	}

	logger.Debug("Wrote %d bytes to %s", n, outputPath)
	return &Result{
		OutputPath:  outputPath,
		Files:       e.Files(),
		ImportLines: len(e.LibraryImports()),
		CodeLines:   len(e.CodeLines()),
		Bytes:       n,
	}, nil
}

// Check renders a fresh bundle and compares it with the file at outputPath.
// It returns the line diffs and ErrStale when they differ. A missing output
// file counts as stale.
func Check(rootPath, projectRootPath, outputPath string, opts ...Option) ([]diffmatchpatch.Diff, error) {
	exporter := NewExporter(rootPath, projectRootPath, opts...)
	fresh, err := exporter.Render()
	if err != nil {
		return nil, err
	}

	existing, err := os.ReadFile(outputPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", outputPath, err)
	}

	if bytes.Equal(existing, fresh) {
		return nil, nil
	}

	diffs := LineDiff(string(existing), string(fresh))
	return diffs, fmt.Errorf("%w: %s", ErrStale, outputPath)
}

// LineDiff diffs two texts line by line.
func LineDiff(before, after string) []diffmatchpatch.Diff {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffCharsToLines(diffs, lines)
}
