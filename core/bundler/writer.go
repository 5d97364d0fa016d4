package bundler

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxBlankRun is the longest run of blank lines kept in the bundle body.
const maxBlankRun = 2

// WriteTo renders the bundle: the merged import block, a blank separator
// line, then all code lines with blank-line runs capped at maxBlankRun. The
// separator counts toward the first run.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	if err := e.Collect(); err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	blankRun := 0

	for _, line := range e.libraryImports {
		if isBlank(line) {
			blankRun++
		} else {
			blankRun = 0
		}
		if _, err := io.WriteString(cw, line+"\n"); err != nil {
			return cw.n, err
		}
	}

	for blankRun < 1 {
		if _, err := io.WriteString(cw, "\n"); err != nil {
			return cw.n, err
		}
		blankRun++
	}

	for _, line := range e.codeLines {
		if isBlank(line) {
			blankRun++
		} else {
			blankRun = 0
		}
		if blankRun > maxBlankRun {
			continue
		}
		if _, err := io.WriteString(cw, line); err != nil {
			return cw.n, err
		}
	}

	return cw.n, nil
}

// Render returns the bundle as bytes without touching the file system
// beyond discovery.
func (e *Exporter) Render() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Output writes the bundle to outputPath. The content goes to a temporary
// file in the same directory which is renamed over outputPath only once it
// is complete, so a failed run never leaves a partial bundle behind.
func (e *Exporter) Output(outputPath string) (int64, error) {
	if err := e.Collect(); err != nil {
		return 0, err
	}

	dir, base := filepath.Split(outputPath)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary output in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	n, err := e.WriteTo(bw)
	if err != nil {
		return 0, fmt.Errorf("failed to write bundle: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("failed to write bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return 0, fmt.Errorf("failed to set permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return 0, fmt.Errorf("failed to move bundle into place at %s: %w", outputPath, err)
	}

	committed = true
	return n, nil
}

func isBlank(line string) bool {
	return strings.TrimRight(line, "\r\n") == ""
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
