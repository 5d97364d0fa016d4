// Package report renders human-readable views of a collected bundle.
package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tristendillon/scriptexport/core/bundler"
)

// FileTable lists the bundled files in the order their code is emitted,
// with each file's detected language, local imports in both directions and
// import/code line counts.
func FileTable(exporter *bundler.Exporter) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"#", "File", "Language", "Local imports", "Imported by", "Library imports", "Code lines"})

	totalImports, totalLines := 0, 0
	for i, details := range exporter.Files() {
		language := details.Language
		if language == "" {
			language = "-"
		}

		tbl.AppendRow(table.Row{
			i + 1,
			exporter.RelPath(details.Path),
			language,
			pathList(exporter, details.LocalImports),
			pathList(exporter, exporter.Graph().GetDependents(details.Path)),
			len(details.LibraryImports),
			len(details.CodeLines),
		})
		totalImports += len(details.LibraryImports)
		totalLines += len(details.CodeLines)
	}

	tbl.AppendFooter(table.Row{"", fmt.Sprintf("Total: %d files", len(exporter.Files())), "", "", "", totalImports, totalLines})
	return tbl.Render()
}

func pathList(exporter *bundler.Exporter, paths []string) string {
	if len(paths) == 0 {
		return "-"
	}
	rel := make([]string, len(paths))
	for i, path := range paths {
		rel[i] = exporter.RelPath(path)
	}
	return strings.Join(rel, "\n")
}

// Summary is the one-line description logged after a bundle is written.
func Summary(result *bundler.Result) string {
	return fmt.Sprintf("Bundled %s into %s (%s import lines, %s code lines, %s)",
		pluralFiles(len(result.Files)),
		result.OutputPath,
		humanize.Comma(int64(result.ImportLines)),
		humanize.Comma(int64(result.CodeLines)),
		humanize.Bytes(uint64(result.Bytes)),
	)
}

func pluralFiles(n int) string {
	if n == 1 {
		return "1 file"
	}
	return humanize.Comma(int64(n)) + " files"
}
