package bundler_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scriptexport/core/bundler"
)

// writeProject lays out files under a fresh project directory named "app"
// and returns its path.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "app")
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func render(t *testing.T, projectRoot, rootFile string) string {
	t.Helper()

	exporter := bundler.NewExporter(filepath.Join(projectRoot, rootFile), projectRoot)
	out, err := exporter.Render()
	require.NoError(t, err)
	return string(out)
}

func relPaths(exporter *bundler.Exporter) []string {
	var paths []string
	for _, details := range exporter.Files() {
		paths = append(paths, exporter.RelPath(details.Path))
	}
	return paths
}
