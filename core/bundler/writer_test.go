package bundler_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scriptexport/core/bundler"
)

func TestRenderCollapsesBlankRuns(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "a = 1\n\n\n\n\n\nb = 2\n",
	})

	out := render(t, root, "main.py")
	assert.Equal(t, "\na = 1\n\n\nb = 2\n", out)
	assert.NotContains(t, out, "\n\n\n\n")
}

func TestRenderSeparatorCountsTowardBlankRun(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "import os\n\n\n\nx = os.sep\n",
	})

	out := render(t, root, "main.py")
	assert.Equal(t, "import os\n\n\nx = os.sep\n", out)
}

func TestRenderBlankRunSpansFiles(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "from app.a import x\n\n\nprint(x)\n",
		"a.py":    "x = 1\n\n",
	})

	out := render(t, root, "main.py")
	assert.Equal(t, "\nx = 1\n\n\nprint(x)\n", out)
}

func TestRenderMergesImportsAcrossFiles(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "import os\nfrom collections import defaultdict\nfrom app.a import x\nimport numpy as np\n\nprint(x)\n",
		"a.py":    "import os\nfrom collections import OrderedDict\n\nx = OrderedDict()\n",
	})

	out := render(t, root, "main.py")
	assert.Equal(t,
		"import os\n"+
			"import numpy as np\n"+
			"from collections import OrderedDict, defaultdict\n"+
			"\n"+
			"\n"+
			"x = OrderedDict()\n"+
			"\n"+
			"print(x)\n",
		out)
	assert.Equal(t, 1, strings.Count(out, "import os\n"))
}

func TestOutputReplacesExistingFile(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "print('hi')\n",
	})
	outDir := t.TempDir()
	outPath := filepath.Join(outDir, "bundle.py")
	require.NoError(t, os.WriteFile(outPath, []byte("stale\n"), 0o600))

	n, err := bundler.NewExporter(filepath.Join(root, "main.py"), root).Output(outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "\nprint('hi')\n", string(data))
	assert.Equal(t, int64(len(data)), n)

	info, err := os.Stat(outPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestOutputFailsInMissingDirectory(t *testing.T) {
	t.Parallel()

	root := writeProject(t, map[string]string{
		"main.py": "print('hi')\n",
	})
	outPath := filepath.Join(t.TempDir(), "missing", "bundle.py")

	_, err := bundler.NewExporter(filepath.Join(root, "main.py"), root).Output(outPath)
	require.Error(t, err)
	assert.NoFileExists(t, outPath)
}
