package watcher_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scriptexport/core/bundler"
	"github.com/tristendillon/scriptexport/core/watcher"
)

type project struct {
	root    string
	outPath string
	modTime time.Time
}

func newProject(t *testing.T, files map[string]string) *project {
	t.Helper()

	p := &project{
		root:    filepath.Join(t.TempDir(), "app"),
		outPath: filepath.Join(t.TempDir(), "bundle.py"),
		modTime: time.Now().Add(-time.Hour).Truncate(time.Second),
	}
	require.NoError(t, os.MkdirAll(p.root, 0o755))
	for name, content := range files {
		p.write(t, name, content)
	}
	return p
}

// write bumps the modification time on every call so content checks never
// depend on file system timestamp granularity.
func (p *project) write(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(p.root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	p.modTime = p.modTime.Add(time.Second)
	require.NoError(t, os.Chtimes(path, p.modTime, p.modTime))
	return path
}

func (p *project) output(t *testing.T) string {
	t.Helper()

	data, err := os.ReadFile(p.outPath)
	require.NoError(t, err)
	return string(data)
}

func TestRebundlerRun(t *testing.T) {
	t.Parallel()

	p := newProject(t, map[string]string{
		"main.py": "from app.a import x\nprint(x)\n",
		"a.py":    "x = 1\n",
		"b.py":    "unused = True\n",
	})
	r := watcher.NewRebundler(filepath.Join(p.root, "main.py"), p.root, p.outPath)

	result, err := r.Run()
	require.NoError(t, err)
	assert.Len(t, result.Files, 2)
	assert.Equal(t, "\nx = 1\nprint(x)\n", p.output(t))

	assert.True(t, r.Tracked(filepath.Join(p.root, "main.py")))
	assert.True(t, r.Tracked(filepath.Join(p.root, "a.py")))
	assert.False(t, r.Tracked(filepath.Join(p.root, "b.py")))
}

func TestRebundlerHandleChanges(t *testing.T) {
	t.Parallel()

	p := newProject(t, map[string]string{
		"main.py": "from app.a import x\nprint(x)\n",
		"a.py":    "x = 1\n",
		"b.py":    "unused = True\n",
	})
	r := watcher.NewRebundler(filepath.Join(p.root, "main.py"), p.root, p.outPath)
	_, err := r.Run()
	require.NoError(t, err)

	t.Log("untracked file")
	b := p.write(t, "b.py", "unused = False\n")
	result, err := r.HandleChanges([]string{b})
	require.NoError(t, err)
	assert.Nil(t, result)

	t.Log("tracked file touched without content change")
	a := p.write(t, "a.py", "x = 1\n")
	result, err = r.HandleChanges([]string{a})
	require.NoError(t, err)
	assert.Nil(t, result)

	t.Log("tracked file changed")
	a = p.write(t, "a.py", "x = 2\n")
	result, err = r.HandleChanges([]string{a})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "\nx = 2\nprint(x)\n", p.output(t))

	t.Log("new local import pulls in a previously untracked file")
	mainPath := p.write(t, "main.py", "from app.a import x\nfrom app.b import unused\nprint(x, unused)\n")
	result, err = r.HandleChanges([]string{mainPath})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Files, 3)
	assert.True(t, r.Tracked(b))
}

func TestRebundlerRecoversFromFailure(t *testing.T) {
	t.Parallel()

	p := newProject(t, map[string]string{
		"main.py": "from app.a import x\nprint(x)\n",
		"a.py":    "x = 1\n",
	})
	r := watcher.NewRebundler(filepath.Join(p.root, "main.py"), p.root, p.outPath)
	_, err := r.Run()
	require.NoError(t, err)
	before := p.output(t)

	a := p.write(t, "a.py", "from app.missing import y\nx = y\n")
	result, err := r.HandleChanges([]string{a})
	require.ErrorIs(t, err, bundler.ErrMissingFile)
	assert.Nil(t, result)
	assert.Equal(t, before, p.output(t), "previous bundle must survive a failed rebuild")
	assert.True(t, r.Tracked(a), "tracked set kept after failure")

	missing := p.write(t, "missing.py", "y = 3\n")
	result, err = r.HandleChanges([]string{missing})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "\ny = 3\nx = y\nprint(x)\n", p.output(t))
}

func TestRebundlerIgnoresOwnWritesAfterFailure(t *testing.T) {
	t.Parallel()

	p := newProject(t, map[string]string{
		"main.py": "from app.missing import x\n",
	})
	p.outPath = filepath.Join(p.root, "bundle.py")
	r := watcher.NewRebundler(filepath.Join(p.root, "main.py"), p.root, p.outPath)
	logPath := filepath.Join(p.root, "scriptexport.log")
	r.Ignore(logPath, "")

	_, err := r.Run()
	require.ErrorIs(t, err, bundler.ErrMissingFile)

	for _, changed := range [][]string{{logPath}, {p.outPath}, {logPath, p.outPath}} {
		result, err := r.HandleChanges(changed)
		require.NoError(t, err, "no retry expected for %v", changed)
		assert.Nil(t, result)
	}

	notes := p.write(t, "notes.txt", "todo\n")
	_, err = r.HandleChanges([]string{logPath, notes})
	require.ErrorIs(t, err, bundler.ErrMissingFile, "a real change still retries")
}

func TestRebundlerStopsTrackingDroppedFiles(t *testing.T) {
	t.Parallel()

	p := newProject(t, map[string]string{
		"main.py": "from app.a import x\nprint(x)\n",
		"a.py":    "x = 1\n",
	})
	r := watcher.NewRebundler(filepath.Join(p.root, "main.py"), p.root, p.outPath)
	_, err := r.Run()
	require.NoError(t, err)

	mainPath := p.write(t, "main.py", "print(1)\n")
	result, err := r.HandleChanges([]string{mainPath})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, r.Tracked(filepath.Join(p.root, "a.py")))

	a := p.write(t, "a.py", "x = 2\n")
	result, err = r.HandleChanges([]string{a})
	require.NoError(t, err)
	assert.Nil(t, result, "a.py is no longer part of the bundle")
}
