package watcher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShouldExcludePath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/srv/app")
	fw := &FileWatcher{
		rootDir:      root,
		excludePaths: []string{".git", "__pycache__", "build/out"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"main.py", false},
		{"utils/text.py", false},
		{".git", true},
		{".git/HEAD", true},
		{"__pycache__/main.pyc", true},
		{"utils/__pycache__/text.pyc", true},
		{"build/out/bundle.py", true},
		{"build/other.py", false},
		{".gitignore", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fw.shouldExcludePath(filepath.Join(root, filepath.FromSlash(tt.path))))
		})
	}
}
