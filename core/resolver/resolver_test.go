package resolver_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/scriptexport/core/resolver"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := filepath.Join("srv", "app")
	r := resolver.NewResolver(root, ".py")

	tests := []struct {
		line string
		want string
	}{
		{"from app.utils.io import read\n", filepath.Join(root, "utils", "io.py")},
		{"import app.helpers\n", filepath.Join(root, "helpers.py")},
		{"import app.pkg.mod as m\n", filepath.Join(root, "pkg", "mod.py")},
		{"from app.models import (User, Group)\n", filepath.Join(root, "models.py")},
		// The last token naming the project wins.
		{"import app.b, app.c\n", filepath.Join(root, "c.py")},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, err := r.Resolve(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Parallel()

	r := resolver.NewResolver(filepath.Join("srv", "app"), ".py")

	lines := []string{
		"from app import x\n",
		"import app\n",
		"import app..util\n",
		"from app.util. import x\n",
		"import os\n",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			t.Parallel()

			_, err := r.Resolve(line)
			require.ErrorIs(t, err, resolver.ErrResolution)

			var resErr *resolver.ResolutionError
			require.ErrorAs(t, err, &resErr)
			assert.Equal(t, line, resErr.Line)
		})
	}
}

func TestResolveExtension(t *testing.T) {
	t.Parallel()

	r := resolver.NewResolver("app", ".pyw")

	got, err := r.Resolve("from app.gui.window import Window\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("app", "gui", "window.pyw"), got)
}

func TestProjectRootName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "app", resolver.ProjectRootName(filepath.Join("srv", "app")))
	assert.Equal(t, "app", resolver.ProjectRootName(filepath.Join("srv", "app")+string(filepath.Separator)))
	assert.Equal(t, "app", resolver.NewResolver("app", ".py").ProjectRoot())
}

func TestResolutionErrorMessage(t *testing.T) {
	t.Parallel()

	err := &resolver.ResolutionError{Line: "import app\n", Reason: "no module"}
	assert.Equal(t, `cannot resolve local import "import app": no module`, err.Error())

	err.Path = "main.py"
	err.LineNo = 7
	assert.Equal(t, `main.py:7: cannot resolve local import "import app": no module`, err.Error())
}
