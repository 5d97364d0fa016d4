package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tristendillon/scriptexport/core/parser"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	classifier := parser.NewClassifier("app")

	tests := []struct {
		line string
		want parser.LineKind
	}{
		{"from app.utils import x\n", parser.LocalImport},
		{"import app.utils\n", parser.LocalImport},
		{"from app.a.b import (c, d)\n", parser.LocalImport},
		{"from app import x\n", parser.LocalImport},
		// Prefix match only, a sibling package sharing the prefix counts
		// as local.
		{"import apple\n", parser.LocalImport},
		{"from apps.x import y\n", parser.LocalImport},
		{"import os\n", parser.LibraryImport},
		{"import asyncio\n", parser.LibraryImport},
		{"import numpy as np\n", parser.LibraryImport},
		{"from os import path\n", parser.LibraryImport},
		{"from mypkg.app import thing\n", parser.LibraryImport},
		{"from import x\n", parser.LibraryImport},
		{"    import os\n", parser.Plain},
		{"# import os\n", parser.Plain},
		{"important = 1\n", parser.Plain},
		{"fromage = 'brie'\n", parser.Plain},
		{"x = 1\n", parser.Plain},
		{"\n", parser.Plain},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classifier.Classify(tt.line), tt.want.String())
		})
	}
}

func TestClassifierQuotesProjectRoot(t *testing.T) {
	t.Parallel()

	classifier := parser.NewClassifier("my.app")

	assert.True(t, classifier.IsLocalImport("from my.app.util import x\n"))
	assert.False(t, classifier.IsLocalImport("from myxapp.util import x\n"))
	assert.Equal(t, "my.app", classifier.ProjectRoot())
}

func TestLineKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "plain", parser.Plain.String())
	assert.Equal(t, "local-import", parser.LocalImport.String())
	assert.Equal(t, "library-import", parser.LibraryImport.String())
	assert.Equal(t, "unknown", parser.LineKind(42).String())
}
