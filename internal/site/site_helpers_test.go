package site

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alnah/go-nbsite"
)

var errFakeConvert = errors.New("fake conversion failure")

// fakeConverter renders "<nb>NAME</nb>" for each notebook and fails for
// notebooks whose name contains "broken".
type fakeConverter struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeConverter) ConvertFile(ctx context.Context, path string) (*nbsite.Result, error) {
	f.mu.Lock()
	f.paths = append(f.paths, path)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name := filepath.Base(path)
	if strings.Contains(name, "broken") {
		return nil, errFakeConvert
	}
	return &nbsite.Result{HTML: []byte("<nb>" + name + "</nb>")}, nil
}

func (f *fakeConverter) converted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.paths)
}

// writeFiles creates files (slash-separated path -> content) under root.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// testSite lays out a small project and returns its config.
func testSite(t *testing.T) Config {
	t.Helper()
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"src/index.html":            "<!--TEMPLATE:base.html--><h1>Home</h1>",
		"src/blog/post.html":        "<!--TEMPLATE:base--><p>Post</p>",
		"src/nb/analysis.ipynb":     `{"cells": []}`,
		"src/notes.txt":             "not built by default",
		"layouts/base.html":         "<html><body><!--CONTENT--></body></html>",
		"layouts/partials/nav.html": "<nav></nav>",
		"assets/css/site.css":       "body{}",
	})
	return Config{
		SrcDir:     filepath.Join(root, "src"),
		LayoutsDir: filepath.Join(root, "layouts"),
		OutDir:     filepath.Join(root, "dist"),
		AssetsDir:  filepath.Join(root, "assets"),
		Workers:    2,
	}
}

func newTestBuilder(t *testing.T, cfg Config) (*Builder, *fakeConverter) {
	t.Helper()
	conv := &fakeConverter{}
	b, err := NewBuilder(cfg, conv)
	require.NoError(t, err)
	return b, conv
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
