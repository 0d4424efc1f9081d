package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

const testNotebook = `{
  "metadata": {},
  "nbformat": 4,
  "nbformat_minor": 5,
  "cells": [
    {"cell_type": "markdown", "metadata": {}, "source": "# Hello"},
    {"cell_type": "code", "metadata": {}, "source": "1 + 1", "outputs": [
      {"output_type": "execute_result", "data": {"text/plain": "2"}}
    ]}
  ]
}`

const testLayout = `<html><head><title>Site</title></head><body><!--CONTENT--></body></html>`

// testEnv returns an Environment backed by buffers and the given variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			list := make([]string, 0, len(vars))
			for k, v := range vars {
				list = append(list, k+"="+v)
			}
			return list
		},
	}
	return env, stdout, stderr
}

// writeTestFiles creates files (slash-separated paths) under root.
func writeTestFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", path, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", path, err)
		}
	}
}

// testSite lays out a small site and returns its root directory.
func testSite(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeTestFiles(t, root, map[string]string{
		"src/index.html":        "<!--TEMPLATE:base.html--><h1>Home</h1>",
		"src/nb/intro.ipynb":    testNotebook,
		"layouts/base.html":     testLayout,
		"assets/css/site.css":   "body { margin: 0; }",
		"config/empty.yaml":     "",
		"config/bad-value.yaml": "notebook:\n  highlight: sideways\n",
	})
	return root
}

// siteArgs returns build flags pointing at the site under root.
func siteArgs(root string) []string {
	return []string{
		"--src", filepath.Join(root, "src"),
		"--layouts", filepath.Join(root, "layouts"),
		"--out", filepath.Join(root, "dist"),
		"--assets", filepath.Join(root, "assets"),
		"--config", filepath.Join(root, "config", "empty.yaml"),
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s): %v", path, err)
	}
	return string(data)
}
