package nbsite

// Notes:
// - Converter tests run the real pipeline: it is pure Go and needs no browser
// - Internal fields are replaced with fakes to test panic recovery and
//   renderer errors

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-nbsite/internal/notebook"
)

const sampleNotebook = `{
  "metadata": {"language_info": {"name": "R"}},
  "cells": [
    {"cell_type": "markdown", "source": ["# Sales ", "report\n", "Total is $x^2$"]},
    {"cell_type": "code", "source": "print(1)", "outputs": [
      {"output_type": "stream", "name": "stdout", "text": ["1\n"]}
    ]},
    {"cell_type": "markdown", "source": "See [next](next.ipynb#top)."}
  ]
}`

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type panicRenderer struct{}

func (panicRenderer) Render(ctx context.Context, nb *notebook.Notebook) (string, error) {
	panic("boom")
}

type errRenderer struct{ err error }

func (r errRenderer) Render(ctx context.Context, nb *notebook.Notebook) (string, error) {
	return "", r.err
}

func newTestConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	conv, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	return conv
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// NewConverter
// ---------------------------------------------------------------------------

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	noMarker := writeTestFile(t, dir, "shells/nomarker.html", "<html><body></body></html>")

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown shell name",
			opts:    []Option{WithShell("nonexistent")},
			wantErr: ErrShellNotFound,
		},
		{
			name:    "shell without content marker",
			opts:    []Option{WithShell(noMarker)},
			wantErr: ErrShellMarkerMissing,
		},
		{
			name:    "missing shell file",
			opts:    []Option{WithShell(filepath.Join(dir, "missing.html"))},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "unknown style name",
			opts:    []Option{WithStyle("nonexistent")},
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "missing style file",
			opts:    []Option{WithStyle(filepath.Join(dir, "missing.css"))},
			wantErr: os.ErrNotExist,
		},
		{
			name:    "invalid asset path",
			opts:    []Option{WithAssetPath(filepath.Join(dir, "does-not-exist"))},
			wantErr: ErrInvalidAssetPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// RenderFragment
// ---------------------------------------------------------------------------

func TestConverter_RenderFragment(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	got, err := conv.RenderFragment(context.Background(), []byte(sampleNotebook))
	if err != nil {
		t.Fatalf("RenderFragment() unexpected error: %v", err)
	}

	for _, want := range []string{
		"<h1>Sales report</h1>",
		"$x^2$",
		`<pre class="code-cell"><code class="language-python">print(1)</code></pre>`,
		`<pre class="code-output">1` + "\n" + `</pre>`,
		`href="next.ipynb#top"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderFragment() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<html") {
		t.Error("RenderFragment() should not include the shell")
	}
}

func TestConverter_RenderFragment_Options(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []Option
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "highlight language",
			opts:         []Option{WithHighlightLanguage("julia")},
			wantContains: []string{`class="language-julia"`},
		},
		{
			name:         "kernel language",
			opts:         []Option{WithKernelLanguage(true)},
			wantContains: []string{`class="language-r"`},
		},
		{
			name:         "link rewrite",
			opts:         []Option{WithLinkRewrite(true)},
			wantContains: []string{`href="next.html#top"`},
			wantExcludes: []string{"next.ipynb"},
		},
		{
			name:         "server highlighting",
			opts:         []Option{WithServerHighlighting("monokai")},
			wantContains: []string{`class="chroma"`, `code-cell language-python`},
			wantExcludes: []string{`<code class="language-python">`},
		},
		{
			name:         "math shield disabled",
			opts:         []Option{WithMathShield(false)},
			wantContains: []string{"<h1>Sales report</h1>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, tt.opts...)
			got, err := conv.RenderFragment(context.Background(), []byte(sampleNotebook))
			if err != nil {
				t.Fatalf("RenderFragment() unexpected error: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RenderFragment() missing %q in:\n%s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("RenderFragment() should not contain %q", exclude)
				}
			}
		})
	}
}

func TestConverter_RenderFragment_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty input", input: "", wantErr: ErrInvalidNotebook},
		{name: "malformed JSON", input: `{"cells": [`, wantErr: ErrInvalidNotebook},
	}

	conv := newTestConverter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := conv.RenderFragment(context.Background(), []byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RenderFragment() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverter_RenderFragment_NoCells(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)

	got, err := conv.RenderFragment(context.Background(), []byte(`{"metadata": {}}`))
	if err != nil {
		t.Fatalf("RenderFragment() unexpected error: %v", err)
	}
	if got != "<p>No cells found in this notebook.</p>" {
		t.Errorf("RenderFragment() = %q, want placeholder", got)
	}

	got, err = conv.RenderFragment(context.Background(), []byte(`{"cells": []}`))
	if err != nil {
		t.Fatalf("RenderFragment() unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("RenderFragment() = %q, want empty", got)
	}
}

// ---------------------------------------------------------------------------
// Convert
// ---------------------------------------------------------------------------

func TestConverter_Convert_DefaultShell(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	result, err := conv.Convert(context.Background(), Input{Notebook: []byte(sampleNotebook)})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	page := string(result.HTML)
	if !strings.Contains(page, result.Fragment) {
		t.Error("page should embed the fragment verbatim")
	}
	if strings.Contains(page, "<!--CONTENT-->") {
		t.Error("content marker should be replaced")
	}
	if !strings.Contains(page, "highlight.min.js") {
		t.Error("default shell should load highlight.js")
	}
	if !strings.Contains(page, "<title>Notebook</title>") {
		t.Error("shell title should be kept when no title is configured")
	}
	if result.Title != "" {
		t.Errorf("Title = %q, want empty", result.Title)
	}
}

func TestConverter_Convert_ServerHighlighting(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithServerHighlighting(""))
	result, err := conv.Convert(context.Background(), Input{Notebook: []byte(sampleNotebook)})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	page := string(result.HTML)
	if strings.Contains(page, "highlight.min.js") {
		t.Error("build-time highlighting should use the shell without highlight.js")
	}
	if !strings.Contains(page, ".chroma") {
		t.Error("highlighting stylesheet should be injected")
	}
}

func TestConverter_Convert_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []Option
		input string
		want  string
	}{
		{
			name: "configured title",
			opts: []Option{WithTitle("Course")},
			want: "Course",
		},
		{
			name: "heading title",
			opts: []Option{WithTitle("Course"), WithTitleFromHeading(true)},
			want: "Sales report",
		},
		{
			name:  "input title wins",
			opts:  []Option{WithTitle("Course"), WithTitleFromHeading(true)},
			input: "Chapter <1>",
			want:  "Chapter <1>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, tt.opts...)
			result, err := conv.Convert(context.Background(), Input{
				Notebook: []byte(sampleNotebook),
				Title:    tt.input,
			})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if result.Title != tt.want {
				t.Errorf("Title = %q, want %q", result.Title, tt.want)
			}
			wantTag := "<title>" + escapeForTest(tt.want) + "</title>"
			if !strings.Contains(string(result.HTML), wantTag) {
				t.Errorf("page missing %q", wantTag)
			}
		})
	}
}

func escapeForTest(s string) string {
	return strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(s)
}

func TestConverter_Convert_HeadingFallback(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, WithTitle("Course"), WithTitleFromHeading(true))
	result, err := conv.Convert(context.Background(), Input{
		Notebook: []byte(`{"cells": [{"cell_type": "code", "source": "x = 1", "outputs": []}]}`),
	})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if result.Title != "Course" {
		t.Errorf("Title = %q, want configured fallback", result.Title)
	}
}

func TestConverter_Convert_Style(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	stylePath := writeTestFile(t, dir, "site.css", "body { color: #123456; }")

	tests := []struct {
		name  string
		style string
		want  string
	}{
		{name: "embedded style", style: "compact", want: "system-ui"},
		{name: "style file", style: stylePath, want: "#123456"},
		{name: "inline CSS", style: "p { margin: 7px; }", want: "margin: 7px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, WithStyle(tt.style))
			result, err := conv.Convert(context.Background(), Input{Notebook: []byte(sampleNotebook)})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !strings.Contains(string(result.HTML), tt.want) {
				t.Errorf("page missing style content %q", tt.want)
			}
		})
	}
}

func TestConverter_Convert_CustomShell(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTestFile(t, dir, "shells/plain.html",
		"<html><head><title>x</title></head><body><main><!--CONTENT--></main></body></html>")
	shellFile := writeTestFile(t, dir, "file-shell.html",
		"<html><head></head><body><!--CONTENT--><!--CONTENT--></body></html>")

	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{
			name: "shell name from asset path",
			opts: []Option{WithAssetPath(dir), WithShell("plain")},
			want: "<main>" + "<p>x</p>\n" + "</main>",
		},
		{
			name: "shell file, first marker only",
			opts: []Option{WithShell(shellFile)},
			want: "<body><p>x</p>\n<!--CONTENT--></body>",
		},
		{
			name: "asset path falls back to embedded shell",
			opts: []Option{WithAssetPath(dir)},
			want: "highlight.min.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, tt.opts...)
			result, err := conv.Convert(context.Background(), Input{
				Notebook: []byte(`{"cells": [{"cell_type": "markdown", "source": "x"}]}`),
			})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			if !strings.Contains(string(result.HTML), tt.want) {
				t.Errorf("page missing %q in:\n%s", tt.want, result.HTML)
			}
		})
	}
}

func TestConverter_Convert_OutputHTMLUntouched(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	headShell := writeTestFile(t, dir, "head.html", "<html><head></head><body><!--CONTENT--></body></html>")
	bareShell := writeTestFile(t, dir, "bare.html", "<body><!--CONTENT--></body>")

	const output = `<svg><title>Figure 1</title></svg></head>`
	nb := `{"cells": [{"cell_type": "code", "source": "plot()", "outputs": [
		{"output_type": "display_data", "data": {"text/html": "<svg><title>Figure 1</title></svg></head>"}}
	]}]}`

	tests := []struct {
		name     string
		shell    string
		wantHead string
	}{
		{
			name:     "title goes into shell head",
			shell:    headShell,
			wantHead: "<head><style>p { margin: 3px; }</style><title>My Page</title></head>",
		},
		{
			name:     "shell without head",
			shell:    bareShell,
			wantHead: "<body><style>p { margin: 3px; }</style>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, WithShell(tt.shell), WithTitle("My Page"), WithStyle("p { margin: 3px; }"))
			result, err := conv.Convert(context.Background(), Input{Notebook: []byte(nb)})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}

			page := string(result.HTML)
			if !strings.Contains(page, `<div class="code-output">`+output+`</div>`) {
				t.Errorf("output HTML should be embedded verbatim, got:\n%s", page)
			}
			if !strings.Contains(page, tt.wantHead) {
				t.Errorf("page missing %q in:\n%s", tt.wantHead, page)
			}
		})
	}
}

func TestConverter_Convert_RendererError(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	conv.renderer = errRenderer{err: ErrRender}

	_, err := conv.Convert(context.Background(), Input{Notebook: []byte(sampleNotebook)})
	if !errors.Is(err, ErrRender) {
		t.Errorf("Convert() error = %v, want ErrRender", err)
	}
}

func TestConverter_Convert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t)
	conv.renderer = panicRenderer{}

	result, err := conv.Convert(context.Background(), Input{Notebook: []byte(sampleNotebook)})
	if err == nil || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("Convert() error = %v, want internal error", err)
	}
	if result != nil {
		t.Error("Convert() result should be nil after a panic")
	}

	if _, err := conv.RenderFragment(context.Background(), []byte(sampleNotebook)); err == nil {
		t.Error("RenderFragment() should recover the panic into an error")
	}
}

func TestConverter_Convert_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	conv := newTestConverter(t)
	_, err := conv.Convert(ctx, Input{Notebook: []byte(sampleNotebook)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// ConvertFile
// ---------------------------------------------------------------------------

func TestConverter_ConvertFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeTestFile(t, dir, "report.ipynb", sampleNotebook)
	badPath := writeTestFile(t, dir, "bad.ipynb", "{not json")

	conv := newTestConverter(t)

	t.Run("renders file", func(t *testing.T) {
		t.Parallel()

		result, err := conv.ConvertFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ConvertFile() unexpected error: %v", err)
		}
		if !strings.Contains(string(result.HTML), "<h1>Sales report</h1>") {
			t.Error("page missing rendered heading")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ConvertFile(context.Background(), filepath.Join(dir, "missing.ipynb"))
		if !errors.Is(err, ErrReadNotebook) {
			t.Errorf("ConvertFile() error = %v, want ErrReadNotebook", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ConvertFile() error = %v, want wrapped os.ErrNotExist", err)
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		_, err := conv.ConvertFile(context.Background(), badPath)
		if !errors.Is(err, ErrInvalidNotebook) {
			t.Errorf("ConvertFile() error = %v, want ErrInvalidNotebook", err)
		}
		if !strings.Contains(err.Error(), "bad.ipynb") {
			t.Errorf("error should name the file, got %v", err)
		}
	})
}
