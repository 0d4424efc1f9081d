package pipeline

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-nbsite/internal/notebook"
)

// ErrRender indicates a cell could not be rendered.
var ErrRender = errors.New("notebook rendering failed")

// EmptyNotebookHTML is rendered when a notebook has no usable cell list.
const EmptyNotebookHTML = "<p>No cells found in this notebook.</p>"

// outputMIMEPreference lists renderable output types, best first.
// Only the first one present in an output is rendered.
var outputMIMEPreference = []string{
	"text/html",
	"image/png",
	"image/jpeg",
	"image/svg+xml",
	"text/plain",
}

// Renderer renders a parsed notebook to an HTML fragment.
type Renderer interface {
	Render(ctx context.Context, nb *notebook.Notebook) (string, error)
}

// NotebookRenderer renders notebook cells to HTML in document order.
// It holds no per-render state and is safe for concurrent use.
type NotebookRenderer struct {
	markdown          MarkdownConverter
	code              CodeHighlighter
	language          string
	useKernelLanguage bool
}

// RendererOption configures a NotebookRenderer.
type RendererOption func(*NotebookRenderer)

// WithLanguage sets the language code cells are tagged with.
func WithLanguage(language string) RendererOption {
	return func(r *NotebookRenderer) {
		if language != "" {
			r.language = language
		}
	}
}

// WithKernelLanguage tags code cells with the notebook's declared kernel
// language when it has one, falling back to the configured language.
func WithKernelLanguage(enabled bool) RendererOption {
	return func(r *NotebookRenderer) {
		r.useKernelLanguage = enabled
	}
}

// WithCodeHighlighter replaces the default ClassHighlighter.
func WithCodeHighlighter(h CodeHighlighter) RendererOption {
	return func(r *NotebookRenderer) {
		if h != nil {
			r.code = h
		}
	}
}

// NewNotebookRenderer creates a renderer using markdown for markdown cells.
func NewNotebookRenderer(markdown MarkdownConverter, opts ...RendererOption) *NotebookRenderer {
	r := &NotebookRenderer{
		markdown: markdown,
		code:     ClassHighlighter{},
		language: DefaultHighlightLanguage,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render folds the notebook's cells into one fragment. Unknown cell and
// output types render nothing. A nil notebook or one without a cell list
// renders EmptyNotebookHTML; an empty cell list renders "".
func (r *NotebookRenderer) Render(ctx context.Context, nb *notebook.Notebook) (string, error) {
	if nb == nil || !nb.HasCells {
		return EmptyNotebookHTML, nil
	}

	language := r.language
	if r.useKernelLanguage {
		if declared := nb.Metadata.Language(); declared != "" {
			language = strings.ToLower(declared)
		}
	}

	var buf strings.Builder
	for i, cell := range nb.Cells {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var err error
		switch cell.Type {
		case notebook.CellMarkdown:
			err = r.renderMarkdown(ctx, &buf, cell)
		case notebook.CellCode:
			err = r.renderCode(&buf, cell, language)
		case notebook.CellRaw:
			buf.WriteString("<pre>" + EscapeHTML(cell.Source) + "</pre>")
		}
		if err != nil {
			return "", fmt.Errorf("%w: cell %d: %w", ErrRender, i, err)
		}
	}
	return buf.String(), nil
}

func (r *NotebookRenderer) renderMarkdown(ctx context.Context, buf *strings.Builder, cell notebook.Cell) error {
	source := cell.Source
	if len(cell.Attachments) > 0 {
		source = RewriteAttachments(source, cell.Attachments)
	}

	html, err := r.markdown.ToHTML(ctx, source)
	if err != nil {
		return err
	}
	buf.WriteString(html)
	return nil
}

func (r *NotebookRenderer) renderCode(buf *strings.Builder, cell notebook.Cell, language string) error {
	code, err := r.code.HighlightCode(cell.Source, language)
	if err != nil {
		return err
	}
	buf.WriteString(code)

	for _, out := range cell.Outputs {
		renderOutput(buf, out)
	}
	return nil
}

// renderOutput appends one code cell output.
func renderOutput(buf *strings.Builder, out notebook.Output) {
	switch out.OutputType {
	case notebook.OutputStream:
		buf.WriteString(`<pre class="code-output">` + EscapeHTML(out.Text) + `</pre>`)
	case notebook.OutputExecuteResult, notebook.OutputDisplayData:
		renderMIMEBundle(buf, out.Data)
	case notebook.OutputError:
		buf.WriteString(`<pre class="error code-output">` + EscapeHTML(out.Traceback) + `</pre>`)
	}
}

// renderMIMEBundle appends the most preferred representation in data.
// A payload that decodes to "" counts as absent, whether it was an empty
// string or an empty (or all-empty) line array.
func renderMIMEBundle(buf *strings.Builder, data notebook.MIMEBundle) {
	for _, mime := range outputMIMEPreference {
		payload, ok := data.Get(mime)
		if !ok || payload == "" {
			continue
		}

		switch mime {
		case "text/html":
			buf.WriteString(`<div class="code-output">` + payload + `</div>`)
		case "text/plain":
			buf.WriteString(`<pre class="code-output">` + EscapeHTML(payload) + `</pre>`)
		case "image/svg+xml":
			buf.WriteString(imageTag(mime, svgBase64(payload)))
		default:
			buf.WriteString(imageTag(mime, payload))
		}
		return
	}
}

func imageTag(mime, base64Data string) string {
	return `<img src="data:` + mime + `;base64,` + base64Data + `" alt="Image Output">`
}

// svgBase64 returns SVG output as base64. Notebooks store SVG as markup
// text, which cannot be placed in a base64 data URL as is.
func svgBase64(payload string) string {
	if strings.HasPrefix(strings.TrimSpace(payload), "<") {
		return base64.StdEncoding.EncodeToString([]byte(payload))
	}
	return payload
}
