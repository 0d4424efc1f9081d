package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlight indicates server-side highlighting failed.
var ErrHighlight = errors.New("code highlighting failed")

// DefaultHighlightLanguage tags code cells when no language is configured.
const DefaultHighlightLanguage = "python"

// DefaultHighlightStyle is the chroma style used for server-side highlighting.
const DefaultHighlightStyle = "github"

// CodeHighlighter renders the input block of a code cell.
type CodeHighlighter interface {
	HighlightCode(source, language string) (string, error)
}

// ClassHighlighter leaves highlighting to the browser: it emits escaped code
// tagged with a language-* class for highlight.js.
type ClassHighlighter struct{}

// HighlightCode wraps escaped source in a tagged pre/code block.
func (ClassHighlighter) HighlightCode(source, language string) (string, error) {
	return `<pre class="code-cell"><code class="language-` + EscapeHTML(language) + `">` +
		EscapeHTML(source) + `</code></pre>`, nil
}

// ChromaHighlighter highlights code at build time with chroma.
// Output uses CSS classes; the matching stylesheet comes from CSS.
type ChromaHighlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewChromaHighlighter creates a ChromaHighlighter for the named style.
// Unknown style names fall back to chroma's default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	return &ChromaHighlighter{
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
		style:     styles.Get(styleName),
	}
}

// HighlightCode tokenizes source with the lexer for language (plain text if
// unknown) and wraps the result in a code-cell container.
func (h *ChromaHighlighter) HighlightCode(source, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}

	var buf strings.Builder
	buf.WriteString(`<div class="code-cell language-` + EscapeHTML(language) + `">`)
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	buf.WriteString(`</div>`)
	return buf.String(), nil
}

// CSS returns the stylesheet for the highlighter's classes.
func (h *ChromaHighlighter) CSS() (string, error) {
	var buf strings.Builder
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return buf.String(), nil
}
