package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates Markdown to HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// MarkdownConverter abstracts Markdown to HTML fragment conversion.
type MarkdownConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark (pure Go).
type GoldmarkConverter struct {
	md         goldmark.Markdown
	shieldMath bool
}

type goldmarkOptions struct {
	highlightStyle string
	shieldMath     bool
}

// GoldmarkOption configures a GoldmarkConverter.
type GoldmarkOption func(*goldmarkOptions)

// WithFencedHighlighting highlights fenced code blocks server-side with the
// named chroma style. Output uses CSS classes; see ChromaHighlighter.CSS.
func WithFencedHighlighting(style string) GoldmarkOption {
	return func(o *goldmarkOptions) {
		o.highlightStyle = style
	}
}

// WithMathShield protects $...$ and $$...$$ from Markdown processing.
func WithMathShield(enabled bool) GoldmarkOption {
	return func(o *goldmarkOptions) {
		o.shieldMath = enabled
	}
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions.
// Raw HTML in Markdown is passed through: notebook authors are trusted the
// same way their text/html outputs are.
func NewGoldmarkConverter(opts ...GoldmarkOption) *GoldmarkConverter {
	o := goldmarkOptions{shieldMath: true}
	for _, opt := range opts {
		opt(&o)
	}

	extensions := []goldmark.Extender{
		extension.GFM, // Tables, strikethrough, autolinks, task lists
	}
	if o.highlightStyle != "" {
		extensions = append(extensions, highlighting.NewHighlighting(
			highlighting.WithStyle(o.highlightStyle),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
			),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Raw HTML and data: URLs of every image type
		),
	)
	return &GoldmarkConverter{md: md, shieldMath: o.shieldMath}
}

// ToHTML converts Markdown content to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var spans []string
	if c.shieldMath {
		content, spans = ShieldMath(content)
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	return RestoreMath(buf.String(), spans), nil
}
