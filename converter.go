package nbsite

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-nbsite/internal/assets"
	"github.com/alnah/go-nbsite/internal/fileutil"
	"github.com/alnah/go-nbsite/internal/notebook"
	"github.com/alnah/go-nbsite/internal/pipeline"
)

// Defaults exposed for callers building their own configuration.
const (
	DefaultHighlightLanguage = pipeline.DefaultHighlightLanguage
	DefaultHighlightStyle    = pipeline.DefaultHighlightStyle
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CodeHighlighter   = pipeline.ClassHighlighter{}
	_ pipeline.CodeHighlighter   = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.Renderer          = (*pipeline.NotebookRenderer)(nil)
	_ pipeline.CSSInjector       = (*pipeline.CSSInjection)(nil)
)

// Converter turns notebooks into HTML pages.
// Create with NewConverter. A Converter holds no per-conversion state and
// is safe for concurrent use.
type Converter struct {
	cfg         converterConfig
	assetLoader assets.AssetLoader
	renderer    pipeline.Renderer
	composer    *pipeline.ShellComposer
	cssInjector pipeline.CSSInjector
	css         string
}

// NewConverter creates a Converter.
// Returns an error if the shell or style cannot be loaded, or the shell has
// no <!--CONTENT--> marker.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			language:   DefaultHighlightLanguage,
			mathShield: true,
		},
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	if err := c.buildRenderer(); err != nil {
		return nil, err
	}
	shell, err := c.loadShell()
	if err != nil {
		return nil, err
	}
	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	// Styles go into the shell once, before any fragment is embedded.
	composer, err := pipeline.NewShellComposer(c.cssInjector.InjectCSS(context.Background(), shell, c.css))
	if err != nil {
		return nil, fmt.Errorf("shell: %w", err)
	}
	c.composer = composer

	return c, nil
}

// RenderFragment renders notebook JSON to the HTML fragment that goes
// inside the page shell.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) RenderFragment(ctx context.Context, data []byte) (fragment string, err error) {
	defer recoverInternal(&err)

	nb, err := parseNotebook(data)
	if err != nil {
		return "", err
	}
	return c.fragment(ctx, nb)
}

// Convert renders notebook JSON into a complete page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer recoverInternal(&err)

	nb, err := parseNotebook(input.Notebook)
	if err != nil {
		return nil, err
	}
	return c.page(ctx, nb, input.Title)
}

// ConvertFile reads the notebook at path and renders it into a complete page.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) ConvertFile(ctx context.Context, path string) (result *Result, err error) {
	defer recoverInternal(&err)

	nb, err := notebook.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.page(ctx, nb, "")
}

// page renders nb and embeds it into the shell.
func (c *Converter) page(ctx context.Context, nb *notebook.Notebook, title string) (*Result, error) {
	fragment, err := c.fragment(ctx, nb)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title = c.resolveTitle(fragment, title)
	htmlContent := c.composer.Compose(fragment, title)

	return &Result{
		Fragment: fragment,
		HTML:     []byte(htmlContent),
		Title:    title,
	}, nil
}

func (c *Converter) fragment(ctx context.Context, nb *notebook.Notebook) (string, error) {
	fragment, err := c.renderer.Render(ctx, nb)
	if err != nil {
		return "", err
	}

	if c.cfg.rewriteLinks {
		fragment, err = pipeline.RewriteNotebookLinks(fragment)
		if err != nil {
			return "", fmt.Errorf("rewriting notebook links: %w", err)
		}
	}
	return fragment, nil
}

// resolveTitle picks the page title: explicit input first, then the first
// heading when enabled, then the configured title.
func (c *Converter) resolveTitle(fragment, inputTitle string) string {
	if inputTitle != "" {
		return inputTitle
	}
	if c.cfg.titleFromHeading {
		if heading := pipeline.ExtractTitle(fragment); heading != "" {
			return heading
		}
	}
	return c.cfg.title
}

// buildRenderer wires the markdown converter and code highlighter.
func (c *Converter) buildRenderer() error {
	mdOpts := []pipeline.GoldmarkOption{pipeline.WithMathShield(c.cfg.mathShield)}
	renderOpts := []pipeline.RendererOption{
		pipeline.WithLanguage(c.cfg.language),
		pipeline.WithKernelLanguage(c.cfg.useKernelLanguage),
	}

	if c.cfg.highlightStyle != "" {
		highlighter := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
		css, err := highlighter.CSS()
		if err != nil {
			return err
		}
		c.css = css
		mdOpts = append(mdOpts, pipeline.WithFencedHighlighting(c.cfg.highlightStyle))
		renderOpts = append(renderOpts, pipeline.WithCodeHighlighter(highlighter))
	}

	c.renderer = pipeline.NewNotebookRenderer(pipeline.NewGoldmarkConverter(mdOpts...), renderOpts...)
	return nil
}

// loadShell resolves the shell input (name or path) and validates its marker.
// Build-time highlighting defaults to the shell without highlight.js.
func (c *Converter) loadShell() (string, error) {
	input := c.cfg.shellInput
	if input == "" {
		input = assets.DefaultShellName
		if c.cfg.highlightStyle != "" {
			input = assets.StaticShellName
		}
	}

	var shell string
	if fileutil.IsFilePath(input) || fileutil.IsHTML(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return "", fmt.Errorf("loading shell file %q: %w", input, err)
		}
		shell = string(content)
	} else {
		content, err := c.assetLoader.LoadShell(input)
		if err != nil {
			return "", fmt.Errorf("loading shell %q: %w", input, err)
		}
		shell = content
	}

	if _, err := pipeline.NewShellComposer(shell); err != nil {
		return "", fmt.Errorf("shell %q: %w", input, err)
	}
	return shell, nil
}

// resolveStyle resolves the style input (name, path, or CSS content) and
// appends it after the highlighting CSS, so user rules win.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		return nil
	}

	var css string
	switch {
	case strings.Contains(input, "{"):
		css = input
	case fileutil.IsFilePath(input) || fileutil.IsCSS(input):
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		css = string(content)
	default:
		content, err := c.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		css = content
	}

	if c.css != "" {
		c.css += "\n"
	}
	c.css += css
	return nil
}

// parseNotebook parses raw notebook JSON.
func parseNotebook(data []byte) (*notebook.Notebook, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidNotebook)
	}
	return notebook.Parse(data)
}

// recoverInternal turns a panic into an error on the deferring function.
func recoverInternal(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("internal error: %v", r)
	}
}
