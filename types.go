package nbsite

// Input contains the data for a single notebook conversion.
type Input struct {
	Notebook []byte // Raw .ipynb JSON
	Title    string // Page title; overrides the converter's title when set
}

// Result contains the outputs of a notebook conversion.
type Result struct {
	Fragment string // Rendered cells, as embedded in the page
	HTML     []byte // Complete page
	Title    string // Title set on the page, "" if the shell's was kept
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	language          string
	useKernelLanguage bool
	shellInput        string
	styleInput        string
	highlightStyle    string // non-empty selects build-time highlighting
	mathShield        bool
	rewriteLinks      bool
	title             string
	titleFromHeading  bool
	assetPath         string
}

// WithHighlightLanguage sets the language code cells are tagged with.
// Empty keeps DefaultHighlightLanguage.
func WithHighlightLanguage(language string) Option {
	return func(c *Converter) {
		c.cfg.language = language
	}
}

// WithKernelLanguage tags code cells with the notebook's declared language
// when it has one.
func WithKernelLanguage(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.useKernelLanguage = enabled
	}
}

// WithShell sets the page shell by name (loaded from the asset path, then
// the built-in shells) or by file path. The shell must contain <!--CONTENT-->.
func WithShell(nameOrPath string) Option {
	return func(c *Converter) {
		c.cfg.shellInput = nameOrPath
	}
}

// WithStyle sets CSS injected into every page.
// Accepts a style name ("default", "compact"), a file path, or CSS content.
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithServerHighlighting highlights code at build time with the named chroma
// style instead of leaving it to highlight.js in the browser. The matching
// stylesheet is injected into every page.
func WithServerHighlighting(style string) Option {
	return func(c *Converter) {
		if style == "" {
			style = DefaultHighlightStyle
		}
		c.cfg.highlightStyle = style
	}
}

// WithMathShield toggles protection of $...$ and $$...$$ spans in markdown
// cells. Enabled by default.
func WithMathShield(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.mathShield = enabled
	}
}

// WithLinkRewrite points relative .ipynb links at the .html pages a build
// produces for them.
func WithLinkRewrite(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.rewriteLinks = enabled
	}
}

// WithTitle sets the page title.
func WithTitle(title string) Option {
	return func(c *Converter) {
		c.cfg.title = title
	}
}

// WithTitleFromHeading uses the notebook's first <h1> as page title.
// The configured title remains the fallback.
func WithTitleFromHeading(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.titleFromHeading = enabled
	}
}

// WithAssetPath sets a directory with custom shells/ and styles/.
// Assets missing there fall back to the built-in ones.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}
