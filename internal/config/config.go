package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-nbsite/internal/fileutil"
	"github.com/alnah/go-nbsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxPathLength     = 4096 // Directory and file paths
	MaxLanguageLength = 50   // "python", "javascript"
	MaxTitleLength    = 200  // Page title
	MaxStyleLength    = 100  // Style or chroma style name
	MaxPatternLength  = 1024 // One glob pattern
	MaxPatterns       = 100  // Include or exclude list length
	MaxWorkers        = 64   // Parallel file workers
)

// Highlight modes.
const (
	HighlightClient = "client" // highlight.js in the browser
	HighlightServer = "server" // chroma at build time
)

// Defaults.
const (
	DefaultSrcDir            = "src"
	DefaultLayoutsDir        = "layouts"
	DefaultOutDir            = "dist"
	DefaultHighlightLanguage = "python"
	DefaultHighlightStyle    = "github"
)

// DefaultInclude selects pages and notebooks anywhere under the source directory.
var DefaultInclude = []string{"**/*.html", "**/*.ipynb"}

// Config holds all configuration for a site build.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Notebook NotebookConfig `yaml:"notebook"`
	Assets   AssetsConfig   `yaml:"assets"`
	Build    BuildConfig    `yaml:"build"`
}

// SiteConfig defines where sources, layouts and output live.
type SiteConfig struct {
	SrcDir     string   `yaml:"srcDir"`     // Pages and notebooks (default: src)
	LayoutsDir string   `yaml:"layoutsDir"` // Layouts named by TEMPLATE markers (default: layouts)
	OutDir     string   `yaml:"outDir"`     // Build output (default: dist)
	AssetsDir  string   `yaml:"assetsDir"`  // Copied verbatim into outDir (empty = none)
	Include    []string `yaml:"include"`    // Globs relative to srcDir (default: **/*.html, **/*.ipynb)
	Exclude    []string `yaml:"exclude"`    // Globs relative to srcDir
}

// NotebookConfig defines how notebooks are rendered into pages.
type NotebookConfig struct {
	HighlightLanguage string `yaml:"highlightLanguage"` // Language class on code cells (default: python)
	UseKernelLanguage bool   `yaml:"useKernelLanguage"` // Prefer the notebook's declared language
	Shell             string `yaml:"shell"`             // Shell file path or name (empty = built-in)
	Title             string `yaml:"title"`             // Page title (empty = keep shell title)
	TitleFromHeading  bool   `yaml:"titleFromHeading"`  // Use the first <h1> as title
	RewriteLinks      bool   `yaml:"rewriteLinks"`      // Point .ipynb links at generated .html
	Highlight         string `yaml:"highlight"`         // "client" (default) or "server"
	HighlightStyle    string `yaml:"highlightStyle"`    // chroma style for server mode (default: github)
	Style             string `yaml:"style"`             // Style name or CSS file injected into pages
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Custom shells/ and styles/ (empty = embedded only)
}

// BuildConfig defines build execution options.
type BuildConfig struct {
	Workers int `yaml:"workers"` // 0 = auto
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills empty fields with their default values.
func (c *Config) ApplyDefaults() {
	if c.Site.SrcDir == "" {
		c.Site.SrcDir = DefaultSrcDir
	}
	if c.Site.LayoutsDir == "" {
		c.Site.LayoutsDir = DefaultLayoutsDir
	}
	if c.Site.OutDir == "" {
		c.Site.OutDir = DefaultOutDir
	}
	if len(c.Site.Include) == 0 {
		c.Site.Include = append([]string(nil), DefaultInclude...)
	}
	if c.Notebook.HighlightLanguage == "" {
		c.Notebook.HighlightLanguage = DefaultHighlightLanguage
	}
	if c.Notebook.Highlight == "" {
		c.Notebook.Highlight = HighlightClient
	}
	if c.Notebook.HighlightStyle == "" {
		c.Notebook.HighlightStyle = DefaultHighlightStyle
	}
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for callers who build
// or override a Config themselves.
func (c *Config) Validate() error {
	paths := []struct {
		field, value string
	}{
		{"site.srcDir", c.Site.SrcDir},
		{"site.layoutsDir", c.Site.LayoutsDir},
		{"site.outDir", c.Site.OutDir},
		{"site.assetsDir", c.Site.AssetsDir},
		{"notebook.shell", c.Notebook.Shell},
		{"assets.basePath", c.Assets.BasePath},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.field, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Site.SrcDir != "" && c.Site.OutDir != "" &&
		filepath.Clean(c.Site.SrcDir) == filepath.Clean(c.Site.OutDir) {
		return fmt.Errorf("%w: site.outDir must differ from site.srcDir (%q)", ErrInvalidValue, c.Site.OutDir)
	}

	if err := validatePatterns("site.include", c.Site.Include); err != nil {
		return err
	}
	if err := validatePatterns("site.exclude", c.Site.Exclude); err != nil {
		return err
	}

	if err := validateFieldLength("notebook.highlightLanguage", c.Notebook.HighlightLanguage, MaxLanguageLength); err != nil {
		return err
	}
	if err := validateFieldLength("notebook.title", c.Notebook.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("notebook.highlightStyle", c.Notebook.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("notebook.style", c.Notebook.Style, MaxPathLength); err != nil {
		return err
	}

	if c.Notebook.Highlight != "" {
		switch strings.ToLower(c.Notebook.Highlight) {
		case HighlightClient, HighlightServer:
		default:
			return fmt.Errorf("%w: notebook.highlight %q (must be client or server)", ErrInvalidValue, c.Notebook.Highlight)
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	return nil
}

// ServerHighlight reports whether code is highlighted at build time.
func (c *Config) ServerHighlight() bool {
	return strings.EqualFold(c.Notebook.Highlight, HighlightServer)
}

func validatePatterns(field string, patterns []string) error {
	if len(patterns) > MaxPatterns {
		return fmt.Errorf("%w: %s has %d patterns (max %d)", ErrInvalidValue, field, len(patterns), MaxPatterns)
	}
	for i, p := range patterns {
		name := fmt.Sprintf("%s[%d]", field, i)
		if err := validateFieldLength(name, p, MaxPatternLength); err != nil {
			return err
		}
		if p == "" || !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%w: %s: bad glob %q", ErrInvalidValue, name, p)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback). Empty fields
// are filled with defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		var pathErr *fs.PathError
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		case errors.As(err, &pathErr):
			return nil, fmt.Errorf("reading config file: %w", err)
		case errors.Is(err, yamlutil.ErrNilData):
			// An empty file selects every default.
		default:
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\") || strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}

// SearchPaths returns the files tried, in order, for a config name:
// ./name.yaml, ./name.yml, then the same under ~/.config/go-nbsite/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-nbsite", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
