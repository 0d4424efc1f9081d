package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-nbsite"
	"github.com/alnah/go-nbsite/internal/assets"
	"github.com/alnah/go-nbsite/internal/config"
	"github.com/alnah/go-nbsite/internal/hints"
	"github.com/alnah/go-nbsite/internal/yamlutil"
)

// defaultConfigName is looked up when neither --config nor NBSITE_CONFIG
// is set. Not finding it selects the built-in defaults.
const defaultConfigName = "nbsite"

// loadConfig resolves configuration before flags are applied:
// defaults < config file < NBSITE_* environment.
func loadConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	var err error
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.LoadConfig(defaultConfigName)
		switch {
		case errors.Is(err, config.ErrConfigNotFound):
			cfg = config.DefaultConfig()
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeSiteFlags applies set build flags to config (CLI wins).
func mergeSiteFlags(f *siteFlags, changed func(string) bool, cfg *config.Config) {
	if f.srcDir != "" {
		cfg.Site.SrcDir = f.srcDir
	}
	if f.layoutsDir != "" {
		cfg.Site.LayoutsDir = f.layoutsDir
	}
	if f.outDir != "" {
		cfg.Site.OutDir = f.outDir
	}
	if f.assetsDir != "" {
		cfg.Site.AssetsDir = f.assetsDir
	}
	if len(f.include) > 0 {
		cfg.Site.Include = f.include
	}
	if len(f.exclude) > 0 {
		cfg.Site.Exclude = f.exclude
	}
	if changed("workers") {
		cfg.Build.Workers = f.workers
	}
}

// mergeNotebookFlags applies set rendering flags to config (CLI wins).
// Boolean flags only apply when given, so --flag=false can turn off a
// setting enabled in the config file.
func mergeNotebookFlags(f *notebookFlags, changed func(string) bool, cfg *config.Config) {
	if f.language != "" {
		cfg.Notebook.HighlightLanguage = f.language
	}
	if f.shell != "" {
		cfg.Notebook.Shell = f.shell
	}
	if f.style != "" {
		cfg.Notebook.Style = f.style
	}
	if f.title != "" {
		cfg.Notebook.Title = f.title
	}
	if f.highlight != "" {
		cfg.Notebook.Highlight = f.highlight
	}
	if f.highlightStyle != "" {
		cfg.Notebook.HighlightStyle = f.highlightStyle
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if changed("kernel-language") {
		cfg.Notebook.UseKernelLanguage = f.kernelLanguage
	}
	if changed("title-from-heading") {
		cfg.Notebook.TitleFromHeading = f.titleFromHeading
	}
	if changed("rewrite-links") {
		cfg.Notebook.RewriteLinks = f.rewriteLinks
	}
}

// converterOptions translates notebook settings into converter options.
func converterOptions(cfg *config.Config) []nbsite.Option {
	opts := []nbsite.Option{
		nbsite.WithHighlightLanguage(cfg.Notebook.HighlightLanguage),
		nbsite.WithKernelLanguage(cfg.Notebook.UseKernelLanguage),
		nbsite.WithShell(cfg.Notebook.Shell),
		nbsite.WithStyle(cfg.Notebook.Style),
		nbsite.WithTitle(cfg.Notebook.Title),
		nbsite.WithTitleFromHeading(cfg.Notebook.TitleFromHeading),
		nbsite.WithLinkRewrite(cfg.Notebook.RewriteLinks),
		nbsite.WithAssetPath(cfg.Assets.BasePath),
	}
	if cfg.ServerHighlight() {
		opts = append(opts, nbsite.WithServerHighlighting(cfg.Notebook.HighlightStyle))
	}
	return opts
}

// newConverter creates the notebook converter for cfg. An unknown style
// gets a hint listing the built-in ones.
func newConverter(cfg *config.Config) (*nbsite.Converter, error) {
	conv, err := nbsite.NewConverter(converterOptions(cfg)...)
	if err != nil {
		if errors.Is(err, nbsite.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(assets.ListStyles()))
		}
		return nil, err
	}
	return conv, nil
}

// runConfig prints the effective configuration as YAML.
func runConfig(args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return err
	}
	mergeSiteFlags(&f.site, f.changed, cfg)
	mergeNotebookFlags(&f.notebook, f.changed, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := yamlutil.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(out)
	return err
}
