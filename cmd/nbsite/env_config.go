package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-nbsite/internal/config"
)

// envPrefix marks the environment variables nbsite reads.
const envPrefix = "NBSITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // NBSITE_CONFIG: config file name or path
	SrcDir     string // NBSITE_SRC_DIR: pages and notebooks
	OutDir     string // NBSITE_OUT_DIR: build output
	LayoutsDir string // NBSITE_LAYOUTS_DIR: layouts
	AssetsDir  string // NBSITE_ASSETS_DIR: copied assets
	Language   string // NBSITE_LANGUAGE: code cell language
	Workers    int    // NBSITE_WORKERS: parallel workers
}

// knownEnvVars lists valid NBSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"NBSITE_CONFIG":      true,
	"NBSITE_SRC_DIR":     true,
	"NBSITE_OUT_DIR":     true,
	"NBSITE_LAYOUTS_DIR": true,
	"NBSITE_ASSETS_DIR":  true,
	"NBSITE_LANGUAGE":    true,
	"NBSITE_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
// Invalid NBSITE_WORKERS values are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("NBSITE_CONFIG"),
		SrcDir:     getenv("NBSITE_SRC_DIR"),
		OutDir:     getenv("NBSITE_OUT_DIR"),
		LayoutsDir: getenv("NBSITE_LAYOUTS_DIR"),
		AssetsDir:  getenv("NBSITE_ASSETS_DIR"),
		Language:   getenv("NBSITE_LANGUAGE"),
	}

	if workers := getenv("NBSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized NBSITE_* variables.
// Helps catch typos like NBSITE_OUTDIR instead of NBSITE_OUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.SrcDir != "" {
		cfg.Site.SrcDir = env.SrcDir
	}
	if env.OutDir != "" {
		cfg.Site.OutDir = env.OutDir
	}
	if env.LayoutsDir != "" {
		cfg.Site.LayoutsDir = env.LayoutsDir
	}
	if env.AssetsDir != "" {
		cfg.Site.AssetsDir = env.AssetsDir
	}
	if env.Language != "" {
		cfg.Notebook.HighlightLanguage = env.Language
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}
