package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds directory and discovery flags for the build command.
type siteFlags struct {
	srcDir     string
	layoutsDir string
	outDir     string
	assetsDir  string
	include    []string
	exclude    []string
	workers    int
}

// notebookFlags holds notebook rendering flags.
type notebookFlags struct {
	language         string
	kernelLanguage   bool
	shell            string
	style            string
	title            string
	titleFromHeading bool
	rewriteLinks     bool
	highlight        string
	highlightStyle   string
	assetPath        string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common   commonFlags
	site     siteFlags
	notebook notebookFlags
	changed  func(name string) bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	output   string
	notebook notebookFlags
	changed  func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSiteFlags adds directory and discovery flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.srcDir, "src", "", "pages and notebooks directory")
	fs.StringVar(&f.layoutsDir, "layouts", "", "layouts directory")
	fs.StringVarP(&f.outDir, "out", "o", "", "output directory")
	fs.StringVar(&f.assetsDir, "assets", "", "directory copied verbatim into the output")
	fs.StringSliceVar(&f.include, "include", nil, "glob of source files to build (repeatable)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "glob of source files to skip (repeatable)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addNotebookFlags adds notebook rendering flags to a FlagSet.
func addNotebookFlags(fs *flag.FlagSet, f *notebookFlags) {
	fs.StringVarP(&f.language, "language", "l", "", "language of code cells")
	fs.BoolVar(&f.kernelLanguage, "kernel-language", false, "use the notebook's declared language")
	fs.StringVar(&f.shell, "shell", "", "page shell name or file")
	fs.StringVar(&f.style, "style", "", "style name or CSS file injected into pages")
	fs.StringVar(&f.title, "title", "", "page title")
	fs.BoolVar(&f.titleFromHeading, "title-from-heading", false, "use the first heading as page title")
	fs.BoolVar(&f.rewriteLinks, "rewrite-links", false, "point .ipynb links at generated .html pages")
	fs.StringVar(&f.highlight, "highlight", "", "code highlighting: client or server")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for server highlighting")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with custom shells/ and styles/")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{changed: fs.Changed}

	addSiteFlags(fs, &f.site)
	addNotebookFlags(fs, &f.notebook)
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, usage io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &renderFlags{changed: fs.Changed}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default: input with .html)")
	addNotebookFlags(fs, &f.notebook)
	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printRenderUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// hasVerboseFlag reports whether args request verbose output, before any
// command parses them.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "-v" || arg == "--verbose" || arg == "--verbose=true" {
			return true
		}
	}
	return false
}
