package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbsite <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site: stitch pages, render notebooks, copy assets")
	fmt.Fprintln(w, "  render     Render one notebook to a standalone HTML page")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nbsite help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbsite build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build the site. Pages (.html) are embedded into the layout named by their")
	fmt.Fprintln(w, "<!--TEMPLATE:name--> marker, notebooks (.ipynb) become <name>.html, and the")
	fmt.Fprintln(w, "assets directory is copied as is. A failed file does not stop the build.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --src <dir>           Pages and notebooks (default: src)")
	fmt.Fprintln(w, "      --layouts <dir>       Layouts (default: layouts)")
	fmt.Fprintln(w, "  -o, --out <dir>           Output directory (default: dist)")
	fmt.Fprintln(w, "      --assets <dir>        Directory copied into the output")
	fmt.Fprintln(w, "      --include <glob>      Source files to build (default: **/*.html, **/*.ipynb)")
	fmt.Fprintln(w, "      --exclude <glob>      Source files to skip")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printNotebookFlagsUsage(w)
	fmt.Fprintln(w)
	printCommonFlagsUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nbsite render <notebook.ipynb> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one notebook to a standalone HTML page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html)")
	fmt.Fprintln(w)
	printNotebookFlagsUsage(w)
	fmt.Fprintln(w)
	printCommonFlagsUsage(w)
}

func printNotebookFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Notebooks:")
	fmt.Fprintln(w, "  -l, --language <s>        Language of code cells (default: python)")
	fmt.Fprintln(w, "      --kernel-language     Use the notebook's declared language")
	fmt.Fprintln(w, "      --highlight <s>       Highlighting: client (highlight.js) or server")
	fmt.Fprintln(w, "      --highlight-style <s> Chroma style for server highlighting (default: github)")
	fmt.Fprintln(w, "      --shell <name|path>   Page shell containing <!--CONTENT-->")
	fmt.Fprintln(w, "      --style <name|path>   CSS injected into pages: default, compact, or a file")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom shells/ and styles/")
	fmt.Fprintln(w, "      --title <s>           Page title")
	fmt.Fprintln(w, "      --title-from-heading  Use the first heading as page title")
	fmt.Fprintln(w, "      --rewrite-links       Point .ipynb links at generated .html pages")
}

func printCommonFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "General:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: nbsite)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NBSITE_CONFIG, NBSITE_SRC_DIR, NBSITE_OUT_DIR, NBSITE_LAYOUTS_DIR,")
	fmt.Fprintln(w, "  NBSITE_ASSETS_DIR, NBSITE_LANGUAGE, NBSITE_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: nbsite config [build flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the configuration a build would use, after the config file,")
		fmt.Fprintln(env.Stdout, "NBSITE_* variables and flags are applied.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nbsite version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nbsite help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
