// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-nbsite/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-nbsite/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForSourceDirectory returns hints when the source directory is missing.
func ForSourceDirectory(dir string) string {
	return format("create " + dir + " or set site.srcDir / --src")
}

// ForLayoutNotFound lists the layouts a page could name instead.
func ForLayoutNotFound(available []string) string {
	if len(available) == 0 {
		return format("no layouts found; check site.layoutsDir / --layouts")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateMarker explains how a page selects its layout.
func ForTemplateMarker() string {
	return format("add <!--TEMPLATE:layout.html--> to the page")
}

// ForContentMarker explains where page or notebook content is inserted.
func ForContentMarker() string {
	return format("add <!--CONTENT--> where the page body belongs")
}

// ForInvalidNotebook returns hints for notebooks that are not valid JSON.
func ForInvalidNotebook() string {
	return format("the file is not valid JSON; open and save it again in Jupyter")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
