package assets

// Built-in asset names.
const (
	// DefaultShellName is the shell with client-side highlighting.
	DefaultShellName = "default"

	// StaticShellName is the shell for pages highlighted at build time.
	StaticShellName = "static"

	// DefaultStyleName is the name of the built-in CSS style.
	DefaultStyleName = "default"
)

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// ListStyles returns the names of the built-in styles, sorted.
func ListStyles() []string {
	return defaultLoader.ListStyles()
}
