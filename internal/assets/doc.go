// Package assets provides page shells, stylesheets and site layouts.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (default shells and styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
//	LayoutLoader              - loads site layouts named by page TEMPLATE markers
//
// EmbeddedLoader provides the built-in notebook shells ("default" with
// client-side highlighting, "static" without) and styles.
//
// FilesystemLoader allows users to provide custom assets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the converter. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the asset is not
// found. This enables overriding specific assets while keeping defaults.
//
// # Directory Structure
//
// Assets are organized by type:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # CSS styles (e.g., compact.css)
//	└── shells/
//	    └── {name}.html          # Page shells with a <!--CONTENT--> marker
//
// Layouts live in the site's layouts directory and are addressed by a path
// relative to it, such as "base.html" or "blog/post".
//
// # Security
//
// Asset names are validated to prevent path traversal attacks. Loaders
// resolve symlinks and verify paths stay within their base directory.
package assets
