// Package nbsite renders Jupyter notebooks (.ipynb) into HTML pages.
//
// # Quick Start
//
// Create a converter and convert a notebook:
//
//	conv, err := nbsite.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.ConvertFile(ctx, "analysis.ipynb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("analysis.html", result.HTML, 0644)
//
// The result contains the complete page (result.HTML) and the rendered
// cells alone (result.Fragment). RenderFragment skips the page shell.
//
// # Conversion Pipeline
//
//  1. Notebook decoding (lenient: malformed cells render nothing)
//  2. Cell rendering in document order: markdown via goldmark, code cells
//     and outputs as escaped HTML, images as data URLs
//  3. Optional rewriting of .ipynb links to .html
//  4. Shell composition: the fragment replaces the shell's <!--CONTENT-->
//     marker, then CSS and the page title are injected
//
// Math written as $...$ or $$...$$ in markdown cells reaches the page
// unchanged so MathJax can typeset it.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := nbsite.NewConverter(
//	    nbsite.WithHighlightLanguage("julia"),
//	    nbsite.WithServerHighlighting("monokai"),
//	    nbsite.WithStyle("compact"),
//	    nbsite.WithTitleFromHeading(true),
//	)
//
// # Highlighting
//
// By default code cells are tagged with a language-* class and highlighted
// in the browser by highlight.js, loaded by the built-in shell. With
// WithServerHighlighting, chroma highlights code at build time and its
// stylesheet is injected; the built-in "static" shell then omits highlight.js.
//
// # Custom Assets
//
// Override built-in shells and styles with WithAssetPath:
//
//	assets/
//	├── shells/
//	│   └── course.html   (must contain <!--CONTENT-->)
//	└── styles/
//	    └── course.css
//
// # Concurrency
//
// A Converter is immutable after NewConverter and safe for concurrent use.
// ResolveWorkers sizes parallel builds from GOMAXPROCS.
package nbsite
