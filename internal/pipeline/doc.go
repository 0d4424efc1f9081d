// Package pipeline turns parsed notebooks and page fragments into HTML.
//
// The stages are independent and individually testable:
//   - Cell rendering: NotebookRenderer folds notebook cells into one HTML
//     fragment (markdown via Goldmark, escaped code and outputs)
//   - Markdown preprocessing: attachment references become data URLs and
//     math spans are shielded from Markdown processing
//   - Page composition: ShellComposer embeds a fragment into a document
//     shell, StitchPage embeds a page into its named layout
//   - Post-processing: CSS and title injection, notebook link rewriting
//
// Reading files and deciding where output goes is left to callers.
package pipeline
