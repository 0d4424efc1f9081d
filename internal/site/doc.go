// Package site builds a static site from a source tree.
//
// A build discovers files under the source directory (doublestar
// include/exclude globs), then processes each one independently:
//
//   - pages (.html) are stitched into the layout their <!--TEMPLATE:name-->
//     marker names and written under the output directory at the same
//     relative path
//   - notebooks (.ipynb) are rendered into a page shell and written as
//     <rel>/<base>.html
//   - other matched files, and everything under the assets directory, are
//     copied byte for byte
//
// Files are processed in parallel, bounded by the worker count. A failed
// file produces no output and never stops the others; every file yields a
// BuildResult.
package site
