package pipeline

import "strings"

// htmlEscaper replaces the five HTML-significant characters. The entity for
// the single quote is the zero-padded numeric form.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes text for embedding in element content or attribute values.
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// codeEscaper matches what Goldmark does to code span text.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)
