package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/go-nbsite/internal/notebook"
)

// attachmentRef matches ![alt](attachment:NAME).
var attachmentRef = regexp.MustCompile(`!\[([^\]]*)\]\(attachment:([^)]+)\)`)

// attachmentMIMEPriority decides which representation of a multi-type
// attachment is inlined. Types not listed fall back to document order.
var attachmentMIMEPriority = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

// RewriteAttachments replaces attachment image references with data URLs.
// References to names missing from attachments are left unchanged.
func RewriteAttachments(source string, attachments notebook.Attachments) string {
	if len(attachments) == 0 {
		return source
	}

	return attachmentRef.ReplaceAllStringFunc(source, func(match string) string {
		m := attachmentRef.FindStringSubmatch(match)
		alt, name := m[1], m[2]

		bundle, ok := attachments[name]
		if !ok {
			return match
		}
		entry, ok := pickAttachment(bundle)
		if !ok {
			return match
		}

		return "![" + alt + "](data:" + entry.MIME + ";base64," + stripSpace(entry.Data) + ")"
	})
}

// pickAttachment returns the preferred representation of an attachment.
func pickAttachment(bundle notebook.MIMEBundle) (notebook.MIMEEntry, bool) {
	for _, mime := range attachmentMIMEPriority {
		if data, ok := bundle.Get(mime); ok {
			return notebook.MIMEEntry{MIME: mime, Data: data}, true
		}
	}
	return bundle.First()
}

// stripSpace removes line wrapping from base64 payloads, which would
// otherwise end the Markdown link destination early.
func stripSpace(s string) string {
	if !strings.ContainsAny(s, " \t\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), "")
}
