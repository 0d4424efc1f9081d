package pipeline

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Markers recognized in shells, layouts and pages.
const (
	// ContentMarker is replaced by the page body. Only the first
	// occurrence is replaced.
	ContentMarker = "<!--CONTENT-->"
)

// Sentinel errors for page composition.
var (
	ErrContentMarkerMissing  = errors.New("template has no " + ContentMarker + " marker")
	ErrTemplateMarkerMissing = errors.New("page has no <!--TEMPLATE:name--> marker")
)

// templateMarker names the layout a page is embedded into.
var templateMarker = regexp.MustCompile(`<!--TEMPLATE:(.+?)-->`)

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block into HTML content.
// Tries </head> first, then <body>, then prepends to the HTML.
// CSS content is sanitized to prevent injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" {
		return htmlContent
	}

	if ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>"
	lowerHTML := strings.ToLower(htmlContent)

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}

	if idx := strings.Index(lowerHTML, "<body"); idx != -1 {
		closeIdx := strings.Index(htmlContent[idx:], ">")
		if closeIdx != -1 {
			insertPos := idx + closeIdx + 1
			return htmlContent[:insertPos] + styleBlock + htmlContent[insertPos:]
		}
	}

	return styleBlock + htmlContent
}

// cssEscaper neutralizes sequences that could close the <style> block or
// be taken for a page marker.
var cssEscaper = strings.NewReplacer("</", `<\/`, "<!--", `<\!--`)

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return cssEscaper.Replace(css)
}

// ShellComposer embeds rendered fragments into a document shell.
// The shell is plain HTML with one ContentMarker; no template language
// is involved, so the fragment lands byte for byte.
type ShellComposer struct {
	shell string
}

// NewShellComposer validates shell and returns a composer for it.
func NewShellComposer(shell string) (*ShellComposer, error) {
	if !strings.Contains(shell, ContentMarker) {
		return nil, ErrContentMarkerMissing
	}
	return &ShellComposer{shell: shell}, nil
}

// Compose sets the shell's title, then replaces its first ContentMarker
// with fragment. The title only ever touches the shell, never the
// fragment. An empty title keeps the shell's own.
func (s *ShellComposer) Compose(fragment, title string) string {
	return strings.Replace(InjectTitle(s.shell, title), ContentMarker, fragment, 1)
}

// InjectTitle sets the text of the document's first <title> element.
// Without a <title>, one is inserted before </head>; without a head the
// content is returned unchanged.
func InjectTitle(htmlContent, title string) string {
	if title == "" {
		return htmlContent
	}

	escaped := EscapeHTML(title)
	lowerHTML := strings.ToLower(htmlContent)

	if start := strings.Index(lowerHTML, "<title"); start != -1 {
		openEnd := strings.Index(lowerHTML[start:], ">")
		end := strings.Index(lowerHTML[start:], "</title>")
		if openEnd != -1 && end != -1 && openEnd < end {
			contentStart := start + openEnd + 1
			contentEnd := start + end
			return htmlContent[:contentStart] + escaped + htmlContent[contentEnd:]
		}
	}

	if idx := strings.Index(lowerHTML, "</head>"); idx != -1 {
		return htmlContent[:idx] + "<title>" + escaped + "</title>" + htmlContent[idx:]
	}

	return htmlContent
}

// LayoutName returns the layout named by the page's TEMPLATE marker.
func LayoutName(page string) (string, bool) {
	m := templateMarker.FindStringSubmatch(page)
	if m == nil {
		return "", false
	}
	name := strings.TrimSpace(m[1])
	return name, name != ""
}

// LayoutSource loads layouts by name.
type LayoutSource interface {
	LoadLayout(name string) (string, error)
}

// StitchPage embeds page into the layout its TEMPLATE marker names.
// The whole page, marker comment included, replaces the layout's first
// ContentMarker.
func StitchPage(page string, layouts LayoutSource) (string, error) {
	name, ok := LayoutName(page)
	if !ok {
		return "", ErrTemplateMarkerMissing
	}

	layout, err := layouts.LoadLayout(name)
	if err != nil {
		return "", err
	}

	if !strings.Contains(layout, ContentMarker) {
		return "", fmt.Errorf("layout %q: %w", name, ErrContentMarkerMissing)
	}

	return strings.Replace(layout, ContentMarker, page, 1), nil
}
