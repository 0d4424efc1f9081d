package pipeline

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteNotebookLinks points relative links to .ipynb files at the .html
// pages the build produces for them. Query strings and fragments are kept.
// The fragment is re-serialized, so unrelated markup may be normalized;
// the content is returned unchanged when no link needs rewriting.
//
// Does NOT rewrite:
//   - absolute URLs (http, https, file, data, protocol-relative)
//   - anchors and links to other file types
func RewriteNotebookLinks(fragment string) (string, error) {
	if !strings.Contains(strings.ToLower(fragment), ".ipynb") {
		return fragment, nil
	}

	doc, err := parseFragment(fragment)
	if err != nil {
		return "", err
	}

	if !rewriteNode(doc) {
		return fragment, nil
	}

	return renderFragment(doc)
}

// ExtractTitle returns the text of the first <h1> in htmlContent, with
// whitespace collapsed, or "" if there is none.
func ExtractTitle(htmlContent string) string {
	z := html.NewTokenizer(strings.NewReader(htmlContent))
	depth := 0
	var text strings.Builder

	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			if tok := z.Token(); tok.DataAtom == atom.H1 {
				depth++
			}
		case html.EndTagToken:
			if tok := z.Token(); tok.DataAtom == atom.H1 && depth > 0 {
				if title := strings.Join(strings.Fields(text.String()), " "); title != "" {
					return title
				}
				depth--
				text.Reset()
			}
		case html.TextToken:
			if depth > 0 {
				text.Write(z.Text())
			}
		}
	}
}

// parseFragment parses HTML in a body context and wraps the resulting
// nodes in a document node for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the children of a container built by parseFragment.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode walks the tree and reports whether any href changed.
func rewriteNode(n *html.Node) bool {
	changed := false
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		for i, attr := range n.Attr {
			if attr.Key != "href" {
				continue
			}
			if rewritten, ok := notebookHref(attr.Val); ok {
				n.Attr[i].Val = rewritten
				changed = true
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if rewriteNode(c) {
			changed = true
		}
	}
	return changed
}

// notebookHref returns href with its .ipynb path swapped for .html.
func notebookHref(href string) (string, bool) {
	if !isRelativePath(href) {
		return "", false
	}

	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if !strings.HasSuffix(strings.ToLower(u.Path), ".ipynb") {
		return "", false
	}

	u.Path = u.Path[:len(u.Path)-len(".ipynb")] + ".html"
	return u.String(), true
}

// isRelativePath returns true if the link is a relative path.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}

	if strings.HasPrefix(path, "http://") ||
		strings.HasPrefix(path, "https://") ||
		strings.HasPrefix(path, "file://") ||
		strings.HasPrefix(path, "data:") ||
		strings.HasPrefix(path, "//") {
		return false
	}

	if strings.HasPrefix(path, "#") || strings.HasPrefix(path, "/") {
		return false
	}

	return true
}
