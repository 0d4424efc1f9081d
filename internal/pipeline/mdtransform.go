package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Math placeholders use Unicode Private Use Area characters.
// They pass through Goldmark unchanged and are swapped back for the
// original TeX after HTML generation, so MathJax sees the source intact.
const (
	MathStartPlaceholder = "\uE000" // U+E000: Private Use Area
	MathEndPlaceholder   = "\uE001" // U+E001: Private Use Area
)

var mathPlaceholder = regexp.MustCompile(MathStartPlaceholder + `(\d+)` + MathEndPlaceholder)

// linkReferenceDefinition matches a "[label]: destination" line.
var linkReferenceDefinition = regexp.MustCompile(`^ {0,3}\[[^\]\n]+\]:[^\n]*`)

// inlineAngle matches an autolink, an email autolink, or a single-line
// open or closing HTML tag.
var inlineAngle = regexp.MustCompile(`^(?:` +
	`<[A-Za-z][A-Za-z0-9.+-]{1,31}:[^\s<>]*>` +
	`|<[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[A-Za-z0-9.-]+>` +
	`|<[A-Za-z][A-Za-z0-9-]*(?:[ \t]+[A-Za-z_:][A-Za-z0-9_.:-]*(?:[ \t]*=[ \t]*(?:[^\s"'=<>` + "`" + `]+|'[^'\n]*'|"[^"\n]*"))?)*[ \t]*/?>` +
	`|</[A-Za-z][A-Za-z0-9-]*[ \t]*>` +
	`)`)

// ShieldMath replaces $...$ and $$...$$ spans with numbered placeholders.
// Fenced code blocks, inline code spans, link destinations, autolinks and
// inline HTML tags are left untouched, and \$ is never treated as a
// delimiter. Content that already holds a placeholder character is
// returned as is. The returned spans are needed by RestoreMath.
func ShieldMath(content string) (string, []string) {
	if !strings.Contains(content, "$") {
		return content, nil
	}
	if strings.Contains(content, MathStartPlaceholder) || strings.Contains(content, MathEndPlaceholder) {
		return content, nil
	}

	var out strings.Builder
	var spans []string

	lines := strings.SplitAfter(content, "\n")
	var prose strings.Builder
	fence := ""

	flush := func() {
		if prose.Len() == 0 {
			return
		}
		spans = shieldProse(&out, prose.String(), spans)
		prose.Reset()
	}

	for _, line := range lines {
		if fence != "" {
			out.WriteString(line)
			if isFenceClose(line, fence) {
				fence = ""
			}
			continue
		}
		if f := fenceOpen(line); f != "" {
			flush()
			fence = f
			out.WriteString(line)
			continue
		}
		prose.WriteString(line)
	}
	flush()

	return out.String(), spans
}

// RestoreMath swaps placeholders back for their math source, escaped the
// way Goldmark escapes text.
func RestoreMath(html string, spans []string) string {
	if len(spans) == 0 {
		return html
	}
	return mathPlaceholder.ReplaceAllStringFunc(html, func(match string) string {
		m := mathPlaceholder.FindStringSubmatch(match)
		idx, err := strconv.Atoi(m[1])
		if err != nil || idx < 0 || idx >= len(spans) {
			return match
		}
		return codeEscaper.Replace(spans[idx])
	})
}

// shieldProse scans a run of non-fenced Markdown and writes it to out with
// math spans replaced.
func shieldProse(out *strings.Builder, s string, spans []string) []string {
	i := 0
	for i < len(s) {
		c := s[i]
		if i == 0 || s[i-1] == '\n' {
			if loc := linkReferenceDefinition.FindStringIndex(s[i:]); loc != nil {
				out.WriteString(s[i : i+loc[1]])
				i += loc[1]
				continue
			}
		}

		switch {
		case c == '\\' && i+1 < len(s):
			out.WriteString(s[i : i+2])
			i += 2

		case c == '`':
			end := codeSpanEnd(s, i)
			out.WriteString(s[i:end])
			i = end

		case c == ']' && i+1 < len(s) && s[i+1] == '(':
			end := linkTargetEnd(s, i+1)
			out.WriteString(s[i:end])
			i = end

		case c == '<':
			end := angleEnd(s, i)
			out.WriteString(s[i:end])
			i = end

		case strings.HasPrefix(s[i:], "$$"):
			end := indexUnescaped(s, "$$", i+2)
			if end < 0 {
				out.WriteString("$$")
				i += 2
				continue
			}
			spans = appendPlaceholder(out, spans, s[i:end+2])
			i = end + 2

		case c == '$':
			end, ok := inlineMathEnd(s, i)
			if !ok {
				out.WriteByte(c)
				i++
				continue
			}
			spans = appendPlaceholder(out, spans, s[i:end+1])
			i = end + 1

		default:
			out.WriteByte(c)
			i++
		}
	}
	return spans
}

func appendPlaceholder(out *strings.Builder, spans []string, span string) []string {
	out.WriteString(MathStartPlaceholder)
	out.WriteString(strconv.Itoa(len(spans)))
	out.WriteString(MathEndPlaceholder)
	return append(spans, span)
}

// inlineMathEnd finds the closing $ of an inline span opened at start.
// The content must be non-empty, must not begin or end with a space, must
// stay inside one paragraph, and the closing $ must not precede a digit
// (so "$5 and $10" stays prose).
func inlineMathEnd(s string, start int) (int, bool) {
	if start+1 >= len(s) || isSpace(s[start+1]) {
		return 0, false
	}
	for j := start + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '\n':
			if j+1 < len(s) && s[j+1] == '\n' {
				return 0, false
			}
		case '$':
			if j == start+1 || isSpace(s[j-1]) {
				return 0, false
			}
			if j+1 < len(s) && s[j+1] >= '0' && s[j+1] <= '9' {
				return 0, false
			}
			return j, true
		}
	}
	return 0, false
}

// indexUnescaped returns the index of the next sep at or after from that is
// not preceded by a backslash, or -1.
func indexUnescaped(s, sep string, from int) int {
	for from < len(s) {
		idx := strings.Index(s[from:], sep)
		if idx < 0 {
			return -1
		}
		pos := from + idx
		if pos > 0 && s[pos-1] == '\\' {
			from = pos + len(sep)
			continue
		}
		return pos
	}
	return -1
}

// codeSpanEnd returns the index just past the code span opened at start.
// An unmatched backtick run is returned as plain text.
func codeSpanEnd(s string, start int) int {
	n := 0
	for start+n < len(s) && s[start+n] == '`' {
		n++
	}
	run := s[start : start+n]
	for j := start + n; j < len(s); {
		idx := strings.Index(s[j:], run)
		if idx < 0 {
			break
		}
		pos := j + idx
		end := pos + n
		if end < len(s) && s[end] == '`' {
			// Longer run: skip it entirely.
			for end < len(s) && s[end] == '`' {
				end++
			}
			j = end
			continue
		}
		return end
	}
	return start + n
}

// linkTargetEnd returns the index just past the destination (and title) of
// an inline link or image whose parenthesis opens at open. An unclosed
// parenthesis leaves only "(" consumed.
func linkTargetEnd(s string, open int) int {
	depth := 0
	for j := open; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j + 1
			}
		case '\n':
			if j+1 < len(s) && s[j+1] == '\n' {
				return open + 1
			}
		}
	}
	return open + 1
}

// angleEnd returns the index just past an autolink or inline HTML tag that
// opens at start, or start+1 when "<" opens neither.
func angleEnd(s string, start int) int {
	if loc := inlineAngle.FindStringIndex(s[start:]); loc != nil {
		return start + loc[1]
	}
	return start + 1
}

// fenceOpen returns the fence marker if line opens a fenced code block.
func fenceOpen(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(trimmed) && trimmed[n] == ch {
			n++
		}
		if n >= 3 {
			if ch == '`' && strings.Contains(trimmed[n:], "`") {
				return ""
			}
			return trimmed[:n]
		}
	}
	return ""
}

// isFenceClose reports whether line closes a block opened with fence.
func isFenceClose(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, fence) {
		return false
	}
	return strings.Trim(trimmed, fence[:1]) == ""
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
