package content

import (
	"bufio"
	"fmt"
	"html"
	"regexp"
	"strings"
)

// RenderPreview converts MDX source into an HTML fragment for the admin
// preview pane. It covers the markdown subset the site's documents actually
// use: headings, paragraphs, unordered/ordered lists, fenced code blocks,
// blockquotes, and the inline bold/italic/code/link spans. MDX-specific
// lines (imports, exports, JSX components) are skipped rather than rendered,
// since the preview has no component runtime.
func RenderPreview(source string) string {
	var out strings.Builder

	scanner := bufio.NewScanner(strings.NewReader(source))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	state := &renderState{}
	for scanner.Scan() {
		renderLine(&out, state, scanner.Text())
	}
	state.closeAll(&out)

	return out.String()
}

type renderState struct {
	inCodeBlock   bool
	inParagraph   bool
	inQuote       bool
	listDepth     int
	listOrdered   []bool
	inFrontmatter bool
	sawContent    bool
}

var (
	headingPattern    = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	unorderedPattern  = regexp.MustCompile(`^(\s*)[-*]\s+(.*)$`)
	orderedPattern    = regexp.MustCompile(`^(\s*)\d+\.\s+(.*)$`)
	jsxLinePattern    = regexp.MustCompile(`^\s*<[A-Z][A-Za-z0-9]*`)
	jsxClosePattern   = regexp.MustCompile(`^\s*</[A-Z][A-Za-z0-9]*>\s*$`)
	boldPattern       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.+?)\*`)
	inlineCodePattern = regexp.MustCompile("`([^`]+)`")
	linkPattern       = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
	imagePattern      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
)

func renderLine(out *strings.Builder, state *renderState, line string) {
	trimmed := strings.TrimSpace(line)

	// YAML frontmatter at the top of the file is metadata, not content.
	if !state.sawContent && trimmed == "---" {
		if state.inFrontmatter {
			state.inFrontmatter = false
		} else {
			state.inFrontmatter = true
		}
		return
	}
	if state.inFrontmatter {
		return
	}
	if trimmed != "" {
		state.sawContent = true
	}

	// Fenced code blocks pass through escaped but otherwise untouched.
	if strings.HasPrefix(trimmed, "```") {
		if state.inCodeBlock {
			out.WriteString("</code></pre>\n")
			state.inCodeBlock = false
		} else {
			state.closeBlocks(out)
			lang := strings.TrimSpace(strings.TrimPrefix(trimmed, "```"))
			if lang != "" {
				fmt.Fprintf(out, "<pre><code class=\"language-%s\">", html.EscapeString(lang))
			} else {
				out.WriteString("<pre><code>")
			}
			state.inCodeBlock = true
		}
		return
	}
	if state.inCodeBlock {
		out.WriteString(html.EscapeString(line))
		out.WriteString("\n")
		return
	}

	// Skip MDX machinery: imports, exports, JSX component lines.
	if strings.HasPrefix(trimmed, "import ") || strings.HasPrefix(trimmed, "export ") {
		return
	}
	if jsxLinePattern.MatchString(trimmed) || jsxClosePattern.MatchString(trimmed) {
		return
	}

	if trimmed == "" {
		state.closeBlocks(out)
		return
	}

	if matches := headingPattern.FindStringSubmatch(trimmed); matches != nil {
		state.closeBlocks(out)
		level := len(matches[1])
		fmt.Fprintf(out, "<h%d>%s</h%d>\n", level, renderInline(matches[2]), level)
		return
	}

	if trimmed == "---" || trimmed == "***" {
		state.closeBlocks(out)
		out.WriteString("<hr>\n")
		return
	}

	if strings.HasPrefix(trimmed, "> ") || trimmed == ">" {
		if !state.inQuote {
			state.closeBlocks(out)
			out.WriteString("<blockquote>\n")
			state.inQuote = true
		}
		text := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
		if text != "" {
			fmt.Fprintf(out, "<p>%s</p>\n", renderInline(text))
		}
		return
	}

	if matches := unorderedPattern.FindStringSubmatch(line); matches != nil {
		state.openListItem(out, listDepthOf(matches[1]), false, matches[2])
		return
	}
	if matches := orderedPattern.FindStringSubmatch(line); matches != nil {
		state.openListItem(out, listDepthOf(matches[1]), true, matches[2])
		return
	}

	// Plain text: open or continue a paragraph.
	if state.listDepth > 0 {
		state.closeLists(out, 0)
	}
	if state.inQuote {
		out.WriteString("</blockquote>\n")
		state.inQuote = false
	}
	if !state.inParagraph {
		out.WriteString("<p>")
		state.inParagraph = true
	} else {
		out.WriteString(" ")
	}
	out.WriteString(renderInline(trimmed))
}

// listDepthOf maps leading indentation to nesting depth (two spaces per level).
func listDepthOf(indent string) int {
	return len(strings.ReplaceAll(indent, "\t", "  "))/2 + 1
}

func (state *renderState) openListItem(out *strings.Builder, depth int, ordered bool, text string) {
	if state.inParagraph {
		out.WriteString("</p>\n")
		state.inParagraph = false
	}
	if state.inQuote {
		out.WriteString("</blockquote>\n")
		state.inQuote = false
	}

	for state.listDepth > depth {
		state.closeOneList(out)
	}
	for state.listDepth < depth {
		if ordered {
			out.WriteString("<ol>\n")
		} else {
			out.WriteString("<ul>\n")
		}
		state.listOrdered = append(state.listOrdered, ordered)
		state.listDepth++
	}

	// Same depth but the list kind flipped: close and reopen.
	if state.listDepth > 0 && state.listOrdered[state.listDepth-1] != ordered {
		state.closeOneList(out)
		if ordered {
			out.WriteString("<ol>\n")
		} else {
			out.WriteString("<ul>\n")
		}
		state.listOrdered = append(state.listOrdered, ordered)
		state.listDepth++
	}

	fmt.Fprintf(out, "<li>%s</li>\n", renderInline(text))
}

func (state *renderState) closeOneList(out *strings.Builder) {
	if state.listDepth == 0 {
		return
	}
	if state.listOrdered[state.listDepth-1] {
		out.WriteString("</ol>\n")
	} else {
		out.WriteString("</ul>\n")
	}
	state.listOrdered = state.listOrdered[:state.listDepth-1]
	state.listDepth--
}

func (state *renderState) closeLists(out *strings.Builder, depth int) {
	for state.listDepth > depth {
		state.closeOneList(out)
	}
}

func (state *renderState) closeBlocks(out *strings.Builder) {
	if state.inParagraph {
		out.WriteString("</p>\n")
		state.inParagraph = false
	}
	if state.inQuote {
		out.WriteString("</blockquote>\n")
		state.inQuote = false
	}
	state.closeLists(out, 0)
}

func (state *renderState) closeAll(out *strings.Builder) {
	if state.inCodeBlock {
		out.WriteString("</code></pre>\n")
		state.inCodeBlock = false
	}
	state.closeBlocks(out)
}

// renderInline escapes the text and applies the inline spans. Escaping runs
// first so user content cannot inject markup; the span replacements then
// insert known-safe tags.
func renderInline(text string) string {
	escaped := html.EscapeString(text)

	// Images before links: the image syntax is a superset of the link syntax.
	escaped = imagePattern.ReplaceAllString(escaped, `<img src="$2" alt="$1">`)

	escaped = inlineCodePattern.ReplaceAllString(escaped, "<code>$1</code>")
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	escaped = italicPattern.ReplaceAllString(escaped, "<em>$1</em>")
	escaped = linkPattern.ReplaceAllString(escaped, `<a href="$2">$1</a>`)

	return escaped
}
