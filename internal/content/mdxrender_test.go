package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPreview(t *testing.T) {
	t.Run("HeadingsAndParagraphs", func(t *testing.T) {
		html := RenderPreview("# Title\n\nFirst paragraph.\n\n## Section\n\nSecond paragraph\nspanning two lines.")
		assert.Contains(t, html, "<h1>Title</h1>")
		assert.Contains(t, html, "<h2>Section</h2>")
		assert.Contains(t, html, "<p>First paragraph.</p>")
		assert.Contains(t, html, "<p>Second paragraph spanning two lines.</p>")
	})

	t.Run("InlineSpans", func(t *testing.T) {
		html := RenderPreview("Some **bold** and *italic* and `code` and a [link](https://example.com).")
		assert.Contains(t, html, "<strong>bold</strong>")
		assert.Contains(t, html, "<em>italic</em>")
		assert.Contains(t, html, "<code>code</code>")
		assert.Contains(t, html, `<a href="https://example.com">link</a>`)
	})

	t.Run("UnorderedList", func(t *testing.T) {
		html := RenderPreview("- one\n- two\n- three")
		assert.Contains(t, html, "<ul>")
		assert.Contains(t, html, "<li>one</li>")
		assert.Contains(t, html, "<li>three</li>")
		assert.Contains(t, html, "</ul>")
	})

	t.Run("OrderedList", func(t *testing.T) {
		html := RenderPreview("1. first\n2. second")
		assert.Contains(t, html, "<ol>")
		assert.Contains(t, html, "<li>first</li>")
		assert.Contains(t, html, "</ol>")
	})

	t.Run("CodeBlockIsEscapedVerbatim", func(t *testing.T) {
		html := RenderPreview("```go\nif a < b {\n\treturn **not bold**\n}\n```")
		assert.Contains(t, html, `<pre><code class="language-go">`)
		assert.Contains(t, html, "if a &lt; b {")
		assert.Contains(t, html, "**not bold**")
		assert.NotContains(t, html, "<strong>")
	})

	t.Run("Blockquote", func(t *testing.T) {
		html := RenderPreview("> quoted wisdom")
		assert.Contains(t, html, "<blockquote>")
		assert.Contains(t, html, "<p>quoted wisdom</p>")
		assert.Contains(t, html, "</blockquote>")
	})

	t.Run("HTMLIsEscaped", func(t *testing.T) {
		html := RenderPreview("hello <script>alert(1)</script>")
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})

	t.Run("MDXMachinerySkipped", func(t *testing.T) {
		source := "import { Chart } from './chart'\n\nexport const meta = {}\n\n<Chart data={points} />\n\nActual prose."
		html := RenderPreview(source)
		assert.NotContains(t, html, "import")
		assert.NotContains(t, html, "export")
		assert.NotContains(t, html, "Chart")
		assert.Contains(t, html, "<p>Actual prose.</p>")
	})

	t.Run("FrontmatterSkipped", func(t *testing.T) {
		html := RenderPreview("---\ntitle: Hidden\n---\n\n# Visible")
		assert.NotContains(t, html, "Hidden")
		assert.Contains(t, html, "<h1>Visible</h1>")
	})

	t.Run("HorizontalRule", func(t *testing.T) {
		html := RenderPreview("above\n\n---\n\nbelow")
		assert.Contains(t, html, "<hr>")
	})

	t.Run("Image", func(t *testing.T) {
		html := RenderPreview("![diagram](https://example.com/d.png)")
		assert.Contains(t, html, `<img src="https://example.com/d.png" alt="diagram">`)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.Equal(t, "", RenderPreview(""))
	})
}
