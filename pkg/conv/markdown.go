package conv

import (
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/inbucket/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	// no smartypants: quotes, dashes and fractions stay as typed
	htmlFlags  = html.FlagsNone
	textPolicy = bluemonday.NewPolicy()
)

func init() {
	// Only structure html2text knows how to flatten survives sanitizing.
	textPolicy.AllowElements("p", "br", "b", "strong", "i", "em", "code", "pre", "blockquote",
		"ul", "ol", "li", "h1", "h2", "h3", "h4", "h5", "h6", "table", "thead", "tbody", "tr", "th", "td")
	textPolicy.AllowAttrs("href").OnElements("a")
}

// literalHTML renders raw HTML found in a reply as text, so `vector<int>`
// or `<script>` reach the reader as written instead of being sanitized away.
func literalHTML(w io.Writer, node ast.Node, entering bool) (ast.WalkStatus, bool) {
	switch n := node.(type) {
	case *ast.HTMLSpan:
		html.EscapeHTML(w, n.Literal)
		return ast.GoToNext, true
	case *ast.HTMLBlock:
		io.WriteString(w, "<pre>")
		html.EscapeHTML(w, n.Literal)
		io.WriteString(w, "</pre>")
		return ast.GoToNext, true
	}
	return ast.GoToNext, false
}

// MarkdownToText renders a model reply written in markdown as plain terminal
// text. Markup is flattened; every character of prose, including angle
// brackets and quotes, is kept.
func MarkdownToText(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags:          htmlFlags,
		RenderNodeHook: literalHTML,
	})
	rendered := markdown.Render(p.Parse([]byte(md)), renderer)

	sanitized := textPolicy.SanitizeBytes(rendered)

	text, err := html2text.FromString(string(sanitized), html2text.Options{
		OmitLinks:    true,
		PrettyTables: true,
	})
	if err != nil {
		return md
	}
	return strings.TrimSpace(text)
}
