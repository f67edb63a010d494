package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/styles"
	"github.com/vkrunjs/website/internal/syntax"
	"golang.org/x/net/html"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func parseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func isElement(tag string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == tag
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	for _, t := range findAll(n, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func TestHome_Structure(t *testing.T) {
	doc := parseFragment(t, renderString(t, DefaultHome().View()))

	logos := findAll(doc, func(n *html.Node) bool {
		v, ok := attr(n, "aria-label")
		return n.Type == html.ElementNode && n.Data == "svg" && ok && v == "vkrun"
	})
	assert.Len(t, logos, 1, "exactly one logo")
	assert.Len(t, findAll(doc, isElement("pre")), 1, "exactly one code block")

	links := findAll(doc, isElement("a"))
	require.Len(t, links, 2, "exactly two links")

	href, _ := attr(links[0], "href")
	assert.Equal(t, consts.RouteDocumentationIntro, href)
	assert.Equal(t, DocumentationLabel, textContent(links[0]))
	_, hasTarget := attr(links[0], "target")
	assert.False(t, hasTarget, "documentation opens in the same context")

	href, _ = attr(links[1], "href")
	assert.Equal(t, "https://github.com/vkrunjs/vkrun", href)
	assert.Equal(t, RepositoryLabel, textContent(links[1]))
	target, _ := attr(links[1], "target")
	assert.Equal(t, "_blank", target)
	rel, _ := attr(links[1], "rel")
	assert.Equal(t, "noopener noreferrer", rel)

	headings := findAll(doc, isElement("h2"))
	require.Len(t, headings, 2)
	assert.Equal(t, "Node.js framework for building server-side applications.", textContent(headings[0]))
	assert.Equal(t, "Everything you need", textContent(headings[1]))

	paragraphs := findAll(doc, isElement("p"))
	require.Len(t, paragraphs, 1)
	assert.Contains(t, textContent(paragraphs[0]), "without relying on external libraries")
}

func TestHome_Order(t *testing.T) {
	doc := parseFragment(t, renderString(t, DefaultHome().View()))

	pages := findAll(doc, func(n *html.Node) bool {
		class, _ := attr(n, "class")
		return n.Type == html.ElementNode && class == styles.Home().Class("page")
	})
	require.Len(t, pages, 1)

	var tags []string
	for _, c := range elementChildren(pages[0]) {
		tags = append(tags, c.Data)
	}
	assert.Equal(t, []string{"div", "h2", "div", "h2", "p"}, tags)

	hero := elementChildren(elementChildren(pages[0])[0])
	require.Len(t, hero, 2)
	assert.Equal(t, "div", hero[0].Data, "logo first")
	assert.Equal(t, "pre", hero[1].Data, "then the code block")
}

func TestHome_ScopedClasses(t *testing.T) {
	out := renderString(t, DefaultHome().View())
	for _, name := range []string{"page", "wrapperHome", "subTitle", "wrapperButtons", "title"} {
		assert.Contains(t, out, `class="`+styles.Home().Class(name)+`"`, name)
	}
	assert.NotContains(t, out, `class="page"`)
}

func TestHome_Idempotent(t *testing.T) {
	home := DefaultHome()
	first := renderString(t, home.View())
	second := renderString(t, home.View())
	assert.Equal(t, first, second)
	assert.Equal(t, first, renderString(t, DefaultHome().View()))
}

func TestHome_CodeBlockPreservesSample(t *testing.T) {
	doc := parseFragment(t, renderString(t, DefaultHome().View()))
	pre := findAll(doc, isElement("pre"))
	require.Len(t, pre, 1)

	var lines []string
	for _, div := range elementChildren(pre[0]) {
		text := textContent(div)
		if text == "\n" {
			text = ""
		}
		lines = append(lines, text)
	}
	assert.Equal(t, SampleCode, strings.Join(lines, "\n"))

	style, _ := attr(pre[0], "style")
	assert.True(t, strings.HasPrefix(style, "border-radius:16px;padding:16px"))
	assert.Contains(t, style, "background-color:#1e1e1e")
}

// gridHighlighter returns len(counts) lines, line n holding counts[n] tokens
type gridHighlighter struct {
	counts []int
}

func (g gridHighlighter) Highlight(_ string, _ *chroma.Style, _ string) (*syntax.Rendering, error) {
	lines := make([]syntax.Line, 0, len(g.counts))
	for n, m := range g.counts {
		tokens := make([]syntax.Token, 0, m)
		for k := 0; k < m; k++ {
			tokens = append(tokens, syntax.Token{
				Text:  fmt.Sprintf("t%d.%d", n, k),
				Class: "token plain",
				Style: syntax.StyleProps{Color: "#abcdef"},
			})
		}
		lines = append(lines, syntax.NewLine(tokens...))
	}
	return syntax.NewRendering(syntax.StyleProps{Color: "#fff", Background: "#000"}, lines...), nil
}

func TestHome_LineAndTokenMapping(t *testing.T) {
	counts := []int{3, 1, 0, 5, 2}
	home := DefaultHome()
	home.Highlighter = gridHighlighter{counts: counts}

	doc := parseFragment(t, renderString(t, home.View()))
	pre := findAll(doc, isElement("pre"))
	require.Len(t, pre, 1)

	divs := elementChildren(pre[0])
	require.Len(t, divs, len(counts))
	for n, div := range divs {
		assert.Equal(t, "div", div.Data)
		spans := elementChildren(div)
		require.Len(t, spans, counts[n], "line %d", n)
		for k, span := range spans {
			assert.Equal(t, fmt.Sprintf("t%d.%d", n, k), textContent(span))
			style, _ := attr(span, "style")
			assert.Equal(t, "color:#abcdef", style)
		}
	}

	style, _ := attr(pre[0], "style")
	assert.Equal(t, "border-radius:16px;padding:16px;color:#fff;background-color:#000", style)
}

type failingHighlighter struct{}

func (failingHighlighter) Highlight(string, *chroma.Style, string) (*syntax.Rendering, error) {
	return nil, errors.New("lexer exploded")
}

func TestHome_HighlighterErrorFallsBackToPlain(t *testing.T) {
	home := DefaultHome()
	home.Highlighter = failingHighlighter{}

	doc := parseFragment(t, renderString(t, home.View()))
	pre := findAll(doc, isElement("pre"))
	require.Len(t, pre, 1)
	assert.Len(t, elementChildren(pre[0]), strings.Count(SampleCode, "\n")+1)
	assert.Len(t, findAll(doc, isElement("a")), 2)
}

type recordingNavigator struct {
	calls []string
}

func (r *recordingNavigator) Link(href string, target Target, label templ.Component) templ.Component {
	r.calls = append(r.calls, fmt.Sprintf("%s|%d", href, target))
	return AnchorNavigator{}.Link(href, target, label)
}

func TestHome_UsesInjectedNavigator(t *testing.T) {
	nav := &recordingNavigator{}
	home := DefaultHome()
	home.Navigator = nav

	renderString(t, home.View())
	assert.Equal(t, []string{
		"/documentation/introduction|0",
		"https://github.com/vkrunjs/vkrun|1",
	}, nav.calls)
}

func TestAnchorNavigator(t *testing.T) {
	nav := AnchorNavigator{BasePath: "/site/", Class: "btn"}

	out := renderString(t, nav.Link("/documentation/introduction", TargetSelf, Text("Docs & more")))
	assert.Equal(t, `<a href="/site/documentation/introduction" class="btn">Docs &amp; more</a>`, out)

	assert.NotContains(t, out, "data-route")

	out = renderString(t, nav.Link("https://example.com", TargetNew, Text("Out")))
	assert.Equal(t, `<a href="https://example.com" class="btn" target="_blank" rel="noopener noreferrer">Out</a>`, out)

	out = renderString(t, AnchorNavigator{}.Link("//cdn.example.com/x", TargetSelf, nil))
	assert.Equal(t, `<a href="//cdn.example.com/x"></a>`, out)
}

func TestCodeBlock_EscapesTokens(t *testing.T) {
	r := syntax.NewRendering(syntax.StyleProps{},
		syntax.NewLine(syntax.Token{Text: "<script>", Class: "token tag"}),
	)
	out := renderString(t, CodeBlock(r))
	assert.Equal(t, `<pre class="prism-code" style="border-radius:16px;padding:16px">`+
		`<div class="token-line"><span class="token tag">&lt;script&gt;</span></div></pre>`, out)
}

func TestLayout(t *testing.T) {
	out := renderString(t, Layout("a <b>", []string{"/static/styles/home.css"}, Text("body")))
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>a &lt;b&gt;</title>")
	assert.Contains(t, out, `<link rel="stylesheet" href="/static/styles/home.css">`)
	assert.Contains(t, out, "<body>body</body>")
}

func TestHome_NilLogoFallsBackToDefault(t *testing.T) {
	home := DefaultHome()
	home.Logo = nil

	doc := parseFragment(t, renderString(t, home.View()))
	logos := findAll(doc, func(n *html.Node) bool {
		v, ok := attr(n, "aria-label")
		return n.Type == html.ElementNode && n.Data == "svg" && ok && v == "vkrun"
	})
	require.Len(t, logos, 1)
	class, _ := attr(logos[0].Parent, "class")
	assert.Equal(t, styles.Logo().Class("logo"), class)
}

func TestLogo_UsesGivenClassNames(t *testing.T) {
	sheet := styles.MustParse("brand", []byte(".logo { color: red; }"))
	out := renderString(t, Logo(sheet))
	assert.True(t, strings.HasPrefix(out, `<div class="`+styles.ScopedName("brand", "logo")+`">`))
}
