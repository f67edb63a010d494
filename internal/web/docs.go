package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/styles"
	"github.com/vkrunjs/website/internal/syntax"
)

// ErrUnknownPage is returned for documentation slugs that do not exist
var ErrUnknownPage = errors.New("unknown documentation page")

// DocPage is a single documentation article
type DocPage struct {
	Slug     string
	Title    string
	Lead     string
	Body     []string
	Code     string
	Language string
}

// IntroductionSlug is the slug of the page the homepage links to
const IntroductionSlug = "introduction"

var introduction = DocPage{
	Slug:  IntroductionSlug,
	Title: "Introduction",
	Lead: "Vkrun is a Node.js framework for building server-side applications " +
		"with routing, validation, and middleware built in.",
	Body: []string{
		"Install the package with npm, create an app, register a route, and start the server.",
		"Every feature ships in the core package, so there is nothing else to install.",
	},
	Code:     "npm install vkrun",
	Language: "bash",
}

// Docs serves the documentation articles
type Docs struct {
	Highlighter syntax.Highlighter
	Theme       *chroma.Style
	Navigator   Navigator
	Styles      ClassNames
	pages       map[string]DocPage
}

// DefaultDocs wires the production collaborators
func DefaultDocs() *Docs {
	return NewDocs(syntax.NewChromaHighlighter(), syntax.VSDark, AnchorNavigator{}, styles.Docs())
}

// NewDocs creates a Docs holding the built-in pages
func NewDocs(h syntax.Highlighter, theme *chroma.Style, nav Navigator, cls ClassNames) *Docs {
	return &Docs{
		Highlighter: h,
		Theme:       theme,
		Navigator:   nav,
		Styles:      cls,
		pages:       map[string]DocPage{introduction.Slug: introduction},
	}
}

// Slugs returns the known page slugs in sorted order
func (d *Docs) Slugs() []string {
	slugs := make([]string, 0, len(d.pages))
	for slug := range d.pages {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// Page looks up a page by slug
func (d *Docs) Page(slug string) (DocPage, error) {
	page, ok := d.pages[slug]
	if !ok {
		return DocPage{}, fmt.Errorf("%w: %q", ErrUnknownPage, slug)
	}
	return page, nil
}

// View renders the page with the given slug
func (d *Docs) View(slug string) (templ.Component, error) {
	page, err := d.Page(slug)
	if err != nil {
		return nil, err
	}

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		cls := d.Styles
		if cls == nil {
			cls = styles.Docs()
		}
		nav := d.Navigator
		if nav == nil {
			nav = AnchorNavigator{}
		}

		hw.open("article", cls.Class("article"))
		hw.raw("<h1>")
		hw.text(page.Title)
		hw.raw("</h1>")

		hw.open("p", cls.Class("lead"))
		hw.text(page.Lead)
		hw.close("p")

		if page.Code != "" {
			hw.component(CodeBlock(highlight(d.Highlighter, page.Code, d.Theme, page.Language)))
		}

		for _, para := range page.Body {
			hw.raw("<p>")
			hw.text(para)
			hw.raw("</p>")
		}

		hw.raw("<p>")
		hw.component(nav.Link(consts.RouteHome, TargetSelf, Text("Back to home")))
		hw.raw("</p>")
		hw.close("article")
		return hw.err
	}), nil
}

// NotFound renders the page shown for unknown routes. It shares the
// documentation stylesheet; a nil cls uses the embedded one.
func NotFound(nav Navigator, cls ClassNames) templ.Component {
	if nav == nil {
		nav = AnchorNavigator{}
	}
	if cls == nil {
		cls = styles.Docs()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.open("article", cls.Class("article"))
		hw.raw("<h1>Page not found</h1>")
		hw.open("p", cls.Class("lead"))
		hw.text("The page you are looking for does not exist.")
		hw.close("p")
		hw.raw("<p>")
		hw.component(nav.Link(consts.RouteHome, TargetSelf, Text("Back to home")))
		hw.raw("</p>")
		hw.close("article")
		return hw.err
	})
}
