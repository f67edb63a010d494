package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/alecthomas/chroma/v2"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/logger"
	"github.com/vkrunjs/website/internal/styles"
	"github.com/vkrunjs/website/internal/syntax"
)

// SampleCode is the hello-world shown in the hero
const SampleCode = `import v from "vkrun"

const vkrun = v.App()

vkrun.get("/", (req: v.Request, res: v.Response) => {
  res.status(200).send("Hello World!")
})

vkrun.server().listen(3000, () => {
  console.log("VkrunJS started on port 3000")
})`

// SampleLanguage is the language tag the sample is highlighted as
const SampleLanguage = "ts"

const (
	Subtitle     = "Node.js framework for building server-side applications."
	SectionTitle = "Everything you need"
	Description  = "Vkrun is a framework designed to deliver superior performance, " +
		"scalability, and flexibility, providing a powerful experience without " +
		"relying on external libraries."

	DocumentationLabel = "Documentation"
	RepositoryLabel    = "View on Github"
)

// Home is the landing page. It holds no state beyond its collaborators, so
// rendering it twice yields the same bytes.
type Home struct {
	Highlighter syntax.Highlighter
	Theme       *chroma.Style
	Navigator   Navigator
	Styles      ClassNames
	// Logo defaults to Logo(nil)
	Logo templ.Component
}

// DefaultHome wires the production collaborators
func DefaultHome() *Home {
	return &Home{
		Highlighter: syntax.NewChromaHighlighter(),
		Theme:       syntax.VSDark,
		Navigator:   AnchorNavigator{},
		Styles:      styles.Home(),
		Logo:        Logo(styles.Logo()),
	}
}

// highlight never fails: on error the sample is shown as plain text
func highlight(h syntax.Highlighter, code string, theme *chroma.Style, language string) *syntax.Rendering {
	if h == nil {
		return syntax.PlainRendering(code, theme)
	}
	r, err := h.Highlight(code, theme, language)
	if err != nil || r == nil {
		logger.Warn("Highlighting %s failed, rendering plain text: %v", language, err)
		return syntax.PlainRendering(code, theme)
	}
	return r
}

// View renders the homepage
func (h *Home) View() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		cls := h.Styles
		if cls == nil {
			cls = styles.Home()
		}
		nav := h.Navigator
		if nav == nil {
			nav = AnchorNavigator{}
		}

		hw.open("div", cls.Class("page"))

		hw.open("div", cls.Class("wrapperHome"))
		logo := h.Logo
		if logo == nil {
			logo = Logo(nil)
		}
		hw.component(logo)
		hw.component(CodeBlock(highlight(h.Highlighter, SampleCode, h.Theme, SampleLanguage)))
		hw.close("div")

		hw.open("h2", cls.Class("subTitle"))
		hw.text(Subtitle)
		hw.close("h2")

		hw.open("div", cls.Class("wrapperButtons"))
		hw.component(nav.Link(consts.RouteDocumentationIntro, TargetSelf, Text(DocumentationLabel)))
		hw.component(nav.Link(consts.RepositoryURL, TargetNew, Text(RepositoryLabel)))
		hw.close("div")

		hw.open("h2", cls.Class("title"))
		hw.text(SectionTitle)
		hw.close("h2")

		hw.raw("<p>")
		hw.text(Description)
		hw.raw("</p>")

		hw.close("div")
		return hw.err
	})
}
