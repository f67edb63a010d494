package web

import (
	"strings"

	"github.com/a-h/templ"
	"github.com/vkrunjs/website/internal/config"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/styles"
	"github.com/vkrunjs/website/internal/syntax"
)

// SiteTitle is the document title of every page
const SiteTitle = "vkrun"

// Site assembles the pages and stylesheets the server and the static
// export share.
type Site struct {
	Home   *Home
	Docs   *Docs
	Sheets []*styles.Store
}

// DefaultSite wires the homepage, the docs and the embedded stylesheets.
// Views resolve classes through the stores so a reload is picked up on
// the next render.
func DefaultSite() *Site {
	homeStore := styles.NewStore(styles.Home())
	docsStore := styles.NewStore(styles.Docs())
	logoStore := styles.NewStore(styles.Logo())

	home := DefaultHome()
	home.Styles = homeStore
	home.Logo = Logo(logoStore)

	docs := DefaultDocs()
	docs.Styles = docsStore

	return &Site{
		Home:   home,
		Docs:   docs,
		Sheets: []*styles.Store{homeStore, docsStore, logoStore},
	}
}

// NewSiteFromConfig is DefaultSite with the configured highlighter and theme
func NewSiteFromConfig(cfg *config.Config) *Site {
	site := DefaultSite()
	if cfg == nil {
		return site
	}

	var h syntax.Highlighter = syntax.NewChromaHighlighter()
	if cfg.Highlighter == config.HighlighterTreeSitter {
		h = syntax.NewTreeSitterHighlighter()
	}
	theme := syntax.ThemeByName(cfg.Theme)

	site.Home.Highlighter, site.Home.Theme = h, theme
	site.Docs.Highlighter, site.Docs.Theme = h, theme
	return site
}

// StylesheetFile is the file name a sheet is served and exported under
func StylesheetFile(module string) string {
	return module + ".css"
}

// Stylesheets returns the hrefs of every sheet
func (s *Site) Stylesheets() []string {
	hrefs := make([]string, 0, len(s.Sheets))
	for _, st := range s.Sheets {
		hrefs = append(hrefs, consts.StaticStylesPrefix+StylesheetFile(st.Load().Module()))
	}
	return hrefs
}

// Sheet finds the stylesheet served under file
func (s *Site) Sheet(file string) (*styles.Sheet, bool) {
	module, ok := strings.CutSuffix(file, ".css")
	if !ok {
		return nil, false
	}
	for _, st := range s.Sheets {
		if sheet := st.Load(); sheet.Module() == module {
			return sheet, true
		}
	}
	return nil, false
}

// Store finds the store of a module
func (s *Site) Store(module string) (*styles.Store, bool) {
	for _, st := range s.Sheets {
		if st.Load().Module() == module {
			return st, true
		}
	}
	return nil, false
}

// HomePage renders the full homepage document
func (s *Site) HomePage() templ.Component {
	return Layout(SiteTitle, s.Stylesheets(), s.Home.View())
}

// DocPage renders the full document of a documentation page
func (s *Site) DocPage(slug string) (templ.Component, error) {
	body, err := s.Docs.View(slug)
	if err != nil {
		return nil, err
	}
	page, _ := s.Docs.Page(slug)
	return Layout(page.Title+" | "+SiteTitle, s.Stylesheets(), body), nil
}

// NotFoundPage renders the full 404 document
func (s *Site) NotFoundPage() templ.Component {
	var cls ClassNames
	if st, ok := s.Store("docs"); ok {
		cls = st
	}
	return Layout("Not found | "+SiteTitle, s.Stylesheets(), NotFound(s.Home.Navigator, cls))
}
