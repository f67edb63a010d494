package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"github.com/vkrunjs/website/internal/styles"
	"github.com/vkrunjs/website/internal/syntax"
)

// ClassNames resolves local class names to generated ones.
// *styles.Sheet and *styles.Store both satisfy it.
type ClassNames interface {
	Class(name string) string
}

// htmlWriter writes markup and keeps the first error. Later writes are no-ops.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// attr writes name="value"; empty values are skipped
func (hw *htmlWriter) attr(name, value string) {
	if value == "" {
		return
	}
	hw.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// open writes a start tag with a class attribute
func (hw *htmlWriter) open(tag, class string) {
	hw.raw("<" + tag)
	hw.attr("class", class)
	hw.raw(">")
}

func (hw *htmlWriter) close(tag string) {
	hw.raw("</" + tag + ">")
}

func (hw *htmlWriter) component(c templ.Component) {
	if hw.err == nil && c != nil {
		hw.err = c.Render(hw.ctx, hw.w)
	}
}

// Text renders escaped text
func Text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, templ.EscapeString(s))
		return err
	})
}

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64" role="img" aria-label="vkrun" fill="none">` +
	`<rect x="2" y="2" width="60" height="60" rx="14" fill="currentColor"/>` +
	`<path d="M16 18 L28 46 L34 46 L46 18 L39 18 L31 38 L23 18 Z" fill="#fff"/>` +
	`<circle cx="47" cy="44" r="4" fill="#fff"/>` +
	`</svg>`

// Logo renders the vkrun mark. A nil cls uses the embedded logo sheet.
func Logo(cls ClassNames) templ.Component {
	if cls == nil {
		cls = styles.Logo()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.open("div", cls.Class("logo"))
		hw.raw(logoSVG)
		hw.close("div")
		return hw.err
	})
}

// codeBlockStyle is applied before the highlighter's own block style
const codeBlockStyle = "border-radius:16px;padding:16px"

// CodeBlock renders a highlighted rendering as <pre> with one <div> per line
// and one <span> per token. Styles are applied exactly as the rendering
// supplies them.
func CodeBlock(r *syntax.Rendering) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)

		style := codeBlockStyle
		if css := r.Style.CSS(); css != "" {
			style += ";" + css
		}
		hw.raw(`<pre class="prism-code"`)
		hw.attr("style", style)
		hw.raw(">")

		for _, line := range r.Lines() {
			hw.raw(`<div class="token-line">`)
			for _, tok := range line.Tokens() {
				hw.raw("<span")
				hw.attr("class", tok.Class)
				hw.attr("style", tok.Style.CSS())
				hw.raw(">")
				hw.text(tok.Text)
				hw.close("span")
			}
			hw.close("div")
		}

		hw.close("pre")
		return hw.err
	})
}

// Layout wraps body in the HTML document shell
func Layout(title string, stylesheets []string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw("<title>")
		hw.text(title)
		hw.raw("</title>")
		for _, href := range stylesheets {
			hw.raw(`<link rel="stylesheet"`)
			hw.attr("href", href)
			hw.raw(">")
		}
		hw.raw("</head><body>")
		hw.component(body)
		hw.raw("</body></html>")
		return hw.err
	})
}
