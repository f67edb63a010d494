package web

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Target selects the browsing context a link opens in
type Target int

const (
	// TargetSelf navigates the current browsing context
	TargetSelf Target = iota
	// TargetNew opens a new browsing context
	TargetNew
)

// Navigator is the link primitive used by views
type Navigator interface {
	Link(href string, target Target, label templ.Component) templ.Component
}

// AnchorNavigator renders plain <a> elements. Internal routes are prefixed
// with BasePath.
type AnchorNavigator struct {
	BasePath string
	Class    string
}

// Link implements Navigator
func (n AnchorNavigator) Link(href string, target Target, label templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(ctx, w)

		internal := strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//")
		if internal {
			href = strings.TrimSuffix(n.BasePath, "/") + href
		}

		hw.raw("<a")
		hw.attr("href", href)
		hw.attr("class", n.Class)
		if target == TargetNew {
			hw.raw(` target="_blank" rel="noopener noreferrer"`)
		}
		hw.raw(">")
		hw.component(label)
		hw.close("a")
		return hw.err
	})
}
