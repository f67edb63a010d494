// Package export writes the site as static files that any file server can
// host, with optional markdown copies of every page.
package export

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/a-h/templ"
	"github.com/vkrunjs/website/internal/consts"
	"github.com/vkrunjs/website/internal/logger"
	"github.com/vkrunjs/website/internal/web"
)

// Options controls what Site writes
type Options struct {
	// Markdown also writes index.md next to every index.html
	Markdown bool
}

// page is one routed document of the site
type page struct {
	route     string
	component templ.Component
	body      templ.Component
}

// Site writes every page and stylesheet of site below dir and returns the
// written paths relative to dir.
func Site(ctx context.Context, dir string, site *web.Site, opts Options) ([]string, error) {
	pages := []page{{route: consts.RouteHome, component: site.HomePage(), body: site.Home.View()}}
	for _, slug := range site.Docs.Slugs() {
		doc, err := site.DocPage(slug)
		if err != nil {
			return nil, err
		}
		body, err := site.Docs.View(slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page{route: "/documentation/" + slug, component: doc, body: body})
	}

	var written []string
	write := func(rel string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", rel, err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", rel, err)
		}
		written = append(written, rel)
		return nil
	}

	for _, p := range pages {
		data, err := renderBytes(ctx, p.component)
		if err != nil {
			return written, fmt.Errorf("failed to render %s: %w", p.route, err)
		}
		base := routeDir(p.route)
		if err := write(base+"index.html", data); err != nil {
			return written, err
		}

		if opts.Markdown {
			markdown, err := Markdown(ctx, p.body)
			if err != nil {
				return written, fmt.Errorf("failed to convert %s: %w", p.route, err)
			}
			if err := write(base+"index.md", []byte(markdown+"\n")); err != nil {
				return written, err
			}
		}
	}

	notFound, err := renderBytes(ctx, site.NotFoundPage())
	if err != nil {
		return written, fmt.Errorf("failed to render not found page: %w", err)
	}
	if err := write("404.html", notFound); err != nil {
		return written, err
	}

	for _, st := range site.Sheets {
		sheet := st.Load()
		rel := strings.TrimPrefix(consts.StaticStylesPrefix, "/") + web.StylesheetFile(sheet.Module())
		if err := write(rel, sheet.CSS()); err != nil {
			return written, err
		}
	}

	logger.Info("Exported %d files to %s", len(written), dir)
	return written, nil
}

// routeDir maps "/" to "" and "/a/b" to "a/b/"
func routeDir(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	return route + "/"
}

func renderBytes(ctx context.Context, c templ.Component) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
