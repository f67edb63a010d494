package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/a-h/templ"
	"github.com/charmbracelet/glamour"
	"github.com/vkrunjs/website/internal/logger"
	"golang.org/x/net/html"
	"golang.org/x/term"
)

const defaultWrapWidth = 80

// Markdown renders c and converts the markup to markdown.
// Highlighted code blocks become fenced code with their original text.
func Markdown(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", fmt.Errorf("failed to render component: %w", err)
	}

	cleaned, err := preprocessHTML(buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to preprocess html: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("failed to convert html to markdown: %w", err)
	}

	markdown = cleanMarkdown(markdown)
	logger.Debug("Converted page to markdown (%d -> %d bytes)", buf.Len(), len(markdown))
	return markdown, nil
}

// Preview writes c as markdown to w. Terminals get glamour styling wrapped
// to their width; anything else gets the raw markdown.
func Preview(ctx context.Context, w io.Writer, c templ.Component) error {
	markdown, err := Markdown(ctx, c)
	if err != nil {
		return err
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		width := defaultWrapWidth
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			width = cols
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		styled, err := renderer.Render(markdown)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		_, err = io.WriteString(w, styled)
		return err
	}

	_, err = io.WriteString(w, markdown+"\n")
	return err
}

// preprocessHTML drops decoration and flattens highlighted code blocks
func preprocessHTML(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return input, err
	}

	removeUnwantedNodes(doc)
	flattenCodeBlocks(doc)

	root := findBody(doc)
	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return input, err
		}
	}
	return buf.String(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	if n.Type == html.DocumentNode {
		return n
	}
	return nil
}

func shouldRemoveNode(n *html.Node) bool {
	if n.Type == html.CommentNode {
		return true
	}
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "svg", "script", "style", "link", "meta", "head", "noscript":
		return true
	}
	return false
}

// removeUnwantedNodes recursively removes unwanted elements from the tree
func removeUnwantedNodes(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		removeUnwantedNodes(child)
		child = next
	}

	if shouldRemoveNode(n) && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// flattenCodeBlocks replaces the per-line markup of every <pre> with a
// single <code> holding the joined line text
func flattenCodeBlocks(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "pre" {
		var lines []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			text := nodeText(c)
			if text == "\n" {
				text = ""
			}
			lines = append(lines, text)
		}
		for n.FirstChild != nil {
			n.RemoveChild(n.FirstChild)
		}
		n.Attr = nil

		code := &html.Node{Type: html.ElementNode, Data: "code"}
		code.AppendChild(&html.Node{Type: html.TextNode, Data: strings.Join(lines, "\n")})
		n.AppendChild(code)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flattenCodeBlocks(c)
	}
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

var multipleNewlines = regexp.MustCompile(`\n{3,}`)

// cleanMarkdown collapses blank runs and trims the result
func cleanMarkdown(markdown string) string {
	markdown = multipleNewlines.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
