//go:build !cgo

package syntax

import "github.com/alecthomas/chroma/v2"

// TreeSitterHighlighter provides syntax highlighting using tree-sitter.
type TreeSitterHighlighter struct{}

// NewTreeSitterHighlighter creates a highlighter (plain text without CGo).
func NewTreeSitterHighlighter() *TreeSitterHighlighter {
	return &TreeSitterHighlighter{}
}

// Highlight returns unstyled lines without CGo (tree-sitter unavailable).
func (h *TreeSitterHighlighter) Highlight(code string, theme *chroma.Style, language string) (*Rendering, error) {
	return PlainRendering(code, theme), nil
}
