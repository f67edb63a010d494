//go:build cgo

package syntax

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/alecthomas/chroma/v2"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// TreeSitterHighlighter highlights code by classifying the leaves of a
// tree-sitter parse tree. It is safe for concurrent use: every call builds
// its own parser.
type TreeSitterHighlighter struct {
	languages map[string]unsafe.Pointer
}

// NewTreeSitterHighlighter creates a highlighter for the bundled grammars
func NewTreeSitterHighlighter() *TreeSitterHighlighter {
	return &TreeSitterHighlighter{languages: grammars()}
}

type segment struct {
	text  string
	ttype chroma.TokenType
}

// Highlight parses code and returns styled lines.
// Unsupported languages are returned as plain text.
func (h *TreeSitterHighlighter) Highlight(code string, theme *chroma.Style, language string) (*Rendering, error) {
	lang, ok := h.languages[Normalize(language)]
	if !ok {
		return PlainRendering(code, theme), nil
	}

	source := []byte(strings.ReplaceAll(code, "\r\n", "\n"))
	tree, err := parse(lang, source)
	if err != nil {
		return nil, fmt.Errorf("failed to highlight %s code: %w", language, err)
	}
	defer tree.Close()

	var segments []segment
	pos := collectLeaves(tree.RootNode(), source, 0, &segments)
	if pos < uint(len(source)) {
		segments = append(segments, segment{text: string(source[pos:]), ttype: chroma.Text})
	}

	return NewRendering(blockStyle(theme), segmentsToLines(segments, theme)...), nil
}

// collectLeaves walks node in source order, appending the gap before each
// leaf as plain text and the leaf itself with its classification.
// It returns the byte offset up to which source has been consumed.
func collectLeaves(node *tree_sitter.Node, source []byte, pos uint, out *[]segment) uint {
	if node == nil {
		return pos
	}

	start, end := node.StartByte(), node.EndByte()
	if end > uint(len(source)) {
		end = uint(len(source))
	}

	if node.ChildCount() == 0 {
		if pos < start {
			*out = append(*out, segment{text: string(source[pos:start]), ttype: chroma.Text})
			pos = start
		}
		if pos < end {
			*out = append(*out, segment{text: string(source[pos:end]), ttype: classifyLeaf(node)})
			pos = end
		}
		return pos
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		pos = collectLeaves(node.Child(i), source, pos, out)
	}
	return pos
}

// segmentsToLines splits segments on newlines into display lines
func segmentsToLines(segments []segment, theme *chroma.Style) []Line {
	var lines []Line
	var current []Token

	flush := func() {
		if len(current) == 0 {
			current = append(current, emptyToken())
		}
		lines = append(lines, NewLine(current...))
		current = nil
	}

	for _, seg := range segments {
		parts := strings.Split(seg.text, "\n")
		for i, part := range parts {
			if i > 0 {
				flush()
			}
			if part == "" {
				continue
			}
			current = append(current, Token{
				Text:  part,
				Class: tokenClass(seg.ttype),
				Style: tokenStyle(theme, seg.ttype),
			})
		}
	}
	if len(current) > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// classifyLeaf maps a leaf node to a chroma token type using its kind and
// the kinds of its ancestors
func classifyLeaf(node *tree_sitter.Node) chroma.TokenType {
	kind := node.Kind()
	parent := node.Parent()
	parentKind := ""
	if parent != nil {
		parentKind = parent.Kind()
	}

	switch {
	case parentKind == "ERROR":
		return chroma.Text
	case strings.Contains(kind, "comment"):
		return chroma.Comment
	case parentKind == "predefined_type" || kind == "type_identifier" || kind == "predefined_type":
		return chroma.KeywordType
	case strings.Contains(parentKind, "string") || strings.Contains(parentKind, "template") ||
		strings.Contains(kind, "string"):
		return chroma.LiteralString
	case kind == "escape_sequence":
		return chroma.LiteralStringEscape
	case isConstantKind(kind):
		return chroma.KeywordConstant
	case isNumberKind(kind):
		return chroma.LiteralNumber
	case isKeyword(kind):
		return chroma.Keyword
	case isCallee(node, kind, parent, parentKind):
		return chroma.NameFunction
	case kind == "identifier" || kind == "property_identifier" || kind == "field_identifier" ||
		kind == "shorthand_property_identifier" || kind == "variable_name":
		return chroma.Name
	case isOperator(kind):
		return chroma.Operator
	case strings.ContainsAny(kind, "(){}[].,;:") && len(kind) <= 2:
		return chroma.Punctuation
	default:
		return chroma.Text
	}
}

// isCallee reports whether an identifier names the function of a call,
// directly (f()) or as the property of a member expression (a.b()).
func isCallee(node *tree_sitter.Node, kind string, parent *tree_sitter.Node, parentKind string) bool {
	if parent == nil {
		return false
	}
	switch kind {
	case "identifier":
		if parentKind != "call_expression" && parentKind != "call" {
			return false
		}
		fn := parent.ChildByFieldName("function")
		return fn != nil && fn.StartByte() == node.StartByte() && fn.EndByte() == node.EndByte()
	case "property_identifier", "field_identifier":
		if parentKind != "member_expression" && parentKind != "selector_expression" {
			return false
		}
		grand := parent.Parent()
		if grand == nil {
			return false
		}
		return grand.Kind() == "call_expression"
	}
	return false
}

func isConstantKind(kind string) bool {
	switch kind {
	case "true", "false", "null", "undefined", "nil", "None", "True", "False", "iota":
		return true
	}
	return false
}

func isNumberKind(kind string) bool {
	switch kind {
	case "number", "integer", "float", "int_literal", "float_literal", "imaginary_literal":
		return true
	}
	return false
}

func isOperator(kind string) bool {
	switch kind {
	case "=", "=>", "==", "===", "!=", "!==", "+", "-", "*", "/", "%", "!", "&&", "||",
		"<", ">", "<=", ">=", "?", "??", "+=", "-=", ":=", "|", "&", "...":
		return true
	}
	return false
}

// isKeyword checks if a node kind is a keyword of one of the bundled grammars
func isKeyword(kind string) bool {
	_, ok := keywords[kind]
	return ok
}

var keywords = func() map[string]struct{} {
	words := []string{
		// TypeScript/JavaScript
		"import", "export", "from", "as", "default", "const", "let", "var", "function",
		"return", "if", "else", "for", "while", "do", "switch", "case", "break",
		"continue", "new", "class", "extends", "implements", "interface", "type",
		"enum", "async", "await", "yield", "try", "catch", "finally", "throw",
		"typeof", "instanceof", "in", "of", "this", "super", "void", "delete",
		"static", "public", "private", "protected", "readonly", "declare",
		"namespace", "module", "abstract", "keyof",

		// Go
		"chan", "defer", "fallthrough", "func", "go", "goto", "map", "package",
		"range", "select", "struct",

		// Python
		"and", "assert", "def", "del", "elif", "except", "global", "is", "lambda",
		"nonlocal", "not", "or", "pass", "raise", "with",

		// Bash
		"then", "fi", "esac", "done", "until", "local",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()
