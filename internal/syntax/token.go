package syntax

import (
	"iter"
	"strings"

	"github.com/alecthomas/chroma/v2"
)

// Highlighter turns source code into styled lines of tokens.
// Implementations must be pure: the same inputs give the same Rendering.
type Highlighter interface {
	Highlight(code string, theme *chroma.Style, language string) (*Rendering, error)
}

// StyleProps is the presentational style of a token or of the whole block
type StyleProps struct {
	Color          string
	Background     string
	FontStyle      string
	FontWeight     string
	TextDecoration string
}

// IsZero reports whether no property is set
func (p StyleProps) IsZero() bool {
	return p == StyleProps{}
}

// CSS renders the properties as an inline style declaration list.
// Property order is fixed so output is stable across renders.
func (p StyleProps) CSS() string {
	var b strings.Builder
	write := func(name, value string) {
		if value == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteByte(';')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(value)
	}
	write("color", p.Color)
	write("background-color", p.Background)
	write("font-style", p.FontStyle)
	write("font-weight", p.FontWeight)
	write("text-decoration", p.TextDecoration)
	return b.String()
}

// Token is a styled fragment of one line
type Token struct {
	Text  string
	Class string
	Style StyleProps
	// Empty marks the placeholder token of a blank line. Its Text is "\n"
	// so the line keeps its height when rendered inside <pre>.
	Empty bool
}

// Line is one display line of highlighted code
type Line struct {
	tokens []Token
}

// NewLine builds a line from tokens in display order
func NewLine(tokens ...Token) Line {
	return Line{tokens: tokens}
}

// Len returns the number of tokens on the line
func (l Line) Len() int { return len(l.tokens) }

// Tokens yields the tokens of the line in order
func (l Line) Tokens() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, tok := range l.tokens {
			if !yield(i, tok) {
				return
			}
		}
	}
}

// Text returns the line's source text without the trailing newline
func (l Line) Text() string {
	var b strings.Builder
	for _, tok := range l.tokens {
		if !tok.Empty {
			b.WriteString(tok.Text)
		}
	}
	return b.String()
}

// Rendering is the result of highlighting a block of code
type Rendering struct {
	// Style applies to the enclosing block (background and plain color)
	Style StyleProps
	lines []Line
}

// NewRendering builds a rendering from already split lines
func NewRendering(style StyleProps, lines ...Line) *Rendering {
	return &Rendering{Style: style, lines: lines}
}

// Len returns the number of lines
func (r *Rendering) Len() int { return len(r.lines) }

// Lines yields the display lines in order
func (r *Rendering) Lines() iter.Seq2[int, Line] {
	return func(yield func(int, Line) bool) {
		for i, line := range r.lines {
			if !yield(i, line) {
				return
			}
		}
	}
}

// Text reassembles the highlighted source
func (r *Rendering) Text() string {
	texts := make([]string, len(r.lines))
	for i, line := range r.lines {
		texts[i] = line.Text()
	}
	return strings.Join(texts, "\n")
}

// PlainRendering renders code without token styling, one token per line.
// Highlighters fall back to it for languages they do not know.
func PlainRendering(code string, theme *chroma.Style) *Rendering {
	block := blockStyle(theme)
	src := splitLines(code)
	lines := make([]Line, len(src))
	for i, text := range src {
		if text == "" {
			lines[i] = NewLine(emptyToken())
			continue
		}
		lines[i] = NewLine(Token{Text: text, Class: "token plain"})
	}
	return NewRendering(block, lines...)
}

func emptyToken() Token {
	return Token{Text: "\n", Class: "token plain", Empty: true}
}

// splitLines splits on "\n" and drops a single trailing newline
func splitLines(code string) []string {
	code = strings.ReplaceAll(code, "\r\n", "\n")
	code = strings.TrimSuffix(code, "\n")
	return strings.Split(code, "\n")
}

// blockStyle extracts the background entry of a theme
func blockStyle(theme *chroma.Style) StyleProps {
	if theme == nil {
		return StyleProps{}
	}
	bg := theme.Get(chroma.Background)
	props := StyleProps{}
	if bg.Colour.IsSet() {
		props.Color = bg.Colour.String()
	}
	if bg.Background.IsSet() {
		props.Background = bg.Background.String()
	}
	return props
}

// tokenStyle resolves the theme entry for a token type
func tokenStyle(theme *chroma.Style, ttype chroma.TokenType) StyleProps {
	if theme == nil {
		return StyleProps{}
	}
	entry := theme.Get(ttype)
	props := StyleProps{}
	if entry.Colour.IsSet() {
		props.Color = entry.Colour.String()
	}
	if entry.Italic == chroma.Yes {
		props.FontStyle = "italic"
	}
	if entry.Bold == chroma.Yes {
		props.FontWeight = "bold"
	}
	if entry.Underline == chroma.Yes {
		props.TextDecoration = "underline"
	}
	return props
}

// tokenClass names a token the way prism-style stylesheets expect: "token <kind>"
func tokenClass(ttype chroma.TokenType) string {
	if short, ok := chroma.StandardTypes[ttype]; ok && short != "" {
		return "token " + short
	}
	return "token plain"
}
