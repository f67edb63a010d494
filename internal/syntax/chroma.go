package syntax

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// ChromaHighlighter highlights code with chroma lexers.
// It holds no state and is safe for concurrent use.
type ChromaHighlighter struct{}

// NewChromaHighlighter creates the default pure-Go highlighter
func NewChromaHighlighter() *ChromaHighlighter {
	return &ChromaHighlighter{}
}

// Highlight tokenises code and splits the tokens into display lines.
// Unknown languages are returned as plain text.
func (h *ChromaHighlighter) Highlight(code string, theme *chroma.Style, language string) (*Rendering, error) {
	lexer := lexers.Get(Normalize(language))
	if lexer == nil {
		return PlainRendering(code, theme), nil
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenise %s code: %w", language, err)
	}

	split := chroma.SplitTokensIntoLines(iterator.Tokens())
	lines := make([]Line, 0, len(split))
	for _, src := range split {
		tokens := make([]Token, 0, len(src))
		for _, tok := range src {
			text := strings.TrimRight(tok.Value, "\r\n")
			if text == "" {
				continue
			}
			tokens = append(tokens, Token{
				Text:  text,
				Class: tokenClass(tok.Type),
				Style: tokenStyle(theme, tok.Type),
			})
		}
		if len(tokens) == 0 {
			tokens = append(tokens, emptyToken())
		}
		lines = append(lines, NewLine(tokens...))
	}

	return NewRendering(blockStyle(theme), lines...), nil
}
