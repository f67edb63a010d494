package syntax

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTS = `import v from "vkrun"

const vkrun = v.App()

vkrun.get("/", (req: v.Request, res: v.Response) => {
  res.status(200).send("Hello World!")
})`

func collectLines(r *Rendering) [][]Token {
	var out [][]Token
	for _, line := range r.Lines() {
		var toks []Token
		for _, tok := range line.Tokens() {
			toks = append(toks, tok)
		}
		out = append(out, toks)
	}
	return out
}

func TestChromaHighlighter_PreservesText(t *testing.T) {
	h := NewChromaHighlighter()

	r, err := h.Highlight(sampleTS, VSDark, "ts")
	require.NoError(t, err)

	assert.Equal(t, strings.Count(sampleTS, "\n")+1, r.Len())
	assert.Equal(t, sampleTS, r.Text())
}

func TestChromaHighlighter_BlankLinesGetPlaceholder(t *testing.T) {
	r, err := NewChromaHighlighter().Highlight(sampleTS, VSDark, "typescript")
	require.NoError(t, err)

	lines := collectLines(r)
	require.Len(t, lines, 7)
	require.Len(t, lines[1], 1)
	assert.True(t, lines[1][0].Empty)
	assert.Equal(t, "\n", lines[1][0].Text)

	for i, line := range lines {
		for _, tok := range line {
			assert.NotContains(t, strings.TrimSuffix(tok.Text, "\n"), "\n", "line %d", i)
		}
	}
}

func TestChromaHighlighter_StylesKeywordsAndStrings(t *testing.T) {
	r, err := NewChromaHighlighter().Highlight(sampleTS, VSDark, "ts")
	require.NoError(t, err)

	var importTok, stringTok *Token
	for _, line := range collectLines(r) {
		for _, tok := range line {
			tok := tok
			switch tok.Text {
			case "import":
				importTok = &tok
			case `"vkrun"`:
				stringTok = &tok
			}
		}
	}

	require.NotNil(t, importTok)
	require.NotNil(t, stringTok)
	assert.Equal(t, "#569cd6", importTok.Style.Color)
	assert.Equal(t, "#ce9178", stringTok.Style.Color)
	assert.True(t, strings.HasPrefix(importTok.Class, "token "))
}

func TestChromaHighlighter_BlockStyle(t *testing.T) {
	r, err := NewChromaHighlighter().Highlight("let x = 1", VSDark, "ts")
	require.NoError(t, err)

	assert.Equal(t, StyleProps{Color: "#9cdcfe", Background: "#1e1e1e"}, r.Style)
}

func TestChromaHighlighter_UnknownLanguageFallsBackToPlain(t *testing.T) {
	code := "some code\n\nmore code"
	r, err := NewChromaHighlighter().Highlight(code, VSDark, "definitely-not-a-language")
	require.NoError(t, err)

	lines := collectLines(r)
	require.Len(t, lines, 3)
	assert.Equal(t, []Token{{Text: "some code", Class: "token plain"}}, lines[0])
	assert.True(t, lines[1][0].Empty)
	assert.Equal(t, code, r.Text())
}

func TestChromaHighlighter_Deterministic(t *testing.T) {
	h := NewChromaHighlighter()
	a, err := h.Highlight(sampleTS, VSDark, "ts")
	require.NoError(t, err)
	b, err := h.Highlight(sampleTS, VSDark, "ts")
	require.NoError(t, err)

	assert.Equal(t, collectLines(a), collectLines(b))
}

func TestChromaHighlighter_NilTheme(t *testing.T) {
	r, err := NewChromaHighlighter().Highlight("const a = 1", nil, "ts")
	require.NoError(t, err)

	assert.True(t, r.Style.IsZero())
	for _, line := range collectLines(r) {
		for _, tok := range line {
			assert.True(t, tok.Style.IsZero())
		}
	}
}

func TestThemeByName(t *testing.T) {
	assert.Same(t, VSDark, ThemeByName("vs-dark"))
	assert.Same(t, VSDark, ThemeByName(""))
	assert.Same(t, VSDark, ThemeByName("no-such-theme"))

	monokai := ThemeByName("monokai")
	require.NotNil(t, monokai)
	assert.Equal(t, "monokai", monokai.Name)
}

func TestVSDarkComment(t *testing.T) {
	props := tokenStyle(VSDark, chroma.CommentSingle)
	assert.Equal(t, StyleProps{Color: "#6a9955", FontStyle: "italic"}, props)
}
