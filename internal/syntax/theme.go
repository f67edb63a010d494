package syntax

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// VSDarkName is the registry name of VSDark
const VSDarkName = "vs-dark"

// VSDark is the Visual Studio dark palette used by the homepage code sample
var VSDark = chroma.MustNewStyle(VSDarkName, chroma.StyleEntries{
	chroma.Background:        "#9cdcfe bg:#1e1e1e",
	chroma.CommentPreproc:    "#569cd6",
	chroma.Comment:           "italic #6a9955",
	chroma.Keyword:           "#569cd6",
	chroma.KeywordType:       "#4ec9b0",
	chroma.NameBuiltin:       "#569cd6",
	chroma.NameConstant:      "#646695",
	chroma.NameVariable:      "#9cdcfe",
	chroma.NameAttribute:     "#9cdcfe",
	chroma.NameTag:           "#4ec9b0",
	chroma.NameClass:         "#4ec9b0",
	chroma.NameFunction:      "#dcdcaa",
	chroma.NameOther:         "#9cdcfe",
	chroma.LiteralString:     "#ce9178",
	chroma.LiteralStringChar: "#d16969",
	chroma.LiteralNumber:     "#b5cea8",
	chroma.Operator:          "#d4d4d4",
	chroma.Punctuation:       "#d4d4d4",
	chroma.GenericDeleted:    "#ce9178",
	chroma.GenericInserted:   "#b5cea8",
	chroma.GenericEmph:       "italic",
	chroma.GenericStrong:     "bold",
})

// ThemeByName resolves VSDark or any chroma built-in style.
// Unknown names resolve to VSDark.
func ThemeByName(name string) *chroma.Style {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == VSDarkName || name == "vsdark" {
		return VSDark
	}
	if style, ok := styles.Registry[name]; ok {
		return style
	}
	return VSDark
}
