// Package styles scopes stylesheet class names per module, the way CSS
// modules do: every ".name" selector becomes "<module>_<name>__<hash>" so
// two modules can use the same local name without colliding.
package styles

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/css/scanner"
)

//go:embed *.module.css
var moduleFiles embed.FS

const hashLength = 5

// Sheet is a stylesheet whose class selectors have been scoped
type Sheet struct {
	module  string
	classes map[string]string
	css     []byte
}

// Module returns the module name the sheet was parsed under
func (s *Sheet) Module() string { return s.module }

// Class returns the generated class for a local name, or "" when the
// stylesheet never declares it.
func (s *Sheet) Class(name string) string {
	if s == nil {
		return ""
	}
	return s.classes[name]
}

// Names returns the local class names in sorted order
func (s *Sheet) Names() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CSS returns the rewritten stylesheet
func (s *Sheet) CSS() []byte {
	return append([]byte(nil), s.css...)
}

// ScopedName generates the collision-free class for name within module.
// It is deterministic so server and static export agree.
func ScopedName(module, name string) string {
	h := strconv.FormatUint(xxhash.Sum64String(module+"/"+name), 36)
	if len(h) < hashLength {
		h = strings.Repeat("0", hashLength-len(h)) + h
	}
	return fmt.Sprintf("%s_%s__%s", module, name, h[:hashLength])
}

type blockKind int

const (
	// blockRules holds selectors: the top level, @media, @supports
	blockRules blockKind = iota
	// blockDecls holds declarations of a style rule
	blockDecls
	// blockOpaque is copied verbatim: @keyframes, @font-face, nested braces
	blockOpaque
)

var nestingAtRules = map[string]bool{
	"@media":     true,
	"@supports":  true,
	"@layer":     true,
	"@container": true,
	"@document":  true,
}

// Parse scopes every class selector of css under module.
// Declarations, strings, comments and at-rule bodies other than the
// conditional group rules are copied unchanged.
func Parse(module string, css []byte) (*Sheet, error) {
	if module == "" {
		return nil, fmt.Errorf("module name must not be empty")
	}

	sheet := &Sheet{module: module, classes: make(map[string]string)}
	s := scanner.New(string(css))

	var (
		out       strings.Builder
		stack     []blockKind
		pendingAt string
		afterDot  bool
	)

	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF {
			break
		}
		if tok.Type == scanner.TokenError {
			return nil, fmt.Errorf("%s: invalid css at line %d, column %d: %q", module, tok.Line, tok.Column, tok.Value)
		}

		inRules := len(stack) == 0 || stack[len(stack)-1] == blockRules
		wasAfterDot := afterDot
		afterDot = false

		switch {
		case tok.Type == scanner.TokenIdent && wasAfterDot:
			scoped := ScopedName(module, tok.Value)
			sheet.classes[tok.Value] = scoped
			out.WriteString(scoped)
			continue

		case tok.Type == scanner.TokenAtKeyword && inRules:
			pendingAt = strings.ToLower(tok.Value)

		case tok.Type == scanner.TokenChar && tok.Value == "{":
			kind := blockDecls
			switch {
			case !inRules:
				kind = blockOpaque
			case nestingAtRules[pendingAt]:
				kind = blockRules
			case pendingAt != "":
				kind = blockOpaque
			}
			stack = append(stack, kind)
			pendingAt = ""

		case tok.Type == scanner.TokenChar && tok.Value == "}":
			if len(stack) == 0 {
				return nil, fmt.Errorf("%s: unbalanced '}' at line %d, column %d", module, tok.Line, tok.Column)
			}
			stack = stack[:len(stack)-1]

		case tok.Type == scanner.TokenChar && tok.Value == ";" && inRules:
			// end of a statement at-rule such as @import
			pendingAt = ""

		case tok.Type == scanner.TokenChar && tok.Value == "." && inRules && pendingAt == "":
			afterDot = true
		}

		out.WriteString(tok.Value)
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%s: %d unclosed block(s)", module, len(stack))
	}

	sheet.css = []byte(out.String())
	return sheet, nil
}

// MustParse is Parse for embedded stylesheets known to be valid
func MustParse(module string, css []byte) *Sheet {
	sheet, err := Parse(module, css)
	if err != nil {
		panic(err)
	}
	return sheet
}

func mustLoadEmbedded(module string) *Sheet {
	data, err := moduleFiles.ReadFile(module + ".module.css")
	if err != nil {
		panic(fmt.Sprintf("styles: embedded module %q: %v", module, err))
	}
	return MustParse(module, data)
}

// Loaded once at initialization and never mutated.
var (
	homeSheet = mustLoadEmbedded("home")
	docsSheet = mustLoadEmbedded("docs")
	logoSheet = mustLoadEmbedded("logo")
)

// Home returns the homepage stylesheet
func Home() *Sheet { return homeSheet }

// Docs returns the documentation stylesheet
func Docs() *Sheet { return docsSheet }

// Logo returns the logo stylesheet
func Logo() *Sheet { return logoSheet }
