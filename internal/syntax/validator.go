//go:build cgo

package syntax

import (
	"fmt"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// Validator checks code samples for syntax errors using tree-sitter parsers.
type Validator struct {
	languages map[string]unsafe.Pointer
}

// SyntaxError represents a single syntax error found during validation.
type SyntaxError struct {
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	ErrorNode string `json:"error_node"` // "ERROR" or "MISSING ..."
}

// ValidationResult contains the results of syntax validation.
type ValidationResult struct {
	Valid       bool          `json:"valid"`
	Errors      []SyntaxError `json:"errors,omitempty"`
	Language    string        `json:"language"`
	ParsedBytes int           `json:"parsed_bytes"`
}

// NewValidator creates a validator for the bundled grammars.
func NewValidator() *Validator {
	return &Validator{languages: grammars()}
}

// SupportsLanguage checks if the validator has a grammar for language.
func (v *Validator) SupportsLanguage(language string) bool {
	_, ok := v.languages[Normalize(language)]
	return ok
}

// Validate parses code and reports ERROR and MISSING nodes.
func (v *Validator) Validate(code string, language string) (*ValidationResult, error) {
	language = Normalize(language)
	source := []byte(code)

	if strings.TrimSpace(code) == "" {
		return &ValidationResult{Valid: true, Language: language}, nil
	}

	lang, ok := v.languages[language]
	if !ok {
		return nil, fmt.Errorf("language not supported for validation: %s (supported: %s)",
			language, strings.Join(SupportedTreeSitterLanguages(), ", "))
	}

	tree, err := parse(lang, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	result := &ValidationResult{
		Valid:       true,
		Language:    language,
		ParsedBytes: len(source),
	}
	if root == nil || !root.HasError() {
		return result, nil
	}

	result.Errors = findErrorNodes(root, source)
	result.Valid = len(result.Errors) == 0
	return result, nil
}

// findErrorNodes collects ERROR and MISSING nodes in document order.
func findErrorNodes(root *tree_sitter.Node, source []byte) []SyntaxError {
	var errs []SyntaxError

	var traverse func(*tree_sitter.Node)
	traverse = func(n *tree_sitter.Node) {
		if n == nil {
			return
		}

		if n.IsError() || n.IsMissing() {
			pos := n.StartPosition()
			kind := n.Kind()
			if n.IsMissing() {
				kind = "MISSING " + kind
			}
			errs = append(errs, SyntaxError{
				Line:      int(pos.Row) + 1, // tree-sitter rows and columns are 0-based
				Column:    int(pos.Column) + 1,
				Message:   errorMessage(n, source),
				ErrorNode: kind,
			})
		}

		for i := uint(0); i < n.ChildCount(); i++ {
			traverse(n.Child(i))
		}
	}
	traverse(root)

	// Error recovery can flag the root without leaving an ERROR node behind
	if len(errs) == 0 {
		pos := root.StartPosition()
		errs = append(errs, SyntaxError{
			Line:      int(pos.Row) + 1,
			Column:    int(pos.Column) + 1,
			Message:   "syntax error: parsing failed with error recovery",
			ErrorNode: "ERROR",
		})
	}

	return errs
}

func errorMessage(node *tree_sitter.Node, source []byte) string {
	if node.IsMissing() {
		return fmt.Sprintf("missing %s", node.Kind())
	}

	start, end := node.StartByte(), node.EndByte()
	if start >= end || end > uint(len(source)) {
		return "syntax error"
	}

	text := string(source[start:end])
	if len(text) > 50 {
		text = text[:50] + "..."
	}
	return fmt.Sprintf("syntax error near '%s'", strings.ReplaceAll(text, "\n", "\\n"))
}
