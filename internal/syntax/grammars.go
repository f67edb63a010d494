//go:build cgo

package syntax

import (
	"errors"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

var errParseFailed = errors.New("failed to parse code: parser returned nil tree")

// grammars maps canonical language tags to tree-sitter grammars
func grammars() map[string]unsafe.Pointer {
	return map[string]unsafe.Pointer{
		"typescript": tree_sitter_typescript.LanguageTypescript(),
		"javascript": tree_sitter_typescript.LanguageTypescript(), // TypeScript parser handles JS
		"tsx":        tree_sitter_typescript.LanguageTSX(),
		"jsx":        tree_sitter_typescript.LanguageTSX(),
		"go":         tree_sitter_go.Language(),
		"python":     tree_sitter_python.Language(),
		"bash":       tree_sitter_bash.Language(),
	}
}

// parse parses code with the grammar for language. The caller closes the tree.
func parse(lang unsafe.Pointer, code []byte) (*tree_sitter.Tree, error) {
	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(lang)); err != nil {
		return nil, err
	}

	tree := parser.Parse(code, nil)
	if tree == nil {
		return nil, errParseFailed
	}
	return tree, nil
}
