//go:build cgo

package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_ValidCode(t *testing.T) {
	validator := NewValidator()

	testCases := []struct {
		name     string
		language string
		want     string
		code     string
	}{
		{"typescript sample", "ts", "typescript", sampleTS},
		{"javascript", "js", "javascript", "function hello() {\n  console.log(\"hi\")\n}\nhello()"},
		{"go", "go", "go", "package main\n\nfunc main() {}\n"},
		{"bash", "bash", "bash", "npm install vkrun\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := validator.Validate(tc.code, tc.language)
			require.NoError(t, err)

			assert.True(t, result.Valid, "errors: %+v", result.Errors)
			assert.Equal(t, tc.want, result.Language)
			assert.Equal(t, len(tc.code), result.ParsedBytes)
		})
	}
}

func TestValidator_InvalidSyntax(t *testing.T) {
	validator := NewValidator()

	testCases := []struct {
		name     string
		language string
		code     string
	}{
		{"typescript unexpected token", "typescript", "const vkrun = ;\n"},
		{"typescript unclosed call", "ts", "vkrun.server().listen(3000, () => {\n"},
		{"go unclosed parenthesis", "go", "package main\n\nfunc main() {\n    fmt.Println(\"test\"\n}"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := validator.Validate(tc.code, tc.language)
			require.NoError(t, err)

			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			for _, e := range result.Errors {
				assert.GreaterOrEqual(t, e.Line, 1)
				assert.GreaterOrEqual(t, e.Column, 1)
				assert.NotEmpty(t, e.Message)
			}
		})
	}
}

func TestValidator_EmptyCode(t *testing.T) {
	result, err := NewValidator().Validate("  \n\t\n", "python")
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidator_UnsupportedLanguage(t *testing.T) {
	v := NewValidator()

	_, err := v.Validate("fn main() {}", "rust")
	assert.Error(t, err)
	assert.False(t, v.SupportsLanguage("rust"))
	assert.True(t, v.SupportsLanguage("TS"))
}
