package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleProps_CSS(t *testing.T) {
	tests := []struct {
		name  string
		props StyleProps
		want  string
	}{
		{"empty", StyleProps{}, ""},
		{"color only", StyleProps{Color: "#fff"}, "color:#fff"},
		{
			"all",
			StyleProps{Color: "#fff", Background: "#000", FontStyle: "italic", FontWeight: "bold", TextDecoration: "underline"},
			"color:#fff;background-color:#000;font-style:italic;font-weight:bold;text-decoration:underline",
		},
		{"skips unset", StyleProps{Background: "#000", FontWeight: "bold"}, "background-color:#000;font-weight:bold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.props.CSS())
		})
	}
}

func TestRendering_IterationStopsEarly(t *testing.T) {
	r := NewRendering(StyleProps{},
		NewLine(Token{Text: "a"}, Token{Text: "b"}),
		NewLine(Token{Text: "c"}),
		NewLine(Token{Text: "d"}),
	)

	seen := 0
	for i := range r.Lines() {
		seen++
		if i == 1 {
			break
		}
	}
	assert.Equal(t, 2, seen)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "ab\nc\nd", r.Text())
}

func TestPlainRendering(t *testing.T) {
	r := PlainRendering("one\r\ntwo\n", VSDark)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "one\ntwo", r.Text())
	assert.Equal(t, "#1e1e1e", r.Style.Background)
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"ts":         "typescript",
		" TS ":       "typescript",
		"typescript": "typescript",
		"js":         "javascript",
		"golang":     "go",
		"sh":         "bash",
		"rust":       "rust",
	}
	for in, want := range tests {
		assert.Equal(t, want, Normalize(in), in)
	}
	assert.True(t, IsTreeSitterSupported("ts"))
	assert.False(t, IsTreeSitterSupported("rust"))
}
