package scrub

import (
	"testing"

	"github.com/mvp-joe/project-scrub/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocCommentPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		doc   string
		span  string
		match bool
	}{
		{name: "single line", doc: "Returns bar. ", span: "  /** Returns bar. */\n  ", match: true},
		{name: "multi line", doc: "\n Returns bar.\n", span: "  /**\n   * Returns bar.\n   */\n  ", match: true},
		{name: "no stars", doc: "\nReturns bar.\n", span: "/**\n    Returns bar.\n */\n", match: true},
		{name: "trailing line comment", doc: "x ", span: "/** x */\n// later\n", match: true},
		{name: "regex metacharacters", doc: "a.b(c)* [d] ", span: "/** a.b(c)* [d] */", match: true},
		{name: "metacharacters are literal", doc: "a.b ", span: "/** axb */", match: false},
		{name: "partial comment", doc: "\n Returns bar.\n", span: "   * Returns bar.\n   */\n", match: false},
		{name: "plain block comment", doc: "x ", span: "/* x */", match: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			re, err := docCommentPattern(tt.doc)
			require.NoError(t, err)

			got, err := re.MatchString(tt.span)
			require.NoError(t, err)
			assert.Equal(t, tt.match, got)
		})
	}
}

func TestTriviaLocator_BlankLines(t *testing.T) {
	t.Parallel()

	src := "int a;\n\n  \t\n   int b;\n"
	l := &triviaLocator{source: src, lines: syntax.NewLineMap(src), docs: syntax.DocComments{}}

	// "int b" begins at offset 15, after two blank lines.
	start, err := l.locateStart(nil, 15)
	require.NoError(t, err)
	assert.Equal(t, 7, start)

	// A declaration on the first line snaps to offset 0.
	start, err = l.locateStart(nil, 4)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
}
