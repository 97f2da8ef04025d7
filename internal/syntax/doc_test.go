package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocCommentText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "single line", raw: "/** Returns bar. */", want: "Returns bar. "},
		{name: "multi line", raw: "/**\n   * Returns bar.\n   */", want: "\n Returns bar.\n"},
		{name: "no leading star", raw: "/**\n    Returns bar.\n */", want: "\nReturns bar.\n"},
		{name: "crlf", raw: "/**\r\n * a\r\n */", want: "\n a\n"},
		{name: "only one star dropped", raw: "/**\n ** a\n */", want: "\n* a\n"},
		{name: "empty", raw: "/***/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, isDocComment(tt.raw))
			assert.Equal(t, tt.want, docCommentText(tt.raw))
		})
	}
}

func TestIsDocComment(t *testing.T) {
	t.Parallel()

	assert.False(t, isDocComment("/**/"))
	assert.False(t, isDocComment("/* plain */"))
	assert.True(t, isDocComment("/** x */"))
}
