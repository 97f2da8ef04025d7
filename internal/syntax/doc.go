package syntax

import "strings"

func isDocComment(text string) bool {
	return len(text) >= 5 && strings.HasPrefix(text, "/**") && strings.HasSuffix(text, "*/")
}

// docCommentText reduces a raw "/** ... */" comment to its text: the body
// between the delimiters with, on every line, a trailing '\r', the leading
// whitespace and at most one leading '*' removed.
func docCommentText(raw string) string {
	lines := strings.Split(raw[3:len(raw)-2], "\n")
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		line = strings.TrimLeft(line, " \t\f")
		lines[i] = strings.TrimPrefix(line, "*")
	}
	return strings.Join(lines, "\n")
}
