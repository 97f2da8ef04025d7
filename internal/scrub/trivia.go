package scrub

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/mvp-joe/project-scrub/internal/syntax"
)

// docMatchTimeout bounds a single doc comment match attempt.
const docMatchTimeout = 5 * time.Second

// triviaLocator finds where the removal of a declaration should begin so that
// its doc comment and the blank lines above it go with it.
type triviaLocator struct {
	source string
	lines  *syntax.LineMap
	docs   syntax.DocComments
}

// locateStart moves start back over node's doc comment, if it has one, then
// over preceding blank lines, and snaps the result to a line start. A nil
// node has no doc comment.
func (l *triviaLocator) locateStart(node *syntax.Node, start int) (int, error) {
	if node != nil {
		if doc, ok := l.docs[node]; ok {
			var err error
			start, err = l.backtrackDocComment(node, doc, start)
			if err != nil {
				return 0, err
			}
		}
	}

	start = l.backtrackBlankLines(start)
	return l.lines.LineStart(l.lines.LineOf(start)), nil
}

// backtrackDocComment walks back one line at a time until the text between
// the candidate line start and start contains the doc comment.
func (l *triviaLocator) backtrackDocComment(node *syntax.Node, doc string, start int) (int, error) {
	pattern, err := docCommentPattern(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to compile doc comment pattern: %w", err)
	}

	candidate := l.lines.LineStart(l.lines.LineOf(start))
	for {
		matched, err := pattern.MatchString(l.source[candidate:start])
		if err != nil {
			return 0, fmt.Errorf("failed to match doc comment for %s: %w", describe(node), err)
		}
		if matched {
			return candidate, nil
		}
		if candidate == 0 {
			return 0, &DocCommentAnchorNotFoundError{
				Declaration: describe(node),
				Offset:      start,
				Doc:         doc,
				Pattern:     pattern.String(),
			}
		}
		candidate = l.lines.LineStart(l.lines.LineOf(candidate) - 1)
	}
}

// backtrackBlankLines absorbs whitespace-only lines above start.
func (l *triviaLocator) backtrackBlankLines(start int) int {
	for start > 0 {
		line := l.lines.LineOf(start)
		if line == 1 {
			break
		}
		prev := l.lines.LineStart(line - 1)
		if strings.TrimSpace(l.source[prev:start]) != "" {
			break
		}
		start = prev
	}
	return start
}

// docCommentPattern matches a span holding the doc comment whose text is doc.
// Each line may be preceded by whitespace and a '*', the closing '*' is
// optional, and anything may come before or after the comment, which sweeps
// neighbouring ordinary comments into the same span.
func docCommentPattern(doc string) (*regexp2.Regexp, error) {
	var b strings.Builder
	b.WriteString(`\A.*`)
	b.WriteString(regexp2.Escape("/**"))
	for _, line := range strings.Split(doc, "\n") {
		b.WriteString(`\s*\*?`)
		b.WriteString(regexp2.Escape(line))
	}
	b.WriteString(`\*?/.*\z`)

	re, err := regexp2.Compile(b.String(), regexp2.Singleline)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = docMatchTimeout
	return re, nil
}

func describe(node *syntax.Node) string {
	if node.Name == "" {
		return fmt.Sprintf("%s at offset %d", node.Kind, node.Start)
	}
	return fmt.Sprintf("%s %s", node.Kind, node.Name)
}
