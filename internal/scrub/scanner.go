package scrub

import (
	"github.com/mvp-joe/project-scrub/internal/syntax"
)

// Scanner walks a parsed file and records the ranges a policy removes.
// A Scanner is single-use: it is bound to one parsed snapshot.
type Scanner struct {
	file   *syntax.File
	policy Policy
	trivia triviaLocator

	lastLine   int
	insideType bool // inside a retained type declaration
	ranges     *RangeSet
}

// NewScanner creates a scanner for file under policy.
func NewScanner(file *syntax.File, policy Policy) *Scanner {
	return &Scanner{
		file:   file,
		policy: policy,
		trivia: triviaLocator{
			source: file.Source,
			lines:  file.Lines,
			docs:   file.Docs,
		},
	}
}

// ComputeRemovalRanges returns the line-aligned ranges policy removes from file.
func ComputeRemovalRanges(file *syntax.File, policy Policy) (*RangeSet, error) {
	return NewScanner(file, policy).Scan()
}

// Scan traverses the whole tree and returns the removal set.
func (s *Scanner) Scan() (*RangeSet, error) {
	s.ranges = NewRangeSet()
	s.insideType = false
	if err := s.visit(s.file.Root); err != nil {
		return nil, err
	}
	return s.ranges, nil
}

func (s *Scanner) visit(n *syntax.Node) error {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case syntax.KindUnit:
		s.lastLine = s.file.Lines.LineCount()
		return s.visitChildren(n)

	case syntax.KindType:
		retained, err := s.apply(n)
		if err != nil || !retained {
			return err
		}
		outer := s.insideType
		s.insideType = true
		err = s.visitChildren(n)
		s.insideType = outer
		return err

	default:
		retained, err := s.apply(n)
		if err != nil || !retained {
			return err
		}
		return s.visitChildren(n)
	}
}

func (s *Scanner) visitChildren(n *syntax.Node) error {
	for _, child := range n.Children {
		if err := s.visit(child); err != nil {
			return err
		}
	}
	return nil
}

// apply classifies n and records its removal range. It reports whether the
// declaration itself survives.
func (s *Scanner) apply(n *syntax.Node) (bool, error) {
	d := Classify(n, s.policy, s.insideType)
	switch d.Disposition {
	case StripWhole:
		return false, s.remove(n, n.Start, n.End)
	case StripAnnotationOnly:
		return true, s.remove(nil, d.Annotation.Start, d.Annotation.End)
	default:
		return true, nil
	}
}

// remove records [start, end) widened to whole lines: the end moves to the
// next line start unless it is already on the last line, and the start takes
// in the doc comment of node and any blank lines above.
func (s *Scanner) remove(n *syntax.Node, start, end int) error {
	if line := s.file.Lines.LineOf(end); line < s.lastLine {
		end = s.file.Lines.LineStart(line + 1)
	}

	start, err := s.trivia.locateStart(n, start)
	if err != nil {
		return err
	}

	s.ranges.Add(Range{Start: start, End: end})
	return nil
}
