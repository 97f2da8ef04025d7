package scrub

import (
	"github.com/mvp-joe/project-scrub/internal/syntax"
)

// Task applies one transformation to a parsed source file and returns the
// new source text. The file must have been parsed from the current text.
type Task interface {
	Name() string
	Transform(file *syntax.File) (string, error)
}

// StripAnnotated removes declarations marked with strip annotations, and in
// whitelist mode every top-level type not marked with an include annotation.
type StripAnnotated struct {
	policy Policy
}

// NewStripAnnotated creates the annotation stripping task.
func NewStripAnnotated(policy Policy) *StripAnnotated {
	return &StripAnnotated{policy: policy}
}

func (t *StripAnnotated) Name() string { return "strip-annotated" }

// Transform computes the removal set for file and applies it to its source.
func (t *StripAnnotated) Transform(file *syntax.File) (string, error) {
	ranges, err := ComputeRemovalRanges(file, t.policy)
	if err != nil {
		return "", err
	}
	return StripRanges(file.Source, ranges)
}

// Scrub parses source and strips it according to policy.
func Scrub(source string, policy Policy) (string, error) {
	file, err := syntax.Parse(source)
	if err != nil {
		return "", err
	}
	return NewStripAnnotated(policy).Transform(file)
}
