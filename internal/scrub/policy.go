package scrub

import (
	"github.com/mvp-joe/project-scrub/internal/syntax"
)

// Policy holds the annotation names that drive stripping. Names are matched
// exactly against the annotation type as written in the source.
type Policy struct {
	strip   map[string]struct{}
	include map[string]struct{}
}

// NewPolicy builds a policy from strip and include annotation names.
func NewPolicy(strip, include []string) Policy {
	return Policy{strip: nameSet(strip), include: nameSet(include)}
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Strips reports whether name marks a declaration for removal.
func (p Policy) Strips(name string) bool {
	_, ok := p.strip[name]
	return ok
}

// Includes reports whether name marks a declaration to be kept.
func (p Policy) Includes(name string) bool {
	_, ok := p.include[name]
	return ok
}

// Whitelist reports whether un-annotated top-level types are removed by
// default, which is the case whenever include names are configured.
func (p Policy) Whitelist() bool { return len(p.include) > 0 }

// Disposition is what happens to a declaration.
type Disposition int

const (
	// Keep retains the declaration untouched.
	Keep Disposition = iota
	// StripWhole removes the declaration with its doc comment and leading blank lines.
	StripWhole
	// StripAnnotationOnly removes only the matched include annotation.
	StripAnnotationOnly
)

func (d Disposition) String() string {
	switch d {
	case Keep:
		return "keep"
	case StripWhole:
		return "strip"
	case StripAnnotationOnly:
		return "strip-annotation"
	default:
		return "unknown"
	}
}

// Decision is the classifier's verdict for one declaration. Annotation is the
// annotation that decided it, nil when none matched.
type Decision struct {
	Disposition Disposition
	Annotation  *syntax.Annotation
}

// Classify decides what to do with node. Annotations are consulted in source
// order and the first one found in either name set decides, so
// "@Strip @Include" strips while "@Include @Strip" keeps. With no match, a
// type outside any retained type is stripped in whitelist mode and kept
// otherwise.
func Classify(node *syntax.Node, policy Policy, insideType bool) Decision {
	for i := range node.Annotations {
		a := &node.Annotations[i]
		if policy.Strips(a.Name) {
			return Decision{Disposition: StripWhole, Annotation: a}
		}
		if policy.Includes(a.Name) {
			return Decision{Disposition: StripAnnotationOnly, Annotation: a}
		}
	}

	if node.Kind == syntax.KindType && !insideType && policy.Whitelist() {
		return Decision{Disposition: StripWhole}
	}
	return Decision{Disposition: Keep}
}
