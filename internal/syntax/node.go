// Package syntax is the Java frontend for the scrubber. It parses source text
// with tree-sitter and exposes the declaration tree, a line map and the
// documentation comment table the scanner needs.
package syntax

// Kind identifies the kind of declaration a Node represents.
type Kind int

const (
	KindUnit Kind = iota
	KindType
	KindMethod
	KindField
)

func (k Kind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindType:
		return "type"
	case KindMethod:
		return "method"
	case KindField:
		return "field"
	default:
		return "unknown"
	}
}

// Annotation is an annotation reference attached to a declaration.
// Name is the annotation type as written, e.g. "Include" or "Outer.Include".
type Annotation struct {
	Name  string
	Start int // byte offset of '@'
	End   int // exclusive
}

// Node is a declaration in the parsed tree. Offsets are byte offsets into the
// source; End is exclusive. Annotations are kept in source order.
type Node struct {
	Kind        Kind
	Name        string
	Start       int
	End         int
	Annotations []Annotation
	Children    []*Node
}

// DocComments maps a declaration to the text of its documentation comment.
// Only the text is recorded, not where the comment sits in the source.
type DocComments map[*Node]string

// File is the result of parsing one source snapshot. It is only valid for the
// exact Source it was built from.
type File struct {
	Source string
	Root   *Node
	Lines  *LineMap
	Docs   DocComments
}
