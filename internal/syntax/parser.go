package syntax

import (
	"fmt"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"
)

var javaLanguage = sitter.NewLanguage(java.Language())

// declarationKinds maps tree-sitter-java node kinds onto declaration kinds.
var declarationKinds = map[string]Kind{
	"class_declaration":                   KindType,
	"interface_declaration":               KindType,
	"enum_declaration":                    KindType,
	"annotation_type_declaration":         KindType,
	"record_declaration":                  KindType,
	"method_declaration":                  KindMethod,
	"constructor_declaration":             KindMethod,
	"compact_constructor_declaration":     KindMethod,
	"annotation_type_element_declaration": KindMethod,
	"field_declaration":                   KindField,
	"constant_declaration":                KindField,
	"enum_constant":                       KindField,
	"local_variable_declaration":          KindField,
}

// Parse parses Java source text. Each call uses its own parser, so Parse is
// safe for concurrent use. Any syntax error fails the whole parse.
func Parse(source string) (*File, error) {
	src := []byte(source)

	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(javaLanguage); err != nil {
		return nil, fmt.Errorf("failed to set java language: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, &ParseError{Detail: "parser produced no tree"}
	}
	defer tree.Close()

	rootNode := tree.RootNode()
	if rootNode.HasError() {
		return nil, firstSyntaxError(rootNode, src)
	}

	b := &treeBuilder{source: src, docs: DocComments{}}
	root := &Node{
		Kind:  KindUnit,
		Start: int(rootNode.StartByte()),
		End:   int(rootNode.EndByte()),
	}
	b.collect(rootNode, root)

	return &File{
		Source: source,
		Root:   root,
		Lines:  NewLineMap(source),
		Docs:   b.docs,
	}, nil
}

type treeBuilder struct {
	source []byte
	docs   DocComments
}

// collect attaches every declaration below ts to parent, nesting declarations
// found inside other declarations under them.
func (b *treeBuilder) collect(ts *sitter.Node, parent *Node) {
	for i := 0; i < int(ts.ChildCount()); i++ {
		child := ts.Child(uint(i))
		kind, ok := declarationKinds[child.Kind()]
		if !ok {
			b.collect(child, parent)
			continue
		}
		decl := b.declaration(child, kind)
		parent.Children = append(parent.Children, decl)
		b.collect(child, decl)
	}
}

func (b *treeBuilder) declaration(ts *sitter.Node, kind Kind) *Node {
	n := &Node{
		Kind:        kind,
		Name:        declarationName(ts, b.source),
		Start:       int(ts.StartByte()),
		End:         int(ts.EndByte()),
		Annotations: b.annotations(ts),
	}
	if doc, ok := b.docComment(ts); ok {
		b.docs[n] = doc
	}
	return n
}

func (b *treeBuilder) annotations(ts *sitter.Node) []Annotation {
	modifiers := findChildByType(ts, "modifiers")
	var out []Annotation
	for _, a := range findChildrenByType(modifiers, "marker_annotation", "annotation") {
		out = append(out, Annotation{
			Name:  strings.Join(strings.Fields(nodeText(a.ChildByFieldName("name"), b.source)), ""),
			Start: int(a.StartByte()),
			End:   int(a.EndByte()),
		})
	}
	return out
}

// docComment returns the closest documentation comment preceding ts. Ordinary
// comments between the two are skipped.
func (b *treeBuilder) docComment(ts *sitter.Node) (string, bool) {
	for prev := ts.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		switch prev.Kind() {
		case "line_comment":
			continue
		case "block_comment":
			text := nodeText(prev, b.source)
			if isDocComment(text) {
				return docCommentText(text), true
			}
		default:
			return "", false
		}
	}
	return "", false
}

func declarationName(ts *sitter.Node, source []byte) string {
	if name := ts.ChildByFieldName("name"); name != nil {
		return nodeText(name, source)
	}
	if declarator := ts.ChildByFieldName("declarator"); declarator != nil {
		return nodeText(declarator.ChildByFieldName("name"), source)
	}
	return ""
}

func firstSyntaxError(root *sitter.Node, source []byte) *ParseError {
	var bad *sitter.Node
	walkTree(root, func(n *sitter.Node) bool {
		if bad != nil {
			return false
		}
		if n.IsError() || n.IsMissing() {
			bad = n
			return false
		}
		return n.HasError()
	})
	if bad == nil {
		return &ParseError{Detail: "syntax error"}
	}

	pos := bad.StartPosition()
	perr := &ParseError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}
	if bad.IsMissing() {
		perr.Detail = fmt.Sprintf("missing %s", bad.Kind())
	} else {
		perr.Detail = fmt.Sprintf("unexpected %q", snippet(nodeText(bad, source)))
	}
	return perr
}

func snippet(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
