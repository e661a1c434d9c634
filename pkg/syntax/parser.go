package syntax

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Parser turns C/C++ header text into a concrete syntax tree.
// A Parser is not safe for concurrent use; create one per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a parser for the C++ grammar, which is a superset of
// the C declarations found in recovered headers and adds base clauses.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(cpp.GetLanguage())
	return &Parser{parser: p}
}

// SyntaxError reports source text the grammar could not parse.
type SyntaxError struct {
	Row    uint32
	Column uint32
	Text   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d near %q", e.Row+1, e.Column+1, e.Text)
}

// Tree is a parsed source file.
type Tree struct {
	tree *sitter.Tree
	src  []byte
}

// Parse parses src. Trees containing error or missing nodes are rejected so
// that a half-understood file never reaches the extractor.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Tree, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing source: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		bad := firstBroken(root)
		tree.Close()
		if bad == nil {
			return nil, &SyntaxError{Text: "<unknown>"}
		}
		start := bad.StartPoint()
		return nil, &SyntaxError{Row: start.Row, Column: start.Column, Text: shorten(bad.Content(src), 40)}
	}

	return &Tree{tree: tree, src: src}, nil
}

// Close releases the parser.
func (p *Parser) Close() {
	p.parser.Close()
}

// Root returns the translation unit node.
func (t *Tree) Root() Node {
	return &treeNode{n: t.tree.RootNode(), src: t.src}
}

// Close releases the underlying tree. Nodes must not be used afterwards.
func (t *Tree) Close() {
	t.tree.Close()
}

func firstBroken(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !c.HasError() && !c.IsMissing() {
			continue
		}
		if bad := firstBroken(c); bad != nil {
			return bad
		}
	}
	return nil
}

// shorten cuts s to at most max runes.
func shorten(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}

// treeNode adapts a tree-sitter node to Node.
type treeNode struct {
	n   *sitter.Node
	src []byte
}

func (t *treeNode) Kind() Kind   { return KindOf(t.n.Type()) }
func (t *treeNode) Type() string { return t.n.Type() }
func (t *treeNode) Text() string { return t.n.Content(t.src) }

func (t *treeNode) Children() []Node {
	count := int(t.n.ChildCount())
	children := make([]Node, 0, count)
	for i := 0; i < count; i++ {
		if c := t.n.Child(i); c != nil {
			children = append(children, &treeNode{n: c, src: t.src})
		}
	}
	return children
}

func (t *treeNode) Field(name string) Node {
	c := t.n.ChildByFieldName(name)
	if c == nil {
		return nil
	}
	return &treeNode{n: c, src: t.src}
}
