package syntax

// Node is the read-only view of a concrete syntax tree node that the
// extractor consumes. Implementations exist for tree-sitter trees and for
// hand-built trees in tests.
type Node interface {
	// Kind is the node's classification within the supported subset.
	Kind() Kind
	// Type is the raw grammar type, kept for error messages.
	Type() string
	// Text is the verbatim source span covered by the node.
	Text() string
	// Children returns all children, named and anonymous, in source order.
	Children() []Node
	// Field returns the child stored under a grammar field name, or nil.
	Field(name string) Node
}

// FirstChild returns the first direct child of the given kind, or nil.
func FirstChild(n Node, kind Kind) Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// FindFirst searches the descendants of n depth-first, in source order,
// for the first node of the given kind. n itself is not considered.
func FindFirst(n Node, kind Kind) Node {
	for _, c := range n.Children() {
		if c.Kind() == kind {
			return c
		}
		if found := FindFirst(c, kind); found != nil {
			return found
		}
	}
	return nil
}

// MemNode is an in-memory Node, used to build trees by hand.
type MemNode struct {
	typ      string
	text     string
	children []Node
	fields   map[string]Node
}

// NewNode creates a MemNode with the given grammar type and source text.
func NewNode(grammarType, text string) *MemNode {
	return &MemNode{typ: grammarType, text: text}
}

// Add appends unnamed children.
func (m *MemNode) Add(children ...Node) *MemNode {
	m.children = append(m.children, children...)
	return m
}

// AddField appends a child and records it under a field name.
func (m *MemNode) AddField(name string, child Node) *MemNode {
	if m.fields == nil {
		m.fields = make(map[string]Node)
	}
	if _, exists := m.fields[name]; !exists {
		m.fields[name] = child
	}
	m.children = append(m.children, child)
	return m
}

func (m *MemNode) Kind() Kind       { return KindOf(m.typ) }
func (m *MemNode) Type() string     { return m.typ }
func (m *MemNode) Text() string     { return m.text }
func (m *MemNode) Children() []Node { return m.children }

func (m *MemNode) Field(name string) Node {
	if c, ok := m.fields[name]; ok {
		return c
	}
	return nil
}
