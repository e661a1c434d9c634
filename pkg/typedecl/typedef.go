package typedecl

// Kind classifies a recorded declaration.
type Kind int

const (
	KindStruct Kind = iota
	KindUnion
	KindFunctionPointer
	KindOpaque
)

// String returns the kind's name as shown in listings.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindUnion:
		return "union"
	case KindFunctionPointer:
		return "function_pointer"
	case KindOpaque:
		return "opaque_type"
	default:
		return "unknown"
	}
}

// IsRecord reports whether the kind is a struct or union, the only kinds
// forward-declared with a tag keyword.
func (k Kind) IsRecord() bool {
	return k == KindStruct || k == KindUnion
}

// TypedefInfo is one named type recovered from a header. Records are built
// once by the extractor and never modified afterwards.
type TypedefInfo struct {
	Name string
	// Decl is the verbatim source text of the declaration.
	Decl string
	Kind Kind
	Deps Deps
	// Forward is set for a bodiless struct/union, i.e. a tag declaration.
	Forward bool
}

// ForwardDecl returns the forward declaration for the type without a
// terminator: "struct X", "union X", or just "X" for aliases.
func (t *TypedefInfo) ForwardDecl() string {
	if t.Kind.IsRecord() {
		return t.Kind.String() + " " + t.Name
	}
	return t.Name
}
