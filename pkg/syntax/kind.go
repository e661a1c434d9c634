package syntax

// Kind is the closed set of grammar node kinds the declaration extractor
// understands. Anything outside this set maps to KindUnknown and is
// rejected by the extractor rather than skipped.
type Kind int

const (
	KindUnknown Kind = iota
	KindTranslationUnit
	KindEmpty // stray ';' at top level
	KindComment
	KindStructSpecifier
	KindUnionSpecifier
	KindTypeDefinition
	KindBaseClassClause
	KindFieldDeclarationList
	KindFieldDeclaration
	KindParameterList
	KindParameterDeclaration
	KindTypeIdentifier
	KindPrimitiveType
	KindSizedTypeSpecifier
	KindFunctionDeclarator
	KindParenthesizedDeclarator
	KindPointerDeclarator
	KindAbstractPointerDeclarator
	KindReferenceDeclarator
	KindAbstractReferenceDeclarator
	KindArrayDeclarator
	KindFieldIdentifier
	KindIdentifier
)

var kindNames = map[Kind]string{
	KindUnknown:                     "unknown",
	KindTranslationUnit:             "translation_unit",
	KindEmpty:                       ";",
	KindComment:                     "comment",
	KindStructSpecifier:             "struct_specifier",
	KindUnionSpecifier:              "union_specifier",
	KindTypeDefinition:              "type_definition",
	KindBaseClassClause:             "base_class_clause",
	KindFieldDeclarationList:        "field_declaration_list",
	KindFieldDeclaration:            "field_declaration",
	KindParameterList:               "parameter_list",
	KindParameterDeclaration:        "parameter_declaration",
	KindTypeIdentifier:              "type_identifier",
	KindPrimitiveType:               "primitive_type",
	KindSizedTypeSpecifier:          "sized_type_specifier",
	KindFunctionDeclarator:          "function_declarator",
	KindParenthesizedDeclarator:     "parenthesized_declarator",
	KindPointerDeclarator:           "pointer_declarator",
	KindAbstractPointerDeclarator:   "abstract_pointer_declarator",
	KindReferenceDeclarator:         "reference_declarator",
	KindAbstractReferenceDeclarator: "abstract_reference_declarator",
	KindArrayDeclarator:             "array_declarator",
	KindFieldIdentifier:             "field_identifier",
	KindIdentifier:                  "identifier",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		if k != KindUnknown {
			m[name] = k
		}
	}
	return m
}()

// String returns the grammar name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// KindOf maps a grammar node type name to its Kind.
func KindOf(grammarType string) Kind {
	if k, ok := kindsByName[grammarType]; ok {
		return k
	}
	return KindUnknown
}

// IsIndirect reports whether the kind is a pointer or reference declarator.
func (k Kind) IsIndirect() bool {
	switch k {
	case KindPointerDeclarator, KindAbstractPointerDeclarator,
		KindReferenceDeclarator, KindAbstractReferenceDeclarator:
		return true
	}
	return false
}
