package typedecl

import (
	"fmt"

	"github.com/simonhull/firebird-suite/wren/pkg/syntax"
)

// Extract converts every top-level declaration under root into a
// TypedefInfo, in source order. It stops at the first declaration it
// cannot fully understand; a partial dependency graph is never returned.
func Extract(root syntax.Node) ([]*TypedefInfo, error) {
	var infos []*TypedefInfo

	for _, node := range root.Children() {
		info, err := ExtractDecl(node)
		if err != nil {
			return nil, err
		}
		if info != nil {
			infos = append(infos, info)
		}
	}

	return infos, nil
}

// ExtractDecl converts a single top-level node. Empty statements and
// comments yield (nil, nil).
func ExtractDecl(node syntax.Node) (*TypedefInfo, error) {
	switch node.Kind() {
	case syntax.KindStructSpecifier:
		return extractRecord(node, KindStruct)
	case syntax.KindUnionSpecifier:
		return extractRecord(node, KindUnion)
	case syntax.KindTypeDefinition:
		if fn := syntax.FirstChild(node, syntax.KindFunctionDeclarator); fn != nil {
			return extractFunctionPointer(node, fn)
		}
		return extractAlias(node)
	case syntax.KindEmpty, syntax.KindComment:
		return nil, nil
	default:
		return nil, unsupported(node.Type(), node.Text())
	}
}

func extractRecord(node syntax.Node, kind Kind) (*TypedefInfo, error) {
	name := syntax.FirstChild(node, syntax.KindTypeIdentifier)
	if name == nil {
		return nil, malformed(node.Type(), node.Text(), "top-level %s has no tag name", kind)
	}

	info := &TypedefInfo{Name: name.Text(), Decl: node.Text(), Kind: kind}

	body := syntax.FirstChild(node, syntax.KindFieldDeclarationList)
	if body == nil {
		info.Forward = true
	} else {
		deps, err := FieldDeps(body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, info.Name, err)
		}
		info.Deps = deps
	}

	// The base layout is always needed in full.
	if clause := syntax.FirstChild(node, syntax.KindBaseClassClause); clause != nil {
		base, err := baseName(clause)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, info.Name, err)
		}
		info.Deps.Add(base, true)
	}

	return info, nil
}

func baseName(clause syntax.Node) (string, error) {
	var bases []syntax.Node
	for _, c := range clause.Children() {
		if c.Kind() == syntax.KindTypeIdentifier {
			bases = append(bases, c)
		}
	}

	switch len(bases) {
	case 1:
		return bases[0].Text(), nil
	case 0:
		return "", unsupported(clause.Type(), clause.Text())
	default:
		return "", &ExtractError{
			Reason:   ErrUnsupportedConstruct,
			NodeType: clause.Type(),
			Text:     clause.Text(),
			Message:  fmt.Sprintf("%d base classes, only one is supported", len(bases)),
		}
	}
}

func extractFunctionPointer(node, fn syntax.Node) (*TypedefInfo, error) {
	paren := syntax.FirstChild(fn, syntax.KindParenthesizedDeclarator)
	if paren == nil {
		return nil, malformed(node.Type(), node.Text(), "function typedef is not a pointer")
	}
	ptr := syntax.FirstChild(paren, syntax.KindPointerDeclarator)
	if ptr == nil {
		return nil, malformed(node.Type(), node.Text(), "missing pointer declarator")
	}
	name := syntax.FirstChild(ptr, syntax.KindTypeIdentifier)
	if name == nil {
		return nil, malformed(node.Type(), node.Text(), "pointer declarator does not name a type")
	}
	params := syntax.FirstChild(fn, syntax.KindParameterList)
	if params == nil {
		return nil, malformed(node.Type(), node.Text(), "missing parameter list")
	}

	deps, err := FieldDeps(params)
	if err != nil {
		return nil, fmt.Errorf("function pointer %s: %w", name.Text(), err)
	}

	return &TypedefInfo{
		Name: name.Text(),
		Decl: node.Text(),
		Kind: KindFunctionPointer,
		Deps: deps,
	}, nil
}

func extractAlias(node syntax.Node) (*TypedefInfo, error) {
	name := introducedName(node)
	if name == nil {
		return nil, malformed(node.Type(), node.Text(), "typedef introduces no type name")
	}

	return &TypedefInfo{
		Name: name.Text(),
		Decl: node.Text(),
		Kind: KindOpaque,
	}, nil
}

// introducedName finds the alias a typedef introduces. The declarator
// subtree is searched first so that "typedef struct Foo Bar;" yields Bar.
func introducedName(node syntax.Node) syntax.Node {
	if decl := node.Field("declarator"); decl != nil {
		if decl.Kind() == syntax.KindTypeIdentifier {
			return decl
		}
		if name := syntax.FindFirst(decl, syntax.KindTypeIdentifier); name != nil {
			return name
		}
	}
	return syntax.FindFirst(node, syntax.KindTypeIdentifier)
}

// FieldDeps computes the dependency set of a field declaration list or a
// parameter list. A member is strong when it has a declarator that is not
// a pointer or reference declarator; members without a declarator are weak.
// Anonymous inline structs and unions are flattened into the result.
func FieldDeps(list syntax.Node) (Deps, error) {
	var deps Deps

	for _, field := range list.Children() {
		k := field.Kind()
		if k != syntax.KindFieldDeclaration && k != syntax.KindParameterDeclaration {
			continue
		}

		ty := field.Field("type")
		if ty == nil {
			return Deps{}, malformed(field.Type(), field.Text(), "member has no type")
		}

		decl := field.Field("declarator")
		strong := decl != nil && !decl.Kind().IsIndirect()

		switch ty.Kind() {
		case syntax.KindTypeIdentifier:
			deps.Add(ty.Text(), strong)

		case syntax.KindStructSpecifier, syntax.KindUnionSpecifier:
			if body := syntax.FirstChild(ty, syntax.KindFieldDeclarationList); body != nil {
				inner, err := FieldDeps(body)
				if err != nil {
					return Deps{}, err
				}
				deps.Merge(inner)
				continue
			}
			tag := syntax.FirstChild(ty, syntax.KindTypeIdentifier)
			if tag == nil {
				return Deps{}, malformed(ty.Type(), ty.Text(), "inline %s has neither body nor tag", ty.Type())
			}
			deps.Add(tag.Text(), strong)

		case syntax.KindPrimitiveType:

		case syntax.KindSizedTypeSpecifier:
			if err := checkSized(ty); err != nil {
				return Deps{}, err
			}

		default:
			return Deps{}, unsupported(ty.Type(), ty.Text())
		}
	}

	return deps, nil
}

// checkSized accepts width/sign keywords around at most one primitive,
// e.g. "unsigned int", "long long", "unsigned".
func checkSized(ty syntax.Node) error {
	primitives := 0
	for _, c := range ty.Children() {
		switch c.Kind() {
		case syntax.KindPrimitiveType:
			primitives++
		case syntax.KindUnknown, syntax.KindComment:
			// width and sign keywords are anonymous tokens
		default:
			return malformed(ty.Type(), ty.Text(), "sized specifier wraps non-primitive %s", c.Type())
		}
	}
	if primitives > 1 {
		return malformed(ty.Type(), ty.Text(), "sized specifier wraps %d primitives", primitives)
	}
	return nil
}
