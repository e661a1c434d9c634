// Package typedecl turns parsed header declarations into named type records
// and the dependency edges between them.
//
// # Overview
//
// Every struct, union and typedef at the top level of a header becomes a
// TypedefInfo holding its verbatim text and an ordered set of dependencies.
// A dependency is strong when the referenced type is held by value and must
// be complete first, and weak when only a pointer to it is held:
//   - "B val;" records B as strong
//   - "B *ptr;" records B as weak
//   - an anonymous inline struct or union contributes its members' edges
//   - a base class is a strong dependency, recorded after the members
//
// Function-pointer typedefs depend on their parameter types; plain typedefs
// are opaque and record none.
//
// # Usage
//
//	store := typedecl.NewStore()
//	n, err := store.Extract(tree.Root())
//	if err != nil {
//	    var xerr *typedecl.ExtractError
//	    if errors.As(err, &xerr) {
//	        fmt.Println(xerr.NodeType, xerr.Text)
//	    }
//	}
//
// Extraction is all or nothing per file: on error the store is unchanged.
package typedecl
