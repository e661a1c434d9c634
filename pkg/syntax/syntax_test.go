package syntax

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		grammarType string
		want        Kind
	}{
		{"struct_specifier", KindStructSpecifier},
		{"union_specifier", KindUnionSpecifier},
		{";", KindEmpty},
		{"abstract_pointer_declarator", KindAbstractPointerDeclarator},
		{"reference_declarator", KindReferenceDeclarator},
		{"abstract_reference_declarator", KindAbstractReferenceDeclarator},
		{"enum_specifier", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.grammarType, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.grammarType))
		})
	}
}

func TestKind_StringRoundTrip(t *testing.T) {
	for k := KindTranslationUnit; k <= KindIdentifier; k++ {
		assert.Equal(t, k, KindOf(k.String()), "kind %d", k)
	}
	assert.Equal(t, "unknown", Kind(999).String())
}

func TestKind_IsIndirect(t *testing.T) {
	assert.True(t, KindPointerDeclarator.IsIndirect())
	assert.True(t, KindAbstractPointerDeclarator.IsIndirect())
	assert.True(t, KindReferenceDeclarator.IsIndirect())
	assert.True(t, KindAbstractReferenceDeclarator.IsIndirect())
	assert.False(t, KindFieldIdentifier.IsIndirect())
	assert.False(t, KindArrayDeclarator.IsIndirect())
}

func TestFindFirst_DepthFirstSourceOrder(t *testing.T) {
	inner := NewNode("pointer_declarator", "*B").Add(NewNode("type_identifier", "B"))
	root := NewNode("type_definition", "typedef A *B").
		Add(NewNode("typedef", "typedef")).
		AddField("type", NewNode("struct_specifier", "struct A").Add(NewNode("type_identifier", "A"))).
		AddField("declarator", inner)

	found := FindFirst(root, KindTypeIdentifier)
	require.NotNil(t, found)
	assert.Equal(t, "A", found.Text())

	found = FindFirst(root.Field("declarator"), KindTypeIdentifier)
	require.NotNil(t, found)
	assert.Equal(t, "B", found.Text())

	assert.Nil(t, FindFirst(root, KindBaseClassClause))
}

func TestMemNode_Field(t *testing.T) {
	name := NewNode("type_identifier", "A")
	n := NewNode("struct_specifier", "struct A").AddField("name", name)

	assert.Equal(t, name, n.Field("name"))
	assert.Nil(t, n.Field("body"))
	assert.Len(t, n.Children(), 1)
	assert.Equal(t, name, FirstChild(n, KindTypeIdentifier))
}

func TestParser_Parse(t *testing.T) {
	src := []byte(`struct Node : Base { Node* next; unsigned int val; };
typedef void (*Callback)(Node*, int);
typedef int handle_t;
`)

	tree, err := NewParser().Parse(context.Background(), src)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.Root()
	assert.Equal(t, KindTranslationUnit, root.Kind())

	var kinds []Kind
	for _, c := range root.Children() {
		kinds = append(kinds, c.Kind())
	}
	assert.Equal(t, []Kind{
		KindStructSpecifier, KindEmpty,
		KindTypeDefinition,
		KindTypeDefinition,
	}, kinds)

	st := root.Children()[0]
	assert.Equal(t, "Node", st.Field("name").Text())
	assert.NotNil(t, FirstChild(st, KindBaseClassClause))
	assert.NotNil(t, st.Field("body"))
}

func TestParser_ParseRejectsBrokenSource(t *testing.T) {
	_, err := NewParser().Parse(context.Background(), []byte("struct { int x; "))

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
}

func TestShorten_KeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "short", shorten("short", 40))

	got := shorten(strings.Repeat("ü", 50), 40)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("ü", 40)+"...", got)
}
