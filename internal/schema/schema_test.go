package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/hanpama/graphlet/internal/language"
)

const testSDL = `
"""
Test service schema.
"""
schema {
  query: RootQuery
}

type RootQuery {
  user(id: ID!): User
  search(term: String, limit: Int = 10): [User!]
}

type User implements Node {
  id: ID!
  name: String!
  role: Role @deprecated(reason: "use roles")
}

interface Node {
  id: ID!
}

union Entity = User

enum Role {
  ADMIN
  MEMBER
}

input UserFilter @oneOf {
  byId: ID
  byName: String
}

scalar DateTime

directive @cached(ttl: Int = 60) on FIELD_DEFINITION
`

func TestBuildFromSDL(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	require.Equal(t, "RootQuery", s.QueryType)
	require.NotNil(t, s.GetQueryType())
	require.Nil(t, s.GetMutationType())

	user := s.Types["User"]
	require.NotNil(t, user)
	require.Equal(t, TypeKindObject, user.Kind)
	require.Equal(t, []string{"Node"}, user.Interfaces)

	node := s.Types["Node"]
	require.NotNil(t, node)
	require.Equal(t, TypeKindInterface, node.Kind)

	entity := s.Types["Entity"]
	require.NotNil(t, entity)
	require.Equal(t, []string{"User"}, entity.PossibleTypes)

	role := s.Types["Role"]
	require.NotNil(t, role)
	require.Len(t, role.EnumValues, 2)

	filter := s.Types["UserFilter"]
	require.NotNil(t, filter)
	require.True(t, filter.OneOf)
	require.NotNil(t, filter.InputField("byId"))
	require.Nil(t, filter.InputField("bogus"))

	require.Equal(t, TypeKindScalar, s.Types["DateTime"].Kind)
	require.Equal(t, TypeKindScalar, s.Types["Int"].Kind, "builtins stay registered")

	cached := s.Directives["cached"]
	require.NotNil(t, cached)
	require.Len(t, cached.Arguments, 1)
	require.True(t, cached.Arguments[0].HasDefault)
	require.Equal(t, 60, cached.Arguments[0].DefaultValue)
}

func TestBuildFromSDL_ArgumentDefaults(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	search := s.GetQueryType().Fields[1]
	require.Equal(t, "search", search.Name)

	term := search.Arguments[0]
	require.False(t, term.HasDefault)

	limit := search.Arguments[1]
	require.True(t, limit.HasDefault)
	require.Equal(t, 10, limit.DefaultValue)
}

func TestBuildFromSDL_SyntaxError(t *testing.T) {
	_, err := BuildFromSDL(`type Query {`)
	require.Error(t, err)
}

func TestTypeRefString(t *testing.T) {
	cases := []struct {
		ref  *TypeRef
		want string
	}{
		{NamedType("Int"), "Int"},
		{NonNullType(NamedType("Int")), "Int!"},
		{ListType(NamedType("Int")), "[Int]"},
		{NonNullType(ListType(NonNullType(NamedType("Int")))), "[Int!]!"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.ref.String())
	}
}

func TestTypeFromAST(t *testing.T) {
	s := NewSchema("")

	parse := func(src string) *language.Type {
		doc, err := language.ParseQuery("query($v: " + src + ") { f }")
		require.NoError(t, err)
		return doc.Operations[0].VariableDefinitions[0].Type
	}

	ref := TypeFromAST(s, parse("[Int!]!"))
	require.NotNil(t, ref)
	require.Equal(t, "[Int!]!", ref.String())

	require.Nil(t, TypeFromAST(s, parse("Mystery")), "unknown named type resolves to nil")
}

func TestIsInputType(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	require.True(t, IsInputType(s, NamedType("Int")))
	require.True(t, IsInputType(s, NonNullType(ListType(NamedType("Role")))))
	require.True(t, IsInputType(s, NamedType("UserFilter")))
	require.False(t, IsInputType(s, NamedType("User")))
	require.False(t, IsInputType(s, NamedType("Node")))
	require.False(t, IsInputType(s, NamedType("Unknown")))
	require.False(t, IsInputType(s, nil))
}

func TestInputValueDefaultSentinel(t *testing.T) {
	v := NewInputValue("a", "", NamedType("Int"))
	require.False(t, v.HasDefault)

	v.SetDefault(nil)
	require.True(t, v.HasDefault, "explicit null default is still a default")
	require.Nil(t, v.DefaultValue)
}

func TestRender(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	sdl := Render(s)

	require.Contains(t, sdl, "type User implements Node {")
	require.Contains(t, sdl, "search(term: String, limit: Int = 10): [User!]")
	require.Contains(t, sdl, "union Entity = User")
	require.Contains(t, sdl, "input UserFilter @oneOf {")
	require.Contains(t, sdl, "scalar DateTime")
	require.Contains(t, sdl, `@deprecated(reason: "use roles")`)
	require.Contains(t, sdl, "directive @cached(ttl: Int = 60)")
	require.NotContains(t, sdl, "scalar Int", "builtin scalars are not rendered")

	// Rendered output must parse back.
	_, err = BuildFromSDL(sdl)
	require.NoError(t, err)
}

func TestRenderDeterministic(t *testing.T) {
	s, err := BuildFromSDL(testSDL)
	require.NoError(t, err)

	first := Render(s)
	for i := 0; i < 5; i++ {
		if Render(s) != first {
			t.Fatal("render output is not stable across calls")
		}
	}
	if !strings.Contains(first, "enum Role") {
		t.Fatalf("unexpected output: %s", first)
	}
}
