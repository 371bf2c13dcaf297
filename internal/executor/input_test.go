package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/hanpama/graphlet/internal/language"
	schema "github.com/hanpama/graphlet/internal/schema"
)

// argValue parses a one-field query and returns the literal of its single argument.
func argValue(t *testing.T, literal string) *language.Value {
	t.Helper()
	field := firstField(t, `query($v: Int, $s: String) { f(arg: `+literal+`) }`)
	return field.Arguments[0].Value
}

func TestCoerceInputValue_Scalars(t *testing.T) {
	sch := schema.NewSchema("")

	cases := []struct {
		name     string
		typeName string
		in       any
		want     any
	}{
		{"int", "Int", 42, 42},
		{"int from float64", "Int", float64(42), 42},
		{"float", "Float", 1.5, 1.5},
		{"float from int", "Float", 2, float64(2)},
		{"string", "String", "hi", "hi"},
		{"boolean", "Boolean", true, true},
		{"id from string", "ID", "abc", "abc"},
		{"id from int", "ID", 7, "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := coerceInputValue(tc.in, schema.NamedType(tc.typeName), sch)
			require.Empty(t, errs)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("type mismatch", func(t *testing.T) {
		_, errs := coerceInputValue("nope", schema.NamedType("Boolean"), sch)
		require.Len(t, errs, 1)
		require.Contains(t, errs[0].Message, "cannot coerce")
	})
}

func TestCoerceInputValue_NonNull(t *testing.T) {
	sch := schema.NewSchema("")
	nonNullInt := schema.NonNullType(schema.NamedType("Int"))

	_, errs := coerceInputValue(nil, nonNullInt, sch)
	require.Len(t, errs, 1)
	require.Equal(t, "Expected non-nullable type 'Int!' not to be null.", errs[0].Message)

	got, errs := coerceInputValue(5, nonNullInt, sch)
	require.Empty(t, errs)
	require.Equal(t, 5, got)
}

func TestCoerceInputValue_NullForNullable(t *testing.T) {
	sch := schema.NewSchema("")
	got, errs := coerceInputValue(nil, schema.NamedType("Int"), sch)
	require.Empty(t, errs)
	require.Nil(t, got)
}

func TestCoerceInputValue_Enum(t *testing.T) {
	enum := schema.NewType("Color", schema.TypeKindEnum, "").
		AddEnumValue(schema.NewEnumValue("RED", "")).
		AddEnumValue(schema.NewEnumValue("BLUE", ""))
	sch := schema.NewSchema("").AddType(enum)

	got, errs := coerceInputValue("RED", schema.NamedType("Color"), sch)
	require.Empty(t, errs)
	require.Equal(t, "RED", got)

	_, errs = coerceInputValue("GREEN", schema.NamedType("Color"), sch)
	require.Len(t, errs, 1)
	require.Equal(t, `Value "GREEN" does not exist in 'Color' enum.`, errs[0].Message)
}

func TestCoerceInputValue_NestedListErrors(t *testing.T) {
	sch := schema.NewSchema("")
	listOfLists := schema.ListType(schema.ListType(schema.NamedType("Int")))

	_, errs := coerceInputValue([]any{[]any{1, "x"}, []any{"y"}}, listOfLists, sch)

	require.Len(t, errs, 2)
	require.Contains(t, errs[0].Message, "at index 0: at index 1:")
	require.Contains(t, errs[1].Message, "at index 1: at index 0:")
}

func TestCoerceInputValue_InputObjectFieldPrefix(t *testing.T) {
	inner := schema.NewType("Inner", schema.TypeKindInputObject, "")
	inner.AddInputField(schema.NewInputValue("n", "", schema.NamedType("Int")))
	outer := schema.NewType("Outer", schema.TypeKindInputObject, "")
	outer.AddInputField(schema.NewInputValue("inner", "", schema.NamedType("Inner")))
	sch := schema.NewSchema("").AddType(inner).AddType(outer)

	_, errs := coerceInputValue(map[string]any{
		"inner": map[string]any{"n": "bad"},
	}, schema.NamedType("Outer"), sch)

	require.Len(t, errs, 1)
	require.Contains(t, errs[0].Message, "in field 'inner': in field 'n':")
}

func TestCoerceInputValue_InputObjectOutName(t *testing.T) {
	input := schema.NewType("UserInput", schema.TypeKindInputObject, "")
	input.AddInputField(schema.NewInputValue("userId", "", schema.NamedType("Int")).SetOutName("user_id"))
	sch := schema.NewSchema("").AddType(input)

	got, errs := coerceInputValue(map[string]any{"userId": 1}, schema.NamedType("UserInput"), sch)

	require.Empty(t, errs)
	require.Equal(t, map[string]any{"user_id": 1}, got)
}

func TestCoerceInputValue_CustomScalarPassesThrough(t *testing.T) {
	sch := schema.NewSchema("").AddType(newScalarType("JSON"))

	raw := map[string]any{"anything": []any{1, "two"}}
	got, errs := coerceInputValue(raw, schema.NamedType("JSON"), sch)

	require.Empty(t, errs)
	require.Equal(t, raw, got)
}

func TestValueFromAST_Scalars(t *testing.T) {
	sch := schema.NewSchema("")

	cases := []struct {
		name     string
		literal  string
		typeName string
		want     any
	}{
		{"int", "42", "Int", 42},
		{"float", "1.5", "Float", 1.5},
		{"float from int literal", "2", "Float", float64(2)},
		{"string", `"hi"`, "String", "hi"},
		{"boolean", "true", "Boolean", true},
		{"id from string", `"abc"`, "ID", "abc"},
		{"id from int literal", "7", "ID", "7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := valueFromAST(argValue(t, tc.literal), schema.NamedType(tc.typeName), sch, nil)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}

	t.Run("kind mismatch", func(t *testing.T) {
		_, ok := valueFromAST(argValue(t, `"42"`), schema.NamedType("Int"), sch, nil)
		require.False(t, ok, "a string literal must not coerce to Int")
	})
}

func TestValueFromAST_NullHandling(t *testing.T) {
	sch := schema.NewSchema("")

	got, ok := valueFromAST(argValue(t, "null"), schema.NamedType("Int"), sch, nil)
	require.True(t, ok)
	require.Nil(t, got)

	_, ok = valueFromAST(argValue(t, "null"), schema.NonNullType(schema.NamedType("Int")), sch, nil)
	require.False(t, ok)
}

func TestValueFromAST_Variables(t *testing.T) {
	sch := schema.NewSchema("")
	v := argValue(t, "$v")

	t.Run("resolved", func(t *testing.T) {
		got, ok := valueFromAST(v, schema.NamedType("Int"), sch, map[string]any{"v": 9})
		require.True(t, ok)
		require.Equal(t, 9, got)
	})

	t.Run("unresolved", func(t *testing.T) {
		_, ok := valueFromAST(v, schema.NamedType("Int"), sch, map[string]any{})
		require.False(t, ok)
	})

	t.Run("null into non-null", func(t *testing.T) {
		_, ok := valueFromAST(v, schema.NonNullType(schema.NamedType("Int")), sch, map[string]any{"v": nil})
		require.False(t, ok)
	})
}

func TestValueFromAST_Lists(t *testing.T) {
	sch := schema.NewSchema("")
	listOfInt := schema.ListType(schema.NamedType("Int"))

	t.Run("list literal", func(t *testing.T) {
		got, ok := valueFromAST(argValue(t, "[1, 2, 3]"), listOfInt, sch, nil)
		require.True(t, ok)
		require.Equal(t, []any{1, 2, 3}, got)
	})

	t.Run("single value wraps", func(t *testing.T) {
		got, ok := valueFromAST(argValue(t, "1"), listOfInt, sch, nil)
		require.True(t, ok)
		require.Equal(t, []any{1}, got)
	})

	t.Run("missing variable yields null element", func(t *testing.T) {
		got, ok := valueFromAST(argValue(t, "[1, $v]"), listOfInt, sch, map[string]any{})
		require.True(t, ok)
		require.Equal(t, []any{1, nil}, got)
	})

	t.Run("missing variable invalidates non-null item list", func(t *testing.T) {
		listOfNonNullInt := schema.ListType(schema.NonNullType(schema.NamedType("Int")))
		_, ok := valueFromAST(argValue(t, "[1, $v]"), listOfNonNullInt, sch, map[string]any{})
		require.False(t, ok)
	})
}

func TestValueFromAST_InputObject(t *testing.T) {
	input := schema.NewType("Opts", schema.TypeKindInputObject, "")
	input.AddInputField(schema.NewInputValue("a", "", schema.NonNullType(schema.NamedType("Int"))))
	input.AddInputField(schema.NewInputValue("b", "", schema.NamedType("String")).SetDefault("d"))
	sch := schema.NewSchema("").AddType(input)
	optsType := schema.NamedType("Opts")

	t.Run("defaults fill absent fields", func(t *testing.T) {
		got, ok := valueFromAST(argValue(t, "{a: 1}"), optsType, sch, nil)
		require.True(t, ok)
		require.Equal(t, map[string]any{"a": 1, "b": "d"}, got)
	})

	t.Run("missing required field", func(t *testing.T) {
		_, ok := valueFromAST(argValue(t, "{b: \"x\"}"), optsType, sch, nil)
		require.False(t, ok)
	})

	t.Run("missing variable treated as absent field", func(t *testing.T) {
		// $s has no runtime value, so b falls back to its default.
		got, ok := valueFromAST(argValue(t, "{a: 1, b: $s}"), optsType, sch, map[string]any{})
		require.True(t, ok)
		require.Equal(t, map[string]any{"a": 1, "b": "d"}, got)
	})
}

func TestValueFromAST_Enum(t *testing.T) {
	enum := schema.NewType("Color", schema.TypeKindEnum, "").
		AddEnumValue(schema.NewEnumValue("RED", ""))
	sch := schema.NewSchema("").AddType(enum)
	colorType := schema.NamedType("Color")

	got, ok := valueFromAST(argValue(t, "RED"), colorType, sch, nil)
	require.True(t, ok)
	require.Equal(t, "RED", got)

	_, ok = valueFromAST(argValue(t, "GREEN"), colorType, sch, nil)
	require.False(t, ok, "undefined enum value")

	_, ok = valueFromAST(argValue(t, `"RED"`), colorType, sch, nil)
	require.False(t, ok, "string literal is not an enum literal")
}

func TestInspect(t *testing.T) {
	require.Equal(t, `"x"`, inspect("x"))
	require.Equal(t, "42", inspect(42))
	require.Equal(t, "null", inspect(nil))
	require.Equal(t, `{"a":1,"b":2}`, inspect(map[string]any{"b": 2, "a": 1}))
	require.Equal(t, `[1,"two"]`, inspect([]any{1, "two"}))
}
