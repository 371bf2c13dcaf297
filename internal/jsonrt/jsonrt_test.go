package jsonrt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testData() map[string]any {
	return map[string]any{
		"hello": "world",
		"users": []any{
			map[string]any{"id": float64(1), "name": "Ada", "active": true},
			map[string]any{"id": float64(2), "name": "Grace", "active": false},
		},
	}
}

func TestResolve_RootField(t *testing.T) {
	rt := New(testData())
	v, err := rt.Resolve(context.Background(), "Query", "hello", nil, nil)
	require.NoError(t, err)
	require.Equal(t, "world", v)
}

func TestResolve_NestedField(t *testing.T) {
	rt := New(testData())
	source := map[string]any{"name": "Ada"}
	v, err := rt.Resolve(context.Background(), "User", "name", source, nil)
	require.NoError(t, err)
	require.Equal(t, "Ada", v)
}

func TestResolve_MissingField(t *testing.T) {
	rt := New(testData())
	_, err := rt.Resolve(context.Background(), "Query", "nope", nil, nil)
	require.EqualError(t, err, `no data for field "nope" on type Query`)
}

func TestResolve_NonObjectSource(t *testing.T) {
	rt := New(testData())
	_, err := rt.Resolve(context.Background(), "User", "name", "not-an-object", nil)
	require.Error(t, err)
}

func TestResolve_ListFiltering(t *testing.T) {
	rt := New(testData())

	t.Run("coerced int matches json float", func(t *testing.T) {
		v, err := rt.Resolve(context.Background(), "Query", "users", nil, map[string]any{"id": 2})
		require.NoError(t, err)
		require.Equal(t, []any{
			map[string]any{"id": float64(2), "name": "Grace", "active": false},
		}, v)
	})

	t.Run("boolean filter", func(t *testing.T) {
		v, err := rt.Resolve(context.Background(), "Query", "users", nil, map[string]any{"active": true})
		require.NoError(t, err)
		require.Len(t, v, 1)
	})

	t.Run("nil argument is ignored", func(t *testing.T) {
		v, err := rt.Resolve(context.Background(), "Query", "users", nil, map[string]any{"id": nil})
		require.NoError(t, err)
		require.Len(t, v, 2)
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		v, err := rt.Resolve(context.Background(), "Query", "users", nil, map[string]any{"id": 99})
		require.NoError(t, err)
		require.Equal(t, []any{}, v)
	})
}

func TestResolveType(t *testing.T) {
	rt := New(nil)

	name, err := rt.ResolveType(context.Background(), "Node", map[string]any{"__typename": "User"})
	require.NoError(t, err)
	require.Equal(t, "User", name)

	_, err = rt.ResolveType(context.Background(), "Node", map[string]any{"id": 1})
	require.Error(t, err)
}

func TestSerializeLeafValue(t *testing.T) {
	rt := New(nil)
	ctx := context.Background()

	cases := []struct {
		name     string
		typeName string
		in       any
		want     any
	}{
		{"int from json float", "Int", float64(3), 3},
		{"float", "Float", 1.5, 1.5},
		{"string", "String", "x", "x"},
		{"boolean", "Boolean", true, true},
		{"id from int", "ID", 7, "7"},
		{"id from json float", "ID", float64(7), "7"},
		{"enum passes through", "Color", "RED", "RED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rt.SerializeLeafValue(ctx, tc.typeName, tc.in)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := rt.SerializeLeafValue(ctx, "Int", "nope")
	require.Error(t, err)
}
