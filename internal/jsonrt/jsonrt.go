// Package jsonrt provides an executor.Runtime backed by a decoded JSON
// document. Root fields read from the document root; nested fields read
// from their parent object. It is meant for serving fixture data and for
// exercising the execution pipeline without a real backend.
package jsonrt

import (
	"context"
	"fmt"
	"strconv"
)

// Runtime resolves fields by key lookup on map[string]any values.
type Runtime struct {
	data map[string]any
}

// New creates a Runtime over the given document.
func New(data map[string]any) *Runtime {
	if data == nil {
		data = map[string]any{}
	}
	return &Runtime{data: data}
}

// Resolve looks the field up on the source object, or on the document root
// for root fields. When the resolved value is a list of objects and
// arguments were provided, the list is filtered to elements whose fields
// equal the argument values.
func (r *Runtime) Resolve(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	obj := r.data
	if source != nil {
		m, ok := source.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("cannot resolve field %q on non-object value of type %s", field, objectType)
		}
		obj = m
	}

	value, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("no data for field %q on type %s", field, objectType)
	}

	if items, isList := value.([]any); isList && len(args) > 0 {
		return filterByArgs(items, args), nil
	}
	return value, nil
}

func filterByArgs(items []any, args map[string]any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if matchesArgs(m, args) {
			out = append(out, item)
		}
	}
	return out
}

func matchesArgs(m map[string]any, args map[string]any) bool {
	for k, want := range args {
		if want == nil {
			continue
		}
		got, ok := m[k]
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual compares values across the numeric representations JSON
// decoding and argument coercion produce (float64 vs int).
func looseEqual(a, b any) bool {
	if a == b {
		return true
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	return aok && bok && af == bf
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// ResolveType reads the value's __typename field.
func (r *Runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if m, ok := value.(map[string]any); ok {
		if name, ok := m["__typename"].(string); ok {
			return name, nil
		}
	}
	return "", fmt.Errorf("cannot resolve concrete type for %s value without __typename", abstractType)
}

// SerializeLeafValue serializes builtin scalar values to their JSON-safe
// forms. Custom scalars and enums pass through unchanged.
func (r *Runtime) SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error) {
	switch scalarOrEnumTypeName {
	case "Int":
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as Int", value)
		}
		return int(f), nil
	case "Float":
		f, ok := toFloat(value)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as Float", value)
		}
		return f, nil
	case "String":
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as String", value)
		}
		return s, nil
	case "Boolean":
		b, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot serialize %T as Boolean", value)
		}
		return b, nil
	case "ID":
		switch v := value.(type) {
		case string:
			return v, nil
		case int:
			return strconv.Itoa(v), nil
		case float64:
			return strconv.FormatInt(int64(v), 10), nil
		default:
			return nil, fmt.Errorf("cannot serialize %T as ID", value)
		}
	default:
		return value, nil
	}
}
