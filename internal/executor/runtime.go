package executor

import (
	"context"
)

// Runtime defines the host integration surface for field resolution,
// abstract type resolution, and leaf-value serialization used by the
// Executor.
//
// General contract
//   - Execution is synchronous and depth-first. Resolve is called once per
//     field invocation with the already-coerced argument map; an invocation
//     whose arguments fail to coerce never reaches the runtime.
//   - Errors returned from any method are converted into located GraphQL
//     errors. If the field's return type is Non-Null, the Executor
//     propagates the null up to the nearest nullable ancestor.
//   - Implementations should be stateless or otherwise concurrency-safe.
//     The Executor may call these methods concurrently for different
//     operations; schema and document are shared read-only.
//   - Implementations must not mutate source or args values.
//
// Object/field identifiers
//   - objectType is the GraphQL type name (e.g. "User").
//   - field is the GraphQL field name on that type (e.g. "posts").
//   - For root fields, objectType is the root type name (e.g. "Query").
//   - source is the parent object value (nil for root).
//   - args is the map of argument names to already-coerced Go values,
//     keyed by each argument's output-name alias when one is declared.
type Runtime interface {
	// Resolve resolves a field value.
	//
	// Return (nil, nil) to produce a GraphQL null for nullable fields.
	Resolve(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error)

	// ResolveType determines the concrete runtime type name for a value of
	// an abstract GraphQL type (interface or union).
	//
	// Must return a type name that is a possible type of the abstractType in
	// the schema; otherwise return an error.
	ResolveType(ctx context.Context, abstractType string, value any) (string, error)

	// SerializeLeafValue serializes a scalar or enum value to a JSON-safe Go
	// value. For enums, return the symbolic name as string.
	SerializeLeafValue(ctx context.Context, scalarOrEnumTypeName string, value any) (any, error)
}
