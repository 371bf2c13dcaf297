// Package executor implements a synchronous, depth-first GraphQL executor
// whose centerpiece is strict runtime input coercion: client-supplied
// variable values and literal arguments are validated against declared
// input types before any resolver runs.
//
// # Preparation
//
// Before execution, the executor:
//  1. Chooses the operation (by name or by uniqueness when unnamed).
//  2. Coerces variables from the provided input against the operation's
//     variable definitions, producing a variableValues map. Errors here
//     stop execution and are returned as a batch.
//  3. Determines the root object type from the operation and collects the
//     root selection set.
//
// # Input coercion
//
// The two coercion paths deliberately follow different error disciplines:
//
//   - CoerceVariableValues accumulates. Every variable definition is
//     processed even after earlier ones error, so a client sees all
//     variable problems in one response. Nested coercion failures are
//     rewritten (as copies) to carry the enclosing variable's name and the
//     offending input value.
//   - CoerceArgumentValues fails fast. Arguments belong to a single field
//     or directive invocation, and that invocation cannot proceed with any
//     invalid argument, so the first violation aborts it with one located
//     error and no partial argument map.
//
// These are two distinct control paths on purpose; unifying them into one
// generic error-collecting helper would force the wrong discipline onto
// one of the call sites.
//
// An argument definition with no declared default is different from one
// whose default is an explicit null (schema.InputValue.HasDefault), and a
// variable that was never given a runtime value is different from one set
// to null (map key presence). Both distinctions change required-argument
// handling and are preserved end to end.
//
// GetDirectiveValues locates a named directive on a node's directive list
// and reuses argument coercion; a directive that is simply not applied is
// a successful "not present" outcome. Field collection uses it to evaluate
// @skip and @include.
//
// # Value completion
//
// Completion follows the GraphQL specification: Non-Null unwrapping with
// null-propagation to the nearest nullable ancestor, lists with index-aware
// paths, leaf serialization and abstract-type resolution through the
// Runtime, and object recursion. Errors are accumulated as located errors
// (message, source locations, response path) while allowing partial
// success.
//
// # Runtime contract
//
// The Runtime interface abstracts host integration: Resolve for field
// values, ResolveType for interface/union values, SerializeLeafValue for
// scalars and enums. See runtime.go for method contracts.
package executor
