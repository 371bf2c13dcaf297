package executor

import (
	"testing"

	language "github.com/hanpama/graphlet/internal/language"
	schema "github.com/hanpama/graphlet/internal/schema"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// varDefs extracts the variable definitions of the document's single operation.
func varDefs(t *testing.T, q string) language.VariableDefinitionList {
	t.Helper()
	doc := mustParseQuery(t, q)
	if len(doc.Operations) != 1 {
		t.Fatalf("expected one operation, got %d", len(doc.Operations))
	}
	return doc.Operations[0].VariableDefinitions
}

// firstField extracts the first top-level field of the document's single operation.
func firstField(t *testing.T, q string) *language.Field {
	t.Helper()
	doc := mustParseQuery(t, q)
	if len(doc.Operations) != 1 {
		t.Fatalf("expected one operation, got %d", len(doc.Operations))
	}
	f, ok := doc.Operations[0].SelectionSet[0].(*language.Field)
	if !ok {
		t.Fatalf("expected a field selection, got %T", doc.Operations[0].SelectionSet[0])
	}
	return f
}

func newSchemaWithQueryType(query *schema.Type, additional ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	if query != nil {
		sch.SetQueryType(query.Name)
		sch.AddType(query)
	}
	for _, t := range additional {
		sch.AddType(t)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		t.AddField(field)
	}
	return t
}

func newScalarType(name string) *schema.Type {
	return schema.NewType(name, schema.TypeKindScalar, "")
}
