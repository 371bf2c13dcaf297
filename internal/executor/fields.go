package executor

import (
	language "github.com/hanpama/graphlet/internal/language"
	schema "github.com/hanpama/graphlet/internal/schema"
)

// collectedFieldMap preserves field order from the original query
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{
		fields: make([]collectedField, 0),
		index:  make(map[string]int),
	}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
	} else {
		cfm.index[responseName] = len(cfm.fields)
		cfm.fields = append(cfm.fields, collectedField{
			ResponseName: responseName,
			Fields:       []*language.Field{field},
		})
	}
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields collects fields from a selection set
func collectFields(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet) *collectedFieldMap {
	groupedFields := newCollectedFieldMap()
	visitedFragments := make(map[string]bool)

	collectFieldsImpl(state, objectType, selectionSet, groupedFields, visitedFragments)

	return groupedFields
}

// collectFieldsImpl is the recursive implementation of field collection
func collectFieldsImpl(state *executionState, objectType *schema.Type, selectionSet language.SelectionSet, groupedFields *collectedFieldMap, visitedFragments map[string]bool) {
	for _, selection := range selectionSet {
		switch sel := selection.(type) {
		case *language.Field:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}

			responseName := sel.Alias
			if responseName == "" {
				responseName = sel.Name
			}

			groupedFields.add(responseName, sel)

		case *language.InlineFragment:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}

			if sel.TypeCondition != "" && sel.TypeCondition != objectType.Name {
				// TODO: match interface/union subtypes at collection time
				continue
			}

			collectFieldsImpl(state, objectType, sel.SelectionSet, groupedFields, visitedFragments)

		case *language.FragmentSpread:
			if !shouldIncludeNode(state, sel.Directives) {
				continue
			}

			if visitedFragments[sel.Name] {
				continue
			}
			visitedFragments[sel.Name] = true

			fragmentDef := getFragmentDefinition(state.document, sel.Name)
			if fragmentDef == nil {
				continue
			}

			if fragmentDef.TypeCondition != "" && fragmentDef.TypeCondition != objectType.Name {
				continue
			}

			if !shouldIncludeNode(state, fragmentDef.Directives) {
				continue
			}

			collectFieldsImpl(state, objectType, fragmentDef.SelectionSet, groupedFields, visitedFragments)
		}
	}
}

// shouldIncludeNode evaluates @skip and @include against the coerced
// variable values. A directive that is not applied is a normal outcome; a
// directive whose arguments fail to coerce surfaces the error and excludes
// the node.
func shouldIncludeNode(state *executionState, directives language.DirectiveList) bool {
	if def := state.schema.Directives["skip"]; def != nil {
		args, found, err := GetDirectiveValues(state.schema, def, directives, state.variableValues)
		if err != nil {
			state.addCoercionError(err, nil)
			return false
		}
		if found {
			if skip, ok := args["if"].(bool); ok && skip {
				return false
			}
		}
	}

	if def := state.schema.Directives["include"]; def != nil {
		args, found, err := GetDirectiveValues(state.schema, def, directives, state.variableValues)
		if err != nil {
			state.addCoercionError(err, nil)
			return false
		}
		if found {
			if include, ok := args["if"].(bool); ok && !include {
				return false
			}
		}
	}

	return true
}

// getFragmentDefinition finds a fragment definition by name in the document
func getFragmentDefinition(document *language.QueryDocument, name string) *language.FragmentDefinition {
	return document.Fragments.ForName(name)
}

func getFieldDefinition(objectType *schema.Type, fieldName string) *schema.Field {
	for _, field := range objectType.Fields {
		if field.Name == fieldName {
			return field
		}
	}
	return nil
}
