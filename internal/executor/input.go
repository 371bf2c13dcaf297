package executor

import (
	"encoding/json"
	"fmt"
	"strconv"

	language "github.com/hanpama/graphlet/internal/language"
	schema "github.com/hanpama/graphlet/internal/schema"
)

// coerceInputValue coerces a raw runtime value (decoded JSON) to the given
// input type. Errors are accumulated, not short-circuited, so a bad input
// object reports every offending field.
func coerceInputValue(value any, t *schema.TypeRef, sch *schema.Schema) (any, []GraphQLError) {
	if t.IsNonNull() {
		if value == nil {
			return nil, []GraphQLError{{Message: fmt.Sprintf(
				"Expected non-nullable type '%s' not to be null.", t)}}
		}
		return coerceInputValue(value, t.Unwrap(), sch)
	}

	if value == nil {
		return nil, nil
	}

	if t.Kind == schema.TypeRefKindList {
		return coerceInputList(value, t, sch)
	}

	named := sch.Types[t.GetNamedType()]
	if named == nil {
		return nil, []GraphQLError{{Message: fmt.Sprintf("Unknown type '%s'.", t.GetNamedType())}}
	}

	switch named.Kind {
	case schema.TypeKindScalar:
		return coerceScalarValue(value, named.Name)
	case schema.TypeKindEnum:
		return coerceEnumValue(value, named)
	case schema.TypeKindInputObject:
		return coerceInputObjectValue(value, named, sch)
	default:
		return nil, []GraphQLError{{Message: fmt.Sprintf(
			"Type '%s' cannot be used as an input type.", named.Name)}}
	}
}

func coerceInputList(value any, t *schema.TypeRef, sch *schema.Schema) (any, []GraphQLError) {
	inner := t.Unwrap()

	items, ok := value.([]any)
	if !ok {
		// A single value coerces to a list of one.
		v, errs := coerceInputValue(value, inner, sch)
		if len(errs) > 0 {
			return nil, errs
		}
		return []any{v}, nil
	}

	out := make([]any, len(items))
	var errs []GraphQLError
	for i, item := range items {
		v, itemErrs := coerceInputValue(item, inner, sch)
		if len(itemErrs) > 0 {
			for _, e := range itemErrs {
				e.Message = fmt.Sprintf("at index %d: %s", i, e.Message)
				errs = append(errs, e)
			}
			continue
		}
		out[i] = v
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func coerceInputObjectValue(value any, def *schema.Type, sch *schema.Schema) (any, []GraphQLError) {
	fields, ok := value.(map[string]any)
	if !ok {
		return nil, []GraphQLError{{Message: fmt.Sprintf(
			"Expected type '%s' to be an object.", def.Name)}}
	}

	var errs []GraphQLError
	out := make(map[string]any, len(def.InputFields))

	for _, fieldDef := range def.InputFields {
		outName := fieldDef.OutName
		if outName == "" {
			outName = fieldDef.Name
		}
		raw, present := fields[fieldDef.Name]
		if !present {
			if fieldDef.HasDefault {
				out[outName] = fieldDef.DefaultValue
			} else if fieldDef.Type.IsNonNull() {
				errs = append(errs, GraphQLError{Message: fmt.Sprintf(
					"Field '%s' of required type '%s' was not provided.",
					fieldDef.Name, fieldDef.Type)})
			}
			continue
		}
		v, fieldErrs := coerceInputValue(raw, fieldDef.Type, sch)
		if len(fieldErrs) > 0 {
			for _, e := range fieldErrs {
				e.Message = fmt.Sprintf("in field '%s': %s", fieldDef.Name, e.Message)
				errs = append(errs, e)
			}
			continue
		}
		out[outName] = v
	}

	for name := range fields {
		if def.InputField(name) == nil {
			errs = append(errs, GraphQLError{Message: fmt.Sprintf(
				"Field '%s' is not defined by type '%s'.", name, def.Name)})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func coerceEnumValue(value any, def *schema.Type) (any, []GraphQLError) {
	name, ok := value.(string)
	if ok {
		for _, ev := range def.EnumValues {
			if ev.Name == name {
				return name, nil
			}
		}
	}
	return nil, []GraphQLError{{Message: fmt.Sprintf(
		"Value %s does not exist in '%s' enum.", inspect(value), def.Name)}}
}

func coerceScalarValue(value any, name string) (any, []GraphQLError) {
	var (
		v   any
		err error
	)
	switch name {
	case "Int":
		v, err = coerceToInt(value)
	case "Float":
		v, err = coerceToFloat(value)
	case "String":
		v, err = coerceToString(value)
	case "Boolean":
		v, err = coerceToBoolean(value)
	case "ID":
		v, err = coerceToID(value)
	default:
		// Custom scalars pass through untouched; the runtime serializes them.
		return value, nil
	}
	if err != nil {
		return nil, []GraphQLError{{Message: err.Error()}}
	}
	return v, nil
}

// valueFromAST coerces a literal value node to the given type, resolving
// nested variable references from variableValues. The boolean result is the
// validity sentinel: ok == false means the literal (or a variable feeding
// it) cannot produce a value of the type, which is distinct from a
// successful nil for a nullable type.
func valueFromAST(v *language.Value, t *schema.TypeRef, sch *schema.Schema, variableValues map[string]any) (any, bool) {
	if v == nil {
		return nil, false
	}

	if v.Kind == language.Variable {
		value, ok := lookupVariable(variableValues, v.Raw)
		if !ok {
			return nil, false
		}
		if value == nil && t.IsNonNull() {
			return nil, false
		}
		// Variable values were coerced when the request started.
		return value, true
	}

	if t.IsNonNull() {
		if v.Kind == language.NullValue {
			return nil, false
		}
		return valueFromAST(v, t.Unwrap(), sch, variableValues)
	}

	if v.Kind == language.NullValue {
		return nil, true
	}

	if t.Kind == schema.TypeRefKindList {
		return listFromAST(v, t.Unwrap(), sch, variableValues)
	}

	named := sch.Types[t.GetNamedType()]
	if named == nil {
		return nil, false
	}

	switch named.Kind {
	case schema.TypeKindInputObject:
		return inputObjectFromAST(v, named, sch, variableValues)
	case schema.TypeKindEnum:
		if v.Kind != language.EnumValue {
			return nil, false
		}
		for _, ev := range named.EnumValues {
			if ev.Name == v.Raw {
				return v.Raw, true
			}
		}
		return nil, false
	case schema.TypeKindScalar:
		return scalarFromAST(v, named.Name)
	default:
		return nil, false
	}
}

func listFromAST(v *language.Value, inner *schema.TypeRef, sch *schema.Schema, variableValues map[string]any) (any, bool) {
	if v.Kind != language.ListValue {
		item, ok := valueFromAST(v, inner, sch, variableValues)
		if !ok {
			return nil, false
		}
		return []any{item}, true
	}
	out := make([]any, 0, len(v.Children))
	for _, child := range v.Children {
		if child.Value.Kind == language.Variable {
			if _, ok := lookupVariable(variableValues, child.Value.Raw); !ok {
				// A missing variable yields a null element when the item
				// type permits it; otherwise the whole list is invalid.
				if inner.IsNonNull() {
					return nil, false
				}
				out = append(out, nil)
				continue
			}
		}
		item, ok := valueFromAST(child.Value, inner, sch, variableValues)
		if !ok {
			return nil, false
		}
		out = append(out, item)
	}
	return out, true
}

func inputObjectFromAST(v *language.Value, def *schema.Type, sch *schema.Schema, variableValues map[string]any) (any, bool) {
	if v.Kind != language.ObjectValue {
		return nil, false
	}
	fieldNodes := make(map[string]*language.ChildValue, len(v.Children))
	for _, child := range v.Children {
		fieldNodes[child.Name] = child
	}

	out := make(map[string]any, len(def.InputFields))
	for _, fieldDef := range def.InputFields {
		outName := fieldDef.OutName
		if outName == "" {
			outName = fieldDef.Name
		}
		node := fieldNodes[fieldDef.Name]
		missingVariable := false
		if node != nil && node.Value.Kind == language.Variable {
			_, ok := lookupVariable(variableValues, node.Value.Raw)
			missingVariable = !ok
		}
		if node == nil || missingVariable {
			if fieldDef.HasDefault {
				out[outName] = fieldDef.DefaultValue
			} else if fieldDef.Type.IsNonNull() {
				return nil, false
			}
			continue
		}
		fv, ok := valueFromAST(node.Value, fieldDef.Type, sch, variableValues)
		if !ok {
			return nil, false
		}
		out[outName] = fv
	}
	return out, true
}

func scalarFromAST(v *language.Value, name string) (any, bool) {
	switch name {
	case "Int":
		if v.Kind != language.IntValue {
			return nil, false
		}
		iv, err := strconv.Atoi(v.Raw)
		if err != nil {
			return nil, false
		}
		return iv, true
	case "Float":
		if v.Kind != language.IntValue && v.Kind != language.FloatValue {
			return nil, false
		}
		fv, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, false
		}
		return fv, true
	case "String":
		if v.Kind != language.StringValue && v.Kind != language.BlockValue {
			return nil, false
		}
		return v.Raw, true
	case "Boolean":
		if v.Kind != language.BooleanValue {
			return nil, false
		}
		return v.Raw == "true", true
	case "ID":
		if v.Kind != language.StringValue && v.Kind != language.IntValue {
			return nil, false
		}
		return v.Raw, true
	default:
		// Custom scalar: keep the literal's natural Go shape.
		return astValueToGo(v), true
	}
}

// astValueToGo converts an AST value to a Go value without type guidance.
// Used for custom scalar literals.
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

// inspect renders a raw input value for error messages. JSON keeps the
// rendering deterministic (map keys come out sorted).
func inspect(value any) string {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(b)
}

// Basic scalar coercion functions
func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case float32:
		return int(v), nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to float", value, value)
}

func coerceToString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to string", value, value)
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to boolean", value, value)
}

func coerceToID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return nil, fmt.Errorf("cannot coerce %v (%T) to ID", value, value)
	}
}
