package executor

import (
	"fmt"

	language "github.com/hanpama/graphlet/internal/language"
	schema "github.com/hanpama/graphlet/internal/schema"
)

// CoerceVariableValues coerces raw client-provided variable values against
// the operation's variable definitions.
//
// Every definition is processed even after earlier ones fail, so a single
// response surfaces all variable problems at once. A non-empty error list
// means the value map is discarded: callers get either a complete map or
// the errors, never both. A nullable variable with no supplied value and no
// default has no map entry at all, which downstream argument coercion
// treats differently from an entry holding nil.
func CoerceVariableValues(
	sch *schema.Schema,
	varDefs language.VariableDefinitionList,
	inputs map[string]any,
) (map[string]any, []GraphQLError) {
	var errs []GraphQLError
	coerced := make(map[string]any)

	for _, varDef := range varDefs {
		name := varDef.Variable
		varType := schema.TypeFromAST(sch, varDef.Type)
		if varType == nil || !schema.IsInputType(sch, varType) {
			// Validation should have rejected this; execution re-checks
			// rather than trusting that it ran.
			errs = append(errs, errorAt(fmt.Sprintf(
				"Variable '$%s' expected value of type '%s' which cannot be used as an input type.",
				name, varDef.Type.String()), varDef.Position))
			continue
		}

		value, ok := inputs[name]
		if !ok {
			if varDef.DefaultValue != nil {
				if v, ok := valueFromAST(varDef.DefaultValue, varType, sch, nil); ok {
					coerced[name] = v
				}
			} else if varType.IsNonNull() {
				errs = append(errs, errorAt(fmt.Sprintf(
					"Variable '$%s' of required type '%s' was not provided.",
					name, varType), varDef.Position))
			}
			continue
		}

		if value == nil && varType.IsNonNull() {
			errs = append(errs, errorAt(fmt.Sprintf(
				"Variable '$%s' of non-null type '%s' must not be null.",
				name, varType), varDef.Position))
			continue
		}

		v, coercionErrs := coerceInputValue(value, varType, sch)
		if len(coercionErrs) > 0 {
			// Rewritten copies: the nested message alone would lose the
			// variable context entirely.
			for _, ce := range coercionErrs {
				ce.Message = fmt.Sprintf("Variable '$%s' got invalid value %s; %s",
					name, inspect(value), ce.Message)
				ce.Locations = locationsOf(varDef.Position)
				errs = append(errs, ce)
			}
			continue
		}
		coerced[name] = v
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return coerced, nil
}

// CoerceArgumentValues coerces the arguments of a single field or directive
// invocation.
//
// Unlike variable coercion this fails on the first violation: execution of
// the invocation cannot proceed with any invalid argument, so there is
// nothing to gain from collecting more. The returned error is always a
// GraphQLError. Coerced values are stored under each definition's OutName
// alias when one is set.
func CoerceArgumentValues(
	sch *schema.Schema,
	argDefs []*schema.InputValue,
	args language.ArgumentList,
	pos *language.Position,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any)

	argNodes := make(map[string]*language.Argument, len(args))
	for _, arg := range args {
		// Duplicates are rejected by validation; last one wins here.
		argNodes[arg.Name] = arg
	}

	for _, argDef := range argDefs {
		name := argDef.Name
		argType := argDef.Type
		outName := argDef.OutName
		if outName == "" {
			outName = name
		}

		node := argNodes[name]
		if node == nil {
			if argDef.HasDefault {
				coerced[outName] = argDef.DefaultValue
			} else if argType.IsNonNull() {
				return nil, errorAt(fmt.Sprintf(
					"Argument '%s' of required type '%s' was not provided.",
					name, argType), pos)
			}
			continue
		}

		valueNode := node.Value
		isNull := valueNode.Kind == language.NullValue

		if valueNode.Kind == language.Variable {
			varName := valueNode.Raw
			runtimeValue, ok := lookupVariable(variableValues, varName)
			if !ok {
				// No runtime value is not the same as an explicit null.
				if argDef.HasDefault {
					coerced[outName] = argDef.DefaultValue
				} else if argType.IsNonNull() {
					return nil, errorAt(fmt.Sprintf(
						"Argument '%s' of required type '%s' was provided the variable '$%s' which was not provided a runtime value.",
						name, argType, varName), valueNode.Position)
				}
				continue
			}
			isNull = runtimeValue == nil
		}

		if isNull && argType.IsNonNull() {
			return nil, errorAt(fmt.Sprintf(
				"Argument '%s' of non-null type '%s' must not be null.",
				name, argType), valueNode.Position)
		}

		value, ok := valueFromAST(valueNode, argType, sch, variableValues)
		if !ok {
			// Literal validation should catch this before execution; the
			// re-check keeps execution from continuing on a bad value.
			return nil, errorAt(fmt.Sprintf(
				"Argument '%s' has invalid value %s.",
				name, valueNode.String()), valueNode.Position)
		}
		coerced[outName] = value
	}

	return coerced, nil
}

// GetDirectiveValues resolves the argument values of the named directive on
// a node's directive list. The second return reports whether the directive
// is applied at all; a directive simply not being present is a normal
// outcome, not an error.
func GetDirectiveValues(
	sch *schema.Schema,
	def *schema.Directive,
	directives language.DirectiveList,
	variableValues map[string]any,
) (map[string]any, bool, error) {
	for _, d := range directives {
		if d.Name != def.Name {
			continue
		}
		values, err := CoerceArgumentValues(sch, def.Arguments, d.Arguments, d.Position, variableValues)
		if err != nil {
			return nil, true, err
		}
		return values, true, nil
	}
	return nil, false, nil
}

// lookupVariable distinguishes "no runtime value" (nil map, or key absent)
// from "explicit null" (key present, value nil).
func lookupVariable(variableValues map[string]any, name string) (any, bool) {
	if variableValues == nil {
		return nil, false
	}
	v, ok := variableValues[name]
	return v, ok
}
