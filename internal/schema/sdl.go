package schema

import (
	"fmt"
	"strconv"

	language "github.com/hanpama/graphlet/internal/language"
)

// BuildFromSDL parses SDL and returns the corresponding executable Schema.
// Root operation types default to Query/Mutation/Subscription when no
// schema definition block is present.
func BuildFromSDL(sdl string) (*Schema, error) {
	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}

	s := NewSchema("")
	s.SetQueryType("Query").
		SetMutationType("Mutation").
		SetSubscriptionType("Subscription")

	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case language.Query:
				s.SetQueryType(op.Type)
			case language.Mutation:
				s.SetMutationType(op.Type)
			case language.Subscription:
				s.SetSubscriptionType(op.Type)
			}
		}
	}

	for _, def := range doc.Definitions {
		if _, exists := s.Types[def.Name]; exists && def.BuiltIn {
			continue
		}
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	for _, dir := range doc.Directives {
		d, err := buildDirective(dir)
		if err != nil {
			return nil, err
		}
		s.AddDirective(d)
	}
	return s, nil
}

func buildType(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object, language.Interface:
		kind := TypeKindObject
		if def.Kind == language.Interface {
			kind = TypeKindInterface
		}
		t := NewType(def.Name, kind, def.Description)
		for _, iface := range def.Interfaces {
			t.AddInterface(iface)
		}
		for _, fd := range def.Fields {
			f, err := buildField(fd)
			if err != nil {
				return nil, err
			}
			t.AddField(f)
		}
		return t, nil
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, name := range def.Types {
			t.AddPossibleType(name)
		}
		return t, nil
	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, ev := range def.EnumValues {
			v := NewEnumValue(ev.Name, ev.Description)
			applyEnumDeprecation(v, ev)
			t.AddEnumValue(v)
		}
		return t, nil
	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		if def.Directives.ForName("oneOf") != nil {
			t.SetOneOf(true)
		}
		for _, fd := range def.Fields {
			v, err := buildInputValue(fd.Name, fd.Description, fd.Type, fd.DefaultValue)
			if err != nil {
				return nil, err
			}
			t.AddInputField(v)
		}
		return t, nil
	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description), nil
	}
	return nil, fmt.Errorf("unsupported definition kind %q for type %s", def.Kind, def.Name)
}

func buildField(fd *language.FieldDefinition) (*Field, error) {
	f := NewField(fd.Name, fd.Description, typeRefFromAST(fd.Type))
	if dep := fd.Directives.ForName("deprecated"); dep != nil {
		f.Deprecate(deprecationReason(dep))
	}
	for _, arg := range fd.Arguments {
		v, err := buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue)
		if err != nil {
			return nil, err
		}
		f.AddArgument(v)
	}
	return f, nil
}

func buildInputValue(name, description string, t *language.Type, defaultValue *language.Value) (*InputValue, error) {
	v := NewInputValue(name, description, typeRefFromAST(t))
	if defaultValue != nil {
		def, err := constValueToGo(defaultValue)
		if err != nil {
			return nil, fmt.Errorf("default value for %s: %w", name, err)
		}
		v.SetDefault(def)
	}
	return v, nil
}

func buildDirective(dir *language.DirectiveDefinition) (*Directive, error) {
	d := NewDirective(dir.Name, dir.Description).SetRepeatable(dir.IsRepeatable)
	for _, loc := range dir.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, arg := range dir.Arguments {
		v, err := buildInputValue(arg.Name, arg.Description, arg.Type, arg.DefaultValue)
		if err != nil {
			return nil, err
		}
		d.AddArgument(v)
	}
	return d, nil
}

func applyEnumDeprecation(v *EnumValue, ev *language.EnumValueDefinition) {
	if dep := ev.Directives.ForName("deprecated"); dep != nil {
		v.Deprecate(deprecationReason(dep))
	}
}

func deprecationReason(dep *language.Directive) string {
	if arg := dep.Arguments.ForName("reason"); arg != nil {
		return arg.Value.Raw
	}
	return ""
}

func typeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(typeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(typeRefFromAST(t.Elem))
	}
	return nil
}

// TypeFromAST resolves a declared type node against the schema. It returns
// nil when the innermost named type is not defined, so callers can treat an
// unresolvable declaration as an error instead of trusting the AST.
func TypeFromAST(s *Schema, t *language.Type) *TypeRef {
	ref := typeRefFromAST(t)
	if ref == nil {
		return nil
	}
	if _, ok := s.Types[ref.GetNamedType()]; !ok {
		return nil
	}
	return ref
}

// constValueToGo converts a constant AST value (no variables) to a Go value.
func constValueToGo(v *language.Value) (any, error) {
	switch v.Kind {
	case language.IntValue:
		iv, err := strconv.Atoi(v.Raw)
		if err != nil {
			return nil, fmt.Errorf("invalid int literal %q", v.Raw)
		}
		return iv, nil
	case language.FloatValue:
		fv, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", v.Raw)
		}
		return fv, nil
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw, nil
	case language.BooleanValue:
		return v.Raw == "true", nil
	case language.NullValue:
		return nil, nil
	case language.ListValue:
		out := make([]any, 0, len(v.Children))
		for _, c := range v.Children {
			cv, err := constValueToGo(c.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, cv)
		}
		return out, nil
	case language.ObjectValue:
		out := make(map[string]any, len(v.Children))
		for _, c := range v.Children {
			cv, err := constValueToGo(c.Value)
			if err != nil {
				return nil, err
			}
			out[c.Name] = cv
		}
		return out, nil
	case language.Variable:
		return nil, fmt.Errorf("variable $%s is not allowed in a constant value", v.Raw)
	}
	return nil, fmt.Errorf("unsupported value kind %d", v.Kind)
}
