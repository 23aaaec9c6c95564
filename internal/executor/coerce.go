package executor

import (
	"fmt"
	"reflect"

	"github.com/zyxzen/graphqlite/ast"
	"github.com/zyxzen/graphqlite/schema"
)

// coerceInputValue applies spec §4.6's coerceInputValue to a runtime
// value supplied from outside the request (the variables map passed to
// Execute). NON_NULL rejects null; a non-sequence offered where a LIST
// is expected is lifted to a single-element sequence; SCALAR dispatches
// to T.ParseValue; ENUM keeps the string form; INPUT_OBJECT coerces each
// declared field recursively and ignores unknown keys.
func coerceInputValue(value interface{}, t schema.Type) (interface{}, error) {
	switch t := t.(type) {
	case *schema.NonNullType:
		if value == nil {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceInputValue(value, t.OfType)

	case *schema.ListType:
		if value == nil {
			return nil, nil
		}
		items, ok := toSlice(value)
		if !ok {
			single, err := coerceInputValue(value, t.OfType)
			if err != nil {
				return nil, err
			}
			return []interface{}{single}, nil
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			coerced, err := coerceInputValue(item, t.OfType)
			if err != nil {
				return nil, fmt.Errorf("in element #%d: %w", i, err)
			}
			out[i] = coerced
		}
		return out, nil

	case *schema.Scalar:
		if value == nil {
			return nil, nil
		}
		return t.ParseValue(value)

	case *schema.Enum:
		if value == nil {
			return nil, nil
		}
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("expected enum value as string, got %T", value)
		}
		return s, nil

	case *schema.InputObject:
		if value == nil {
			return nil, nil
		}
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("expected an object value, got %T", value)
		}
		out := make(map[string]interface{}, len(t.Fields))
		for _, f := range t.Fields {
			fv, present := m[f.Name]
			if !present {
				if f.Default != nil {
					out[f.Name] = f.Default
				}
				continue
			}
			coerced, err := coerceInputValue(fv, f.Type)
			if err != nil {
				return nil, fmt.Errorf("in field %q: %w", f.Name, err)
			}
			out[f.Name] = coerced
		}
		return out, nil

	default:
		return nil, fmt.Errorf("cannot coerce a value against %T", t)
	}
}

// coerceLiteral applies spec §4.6's coerceLiteralValue to an AST value —
// an argument literal or a variable's default. A Variable node resolves
// directly against vars, trusting that variable coercion (§4.5.2) has
// already produced a value of the right shape; it is not re-coerced. A
// variable absent from vars (left unset because it's optional and has no
// default) coerces to nil, same as an explicit null literal would — so a
// NonNullType still has to reject it here rather than handing a resolver
// a null for an argument declared required.
func coerceLiteral(v ast.Value, t schema.Type, vars map[string]interface{}) (interface{}, error) {
	if varRef, ok := v.(*ast.Variable); ok {
		val, ok := vars[varRef.Name]
		if !ok {
			if _, nonNull := t.(*schema.NonNullType); nonNull {
				return nil, fmt.Errorf("must not be null")
			}
			return nil, nil
		}
		return val, nil
	}

	switch t := t.(type) {
	case *schema.NonNullType:
		if isNullLiteral(v) {
			return nil, fmt.Errorf("must not be null")
		}
		return coerceLiteral(v, t.OfType, vars)

	case *schema.ListType:
		if isNullLiteral(v) {
			return nil, nil
		}
		if lv, ok := v.(*ast.ListValue); ok {
			out := make([]interface{}, len(lv.Values))
			for i, elem := range lv.Values {
				coerced, err := coerceLiteral(elem, t.OfType, vars)
				if err != nil {
					return nil, fmt.Errorf("in element #%d: %w", i, err)
				}
				out[i] = coerced
			}
			return out, nil
		}
		single, err := coerceLiteral(v, t.OfType, vars)
		if err != nil {
			return nil, err
		}
		return []interface{}{single}, nil

	case *schema.Scalar:
		if isNullLiteral(v) {
			return nil, nil
		}
		return t.ParseLiteral(v)

	case *schema.Enum:
		if isNullLiteral(v) {
			return nil, nil
		}
		ev, ok := v.(*ast.EnumValue)
		if !ok {
			return nil, fmt.Errorf("expected an enum value, got %T", v)
		}
		return ev.Value, nil

	case *schema.InputObject:
		if isNullLiteral(v) {
			return nil, nil
		}
		ov, ok := v.(*ast.ObjectValue)
		if !ok {
			return nil, fmt.Errorf("expected an object literal, got %T", v)
		}
		out := make(map[string]interface{}, len(t.Fields))
		for _, f := range t.Fields {
			fv := objectFieldValue(ov, f.Name)
			if fv == nil {
				if f.Default != nil {
					out[f.Name] = f.Default
				}
				continue
			}
			coerced, err := coerceLiteral(fv, f.Type, vars)
			if err != nil {
				return nil, fmt.Errorf("in field %q: %w", f.Name, err)
			}
			out[f.Name] = coerced
		}
		return out, nil

	default:
		return nil, fmt.Errorf("cannot coerce a literal against %T", t)
	}
}

func objectFieldValue(ov *ast.ObjectValue, name string) ast.Value {
	for _, f := range ov.Fields {
		if f.Name.Name == name {
			return f.Value
		}
	}
	return nil
}

func isNullLiteral(v ast.Value) bool {
	_, ok := v.(*ast.NullValue)
	return ok
}

func toSlice(value interface{}) ([]interface{}, bool) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
