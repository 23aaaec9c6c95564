package schema

import (
	"fmt"
	"strconv"

	"github.com/zyxzen/graphqlite/ast"
)

// Built-in scalars, pre-registered on every Builder (spec §3.1/§6.3).
var (
	Int = &Scalar{
		Name:         "Int",
		Serialize:    serializeInt,
		ParseValue:   parseValueInt,
		ParseLiteral: parseLiteralInt,
	}
	Float = &Scalar{
		Name:         "Float",
		Serialize:    serializeFloat,
		ParseValue:   parseValueFloat,
		ParseLiteral: parseLiteralFloat,
	}
	String = &Scalar{
		Name:         "String",
		Serialize:    serializeString,
		ParseValue:   parseValueString,
		ParseLiteral: parseLiteralString,
	}
	Boolean = &Scalar{
		Name:         "Boolean",
		Serialize:    serializeBoolean,
		ParseValue:   parseValueBoolean,
		ParseLiteral: parseLiteralBoolean,
	}
	ID = &Scalar{
		Name:         "ID",
		Serialize:    serializeString,
		ParseValue:   parseValueID,
		ParseLiteral: parseLiteralID,
	}
)

func builtinScalars() []*Scalar {
	return []*Scalar{Int, Float, String, Boolean, ID}
}

func serializeInt(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to Int", value)
	}
}

func parseValueInt(value interface{}) (interface{}, error) {
	return serializeInt(value)
}

func parseLiteralInt(value ast.Value) (interface{}, error) {
	v, ok := value.(*ast.IntValue)
	if !ok {
		return nil, fmt.Errorf("not an integer literal")
	}
	return v.Value, nil
}

func serializeFloat(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to Float", value)
	}
}

func parseValueFloat(value interface{}) (interface{}, error) {
	return serializeFloat(value)
}

func parseLiteralFloat(value ast.Value) (interface{}, error) {
	switch v := value.(type) {
	case *ast.FloatValue:
		return v.Value, nil
	case *ast.IntValue:
		return float64(v.Value), nil
	default:
		return nil, fmt.Errorf("not a float or integer literal")
	}
}

func serializeString(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", value), nil
	}
}

func parseValueString(value interface{}) (interface{}, error) {
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("cannot coerce %T to String", value)
	}
	return s, nil
}

func parseLiteralString(value ast.Value) (interface{}, error) {
	v, ok := value.(*ast.StringValue)
	if !ok {
		return nil, fmt.Errorf("not a string literal")
	}
	return v.Value, nil
}

// parseValueID accepts the same shapes as parseLiteralID: a string, or a
// number that gets stringified, since a JSON variable carrying an ID is
// just as often a bare number as a quoted string.
func parseValueID(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatInt(int64(v), 10), nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to ID", value)
	}
}

func parseLiteralID(value ast.Value) (interface{}, error) {
	switch v := value.(type) {
	case *ast.StringValue:
		return v.Value, nil
	case *ast.IntValue:
		return strconv.FormatInt(v.Value, 10), nil
	default:
		return nil, fmt.Errorf("not a string or integer literal")
	}
}

func serializeBoolean(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	default:
		return nil, fmt.Errorf("cannot coerce %T to Boolean", value)
	}
}

func parseValueBoolean(value interface{}) (interface{}, error) {
	return serializeBoolean(value)
}

func parseLiteralBoolean(value ast.Value) (interface{}, error) {
	v, ok := value.(*ast.BooleanValue)
	if !ok {
		return nil, fmt.Errorf("not a boolean literal")
	}
	return v.Value, nil
}
