package graphql

import (
	"strconv"

	"github.com/zyxzen/graphqlite/ast"
)

// LoggedOperation represents a summary of an operation suitable for concise
// telemetry, for example in a web server context.
type LoggedOperation struct {
	Name      string `json:",omitempty"`
	Type      ast.OperationType
	Variables map[string]string `json:",omitempty"`
	Fields    []LoggedField     `json:",omitempty"`
}

// LoggedField represents a summary of a field.
type LoggedField struct {
	Name      string
	Arguments map[string]string `json:",omitempty"`
}

func logField(field *ast.Field) LoggedField {
	var loggedArgs map[string]string
	if len(field.Arguments) > 0 {
		loggedArgs = make(map[string]string, len(field.Arguments))
		for _, arg := range field.Arguments {
			loggedArgs[arg.Name.Name] = describeValue(arg.Value)
		}
	}
	return LoggedField{
		Name:      field.Name.Name,
		Arguments: loggedArgs,
	}
}

// Summarize builds a concise, loggable summary of the operation named
// operationName within doc (the sole operation, if there is only one).
// It returns GetOperation's error when operationName does not select an
// operation; validation does not check operationName, so this can happen
// for a document that has already passed validation.
func Summarize(doc *ast.Document, operationName string) (*LoggedOperation, error) {
	op, err := doc.GetOperation(operationName)
	if err != nil {
		return nil, err
	}

	var vars map[string]string
	if len(op.Vars) > 0 {
		vars = make(map[string]string, len(op.Vars))
		for _, v := range op.Vars {
			if v.Default != nil {
				vars[v.Var.Name] = describeValue(v.Default)
			}
		}
	}

	fields := make([]LoggedField, 0, len(op.Selections))
	for _, sel := range op.Selections {
		if field, ok := sel.(*ast.Field); ok {
			fields = append(fields, logField(field))
		}
	}

	return &LoggedOperation{
		Name:      op.Name.Name,
		Type:      op.Type,
		Variables: vars,
		Fields:    fields,
	}, nil
}

// describeValue renders a literal value as a short string for logging.
// It is deliberately not a faithful GraphQL-syntax serializer: lists and
// objects collapse to a placeholder since their contents rarely matter
// for a telemetry line and the full subtree can be arbitrarily large.
func describeValue(v ast.Value) string {
	switch v := v.(type) {
	case *ast.Variable:
		return "$" + v.Name
	case *ast.IntValue:
		return strconv.FormatInt(v.Value, 10)
	case *ast.FloatValue:
		return strconv.FormatFloat(v.Value, 'g', -1, 64)
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		if v.Value {
			return "true"
		}
		return "false"
	case *ast.NullValue:
		return "null"
	case *ast.EnumValue:
		return v.Value
	case *ast.ListValue:
		return "[...]"
	case *ast.ObjectValue:
		return "{...}"
	default:
		return "?"
	}
}
