// Package executor implements spec §4.5: a synchronous, recursive
// execution of a validated document against a built schema. There is no
// worker pool and no channel-based limiter (§5 is a stated non-goal
// here) — concurrency, if any, is left entirely to the host's own
// resolvers.
package executor

import (
	"context"
	"fmt"
	"strings"

	"github.com/zyxzen/graphqlite/ast"
	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/log"
	"github.com/zyxzen/graphqlite/schema"
	"github.com/zyxzen/graphqlite/trace"
)

// Result is what Execute hands back to the schema driver: the completed
// response value (nil if a non-null failure reached the root) and every
// error accumulated along the way.
type Result struct {
	Data   interface{}
	Errors []*errors.QueryError
}

type request struct {
	schema *schema.Schema
	vars   map[string]interface{}
	logger log.Logger
	tracer trace.Tracer
	errs   []*errors.QueryError
}

func (r *request) addErr(err *errors.QueryError) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}

// Execute runs doc's selected operation against sch, per spec §4.5.1.
func Execute(ctx context.Context, sch *schema.Schema, doc *ast.Document, operationName string, variables map[string]interface{}) *Result {
	op, err := doc.GetOperation(operationName)
	if err != nil {
		return &Result{Errors: []*errors.QueryError{execErrorf("%s", err)}}
	}

	root := sch.RootOperationType(string(op.Type))
	if root == nil {
		return &Result{Errors: []*errors.QueryError{execErrorf("Schema does not support %s", strings.ToLower(string(op.Type)))}}
	}

	r := &request{schema: sch, logger: sch.Logger(), tracer: sch.Tracer()}

	coerced, cerr := r.coerceVariables(op.Vars, variables)
	if cerr != nil {
		return &Result{Errors: []*errors.QueryError{cerr}}
	}
	r.vars = coerced

	data, propagateNull := r.executeSelectionSet(ctx, op.Selections, root, nil, nil)
	if propagateNull {
		return &Result{Data: nil, Errors: r.errs}
	}
	return &Result{Data: data, Errors: r.errs}
}

// coerceVariables implements spec §4.5.2.
func (r *request) coerceVariables(decls []*ast.VariableDefinition, supplied map[string]interface{}) (map[string]interface{}, *errors.QueryError) {
	coerced := make(map[string]interface{}, len(decls))
	for _, v := range decls {
		t := r.resolveTypeRef(v.Type)
		if t == nil {
			return nil, execErrorf("Unknown type for variable %q", "$"+v.Var.Name)
		}

		if raw, ok := supplied[v.Var.Name]; ok {
			val, err := coerceInputValue(raw, t)
			if err != nil {
				return nil, execErrorf("Variable %q got invalid value: %s", "$"+v.Var.Name, err)
			}
			coerced[v.Var.Name] = val
			continue
		}

		if v.Default != nil {
			val, err := coerceLiteral(v.Default, t, nil)
			if err != nil {
				return nil, execErrorf("Variable %q has invalid default value: %s", "$"+v.Var.Name, err)
			}
			coerced[v.Var.Name] = val
			continue
		}

		if isNonNull(t) {
			return nil, execErrorf("Variable %q is required but not provided", "$"+v.Var.Name)
		}
	}
	return coerced, nil
}

func (r *request) resolveTypeRef(ref ast.TypeRef) schema.Type {
	switch ref := ref.(type) {
	case *ast.NamedTypeRef:
		return r.schema.Resolve(ref.Name)
	case *ast.ListTypeRef:
		inner := r.resolveTypeRef(ref.OfType)
		if inner == nil {
			return nil
		}
		return schema.List(inner)
	case *ast.NonNullTypeRef:
		inner := r.resolveTypeRef(ref.OfType)
		if inner == nil {
			return nil
		}
		return schema.NonNull(inner)
	default:
		return nil
	}
}

// fieldGroups is the ordered responseKey -> []Field mapping collected by
// executeSelectionSet, per spec §4.5.3.
type fieldGroups struct {
	keys  []string
	byKey map[string][]*ast.Field
}

func (r *request) executeSelectionSet(ctx context.Context, sels []ast.Selection, objectType *schema.Object, objectValue interface{}, path []interface{}) (*OrderedMap, bool) {
	groups := &fieldGroups{byKey: map[string][]*ast.Field{}}
	r.collectFields(groups, sels, objectType)

	result := newOrderedMap(len(groups.keys))
	for _, key := range groups.keys {
		fieldPath := append(append([]interface{}{}, path...), key)
		value, propagateNull := r.executeField(ctx, objectType, objectValue, groups.byKey[key], fieldPath)
		if propagateNull {
			return nil, true
		}
		result.Set(key, value)
	}
	return result, false
}

func (r *request) collectFields(groups *fieldGroups, sels []ast.Selection, objectType *schema.Object) {
	for _, sel := range sels {
		switch sel := sel.(type) {
		case *ast.Field:
			if r.skippedByDirectives(sel.Directives) {
				continue
			}
			key := sel.ResponseKey()
			if _, seen := groups.byKey[key]; !seen {
				groups.keys = append(groups.keys, key)
			}
			groups.byKey[key] = append(groups.byKey[key], sel)

		case *ast.InlineFragment:
			if r.skippedByDirectives(sel.Directives) {
				continue
			}
			if sel.On == nil || sel.On.Name == "" || sel.On.Name == objectType.TypeName() {
				r.collectFields(groups, sel.Selections, objectType)
			}

		case *ast.FragmentSpread:
			// Skipped: fragment spreads are parsed but never flattened
			// during execution (spec §9, option (b)).

		default:
			panic("unreachable")
		}
	}
}

func (r *request) skippedByDirectives(directives ast.DirectiveList) bool {
	if d := directives.Get("skip"); d != nil && r.directiveIf(d) {
		return true
	}
	if d := directives.Get("include"); d != nil && !r.directiveIf(d) {
		return true
	}
	return false
}

func (r *request) directiveIf(d *ast.Directive) bool {
	val, ok := d.Arguments.Get("if")
	if !ok {
		return false
	}
	coerced, err := coerceLiteral(val, schema.NonNull(schema.Boolean), r.vars)
	if err != nil {
		return false
	}
	b, _ := coerced.(bool)
	return b
}

// executeField implements spec §4.5.4. __typename is handled directly
// here; __schema and __type are ordinary fields once package
// introspection has added them to the query root (spec §4.7).
func (r *request) executeField(ctx context.Context, parentType *schema.Object, parentValue interface{}, fieldGroup []*ast.Field, path []interface{}) (interface{}, bool) {
	first := fieldGroup[0]
	fieldName := first.Name.Name

	if fieldName == "__typename" {
		return parentType.TypeName(), false
	}

	fieldDef := parentType.Fields.Get(fieldName)
	if fieldDef == nil {
		return nil, false
	}

	args, err := r.coerceArgumentValues(first.Arguments, fieldDef.Args)
	if err != nil {
		r.addErr(&errors.QueryError{Message: err.Error(), Path: path, Kind: errors.KindExecution})
		return nil, isNonNull(fieldDef.Type)
	}

	trivial := len(fieldDef.Args) == 0 && fieldDef.Resolve == nil
	fctx, finish := r.tracer.TraceField(ctx, parentType.TypeName(), fieldName, trivial, args)

	value, resolveErr := r.resolveField(fctx, parentType, parentValue, fieldDef, args, path)
	if resolveErr != nil {
		qerr := errors.WrapResolverError(resolveErr, path)
		r.addErr(qerr)
		finish(qerr)
		return nil, isNonNull(fieldDef.Type)
	}
	finish(nil)

	completed, propagateNull := r.completeValue(fctx, fieldDef.Type, value, first.SelectionSet, path)
	if propagateNull && !isNonNull(fieldDef.Type) {
		return nil, false
	}
	return completed, propagateNull
}

func (r *request) coerceArgumentValues(args ast.ArgumentList, argDefs schema.ArgList) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(argDefs))
	for _, decl := range argDefs {
		val, present := args.Get(decl.Name)
		if present {
			coerced, err := coerceLiteral(val, decl.Type, r.vars)
			if err != nil {
				return nil, fmt.Errorf("argument %q: %w", decl.Name, err)
			}
			out[decl.Name] = coerced
			continue
		}
		if decl.Default != nil {
			out[decl.Name] = decl.Default
			continue
		}
		if isNonNull(decl.Type) {
			return nil, fmt.Errorf("argument %q of type %q is required but not provided", decl.Name, decl.Type.String())
		}
	}
	return out, nil
}

// resolveField calls the field's resolver, recovering a panic into an
// error the same way a host-reported error would be handled.
func (r *request) resolveField(ctx context.Context, parentType *schema.Object, parentValue interface{}, fieldDef *schema.FieldDef, args map[string]interface{}, path []interface{}) (value interface{}, err error) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.LogPanic(ctx, log.PanicValue{Value: v, Parent: parentValue, Path: path})
			err = fmt.Errorf("panic occurred while resolving field %q: %v", fieldDef.Name, v)
		}
	}()

	if fieldDef.Resolve != nil {
		return fieldDef.Resolve(ctx, schema.ResolveParams{
			Source: parentValue,
			Args:   args,
			Info: schema.ResolveInfo{
				FieldName:  fieldDef.Name,
				ParentType: parentType,
				Path:       path,
			},
		})
	}

	return defaultResolve(parentValue, fieldDef.Name), nil
}

// defaultResolve is the mapping-key fallback of spec §9 — the
// method-dispatch half of the teacher's duck-typed resolver was
// deliberately dropped in favor of one canonical resolver signature.
func defaultResolve(parentValue interface{}, fieldName string) interface{} {
	if m, ok := parentValue.(map[string]interface{}); ok {
		return m[fieldName]
	}
	return nil
}

// completeValue implements spec §4.5.5.
func (r *request) completeValue(ctx context.Context, fieldType schema.Type, value interface{}, selectionSet []ast.Selection, path []interface{}) (interface{}, bool) {
	switch t := fieldType.(type) {
	case *schema.TypeReference:
		resolved := r.schema.Resolve(t.Name)
		if resolved == nil {
			r.addErr(&errors.QueryError{Message: fmt.Sprintf("unresolved type reference %q", t.Name), Path: path, Kind: errors.KindExecution})
			return nil, true
		}
		return r.completeValue(ctx, resolved, value, selectionSet, path)

	case *schema.NonNullType:
		completed, propagateNull := r.completeValue(ctx, t.OfType, value, selectionSet, path)
		if propagateNull {
			return nil, true
		}
		if completed == nil {
			r.addErr(&errors.QueryError{Message: "Cannot return null for non-null field", Path: path, Kind: errors.KindExecution})
			return nil, true
		}
		return completed, false
	}

	if value == nil {
		return nil, false
	}

	switch t := fieldType.(type) {
	case *schema.ListType:
		items, ok := toSlice(value)
		if !ok {
			r.addErr(&errors.QueryError{Message: fmt.Sprintf("Expected list but got %T", value), Path: path, Kind: errors.KindExecution})
			return nil, false
		}
		result := make([]interface{}, len(items))
		for i, item := range items {
			elemPath := append(append([]interface{}{}, path...), i)
			completed, propagateNull := r.completeValue(ctx, t.OfType, item, selectionSet, elemPath)
			if propagateNull {
				return nil, false
			}
			result[i] = completed
		}
		return result, false

	case *schema.Scalar:
		serialized, err := t.Serialize(value)
		if err != nil {
			r.addErr(&errors.QueryError{Message: err.Error(), Path: path, Kind: errors.KindExecution})
			return nil, false
		}
		return serialized, false

	case *schema.Enum:
		return fmt.Sprintf("%v", value), false

	case *schema.Object:
		return r.executeSelectionSet(ctx, selectionSet, t, value, path)

	case *schema.Interface:
		concrete := resolveAbstractType(t.ResolveType, t.PossibleTypes, value)
		if concrete == nil {
			r.addErr(&errors.QueryError{Message: fmt.Sprintf("could not resolve a concrete type for interface %q", t.TypeName()), Path: path, Kind: errors.KindExecution})
			return nil, false
		}
		return r.executeSelectionSet(ctx, selectionSet, concrete, value, path)

	case *schema.Union:
		concrete := resolveAbstractType(t.ResolveType, t.PossibleTypes, value)
		if concrete == nil {
			r.addErr(&errors.QueryError{Message: fmt.Sprintf("could not resolve a concrete type for union %q", t.TypeName()), Path: path, Kind: errors.KindExecution})
			return nil, false
		}
		return r.executeSelectionSet(ctx, selectionSet, concrete, value, path)

	default:
		return nil, false
	}
}

// resolveAbstractType requires an explicit ResolveType callback (spec
// §9): the teacher's dynamic dispatch on a runtime class-like name is
// deliberately not reimplemented. Without a callback, an interface or
// union value cannot be completed.
func resolveAbstractType(resolveType func(interface{}) string, possibleTypes []*schema.Object, value interface{}) *schema.Object {
	if resolveType == nil {
		return nil
	}
	name := resolveType(value)
	for _, o := range possibleTypes {
		if o.TypeName() == name {
			return o
		}
	}
	return nil
}

func isNonNull(t schema.Type) bool {
	_, ok := t.(*schema.NonNullType)
	return ok
}

func execErrorf(format string, a ...interface{}) *errors.QueryError {
	e := errors.Errorf(format, a...)
	e.Kind = errors.KindExecution
	return e
}
