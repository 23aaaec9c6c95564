// Package introspection folds the standard __Schema/__Type/... family
// (spec §4.7/§6.4) into an already-built Schema. Apply is the single
// entry point: it registers the introspection types and attaches
// __schema/__type as ordinary resolved fields on the query root.
// __typename is not here; the executor handles it directly (spec
// §4.5.4) because it needs no schema-owned type of its own.
package introspection

import (
	"context"
	"fmt"
	"sort"

	"github.com/zyxzen/graphqlite/schema"
)

// Apply registers the introspection type family on sch and wires
// __schema/__type onto its query root. It is a no-op on Mutation and
// Subscription roots, and panics if called without a query root —
// Builder.Build always produces one before Apply runs.
func Apply(sch *schema.Schema) {
	typeKind := typeKindEnum()
	directiveLocation := directiveLocationEnum()
	sch.AddType(typeKind)
	sch.AddType(directiveLocation)

	inputValueObj := &schema.Object{Name: "__InputValue"}
	enumValueObj := &schema.Object{Name: "__EnumValue"}
	directiveObj := &schema.Object{Name: "__Directive"}
	fieldObj := &schema.Object{Name: "__Field"}
	typeObj := &schema.Object{Name: "__Type"}
	schemaObj := &schema.Object{Name: "__Schema"}

	inputValueObj.Fields = schema.FieldList{
		field("name", schema.NonNull(schema.String), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*inputValueWrap).getName(), nil
		}),
		field("description", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*inputValueWrap).description(), nil
		}),
		field("type", schema.NonNull(typeObj), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*inputValueWrap).typVal(), nil
		}),
		field("defaultValue", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*inputValueWrap).defaultValue(), nil
		}),
	}

	enumValueObj.Fields = schema.FieldList{
		field("name", schema.NonNull(schema.String), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*enumValueWrap).name(), nil
		}),
		field("description", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*enumValueWrap).description(), nil
		}),
		field("isDeprecated", schema.NonNull(schema.Boolean), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*enumValueWrap).isDeprecated(), nil
		}),
		field("deprecationReason", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*enumValueWrap).deprecationReason(), nil
		}),
	}

	directiveObj.Fields = schema.FieldList{
		field("name", schema.NonNull(schema.String), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*directiveWrap).name(), nil
		}),
		field("description", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*directiveWrap).description(), nil
		}),
		field("locations", schema.NonNull(schema.List(schema.NonNull(directiveLocation))), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*directiveWrap).locations(), nil
		}),
		field("args", schema.NonNull(schema.List(schema.NonNull(inputValueObj))), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*directiveWrap).args(), nil
		}),
	}

	fieldObj.Fields = schema.FieldList{
		field("name", schema.NonNull(schema.String), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).name(), nil
		}),
		field("description", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).description(), nil
		}),
		field("args", schema.NonNull(schema.List(schema.NonNull(inputValueObj))), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).args(), nil
		}),
		field("type", schema.NonNull(typeObj), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).typ(), nil
		}),
		field("isDeprecated", schema.NonNull(schema.Boolean), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).isDeprecated(), nil
		}),
		field("deprecationReason", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*fieldWrap).deprecationReason(), nil
		}),
	}

	typeObj.Fields = schema.FieldList{
		field("kind", schema.NonNull(typeKind), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).kind(), nil
		}),
		field("name", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).name(), nil
		}),
		field("description", schema.String, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).description(), nil
		}),
		fieldWithArgs("fields", schema.List(schema.NonNull(fieldObj)),
			schema.ArgList{optionalBool("includeDeprecated")},
			func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
				return p.Source.(*typeWrap).fields(truthy(p.Args["includeDeprecated"])), nil
			}),
		field("interfaces", schema.List(schema.NonNull(typeObj)), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).interfaces(), nil
		}),
		field("possibleTypes", schema.List(schema.NonNull(typeObj)), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).possibleTypes(), nil
		}),
		fieldWithArgs("enumValues", schema.List(schema.NonNull(enumValueObj)),
			schema.ArgList{optionalBool("includeDeprecated")},
			func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
				return p.Source.(*typeWrap).enumValues(truthy(p.Args["includeDeprecated"])), nil
			}),
		field("inputFields", schema.List(schema.NonNull(inputValueObj)), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).inputFields(), nil
		}),
		field("ofType", typeObj, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*typeWrap).ofType(), nil
		}),
	}

	schemaObj.Fields = schema.FieldList{
		field("types", schema.NonNull(schema.List(schema.NonNull(typeObj))), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*schemaWrap).types(), nil
		}),
		field("queryType", schema.NonNull(typeObj), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*schemaWrap).queryType(), nil
		}),
		field("mutationType", typeObj, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return typeOrNil(p.Source.(*schemaWrap).mutationType()), nil
		}),
		field("subscriptionType", typeObj, func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return typeOrNil(p.Source.(*schemaWrap).subscriptionType()), nil
		}),
		field("directives", schema.NonNull(schema.List(schema.NonNull(directiveObj))), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return p.Source.(*schemaWrap).directives(), nil
		}),
	}

	sch.AddType(inputValueObj)
	sch.AddType(enumValueObj)
	sch.AddType(directiveObj)
	sch.AddType(fieldObj)
	sch.AddType(typeObj)
	sch.AddType(schemaObj)

	root := sch.Query()
	if root == nil {
		panic("introspection.Apply: schema has no query root")
	}
	root.Fields = append(root.Fields,
		field("__schema", schema.NonNull(schemaObj), func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
			return &schemaWrap{sch}, nil
		}),
		fieldWithArgs("__type", typeObj,
			schema.ArgList{{Name: "name", Type: schema.NonNull(schema.String)}},
			func(_ context.Context, p schema.ResolveParams) (interface{}, error) {
				name, _ := p.Args["name"].(string)
				t := sch.Resolve(name)
				if t == nil {
					return nil, nil
				}
				return &typeWrap{t}, nil
			}),
	)
}

func field(name string, t schema.Type, resolve schema.Resolver) *schema.FieldDef {
	return &schema.FieldDef{Name: name, Type: t, Resolve: resolve}
}

func fieldWithArgs(name string, t schema.Type, args schema.ArgList, resolve schema.Resolver) *schema.FieldDef {
	return &schema.FieldDef{Name: name, Type: t, Args: args, Resolve: resolve}
}

func optionalBool(name string) *schema.ArgDef {
	return &schema.ArgDef{Name: name, Type: schema.Boolean, Default: false}
}

func truthy(v interface{}) bool {
	b, _ := v.(bool)
	return b
}

// typeOrNil guards against boxing a typed-nil *typeWrap into a non-nil
// interface{} — completeValue's null checks compare against literal nil.
func typeOrNil(t *typeWrap) interface{} {
	if t == nil {
		return nil
	}
	return t
}

func typeKindEnum() *schema.Enum {
	names := []string{"SCALAR", "OBJECT", "INTERFACE", "UNION", "ENUM", "INPUT_OBJECT", "LIST", "NON_NULL"}
	values := make(schema.EnumValueList, len(names))
	for i, n := range names {
		values[i] = &schema.EnumValueDef{Name: n}
	}
	return &schema.Enum{Name: "__TypeKind", Values: values}
}

func directiveLocationEnum() *schema.Enum {
	names := []string{
		"QUERY", "MUTATION", "SUBSCRIPTION", "FIELD", "FRAGMENT_DEFINITION",
		"FRAGMENT_SPREAD", "INLINE_FRAGMENT", "SCHEMA", "SCALAR", "OBJECT",
		"FIELD_DEFINITION", "ARGUMENT_DEFINITION", "INTERFACE", "UNION",
		"ENUM", "ENUM_VALUE", "INPUT_OBJECT", "INPUT_FIELD_DEFINITION",
	}
	values := make(schema.EnumValueList, len(names))
	for i, n := range names {
		values[i] = &schema.EnumValueDef{Name: n}
	}
	return &schema.Enum{Name: "__DirectiveLocation", Values: values}
}

// schemaWrap exposes a *schema.Schema under the shape of __Schema.
type schemaWrap struct{ sch *schema.Schema }

func (r *schemaWrap) types() []*typeWrap {
	named := r.sch.Types()
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*typeWrap, len(names))
	for i, name := range names {
		out[i] = &typeWrap{named[name]}
	}
	return out
}

func (r *schemaWrap) queryType() *typeWrap {
	if r.sch.Query() == nil {
		return nil
	}
	return &typeWrap{r.sch.Query()}
}

func (r *schemaWrap) mutationType() *typeWrap {
	if r.sch.Mutation() == nil {
		return nil
	}
	return &typeWrap{r.sch.Mutation()}
}

func (r *schemaWrap) subscriptionType() *typeWrap {
	if r.sch.Subscription() == nil {
		return nil
	}
	return &typeWrap{r.sch.Subscription()}
}

func (r *schemaWrap) directives() []*directiveWrap {
	dirs := r.sch.Directives()
	names := make([]string, 0, len(dirs))
	for name := range dirs {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*directiveWrap, len(names))
	for i, name := range names {
		out[i] = &directiveWrap{dirs[name]}
	}
	return out
}

// typeWrap exposes a schema.Type under the shape of __Type. It is the
// workhorse wrapper: every named type and every List/NonNull wrapper
// passes through here on its way into a response.
type typeWrap struct{ t schema.Type }

func (r *typeWrap) kind() string { return string(r.t.Kind()) }

func (r *typeWrap) name() interface{} {
	if named, ok := r.t.(schema.NamedType); ok {
		return named.TypeName()
	}
	return nil
}

func (r *typeWrap) description() interface{} {
	if named, ok := r.t.(schema.NamedType); ok {
		if d := named.Description(); d != "" {
			return d
		}
	}
	return nil
}

func (r *typeWrap) fields(includeDeprecated bool) interface{} {
	var fl schema.FieldList
	switch t := r.t.(type) {
	case *schema.Object:
		fl = t.Fields
	case *schema.Interface:
		fl = t.Fields
	default:
		return nil
	}

	out := make([]*fieldWrap, 0, len(fl))
	for _, f := range fl {
		if !f.IsDeprecated() || includeDeprecated {
			out = append(out, &fieldWrap{f})
		}
	}
	return out
}

func (r *typeWrap) interfaces() interface{} {
	o, ok := r.t.(*schema.Object)
	if !ok {
		return nil
	}
	out := make([]*typeWrap, len(o.Interfaces))
	for i, intf := range o.Interfaces {
		out[i] = &typeWrap{intf}
	}
	return out
}

func (r *typeWrap) possibleTypes() interface{} {
	var possible []*schema.Object
	switch t := r.t.(type) {
	case *schema.Interface:
		possible = t.PossibleTypes
	case *schema.Union:
		possible = t.PossibleTypes
	default:
		return nil
	}
	out := make([]*typeWrap, len(possible))
	for i, o := range possible {
		out[i] = &typeWrap{o}
	}
	return out
}

func (r *typeWrap) enumValues(includeDeprecated bool) interface{} {
	e, ok := r.t.(*schema.Enum)
	if !ok {
		return nil
	}
	out := make([]*enumValueWrap, 0, len(e.Values))
	for _, v := range e.Values {
		if !v.IsDeprecated() || includeDeprecated {
			out = append(out, &enumValueWrap{v})
		}
	}
	return out
}

func (r *typeWrap) inputFields() interface{} {
	io, ok := r.t.(*schema.InputObject)
	if !ok {
		return nil
	}
	out := make([]*inputValueWrap, len(io.Fields))
	for i, f := range io.Fields {
		out[i] = inputValueFromField(f)
	}
	return out
}

func (r *typeWrap) ofType() interface{} {
	switch t := r.t.(type) {
	case *schema.ListType:
		return &typeWrap{t.OfType}
	case *schema.NonNullType:
		return &typeWrap{t.OfType}
	default:
		return nil
	}
}

type fieldWrap struct{ f *schema.FieldDef }

func (r *fieldWrap) name() string { return r.f.Name }

func (r *fieldWrap) description() interface{} {
	if r.f.Desc == "" {
		return nil
	}
	return r.f.Desc
}

func (r *fieldWrap) args() []*inputValueWrap {
	out := make([]*inputValueWrap, len(r.f.Args))
	for i, a := range r.f.Args {
		out[i] = inputValueFromArg(a)
	}
	return out
}

func (r *fieldWrap) typ() *typeWrap { return &typeWrap{r.f.Type} }

func (r *fieldWrap) isDeprecated() bool { return r.f.IsDeprecated() }

func (r *fieldWrap) deprecationReason() interface{} {
	if r.f.DeprecationReason == "" {
		return nil
	}
	return r.f.DeprecationReason
}

// inputValueWrap is shared by field arguments, directive arguments and
// input-object fields, all of which have the same name/desc/type/default
// shape under __InputValue.
type inputValueWrap struct {
	name string
	desc string
	typ  schema.Type
	def  interface{}
}

func inputValueFromArg(a *schema.ArgDef) *inputValueWrap {
	return &inputValueWrap{name: a.Name, desc: a.Desc, typ: a.Type, def: a.Default}
}

func inputValueFromField(f *schema.InputFieldDef) *inputValueWrap {
	return &inputValueWrap{name: f.Name, desc: f.Desc, typ: f.Type, def: f.Default}
}

func (r *inputValueWrap) getName() string { return r.name }

func (r *inputValueWrap) description() interface{} {
	if r.desc == "" {
		return nil
	}
	return r.desc
}

func (r *inputValueWrap) typVal() *typeWrap { return &typeWrap{r.typ} }

// defaultValue renders the stored default with fmt's %v verb. This is not
// GraphQL literal syntax: a string default comes out unquoted, and list or
// input-object defaults come out in Go's own formatting.
func (r *inputValueWrap) defaultValue() interface{} {
	if r.def == nil {
		return nil
	}
	return fmt.Sprintf("%v", r.def)
}

type enumValueWrap struct{ v *schema.EnumValueDef }

func (r *enumValueWrap) name() string { return r.v.Name }

func (r *enumValueWrap) description() interface{} {
	if r.v.Desc == "" {
		return nil
	}
	return r.v.Desc
}

func (r *enumValueWrap) isDeprecated() bool { return r.v.IsDeprecated() }

func (r *enumValueWrap) deprecationReason() interface{} {
	if r.v.DeprecationReason == "" {
		return nil
	}
	return r.v.DeprecationReason
}

type directiveWrap struct{ d *schema.DirectiveDef }

func (r *directiveWrap) name() string { return r.d.Name }

func (r *directiveWrap) description() interface{} {
	if r.d.Desc == "" {
		return nil
	}
	return r.d.Desc
}

func (r *directiveWrap) locations() []string {
	out := make([]string, len(r.d.Locations))
	for i, l := range r.d.Locations {
		out[i] = string(l)
	}
	return out
}

func (r *directiveWrap) args() []*inputValueWrap {
	out := make([]*inputValueWrap, len(r.d.Args))
	for i, a := range r.d.Args {
		out[i] = inputValueFromArg(a)
	}
	return out
}
