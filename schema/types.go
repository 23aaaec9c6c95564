// Package schema is the in-memory type system a host builds once at
// startup: named types (Scalar, Object, Interface, Union, Enum,
// InputObject), their fields and arguments, and the List/NonNull
// wrappers that compose them. There is no SDL parser here — a host
// constructs a Schema through the fluent Builder in builder.go.
package schema

import "github.com/zyxzen/graphqlite/ast"

// Kind closes the taxonomy of type-system entities (spec §3.1).
type Kind string

const (
	KindScalar      Kind = "SCALAR"
	KindObject      Kind = "OBJECT"
	KindInterface   Kind = "INTERFACE"
	KindUnion       Kind = "UNION"
	KindEnum        Kind = "ENUM"
	KindInputObject Kind = "INPUT_OBJECT"
	KindList        Kind = "LIST"
	KindNonNull     Kind = "NON_NULL"
)

// Type is satisfied by every named type and by the List/NonNull wrappers.
type Type interface {
	Kind() Kind
	String() string
}

// NamedType is any Type the Schema owns directly under a unique name;
// List, NonNull and TypeReference are not named types.
type NamedType interface {
	Type
	TypeName() string
	Description() string
}

// TypeReference is a lazy, name-based pointer to a named type, used to
// permit forward references while a schema is under construction.
// Build resolves every reachable TypeReference or fails; none should
// survive into execution.
type TypeReference struct {
	Name string
}

// Ref creates a forward reference to the named type, to be resolved by
// Builder.Build.
func Ref(name string) *TypeReference { return &TypeReference{Name: name} }

func (*TypeReference) Kind() Kind      { return "" }
func (r *TypeReference) String() string { return r.Name }

// ListType wraps the type of each element of a list value. Construct one
// with the List function, not directly.
type ListType struct {
	OfType Type
}

func (*ListType) Kind() Kind        { return KindList }
func (l *ListType) String() string  { return "[" + l.OfType.String() + "]" }

// List returns the list-of-t type. Use schema.List(schema.NonNull(t)) for
// a list of non-null t.
func List(t Type) Type { return &ListType{OfType: t} }

// NonNullType marks a position where a null value is never valid. It is
// invalid to wrap another NonNullType (spec §3.1, invariant 2); the
// Builder enforces this at Build time, not at wrap time, since the inner
// type may still be a TypeReference.
type NonNullType struct {
	OfType Type
}

func (*NonNullType) Kind() Kind       { return KindNonNull }
func (n *NonNullType) String() string { return n.OfType.String() + "!" }

// NonNull returns the non-null wrapping of t.
func NonNull(t Type) Type { return &NonNullType{OfType: t} }

// Scalar carries the three coercion functions of spec §3.1/§6.3.
type Scalar struct {
	Name         string
	Desc         string
	Serialize    func(value interface{}) (interface{}, error)
	ParseValue   func(value interface{}) (interface{}, error)
	ParseLiteral func(value ast.Value) (interface{}, error)
}

func (*Scalar) Kind() Kind           { return KindScalar }
func (s *Scalar) String() string     { return s.Name }
func (s *Scalar) TypeName() string   { return s.Name }
func (s *Scalar) Description() string { return s.Desc }

// Object is a fields-bearing type implementing zero or more interfaces.
type Object struct {
	Name       string
	Desc       string
	Fields     FieldList
	Interfaces []*Interface

	interfaceNames []string
}

func (*Object) Kind() Kind           { return KindObject }
func (o *Object) String() string     { return o.Name }
func (o *Object) TypeName() string   { return o.Name }
func (o *Object) Description() string { return o.Desc }

// Implements reports whether o lists intf among its interfaces.
func (o *Object) Implements(intf *Interface) bool {
	for _, i := range o.Interfaces {
		if i == intf {
			return true
		}
	}
	return false
}

// Interface is a fields-bearing abstract type. ResolveType, when set, is
// called during value completion to pick the concrete Object a value
// should be completed against (spec §9, "explicit resolveType callback").
type Interface struct {
	Name          string
	Desc          string
	Fields        FieldList
	PossibleTypes []*Object
	ResolveType   func(value interface{}) string
}

func (*Interface) Kind() Kind           { return KindInterface }
func (i *Interface) String() string     { return i.Name }
func (i *Interface) TypeName() string   { return i.Name }
func (i *Interface) Description() string { return i.Desc }

// Union is a set of Object member types. ResolveType plays the same role
// as on Interface.
type Union struct {
	Name          string
	Desc          string
	PossibleTypes []*Object
	ResolveType   func(value interface{}) string

	typeNames []string
}

func (*Union) Kind() Kind           { return KindUnion }
func (u *Union) String() string     { return u.Name }
func (u *Union) TypeName() string   { return u.Name }
func (u *Union) Description() string { return u.Desc }

// Enum is a closed set of named values.
type Enum struct {
	Name   string
	Desc   string
	Values EnumValueList
}

func (*Enum) Kind() Kind           { return KindEnum }
func (e *Enum) String() string     { return e.Name }
func (e *Enum) TypeName() string   { return e.Name }
func (e *Enum) Description() string { return e.Desc }

type EnumValueDef struct {
	Name              string
	Desc              string
	DeprecationReason string
}

func (v *EnumValueDef) IsDeprecated() bool { return v.DeprecationReason != "" }

type EnumValueList []*EnumValueDef

func (l EnumValueList) Get(name string) *EnumValueDef {
	for _, v := range l {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// InputObject is a fields-bearing type usable only in input position
// (argument values, variable values).
type InputObject struct {
	Name   string
	Desc   string
	Fields InputFieldList
}

func (*InputObject) Kind() Kind           { return KindInputObject }
func (i *InputObject) String() string     { return i.Name }
func (i *InputObject) TypeName() string   { return i.Name }
func (i *InputObject) Description() string { return i.Desc }

type InputFieldDef struct {
	Name    string
	Desc    string
	Type    Type
	Default interface{}
}

type InputFieldList []*InputFieldDef

func (l InputFieldList) Get(name string) *InputFieldDef {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ArgDef describes one argument of a field or a schema-level directive.
type ArgDef struct {
	Name    string
	Desc    string
	Type    Type
	Default interface{}
}

type ArgList []*ArgDef

func (l ArgList) Get(name string) *ArgDef {
	for _, a := range l {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// FieldDef is one field of an Object or Interface.
type FieldDef struct {
	Name              string
	Desc              string
	Type              Type
	Args              ArgList
	DeprecationReason string
	Resolve           Resolver
}

func (f *FieldDef) IsDeprecated() bool { return f.DeprecationReason != "" }

type FieldList []*FieldDef

func (l FieldList) Get(name string) *FieldDef {
	for _, f := range l {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func (l FieldList) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.Name
	}
	return names
}

// DirectiveLocation closes the set of places a directive may be applied.
type DirectiveLocation string

const (
	LocQuery              DirectiveLocation = "QUERY"
	LocMutation           DirectiveLocation = "MUTATION"
	LocSubscription       DirectiveLocation = "SUBSCRIPTION"
	LocField              DirectiveLocation = "FIELD"
	LocFragmentDefinition DirectiveLocation = "FRAGMENT_DEFINITION"
	LocFragmentSpread     DirectiveLocation = "FRAGMENT_SPREAD"
	LocInlineFragment     DirectiveLocation = "INLINE_FRAGMENT"
	LocSchema             DirectiveLocation = "SCHEMA"
	LocScalar             DirectiveLocation = "SCALAR"
	LocObject             DirectiveLocation = "OBJECT"
	LocFieldDefinition    DirectiveLocation = "FIELD_DEFINITION"
	LocArgumentDefinition DirectiveLocation = "ARGUMENT_DEFINITION"
	LocInterface          DirectiveLocation = "INTERFACE"
	LocUnion              DirectiveLocation = "UNION"
	LocEnum               DirectiveLocation = "ENUM"
	LocEnumValue          DirectiveLocation = "ENUM_VALUE"
	LocInputObject        DirectiveLocation = "INPUT_OBJECT"
	LocInputFieldDefinition DirectiveLocation = "INPUT_FIELD_DEFINITION"
)

// DirectiveDef is a schema-level directive declaration, e.g. @skip/@include.
type DirectiveDef struct {
	Name      string
	Desc      string
	Locations []DirectiveLocation
	Args      ArgList
}
