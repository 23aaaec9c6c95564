package schema

import "fmt"

// Builder accumulates named types and directives before Build performs
// the two-phase construction of spec §9: (1) every named type is already
// registered as soon as its builder method returns, (2) Build walks
// every field, argument and input field and resolves TypeReferences by
// name, erroring on anything left unresolved.
type Builder struct {
	types      map[string]NamedType
	order      []string
	directives map[string]*DirectiveDef

	objects []*Object
	unions  []*Union

	pendingOptions []Option
}

// New returns a Builder pre-loaded with the built-in scalars and the
// @skip/@include directives (spec §6.2).
func New() *Builder {
	b := &Builder{
		types:      map[string]NamedType{},
		directives: map[string]*DirectiveDef{},
	}
	for _, s := range builtinScalars() {
		b.register(s)
	}
	ifArg := &ArgDef{Name: "if", Type: NonNull(Boolean)}
	b.directives["skip"] = &DirectiveDef{
		Name:      "skip",
		Locations: []DirectiveLocation{LocField, LocFragmentSpread, LocInlineFragment},
		Args:      ArgList{ifArg},
	}
	b.directives["include"] = &DirectiveDef{
		Name:      "include",
		Locations: []DirectiveLocation{LocField, LocFragmentSpread, LocInlineFragment},
		Args:      ArgList{&ArgDef{Name: "if", Type: NonNull(Boolean)}},
	}
	return b
}

func (b *Builder) register(t NamedType) {
	name := t.TypeName()
	if _, ok := b.types[name]; !ok {
		b.order = append(b.order, name)
	}
	b.types[name] = t
}

// Scalar registers a custom scalar and returns it for further chaining.
func (b *Builder) Scalar(name string) *Scalar {
	s := &Scalar{Name: name}
	b.register(s)
	return s
}

// Directive declares a schema-level directive.
func (b *Builder) Directive(name string) *DirectiveBuilder {
	d := &DirectiveDef{Name: name}
	b.directives[name] = d
	return &DirectiveBuilder{directive: d}
}

// Object declares an Object type.
func (b *Builder) Object(name string) *ObjectBuilder {
	o := &Object{Name: name}
	b.register(o)
	b.objects = append(b.objects, o)
	return &ObjectBuilder{obj: o}
}

// Interface declares an Interface type.
func (b *Builder) Interface(name string) *InterfaceBuilder {
	i := &Interface{Name: name}
	b.register(i)
	return &InterfaceBuilder{intf: i}
}

// Union declares a Union type.
func (b *Builder) Union(name string) *UnionBuilder {
	u := &Union{Name: name}
	b.register(u)
	b.unions = append(b.unions, u)
	return &UnionBuilder{union: u}
}

// Enum declares an Enum type.
func (b *Builder) Enum(name string) *EnumBuilder {
	e := &Enum{Name: name}
	b.register(e)
	return &EnumBuilder{enum: e}
}

// InputObject declares an InputObject type.
func (b *Builder) InputObject(name string) *InputObjectBuilder {
	i := &InputObject{Name: name}
	b.register(i)
	return &InputObjectBuilder{input: i}
}

// Build resolves every TypeReference reachable from a field, argument or
// input field, wires interface/union back-references, and assembles the
// root-operation Schema. mutationName and subscriptionName may be empty.
// Introspection types are not added here; call introspection.Apply on the
// result to fold __schema/__type support in (__typename needs neither: the
// executor answers it directly).
func (b *Builder) Build(queryName, mutationName, subscriptionName string) (*Schema, error) {
	for _, name := range b.order {
		if err := b.resolveNamedType(b.types[name]); err != nil {
			return nil, err
		}
	}
	for _, d := range b.directives {
		if err := b.resolveArgs(d.Args); err != nil {
			return nil, err
		}
	}

	for _, obj := range b.objects {
		obj.Interfaces = make([]*Interface, len(obj.interfaceNames))
		for i, name := range obj.interfaceNames {
			t, ok := b.types[name]
			if !ok {
				return nil, typeSystemErrorf("interface %q not found, referenced by %q", name, obj.Name)
			}
			intf, ok := t.(*Interface)
			if !ok {
				return nil, typeSystemErrorf("type %q is not an interface, referenced by %q", name, obj.Name)
			}
			obj.Interfaces[i] = intf
			intf.PossibleTypes = append(intf.PossibleTypes, obj)
		}
	}

	for _, union := range b.unions {
		union.PossibleTypes = make([]*Object, len(union.typeNames))
		for i, name := range union.typeNames {
			t, ok := b.types[name]
			if !ok {
				return nil, typeSystemErrorf("object type %q not found, referenced by union %q", name, union.Name)
			}
			obj, ok := t.(*Object)
			if !ok {
				return nil, typeSystemErrorf("type %q is not an object, referenced by union %q", name, union.Name)
			}
			union.PossibleTypes[i] = obj
		}
	}

	sch := &Schema{
		types:      b.types,
		directives: b.directives,
		maxDepth:   defaultMaxDepth,
	}
	for _, opt := range b.pendingOptions {
		opt(sch)
	}

	if queryName != "" {
		t, err := sch.resolveRoot(queryName)
		if err != nil {
			return nil, err
		}
		sch.query = t
	} else {
		return nil, typeSystemErrorf("a query root type name is required")
	}
	if mutationName != "" {
		t, err := sch.resolveRoot(mutationName)
		if err != nil {
			return nil, err
		}
		sch.mutation = t
	}
	if subscriptionName != "" {
		t, err := sch.resolveRoot(subscriptionName)
		if err != nil {
			return nil, err
		}
		sch.subscription = t
	}

	return sch, nil
}

func (s *Schema) resolveRoot(name string) (*Object, error) {
	t, ok := s.types[name]
	if !ok {
		return nil, typeSystemErrorf("root type %q not found", name)
	}
	obj, ok := t.(*Object)
	if !ok {
		return nil, typeSystemErrorf("root type %q must be an Object", name)
	}
	return obj, nil
}

func (b *Builder) resolveNamedType(t NamedType) error {
	switch t := t.(type) {
	case *Object:
		for _, f := range t.Fields {
			if err := b.resolveField(f); err != nil {
				return err
			}
		}
	case *Interface:
		for _, f := range t.Fields {
			if err := b.resolveField(f); err != nil {
				return err
			}
		}
	case *InputObject:
		for _, f := range t.Fields {
			rt, err := b.resolveType(f.Type)
			if err != nil {
				return err
			}
			f.Type = rt
		}
	}
	return nil
}

func (b *Builder) resolveField(f *FieldDef) error {
	rt, err := b.resolveType(f.Type)
	if err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}
	f.Type = rt
	return b.resolveArgs(f.Args)
}

func (b *Builder) resolveArgs(args ArgList) error {
	for _, a := range args {
		rt, err := b.resolveType(a.Type)
		if err != nil {
			return fmt.Errorf("argument %q: %w", a.Name, err)
		}
		a.Type = rt
	}
	return nil
}

// resolveType walks t replacing every TypeReference it finds, recursing
// through List/NonNull wrappers, and rejects NonNull(NonNull(x)) (spec
// §3.3, invariant 2).
func (b *Builder) resolveType(t Type) (Type, error) {
	switch t := t.(type) {
	case *TypeReference:
		named, ok := b.types[t.Name]
		if !ok {
			return nil, typeSystemErrorf("type %q not found", t.Name)
		}
		return named, nil
	case *ListType:
		inner, err := b.resolveType(t.OfType)
		if err != nil {
			return nil, err
		}
		return &ListType{OfType: inner}, nil
	case *NonNullType:
		if _, ok := t.OfType.(*NonNullType); ok {
			return nil, typeSystemErrorf("NonNull must not wrap another NonNull")
		}
		inner, err := b.resolveType(t.OfType)
		if err != nil {
			return nil, err
		}
		if _, ok := inner.(*NonNullType); ok {
			return nil, typeSystemErrorf("NonNull must not wrap another NonNull")
		}
		return &NonNullType{OfType: inner}, nil
	default:
		return t, nil
	}
}

func typeSystemErrorf(format string, a ...interface{}) error {
	return fmt.Errorf(format, a...)
}

// --- sub-builders ---

type ObjectBuilder struct {
	obj *Object
}

func (ob *ObjectBuilder) Description(desc string) *ObjectBuilder {
	ob.obj.Desc = desc
	return ob
}

func (ob *ObjectBuilder) Implements(interfaceNames ...string) *ObjectBuilder {
	ob.obj.interfaceNames = append(ob.obj.interfaceNames, interfaceNames...)
	return ob
}

func (ob *ObjectBuilder) Field(name string, typ Type) *FieldBuilder {
	f := &FieldDef{Name: name, Type: typ}
	ob.obj.Fields = append(ob.obj.Fields, f)
	return &FieldBuilder{field: f}
}

type InterfaceBuilder struct {
	intf *Interface
}

func (ib *InterfaceBuilder) Description(desc string) *InterfaceBuilder {
	ib.intf.Desc = desc
	return ib
}

func (ib *InterfaceBuilder) ResolveType(fn func(value interface{}) string) *InterfaceBuilder {
	ib.intf.ResolveType = fn
	return ib
}

func (ib *InterfaceBuilder) Field(name string, typ Type) *FieldBuilder {
	f := &FieldDef{Name: name, Type: typ}
	ib.intf.Fields = append(ib.intf.Fields, f)
	return &FieldBuilder{field: f}
}

type UnionBuilder struct {
	union *Union
}

func (ub *UnionBuilder) Description(desc string) *UnionBuilder {
	ub.union.Desc = desc
	return ub
}

func (ub *UnionBuilder) ResolveType(fn func(value interface{}) string) *UnionBuilder {
	ub.union.ResolveType = fn
	return ub
}

func (ub *UnionBuilder) Members(typeNames ...string) *UnionBuilder {
	ub.union.typeNames = append(ub.union.typeNames, typeNames...)
	return ub
}

type EnumBuilder struct {
	enum *Enum
}

func (eb *EnumBuilder) Description(desc string) *EnumBuilder {
	eb.enum.Desc = desc
	return eb
}

func (eb *EnumBuilder) Value(name string) *EnumValueBuilder {
	v := &EnumValueDef{Name: name}
	eb.enum.Values = append(eb.enum.Values, v)
	return &EnumValueBuilder{value: v}
}

type EnumValueBuilder struct {
	value *EnumValueDef
}

func (vb *EnumValueBuilder) Description(desc string) *EnumValueBuilder {
	vb.value.Desc = desc
	return vb
}

func (vb *EnumValueBuilder) Deprecate(reason string) *EnumValueBuilder {
	vb.value.DeprecationReason = reason
	return vb
}

type InputObjectBuilder struct {
	input *InputObject
}

func (ib *InputObjectBuilder) Description(desc string) *InputObjectBuilder {
	ib.input.Desc = desc
	return ib
}

func (ib *InputObjectBuilder) Field(name string, typ Type) *InputFieldBuilder {
	f := &InputFieldDef{Name: name, Type: typ}
	ib.input.Fields = append(ib.input.Fields, f)
	return &InputFieldBuilder{field: f}
}

type InputFieldBuilder struct {
	field *InputFieldDef
}

func (fb *InputFieldBuilder) Description(desc string) *InputFieldBuilder {
	fb.field.Desc = desc
	return fb
}

func (fb *InputFieldBuilder) Default(value interface{}) *InputFieldBuilder {
	fb.field.Default = value
	return fb
}

type FieldBuilder struct {
	field *FieldDef
}

func (fb *FieldBuilder) Description(desc string) *FieldBuilder {
	fb.field.Desc = desc
	return fb
}

func (fb *FieldBuilder) Deprecate(reason string) *FieldBuilder {
	fb.field.DeprecationReason = reason
	return fb
}

func (fb *FieldBuilder) Argument(name string, typ Type) *ArgBuilder {
	a := &ArgDef{Name: name, Type: typ}
	fb.field.Args = append(fb.field.Args, a)
	return &ArgBuilder{arg: a, field: fb}
}

func (fb *FieldBuilder) Resolve(fn Resolver) *FieldBuilder {
	fb.field.Resolve = fn
	return fb
}

type ArgBuilder struct {
	arg   *ArgDef
	field *FieldBuilder
}

func (ab *ArgBuilder) Description(desc string) *ArgBuilder {
	ab.arg.Desc = desc
	return ab
}

// Resolve sets the resolver on the field this argument belongs to,
// letting a chain read Field(...).Argument(...).Resolve(...) without an
// intermediate variable.
func (ab *ArgBuilder) Resolve(fn Resolver) *FieldBuilder {
	return ab.field.Resolve(fn)
}

// Default sets the argument's literal default and returns to the owning
// FieldBuilder so a chain can continue with another Argument or Resolve.
func (ab *ArgBuilder) Default(value interface{}) *FieldBuilder {
	ab.arg.Default = value
	return ab.field
}

type DirectiveBuilder struct {
	directive *DirectiveDef
}

func (db *DirectiveBuilder) Description(desc string) *DirectiveBuilder {
	db.directive.Desc = desc
	return db
}

func (db *DirectiveBuilder) Locations(locs ...DirectiveLocation) *DirectiveBuilder {
	db.directive.Locations = append(db.directive.Locations, locs...)
	return db
}

func (db *DirectiveBuilder) Argument(name string, typ Type) *DirectiveBuilder {
	db.directive.Args = append(db.directive.Args, &ArgDef{Name: name, Type: typ})
	return db
}
