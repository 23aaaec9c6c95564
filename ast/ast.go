package ast

import "github.com/zyxzen/graphqlite/errors"

// Ident is a name token together with the position it was read from.
type Ident struct {
	Name string
	Loc  errors.Location
}

type OperationType string

const (
	Query        OperationType = "QUERY"
	Mutation     OperationType = "MUTATION"
	Subscription OperationType = "SUBSCRIPTION"
)

// Document is the parsed form of a request: a sequence of operation and
// fragment definitions in source order.
type Document struct {
	Operations []*OperationDefinition
	Fragments  FragmentList
}

// GetOperation selects the operation to execute, per spec §4.5.1: the
// named operation if a name was given, the sole operation if there is
// exactly one, otherwise an error.
func (d *Document) GetOperation(name string) (*OperationDefinition, error) {
	if name != "" {
		for _, op := range d.Operations {
			if op.Name.Name == name {
				return op, nil
			}
		}
		return nil, errOperationNotFound(name)
	}
	switch len(d.Operations) {
	case 0:
		return nil, errNoOperation()
	case 1:
		return d.Operations[0], nil
	default:
		return nil, errMultipleOperations()
	}
}

func errOperationNotFound(name string) error {
	return errors.Errorf("Unknown operation named %q", name)
}

func errNoOperation() error {
	return errors.Errorf("No operation found")
}

func errMultipleOperations() error {
	return errors.Errorf("Must provide operation name if query contains multiple operations")
}

type OperationDefinition struct {
	Type       OperationType
	Name       Ident
	Vars       []*VariableDefinition
	Directives DirectiveList
	Selections []Selection
	Loc        errors.Location
}

type VariableDefinition struct {
	Var        Ident
	Type       TypeRef
	Default    Value
	Directives DirectiveList
	Loc        errors.Location
}

type FragmentDefinition struct {
	Name       Ident
	On         *NamedTypeRef
	Directives DirectiveList
	Selections []Selection
	Loc        errors.Location
}

type FragmentList []*FragmentDefinition

func (l FragmentList) Get(name string) *FragmentDefinition {
	for _, f := range l {
		if f.Name.Name == name {
			return f
		}
	}
	return nil
}

// Selection is one of Field, FragmentSpread or InlineFragment.
type Selection interface {
	isSelection()
}

type Field struct {
	Alias        Ident
	Name         Ident
	Arguments    ArgumentList
	Directives   DirectiveList
	SelectionSet []Selection
	Loc          errors.Location
}

// ResponseKey returns the alias if present, otherwise the field name.
func (f *Field) ResponseKey() string {
	if f.Alias.Name != "" {
		return f.Alias.Name
	}
	return f.Name.Name
}

type FragmentSpread struct {
	Name       Ident
	Directives DirectiveList
	Loc        errors.Location
}

type InlineFragment struct {
	On         *NamedTypeRef
	Directives DirectiveList
	Selections []Selection
	Loc        errors.Location
}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

type Argument struct {
	Name  Ident
	Value Value
}

type ArgumentList []*Argument

func (l ArgumentList) Get(name string) (Value, bool) {
	for _, a := range l {
		if a.Name.Name == name {
			return a.Value, true
		}
	}
	return nil, false
}

type Directive struct {
	Name      Ident
	Arguments ArgumentList
}

type DirectiveList []*Directive

func (l DirectiveList) Get(name string) *Directive {
	for _, d := range l {
		if d.Name.Name == name {
			return d
		}
	}
	return nil
}
