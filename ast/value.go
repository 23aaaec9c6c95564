package ast

import "github.com/zyxzen/graphqlite/errors"

// Value is the grammar of literal values that can appear in an argument,
// a variable's default, or an input object field.
type Value interface {
	isValue()
	Location() errors.Location
}

type Variable struct {
	Name string
	Loc  errors.Location
}

type IntValue struct {
	Value int64
	Loc   errors.Location
}

type FloatValue struct {
	Value float64
	Loc   errors.Location
}

type StringValue struct {
	Value string
	Loc   errors.Location
}

type BooleanValue struct {
	Value bool
	Loc   errors.Location
}

type NullValue struct {
	Loc errors.Location
}

type EnumValue struct {
	Value string
	Loc   errors.Location
}

type ListValue struct {
	Values []Value
	Loc    errors.Location
}

type ObjectField struct {
	Name  Ident
	Value Value
}

type ObjectValue struct {
	Fields []*ObjectField
	Loc    errors.Location
}

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*NullValue) isValue()    {}
func (*EnumValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}

func (v *Variable) Location() errors.Location     { return v.Loc }
func (v *IntValue) Location() errors.Location     { return v.Loc }
func (v *FloatValue) Location() errors.Location   { return v.Loc }
func (v *StringValue) Location() errors.Location  { return v.Loc }
func (v *BooleanValue) Location() errors.Location { return v.Loc }
func (v *NullValue) Location() errors.Location    { return v.Loc }
func (v *EnumValue) Location() errors.Location    { return v.Loc }
func (v *ListValue) Location() errors.Location    { return v.Loc }
func (v *ObjectValue) Location() errors.Location  { return v.Loc }
