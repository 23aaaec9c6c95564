package ast

import "github.com/zyxzen/graphqlite/errors"

// TypeRef is a reference to a type as written in a document: a bare name,
// or a List/NonNull wrapping of another TypeRef.
type TypeRef interface {
	isTypeRef()
	String() string
}

type NamedTypeRef struct {
	Ident
}

type ListTypeRef struct {
	OfType TypeRef
	Loc    errors.Location
}

type NonNullTypeRef struct {
	OfType TypeRef
	Loc    errors.Location
}

func (*NamedTypeRef) isTypeRef()   {}
func (*ListTypeRef) isTypeRef()    {}
func (*NonNullTypeRef) isTypeRef() {}

func (t *NamedTypeRef) String() string    { return t.Name }
func (t *ListTypeRef) String() string     { return "[" + t.OfType.String() + "]" }
func (t *NonNullTypeRef) String() string  { return t.OfType.String() + "!" }
