package schema

import "context"

// ResolveInfo carries the bits of request context a resolver occasionally
// needs beyond its own arguments.
type ResolveInfo struct {
	FieldName  string
	ParentType NamedType
	Path       []interface{}
}

// ResolveParams is passed to every Resolver; Args is already coerced
// against the field's argument definitions.
type ResolveParams struct {
	Source interface{}
	Args   map[string]interface{}
	Info   ResolveInfo
}

// Resolver is the one canonical resolver signature (spec §9, "one
// canonical signature; expose thin adapters for ergonomic host
// bindings"). FieldBuilder.Resolve installs one per field; a field with
// none falls back to the generic accessor described in spec §4.5.4.
type Resolver func(ctx context.Context, p ResolveParams) (interface{}, error)
