package schema

import (
	"github.com/zyxzen/graphqlite/log"
	"github.com/zyxzen/graphqlite/trace"
)

const defaultMaxDepth = 50

// Schema is not modified after Build returns except through AddType and
// the query-root fields that introspection.Apply adds, both before any
// request runs; concurrent Exec calls against it from multiple goroutines
// are safe as long as the host's own resolvers are (spec §5).
type Schema struct {
	types      map[string]NamedType
	directives map[string]*DirectiveDef

	query        *Object
	mutation     *Object
	subscription *Object

	maxDepth int
	logger   log.Logger
	tracer   trace.Tracer
}

// Option configures a Schema at Build time, standing in for the mutable
// Engine fields of a non-embeddable design (spec §7, "Configuration").
type Option func(*Schema)

// WithMaxDepth bounds selection-set nesting depth; exceeding it is a
// validation error. Pass it to Build via schema.New().Options(...).
func WithMaxDepth(n int) Option {
	return func(s *Schema) { s.maxDepth = n }
}

// WithLogger installs the logger used to report recovered resolver
// panics (spec §10, "resolver panics are trapped").
func WithLogger(l log.Logger) Option {
	return func(s *Schema) { s.logger = l }
}

// WithTracer installs the tracer used to wrap query execution and field
// resolution spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Schema) { s.tracer = t }
}

// Options applies configuration that Build.. would otherwise not see;
// call it between New() and Build().
func (b *Builder) Options(opts ...Option) *Builder {
	b.pendingOptions = append(b.pendingOptions, opts...)
	return b
}

// Resolve looks up a registered named type, satisfying the Schema-owned
// name→Type mapping of spec §3.1. It returns nil for an unknown name.
func (s *Schema) Resolve(name string) NamedType {
	return s.types[name]
}

// Types returns every named type the schema owns, including built-in
// scalars and, once applied, introspection types.
func (s *Schema) Types() map[string]NamedType {
	return s.types
}

// Directives returns every schema-level directive declaration.
func (s *Schema) Directives() map[string]*DirectiveDef {
	return s.directives
}

// Query, Mutation and Subscription return the schema's root Object
// types; Mutation and Subscription may be nil.
func (s *Schema) Query() *Object        { return s.query }
func (s *Schema) Mutation() *Object     { return s.mutation }
func (s *Schema) Subscription() *Object { return s.subscription }

// MaxDepth returns the configured selection-set depth limit.
func (s *Schema) MaxDepth() int { return s.maxDepth }

// Logger returns the configured logger, defaulting to log.DefaultLogger
// if none was set with WithLogger.
func (s *Schema) Logger() log.Logger {
	if s.logger == nil {
		return &log.DefaultLogger{}
	}
	return s.logger
}

// Tracer returns the configured tracer, defaulting to trace.NoopTracer
// if none was set with WithTracer.
func (s *Schema) Tracer() trace.Tracer {
	if s.tracer == nil {
		return trace.NoopTracer{}
	}
	return s.tracer
}

// AddType registers an additional named type after Build, used by
// package introspection to fold the __Schema/__Type/... family in.
func (s *Schema) AddType(t NamedType) {
	s.types[t.TypeName()] = t
}

// RootOperationType returns the schema's root Object type for opType, or
// nil if the schema has no such root (spec §4.5.1, step 2).
func (s *Schema) RootOperationType(opType string) *Object {
	switch opType {
	case "QUERY":
		return s.query
	case "MUTATION":
		return s.mutation
	case "SUBSCRIPTION":
		return s.subscription
	default:
		return nil
	}
}
