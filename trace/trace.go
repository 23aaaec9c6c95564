// Package trace defines the tracing hooks a Schema calls around request
// validation, execution and field resolution.
package trace

import (
	"context"

	"github.com/zyxzen/graphqlite/errors"
)

type QueryFinishFunc func([]*errors.QueryError)
type FieldFinishFunc func(*errors.QueryError)
type ValidationFinishFunc func([]*errors.QueryError)

// Tracer wraps query execution and field resolution in spans. TraceField
// is called for every field, including trivial ones, with trivial set so
// an implementation can skip instrumenting leaves it doesn't care about.
type Tracer interface {
	TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}) (context.Context, QueryFinishFunc)
	TraceField(ctx context.Context, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, FieldFinishFunc)
	TraceValidation(ctx context.Context) ValidationFinishFunc
}

// NoopTracer implements Tracer with no-ops; it is the default.
type NoopTracer struct{}

func (NoopTracer) TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}) (context.Context, QueryFinishFunc) {
	return ctx, func([]*errors.QueryError) {}
}

func (NoopTracer) TraceField(ctx context.Context, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, FieldFinishFunc) {
	return ctx, func(*errors.QueryError) {}
}

func (NoopTracer) TraceValidation(ctx context.Context) ValidationFinishFunc {
	return func([]*errors.QueryError) {}
}

type requestIDKey struct{}

// WithRequestID returns a copy of ctx carrying id, readable back via
// RequestID. Schema.Exec calls this once per request; a Tracer
// implementation can tag its spans with the result.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id a prior WithRequestID stored in ctx, or the
// empty string if none was set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
