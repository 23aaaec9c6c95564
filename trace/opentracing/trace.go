// Package opentracing wires package trace's Tracer interface to
// github.com/opentracing/opentracing-go spans.
package opentracing

import (
	"context"
	"fmt"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	otlog "github.com/opentracing/opentracing-go/log"

	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/trace"
)

// Tracer implements trace.Tracer by starting an OpenTracing span per
// query, per validation pass, and per non-trivial field.
type Tracer struct{}

func (Tracer) TraceQuery(ctx context.Context, queryString, operationName string, variables map[string]interface{}) (context.Context, trace.QueryFinishFunc) {
	span, spanCtx := opentracing.StartSpanFromContext(ctx, "GraphQL request")
	span.SetTag("graphql.query", queryString)
	if operationName != "" {
		span.SetTag("graphql.operationName", operationName)
	}
	if id := trace.RequestID(ctx); id != "" {
		span.SetTag("graphql.requestID", id)
	}
	if len(variables) != 0 {
		span.LogFields(otlog.Object("graphql.variables", variables))
	}

	return spanCtx, func(errs []*errors.QueryError) {
		finishWithErrors(span, errs)
	}
}

func (Tracer) TraceField(ctx context.Context, typeName, fieldName string, trivial bool, args map[string]interface{}) (context.Context, trace.FieldFinishFunc) {
	if trivial {
		return ctx, func(*errors.QueryError) {}
	}

	span, spanCtx := opentracing.StartSpanFromContext(ctx, typeName+"."+fieldName)
	span.SetTag("graphql.type", typeName)
	span.SetTag("graphql.field", fieldName)
	for name, value := range args {
		span.SetTag("graphql.args."+name, value)
	}

	return spanCtx, func(err *errors.QueryError) {
		if err != nil {
			ext.Error.Set(span, true)
			span.SetTag("graphql.error", err.Error())
		}
		span.Finish()
	}
}

func (Tracer) TraceValidation(ctx context.Context) trace.ValidationFinishFunc {
	span, _ := opentracing.StartSpanFromContext(ctx, "Validate Query")
	return func(errs []*errors.QueryError) {
		finishWithErrors(span, errs)
	}
}

func finishWithErrors(span opentracing.Span, errs []*errors.QueryError) {
	if len(errs) > 0 {
		msg := errs[0].Error()
		if len(errs) > 1 {
			msg += fmt.Sprintf(" (and %d more errors)", len(errs)-1)
		}
		ext.Error.Set(span, true)
		span.SetTag("graphql.error", msg)
	}
	span.Finish()
}
