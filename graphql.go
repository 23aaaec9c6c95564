// Package graphql ties the lexer, parser, validator and executor
// together behind a single Schema type: parse, validate, execute,
// marshal.
package graphql

import (
	"context"
	"encoding/json"

	"github.com/segmentio/ksuid"

	"github.com/zyxzen/graphqlite/errors"
	"github.com/zyxzen/graphqlite/internal/executor"
	"github.com/zyxzen/graphqlite/internal/parser"
	"github.com/zyxzen/graphqlite/internal/validator"
	"github.com/zyxzen/graphqlite/introspection"
	"github.com/zyxzen/graphqlite/schema"
)

// Schema wraps a built type system with the ability to execute requests
// against it. Construct the type system with schema.New and a Builder,
// then hand the result to New.
type Schema struct {
	types *schema.Schema
}

// New wraps sch for execution, folding the introspection types
// (__schema, __type and friends) into it. sch must already be built.
func New(sch *schema.Schema) *Schema {
	introspection.Apply(sch)
	return &Schema{types: sch}
}

// Response is the top-level shape returned to a client, per the
// {data?, errors?} contract: Data is absent entirely while a request
// fails before execution starts (parse or validation errors), present
// as JSON null once execution has started and non-null propagation
// nulled out the root.
type Response struct {
	Data       json.RawMessage        `json:"data,omitempty"`
	Errors     []*errors.QueryError   `json:"errors,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Exec parses, validates and executes queryString, returning a Response
// ready to marshal back to a client. ctx carries a freshly minted
// request id (see RequestID) through execution and every field resolver
// and tracer call; parsing and validation themselves take no ctx.
func (s *Schema) Exec(ctx context.Context, queryString, operationName string, variables map[string]interface{}) *Response {
	ctx = withRequestID(ctx, ksuid.New().String())

	doc, qErr := parser.Parse(queryString)
	if qErr != nil {
		return &Response{Errors: []*errors.QueryError{qErr}}
	}

	validationFinish := s.types.Tracer().TraceValidation(ctx)
	errs := validator.Validate(s.types, doc)
	validationFinish(errs)
	if len(errs) != 0 {
		return &Response{Errors: errs}
	}

	var extensions map[string]interface{}
	if summary, err := Summarize(doc, operationName); err == nil {
		extensions = map[string]interface{}{"operation": summary}
	}

	traceCtx, finish := s.types.Tracer().TraceQuery(ctx, queryString, operationName, variables)
	result := executor.Execute(traceCtx, s.types, doc, operationName, variables)
	finish(result.Errors)

	data, err := json.Marshal(result.Data)
	if err != nil {
		result.Errors = append(result.Errors, errors.Errorf("%s", err))
	}

	return &Response{Data: data, Errors: result.Errors, Extensions: extensions}
}
