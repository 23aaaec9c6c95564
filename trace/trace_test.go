package trace_test

import (
	"testing"

	"github.com/zyxzen/graphqlite/trace"
	"github.com/zyxzen/graphqlite/trace/jaegertracer"
	"github.com/zyxzen/graphqlite/trace/opentracing"
)

func TestInterfaceImplementation(t *testing.T) {
	var _ trace.Tracer = trace.NoopTracer{}
	var _ trace.Tracer = opentracing.Tracer{}
	var _ trace.Tracer = jaegertracer.Tracer{}
}
