package opentracing_test

import (
	"testing"

	"github.com/zyxzen/graphqlite/trace"
	"github.com/zyxzen/graphqlite/trace/opentracing"
)

func TestInterfaceImplementation(t *testing.T) {
	var _ trace.Tracer = opentracing.Tracer{}
}
