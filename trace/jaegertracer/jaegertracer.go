// Package jaegertracer builds a trace.Tracer backed by a concrete Jaeger
// client, following the same jaegercfg.FromEnv / SetGlobalTracer pattern
// the pack's example servers use to wire a real tracer instead of the
// OpenTracing no-op.
package jaegertracer

import (
	"io"

	ot "github.com/opentracing/opentracing-go"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"

	tracepkg "github.com/zyxzen/graphqlite/trace"
	ottracer "github.com/zyxzen/graphqlite/trace/opentracing"
)

// Tracer is trace.Tracer implemented on top of whichever OpenTracing
// tracer is currently registered globally (ordinarily the one New
// installs).
type Tracer = ottracer.Tracer

// New reads Jaeger configuration from the environment (JAEGER_SERVICE_NAME,
// JAEGER_SAMPLER_TYPE, ...), registers the resulting tracer as the global
// OpenTracing tracer, and returns a trace.Tracer built on it. The caller
// must Close the returned io.Closer when done to flush buffered spans.
func New(serviceName string) (tracepkg.Tracer, io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, nil, err
	}
	if serviceName != "" {
		cfg.ServiceName = serviceName
	}
	if cfg.Sampler.Type == "" {
		cfg.Sampler.Type = jaeger.SamplerTypeConst
		cfg.Sampler.Param = 1
	}

	jt, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerlog.StdLogger))
	if err != nil {
		return nil, nil, err
	}
	ot.SetGlobalTracer(jt)

	return Tracer{}, closer, nil
}
