package log

import (
	"context"
	"log"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Logger is the interface used to log panics that occur during query execution. It is settable via schema.WithLogger.
type Logger interface {
	LogPanic(ctx context.Context, value interface{})
}

// LoggerFunc is a function type that implements the Logger interface.
type LoggerFunc func(ctx context.Context, value interface{})

// LogPanic calls the LoggerFunc with the given context and panic value.
func (f LoggerFunc) LogPanic(ctx context.Context, value interface{}) {
	f(ctx, value)
}

// DefaultLogger is the default logger used to log panics that occur during query execution.
type DefaultLogger struct{}

// PanicValue is the value the executor passes to LogPanic when it traps a
// resolver panic: the recovered value, the field's parent value at the
// time of the panic, and the response path to the offending field.
type PanicValue struct {
	Value  interface{}
	Parent interface{}
	Path   []interface{}
}

// LogPanic is used to log recovered panic values that occur during query execution.
func (l *DefaultLogger) LogPanic(ctx context.Context, value interface{}) {
	const size = 64 << 10
	buf := make([]byte, size)
	buf = buf[:runtime.Stack(buf, false)]

	if pv, ok := value.(PanicValue); ok {
		log.Printf("graphql: panic occurred at path %v: %v\nparent value:\n%s%s\ncontext: %v",
			pv.Path, pv.Value, spew.Sdump(pv.Parent), buf, ctx)
		return
	}
	log.Printf("graphql: panic occurred: %v\n%s\ncontext: %v", value, buf, ctx)
}
