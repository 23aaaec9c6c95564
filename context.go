package graphql

import (
	"context"

	"github.com/zyxzen/graphqlite/trace"
)

// RequestID returns the identifier Schema.Exec minted for the request ctx
// was derived from, or the empty string if ctx didn't come from Exec.
func RequestID(ctx context.Context) string {
	return trace.RequestID(ctx)
}

func withRequestID(ctx context.Context, id string) context.Context {
	return trace.WithRequestID(ctx, id)
}
