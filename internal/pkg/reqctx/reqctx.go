// Package reqctx carries per-request transport details through a context.
package reqctx

import "context"

type contextKey string

const contextKeyMeta = contextKey("requestMeta")

// Meta holds the transport details the audit trail records.
type Meta struct {
	ClientIP  string
	RequestID string
}

// WithMeta returns a copy of ctx carrying m.
func WithMeta(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, contextKeyMeta, m)
}

// MetaFromContext returns the request details stored in ctx, if any.
func MetaFromContext(ctx context.Context) (Meta, bool) {
	m, ok := ctx.Value(contextKeyMeta).(Meta)
	return m, ok
}
