package reqctx

import (
	"context"
	"testing"
)

func TestMetaRoundTrip(t *testing.T) {
	ctx := WithMeta(context.Background(), Meta{ClientIP: "10.0.0.1", RequestID: "req-1"})

	m, ok := MetaFromContext(ctx)
	if !ok {
		t.Fatalf("expected meta in context")
	}
	if m.ClientIP != "10.0.0.1" || m.RequestID != "req-1" {
		t.Fatalf("unexpected meta: %+v", m)
	}
}

func TestMetaMissing(t *testing.T) {
	if _, ok := MetaFromContext(context.Background()); ok {
		t.Fatalf("expected no meta in empty context")
	}
}
