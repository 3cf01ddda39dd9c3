package reqctx

import (
	"context"
	"testing"
	"time"
)

func TestRequestMetaRoundTrip(t *testing.T) {
	meta := &RequestMeta{
		RequestID:   "req-123",
		ClientIP:    "10.0.0.7",
		UserAgent:   "curl/8.0",
		RequestedAt: time.Now(),
	}

	ctx := WithRequestMeta(context.Background(), meta)

	got, ok := RequestMetaFromContext(ctx)
	if !ok {
		t.Fatal("RequestMetaFromContext() ok = false, want true")
	}
	if got != meta {
		t.Errorf("RequestMetaFromContext() = %+v, want the stored pointer", got)
	}
	if id := RequestIDFromContext(ctx); id != "req-123" {
		t.Errorf("RequestIDFromContext() = %q, want %q", id, "req-123")
	}
}

func TestRequestMetaAbsent(t *testing.T) {
	ctx := context.Background()

	if _, ok := RequestMetaFromContext(ctx); ok {
		t.Error("RequestMetaFromContext() ok = true on an empty context")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", id)
	}
}
