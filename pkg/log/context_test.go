package log

import (
	"context"
	"testing"
)

func TestRunIDContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "run-1")
		id, ok := RunIDFromContext(ctx)
		if !ok || id != "run-1" {
			t.Errorf("expected run-1, got %q (ok=%v)", id, ok)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, ok := RunIDFromContext(context.Background()); ok {
			t.Error("expected no run id")
		}
	})

	t.Run("empty id is treated as missing", func(t *testing.T) {
		ctx := WithRunID(context.Background(), "")
		if _, ok := RunIDFromContext(ctx); ok {
			t.Error("expected empty id to be ignored")
		}
	})
}

func TestInit_DoesNotPanicOnUnknownLevel(t *testing.T) {
	l := Init(ZapConfig{Level: "verbose", Mode: ModeDevelopment, Encoding: EncodingConsole})
	l.Info(WithRunID(context.Background(), "run-2"), "hello")
	l.Debugf(context.Background(), "value=%d", 1)
}
