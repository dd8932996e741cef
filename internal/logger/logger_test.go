package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSet_SwapsAndRestores(t *testing.T) {
	var buf bytes.Buffer
	prev := Set(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { Set(prev) })

	Info("captured message", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "captured message") || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("log output not captured by swapped logger: %s", out)
	}
}

func TestSetDebug_TogglesLevel(t *testing.T) {
	SetDebug(false)
	t.Cleanup(func() { SetDebug(false) })

	ctx := context.Background()
	if Get().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level should be disabled by default")
	}

	SetDebug(true)
	if !Get().Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level should be enabled after SetDebug(true)")
	}
}
