package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNewContextWithWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	ctx, flush := NewContextWithWriter(context.Background(), zerolog.WarnLevel, &buf)

	logger := FromCtx(ctx)
	logger.Info().Msg("hidden message")
	logger.Warn().Msg("visible message")

	// diode flushes on its poll interval
	time.Sleep(50 * time.Millisecond)
	flush()

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info message should be filtered at warn level, got %q", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("warn message missing from output %q", out)
	}
}

func TestFromCtx_WithoutLogger(t *testing.T) {
	logger := FromCtx(context.Background())
	if logger == nil {
		t.Fatal("expected a logger even without one in context")
	}
}
