package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/recheck/internal/adapters/logger"
)

func TestPrettyHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		goldenName string
	}{
		{"info", slog.LevelInfo, "handler_info"},
		{"warn", slog.LevelWarn, "handler_warn"},
		{"error", slog.LevelError, "handler_error"},
		{"debug filtered", slog.LevelDebug, "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewPrettyHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, "ticket PROJ-1 validated")

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestPrettyHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	h := logger.NewPrettyHandler(buf, nil).
		WithGroup("recheck").
		WithAttrs([]slog.Attr{slog.String("ticket", "PROJ-1")})
	slog.New(h).Info("field scored", "field", "title", "score", 8, "note", "needs work")

	assert.Equal(t,
		"field scored recheck.ticket=PROJ-1 recheck.field=title recheck.score=8 recheck.note=\"needs work\"\n",
		buf.String())
}

func TestPrettyHandler_WithAttrsDoesNotShareState(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	base := logger.NewPrettyHandler(buf, nil)
	a := base.WithAttrs([]slog.Attr{slog.String("a", "1")})
	_ = base.WithAttrs([]slog.Attr{slog.String("b", "2")})

	slog.New(a).Info("msg")
	assert.Equal(t, "msg a=1\n", buf.String())
}
