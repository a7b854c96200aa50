package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestCustomHandler(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want []string
		skip string
	}{
		{
			name: "info with type",
			log: func(l *slog.Logger) {
				l.Info("Card added", slog.String("type", "store"), slog.String("game", "MTG"))
			},
			want: []string{"[Binder]", "[INFO]", "[STORE]", "Card added game=MTG"},
		},
		{
			name: "error details and duration",
			log: func(l *slog.Logger) {
				l.Warn("Lookup failed", slog.String("type", "lookup"), slog.Any("error", errors.New("timeout")), slog.Duration("took", 2*time.Second))
			},
			want: []string{"[WARN]", "[LOOKUP]", "Lookup failed: timeout (took 2s)"},
		},
		{
			name: "debug filtered",
			log: func(l *slog.Logger) {
				l.Debug("noisy")
			},
			skip: "noisy",
		},
		{
			name: "handler attrs",
			log: func(l *slog.Logger) {
				l.With(slog.String("session", "s1")).Info("Opened")
			},
			want: []string{"[SYS]", "Opened session=s1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandler(&buf, slog.LevelInfo, false)))
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			if tt.skip != "" && strings.Contains(out, tt.skip) {
				t.Errorf("output %q should not contain %q", out, tt.skip)
			}
		})
	}
}

func TestCustomHandler_Source(t *testing.T) {
	tests := []struct {
		name      string
		addSource bool
		log       func(l *slog.Logger)
		want      bool
	}{
		{name: "info without source", log: func(l *slog.Logger) { l.Info("Ready") }, want: false},
		{name: "info with source", addSource: true, log: func(l *slog.Logger) { l.Info("Ready") }, want: true},
		{name: "error always has source", log: func(l *slog.Logger) { l.Error("Broken") }, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			cfg := Config{Level: slog.LevelInfo, NoColor: true, AddSource: tt.addSource}
			tt.log(slog.New(NewSlogHandler(&buf, cfg)))
			if got := strings.Contains(buf.String(), "handler_test.go:"); got != tt.want {
				t.Errorf("output %q has source = %v, want %v", buf.String(), got, tt.want)
			}
		})
	}
}

func TestCountHandler(t *testing.T) {
	before := Counters()["warn"]
	l := slog.New(&countHandler{next: NewHandler(&bytes.Buffer{}, slog.LevelDebug, false)})
	l.Warn("one")
	l.Warn("two")
	if got := Counters()["warn"] - before; got != 2 {
		t.Errorf("warn count grew by %d, want 2", got)
	}
}
