package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

type LogType string

const (
	TypeHTTP   LogType = "HTTP"
	TypeStore  LogType = "STORE"
	TypeLookup LogType = "LOOKUP"
	TypeSystem LogType = "SYS"
	TypeError  LogType = "ERR"
)

// CustomHandler renders one coloured line per record:
//
//	[Binder] [15:04:05] [INFO] [STORE] Card added game=MTG
//
// Errors always carry their call site. WithSource adds it to every level.
type CustomHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	color     bool
	addSource bool
	attrs     []slog.Attr
	groups    []string
}

func NewHandler(w io.Writer, level slog.Leveler, color bool) *CustomHandler {
	return &CustomHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		color: color,
	}
}

func (h *CustomHandler) WithSource(on bool) *CustomHandler {
	c := *h
	c.addSource = on
	return &c
}

func (h *CustomHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *CustomHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &c
}

func (h *CustomHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

func (h *CustomHandler) Handle(_ context.Context, r slog.Record) error {
	var levelColor, levelText string
	switch {
	case r.Level >= slog.LevelError:
		levelColor, levelText = colorRed, "ERROR"
	case r.Level >= slog.LevelWarn:
		levelColor, levelText = colorYellow, "WARN"
	case r.Level >= slog.LevelInfo:
		levelColor, levelText = colorGreen, "INFO"
	default:
		levelColor, levelText = colorPurple, "DEBUG"
	}

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})

	logType := TypeSystem
	var errorDetails, took string
	var rest strings.Builder
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		switch a.Key {
		case "type":
			logType = parseType(a.Value.String())
		case "error":
			errorDetails = fmt.Sprintf("%v", a.Value.Any())
		case "took":
			took = a.Value.String()
		default:
			key := a.Key
			if prefix != "" {
				key = prefix + "." + key
			}
			fmt.Fprintf(&rest, " %s=%v", key, a.Value.Any())
		}
	}

	message := r.Message
	if h.addSource || r.Level >= slog.LevelError {
		if loc := sourceLocation(r.PC); loc != "" {
			message = fmt.Sprintf("%s (%s)", message, loc)
		}
	}
	if errorDetails != "" {
		message = fmt.Sprintf("%s: %s", message, errorDetails)
	}
	if took != "" {
		message = fmt.Sprintf("%s (took %s)", message, took)
	}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var line string
	if h.color {
		line = fmt.Sprintf("%s[Binder] [%s] [%s%s%s] [%s] %s%s%s\n",
			colorWhite, ts.Format("15:04:05"), levelColor, levelText, colorWhite, logType, message, rest.String(), colorReset)
	} else {
		line = fmt.Sprintf("[Binder] [%s] [%s] [%s] %s%s\n",
			ts.Format("15:04:05"), levelText, logType, message, rest.String())
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, line)
	return err
}

func parseType(s string) LogType {
	switch s {
	case "http":
		return TypeHTTP
	case "store":
		return TypeStore
	case "lookup":
		return TypeLookup
	case "error":
		return TypeError
	default:
		return TypeSystem
	}
}

func sourceLocation(pc uintptr) string {
	if pc == 0 {
		return ""
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	f, _ := frames.Next()
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
}
