package logger

import (
	"log/slog"
	"time"
)

// LogRequest logs a served HTTP request.
func LogRequest(method, path string, status int, duration time.Duration) {
	attrs := []any{
		slog.String("type", "http"),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("took", duration),
	}
	switch {
	case status >= 500:
		slog.Error("Request failed", attrs...)
	case status >= 400:
		slog.Warn("Request rejected", attrs...)
	default:
		slog.Info("Request served", attrs...)
	}
}

func LogSystem(msg string, attrs ...any) {
	baseAttrs := []any{slog.String("type", "sys")}
	slog.Info(msg, append(baseAttrs, attrs...)...)
}

func LogError(msg string, err error, attrs ...any) {
	baseAttrs := []any{
		slog.String("type", "error"),
		slog.Any("error", err),
	}
	slog.Error(msg, append(baseAttrs, attrs...)...)
}

// StoreOp times one storage operation.
type StoreOp struct {
	Operation string
	Key       string
	StartTime time.Time
}

func NewStoreOp(operation, key string) *StoreOp {
	return &StoreOp{Operation: operation, Key: key, StartTime: time.Now()}
}

func (o *StoreOp) Log(err error, bytes int) {
	duration := time.Since(o.StartTime)
	if err != nil {
		slog.Error("Storage operation failed",
			slog.String("type", "store"),
			slog.String("operation", o.Operation),
			slog.String("key", o.Key),
			slog.Duration("took", duration),
			slog.Any("error", err),
		)
		return
	}
	slog.Debug("Storage operation done",
		slog.String("type", "store"),
		slog.String("operation", o.Operation),
		slog.String("key", o.Key),
		slog.Int("bytes", bytes),
		slog.Duration("took", duration),
	)
}
