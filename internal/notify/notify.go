// Package notify delivers transient toast notifications.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

type Toast struct {
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notifier never fails from the caller's point of view; delivery problems
// are logged by the implementation.
type Notifier interface {
	Notify(ctx context.Context, t Toast) error
}

func Success(title, description string) Toast {
	return Toast{Kind: KindSuccess, Title: title, Description: description}
}

func Error(title, description string) Toast {
	return Toast{Kind: KindError, Title: title, Description: description}
}

func Info(title, description string) Toast {
	return Toast{Kind: KindInfo, Title: title, Description: description}
}

// Send delivers t and logs any failure.
func Send(ctx context.Context, n Notifier, t Toast) {
	if n == nil {
		return
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if err := n.Notify(ctx, t); err != nil {
		slog.Warn("Failed to deliver notification",
			slog.String("type", "sys"),
			slog.String("title", t.Title),
			slog.Any("error", err),
		)
	}
}

const DefaultFeedSize = 50

// Feed buffers toasts until they are drained. The oldest toast is dropped
// once the feed is full.
type Feed struct {
	mu    sync.Mutex
	size  int
	items []Toast
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = DefaultFeedSize
	}
	return &Feed{size: size}
}

func (f *Feed) Notify(_ context.Context, t Toast) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == f.size {
		f.items = f.items[1:]
	}
	f.items = append(f.items, t)
	return nil
}

// Drain returns the buffered toasts, oldest first, and empties the feed.
func (f *Feed) Drain() []Toast {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.items
	f.items = nil
	if out == nil {
		out = []Toast{}
	}
	return out
}

func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Log writes toasts to slog.
type Log struct{}

func (Log) Notify(ctx context.Context, t Toast) error {
	level := slog.LevelInfo
	if t.Kind == KindError {
		level = slog.LevelWarn
	}
	slog.Log(ctx, level, t.Title,
		slog.String("type", "sys"),
		slog.String("kind", string(t.Kind)),
		slog.String("description", t.Description),
	)
	return nil
}

// Multi fans a toast out to every notifier. Failures are joined.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, t Toast) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
