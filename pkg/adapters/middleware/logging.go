package middleware

import (
	"context"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/montage-edit/montage"
	"github.com/montage-edit/montage/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.Catalog
	logger *slog.Logger
}

// NewLoggingMiddleware creates a middleware that logs every catalog
// operation with its duration and outcome.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return func(next ports.Catalog) ports.Catalog {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, tl *montage.Timeline) error {
	start := time.Now()
	err := m.next.Save(ctx, name, tl)
	m.log(ctx, "catalog save", name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*montage.Timeline, error) {
	start := time.Now()
	tl, err := m.next.Load(ctx, name)
	m.log(ctx, "catalog load", name, start, err)
	return tl, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "catalog delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "catalog list", "", start, err)
	return names, err
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error) {
	attrs := []any{"duration", time.Since(start)}
	if name != "" {
		attrs = append(attrs, "timeline", name)
	}
	if err != nil {
		attrs = append(attrs, "error", err)
		m.logger.ErrorContext(ctx, op+" failed", attrs...)
		return
	}
	m.logger.DebugContext(ctx, op, attrs...)
}
