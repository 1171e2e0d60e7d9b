package toast

import (
	"context"
	"log/slog"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// Deliverer pushes toasts to the live page of a session.
type Deliverer interface {
	// Deliver shows a toast.
	Deliver(ctx context.Context, t Toast) error

	// Dismiss removes a shown toast.
	Dismiss(ctx context.Context, session, id string) error
}

// MultiDeliverer fans out to several deliverers. Failures are logged and
// do not stop the remaining deliverers.
type MultiDeliverer struct {
	deliverers []Deliverer
	logger     *slog.Logger
}

// NewMultiDeliverer creates a deliverer over ds.
func NewMultiDeliverer(l *slog.Logger, ds ...Deliverer) *MultiDeliverer {
	if l == nil {
		l = slog.Default()
	}
	return &MultiDeliverer{deliverers: ds, logger: l}
}

func (m *MultiDeliverer) Deliver(ctx context.Context, t Toast) error {
	for i, d := range m.deliverers {
		if err := d.Deliver(ctx, t); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to deliver toast",
				logger.ToastID(t.ID),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

func (m *MultiDeliverer) Dismiss(ctx context.Context, session, id string) error {
	for i, d := range m.deliverers {
		if err := d.Dismiss(ctx, session, id); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelError, "failed to dismiss toast",
				logger.ToastID(id),
				slog.Int("deliverer_index", i),
				logger.Error(err),
			)
		}
	}
	return nil
}

// NoOpDeliverer discards everything.
type NoOpDeliverer struct{}

func (NoOpDeliverer) Deliver(context.Context, Toast) error          { return nil }
func (NoOpDeliverer) Dismiss(context.Context, string, string) error { return nil }
