package toast

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// Manager stores, delivers and auto-dismisses toasts.
type Manager struct {
	storage   Storage
	deliverer Deliverer
	clock     Clock
	logger    *slog.Logger

	mu     sync.Mutex
	timers map[string]Timer // toast id -> pending dismiss
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

func WithLogger(l *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock replaces the clock used for timestamps and auto-dismiss.
func WithClock(c Clock) ManagerOption {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// NewManager creates a Manager. A nil storage defaults to memory, a nil
// deliverer to NoOpDeliverer.
func NewManager(storage Storage, deliverer Deliverer, opts ...ManagerOption) *Manager {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}

	m := &Manager{
		storage:   storage,
		deliverer: deliverer,
		clock:     SystemClock,
		logger:    slog.Default(),
		timers:    make(map[string]Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Show stores t for session, delivers it and schedules its dismissal.
// Delivery is best effort: a failure is logged and the toast stays stored.
func (m *Manager) Show(ctx context.Context, session string, t Toast) (Toast, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = m.clock.Now()
	}
	if t.Type == "" {
		t.Type = TypeInfo
	}
	t.Session = session

	if err := m.storage.Create(ctx, t); err != nil {
		return Toast{}, fmt.Errorf("failed to store toast: %w", err)
	}

	if err := m.deliverer.Deliver(ctx, t); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to deliver toast, but it was stored",
			logger.ToastID(t.ID),
			logger.Error(err),
		)
	}

	if !t.Sticky() {
		m.schedule(session, t)
	}
	return t, nil
}

// Info shows an info toast with the default duration.
func (m *Manager) Info(ctx context.Context, session, message string) (Toast, error) {
	return m.Show(ctx, session, New(TypeInfo, message))
}

// Success shows a success toast with the default duration.
func (m *Manager) Success(ctx context.Context, session, message string) (Toast, error) {
	return m.Show(ctx, session, New(TypeSuccess, message))
}

// Warning shows a warning toast with the default duration.
func (m *Manager) Warning(ctx context.Context, session, message string) (Toast, error) {
	return m.Show(ctx, session, New(TypeWarning, message))
}

// Error shows an error toast with the default duration.
func (m *Manager) Error(ctx context.Context, session, message string) (Toast, error) {
	return m.Show(ctx, session, New(TypeError, message))
}

// Close removes a toast before its duration elapses.
func (m *Manager) Close(ctx context.Context, session, id string) error {
	m.cancel(id)

	if err := m.storage.Delete(ctx, session, id); err != nil {
		return err
	}
	if err := m.deliverer.Dismiss(ctx, session, id); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to dismiss toast",
			logger.ToastID(id),
			logger.Error(err),
		)
	}
	return nil
}

// List returns the visible toasts of a session.
func (m *Manager) List(ctx context.Context, session string) ([]Toast, error) {
	return m.storage.List(ctx, session)
}

// Stop cancels all pending auto-dismiss timers.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.timers {
		t.Stop()
		delete(m.timers, id)
	}
}

func (m *Manager) schedule(session string, t Toast) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.timers[t.ID] = m.clock.AfterFunc(t.Duration, func() {
		m.mu.Lock()
		delete(m.timers, t.ID)
		m.mu.Unlock()

		// Detached from the request that showed the toast.
		ctx := context.Background()
		if err := m.storage.Delete(ctx, session, t.ID); err != nil {
			return
		}
		if err := m.deliverer.Dismiss(ctx, session, t.ID); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to auto-dismiss toast",
				logger.ToastID(t.ID),
				logger.Error(err),
			)
		}
	})
}

func (m *Manager) cancel(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.timers[id]; ok {
		t.Stop()
		delete(m.timers, id)
	}
}
