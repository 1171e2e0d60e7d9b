package theme

import (
	"context"
	"log/slog"
	"sync"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

// Listener is called after the effective theme changed.
type Listener func(t Theme)

// Manager owns the effective theme of one page. The stored preference
// wins over the system scheme; system changes only apply while nothing
// is stored. Storage failures are logged and the in-memory theme is kept.
type Manager struct {
	store  PreferenceStore
	system SystemPreference
	logger *slog.Logger

	mu        sync.Mutex
	current   Theme
	listeners map[int]Listener
	nextID    int
	unsub     func()
}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager resolves the initial theme and subscribes to system changes.
// A nil store means memory; a nil system preference means light.
func NewManager(ctx context.Context, store PreferenceStore, system SystemPreference, opts ...Option) *Manager {
	if store == nil {
		store = &MemoryStore{}
	}
	if system == nil {
		system = NewStaticSystem(false)
	}

	m := &Manager{
		store:     store,
		system:    system,
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(m)
	}

	m.current = m.resolve(ctx)
	m.unsub = system.Subscribe(func(dark bool) { m.systemChanged(context.Background(), dark) })
	return m
}

// Current returns the effective theme.
func (m *Manager) Current() Theme {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// MetaColor returns the theme-color for the effective theme.
func (m *Manager) MetaColor() string {
	return m.Current().MetaColor()
}

// Toggle switches to the opposite theme, stores it and returns the new
// theme with the notice to show.
func (m *Manager) Toggle(ctx context.Context) (Theme, string) {
	m.mu.Lock()
	next := m.current.Opposite()
	m.mu.Unlock()

	m.Set(ctx, next)
	return next, next.ToggleMessage()
}

// Set applies t and stores it as the explicit preference.
func (m *Manager) Set(ctx context.Context, t Theme) {
	if err := m.store.Set(ctx, t); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to store theme preference",
			logger.Component("theme"),
			logger.Error(err),
		)
	}
	m.apply(t)
}

// ResetToSystem forgets the explicit preference and follows the system.
func (m *Manager) ResetToSystem(ctx context.Context) Theme {
	if err := m.store.Remove(ctx); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to remove theme preference",
			logger.Component("theme"),
			logger.Error(err),
		)
	}
	t := m.fromSystem(ctx)
	m.apply(t)
	return t
}

// OnChange registers l and returns a function that unregisters it.
func (m *Manager) OnChange(l Listener) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

// Close stops following system changes.
func (m *Manager) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m *Manager) resolve(ctx context.Context) Theme {
	t, ok, err := m.store.Get(ctx)
	if err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read theme preference",
			logger.Component("theme"),
			logger.Error(err),
		)
	}
	if err == nil && ok {
		return t
	}
	return m.fromSystem(ctx)
}

func (m *Manager) fromSystem(ctx context.Context) Theme {
	if m.system.PrefersDark(ctx) {
		return Dark
	}
	return Light
}

func (m *Manager) systemChanged(ctx context.Context, dark bool) {
	if _, ok, err := m.store.Get(ctx); err == nil && ok {
		return
	}
	if dark {
		m.apply(Dark)
	} else {
		m.apply(Light)
	}
}

func (m *Manager) apply(t Theme) {
	m.mu.Lock()
	if m.current == t {
		m.mu.Unlock()
		return
	}
	m.current = t
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.mu.Unlock()

	for _, l := range listeners {
		l(t)
	}
}
