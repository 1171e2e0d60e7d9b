package theme

import (
	"context"
	"sync"
)

// PreferenceStore persists the user's explicit choice.
type PreferenceStore interface {
	// Get returns the stored theme; ok is false when nothing valid is stored.
	Get(ctx context.Context) (t Theme, ok bool, err error)
	Set(ctx context.Context, t Theme) error
	Remove(ctx context.Context) error
}

// SystemPreference reports the operating system color scheme.
type SystemPreference interface {
	PrefersDark(ctx context.Context) bool
	// Subscribe registers fn for scheme changes and returns a function
	// that unregisters it.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// MemoryStore is a PreferenceStore kept in memory.
type MemoryStore struct {
	mu sync.Mutex
	t  Theme
}

func (s *MemoryStore) Get(context.Context) (Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t, s.t != "", nil
}

func (s *MemoryStore) Set(_ context.Context, t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return nil
}

func (s *MemoryStore) Remove(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = ""
	return nil
}

// StaticSystem is a SystemPreference whose value is pushed in from outside,
// for example from a client hint header or a page signal.
type StaticSystem struct {
	mu   sync.Mutex
	dark bool
	subs map[int]func(bool)
	next int
}

// NewStaticSystem returns a system preference starting at dark.
func NewStaticSystem(dark bool) *StaticSystem {
	return &StaticSystem{dark: dark, subs: make(map[int]func(bool))}
}

func (s *StaticSystem) PrefersDark(context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

func (s *StaticSystem) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Change updates the scheme and notifies subscribers when it differs.
func (s *StaticSystem) Change(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(dark)
	}
}
