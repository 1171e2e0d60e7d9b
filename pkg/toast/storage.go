package toast

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrToastNotFound is returned when a toast does not exist in a session.
var ErrToastNotFound = errors.New("toast not found")

// ErrInvalidToast is returned when a toast lacks its id or session.
var ErrInvalidToast = errors.New("invalid toast")

// Storage keeps the toasts visible per session.
type Storage interface {
	// Create stores a new toast.
	Create(ctx context.Context, t Toast) error

	// List returns a session's toasts, oldest first.
	List(ctx context.Context, session string) ([]Toast, error)

	// Delete removes a toast. Deleting a missing toast returns ErrToastNotFound.
	Delete(ctx context.Context, session, id string) error
}

// MemoryStorage is an in-memory Storage.
type MemoryStorage struct {
	toasts map[string][]Toast // session -> toasts
	mu     sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{toasts: make(map[string][]Toast)}
}

func (s *MemoryStorage) Create(ctx context.Context, t Toast) error {
	if t.ID == "" || t.Session == "" {
		return ErrInvalidToast
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.toasts[t.Session] = append(s.toasts[t.Session], t)
	return nil
}

func (s *MemoryStorage) List(ctx context.Context, session string) ([]Toast, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.toasts[session]), nil
}

func (s *MemoryStorage) Delete(ctx context.Context, session, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.toasts[session]
	idx := slices.IndexFunc(list, func(t Toast) bool { return t.ID == id })
	if idx < 0 {
		return ErrToastNotFound
	}

	list = slices.Delete(list, idx, idx+1)
	if len(list) == 0 {
		delete(s.toasts, session)
	} else {
		s.toasts[session] = list
	}
	return nil
}
