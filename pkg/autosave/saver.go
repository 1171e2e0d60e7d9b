package autosave

import (
	"context"
	"log/slog"
	"time"

	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

// SavedMessage is shown after every successful write.
const SavedMessage = "Daten automatisch gespeichert"

// SavedToastDuration is how long the saved notice stays visible.
const SavedToastDuration = 2 * time.Second

// Source is a form whose values can be snapshotted.
type Source interface {
	ID() string
	Values() map[string]string
}

// Target is a form that saved values can be written back into.
type Target interface {
	ID() string
	Has(name string) bool
	SetValue(name, value string) error
}

// Notifier shows a toast to a session. *toast.Manager satisfies it.
type Notifier interface {
	Show(ctx context.Context, session string, t toast.Toast) (toast.Toast, error)
}

// Saver debounces form snapshots into a Store and restores them later.
// Storage failures are logged and never reach the caller of Touch or
// Restore: the form keeps working without auto-save.
type Saver struct {
	store     Store
	debouncer *Debouncer
	notifier  Notifier
	logger    *slog.Logger
}

// Option configures a Saver.
type Option func(*Saver)

// WithDelay sets the debounce quiet period.
func WithDelay(d time.Duration) Option {
	return func(s *Saver) {
		s.debouncer = NewDebouncer(d)
	}
}

// WithNotifier enables the saved notice.
func WithNotifier(n Notifier) Option {
	return func(s *Saver) {
		s.notifier = n
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Saver) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSaver creates a Saver over store. A nil store means memory.
func NewSaver(store Store, opts ...Option) *Saver {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &Saver{
		store:     store,
		debouncer: NewDebouncer(DefaultDelay),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Touch records that a field of src changed. The snapshot is taken and
// written once the form has been quiet for the debounce delay.
func (s *Saver) Touch(ctx context.Context, scope string, src Source) {
	key := scopedKey(scope, src.ID())
	ctx = context.WithoutCancel(ctx)
	s.debouncer.Trigger(key, func() {
		s.write(ctx, scope, key, src.Values())
	})
}

// Flush writes a pending snapshot of formID immediately.
func (s *Saver) Flush(scope, formID string) bool {
	return s.debouncer.Flush(scopedKey(scope, formID))
}

// Save writes a snapshot immediately, bypassing the debouncer.
func (s *Saver) Save(ctx context.Context, scope string, src Source) error {
	key := scopedKey(scope, src.ID())
	s.debouncer.Cancel(key)
	return s.store.Save(ctx, key, src.Values())
}

// Restore copies the saved snapshot into dst. Only fields present in both
// the snapshot and dst are written; fields missing from the snapshot keep
// their values. It returns the restored field names.
func (s *Saver) Restore(ctx context.Context, scope string, dst Target) []string {
	key := scopedKey(scope, dst.ID())
	values, ok, err := s.store.Load(ctx, key)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to load autosave snapshot",
			logger.StorageKey(key),
			logger.Error(err),
		)
		return nil
	}
	if !ok {
		return nil
	}

	var restored []string
	for name, v := range values {
		if !dst.Has(name) {
			continue
		}
		if err := dst.SetValue(name, v); err != nil {
			continue
		}
		restored = append(restored, name)
	}
	return restored
}

// Load returns the raw snapshot of formID.
func (s *Saver) Load(ctx context.Context, scope, formID string) (map[string]string, bool, error) {
	return s.store.Load(ctx, scopedKey(scope, formID))
}

// Discard cancels a pending write and removes the stored snapshot,
// typically after a successful submission.
func (s *Saver) Discard(ctx context.Context, scope, formID string) error {
	key := scopedKey(scope, formID)
	s.debouncer.Cancel(key)
	return s.store.Delete(ctx, key)
}

// Stop cancels all pending writes.
func (s *Saver) Stop() {
	s.debouncer.Stop()
}

func (s *Saver) write(ctx context.Context, scope, key string, values map[string]string) {
	if err := s.store.Save(ctx, key, values); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "autosave failed",
			logger.StorageKey(key),
			logger.Error(err),
		)
		return
	}

	s.logger.LogAttrs(ctx, slog.LevelDebug, "autosave written",
		logger.StorageKey(key),
		slog.Int("fields", len(values)),
	)

	if s.notifier == nil || scope == "" {
		return
	}
	t := toast.New(toast.TypeInfo, SavedMessage).WithDuration(SavedToastDuration)
	if _, err := s.notifier.Show(ctx, scope, t); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to show autosave notice",
			logger.StorageKey(key),
			logger.Error(err),
		)
	}
}
