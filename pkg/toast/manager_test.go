package toast_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

type MockDeliverer struct {
	mock.Mock
}

func (m *MockDeliverer) Deliver(ctx context.Context, t toast.Toast) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockDeliverer) Dismiss(ctx context.Context, session, id string) error {
	args := m.Called(ctx, session, id)
	return args.Error(0)
}

// fakeClock fires timers only when Advance is called.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) toast.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	rest := c.timers[:0]
	for _, t := range c.timers {
		if !t.stopped && !t.at.After(c.now) {
			due = append(due, t)
			continue
		}
		rest = append(rest, t)
	}
	c.timers = rest
	c.mu.Unlock()

	for _, t := range due {
		t.f()
	}
}

func TestManager_Show(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stores, delivers and assigns id", func(t *testing.T) {
		t.Parallel()
		d := new(MockDeliverer)
		d.On("Deliver", ctx, mock.MatchedBy(func(tt toast.Toast) bool {
			return tt.Message == "Gespeichert" && tt.Session == "s1" && tt.ID != ""
		})).Return(nil).Once()

		clock := newFakeClock()
		m := toast.NewManager(nil, d, toast.WithClock(clock), toast.WithLogger(logger.Nop()))
		shown, err := m.Success(ctx, "s1", "Gespeichert")
		require.NoError(t, err)
		assert.NotEmpty(t, shown.ID)
		assert.Equal(t, clock.Now(), shown.CreatedAt)
		assert.Equal(t, toast.DefaultDuration, shown.Duration)

		list, err := m.List(ctx, "s1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, shown.ID, list[0].ID)
		d.AssertExpectations(t)
	})

	t.Run("delivery failure keeps the toast", func(t *testing.T) {
		t.Parallel()
		d := new(MockDeliverer)
		d.On("Deliver", ctx, mock.Anything).Return(errors.New("stream closed"))

		m := toast.NewManager(nil, d, toast.WithClock(newFakeClock()), toast.WithLogger(logger.Nop()))
		_, err := m.Error(ctx, "s1", "Fehler")
		require.NoError(t, err)

		list, err := m.List(ctx, "s1")
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("storage rejects missing session", func(t *testing.T) {
		t.Parallel()
		m := toast.NewManager(nil, nil, toast.WithClock(newFakeClock()))
		_, err := m.Info(ctx, "", "x")
		assert.ErrorIs(t, err, toast.ErrInvalidToast)
	})
}

func TestManager_AutoDismiss(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := new(MockDeliverer)
	d.On("Deliver", mock.Anything, mock.Anything).Return(nil)
	d.On("Dismiss", mock.Anything, "s1", mock.Anything).Return(nil).Once()

	clock := newFakeClock()
	m := toast.NewManager(nil, d, toast.WithClock(clock), toast.WithLogger(logger.Nop()))

	short, err := m.Show(ctx, "s1", toast.New(toast.TypeInfo, "Daten automatisch gespeichert").WithDuration(2*time.Second))
	require.NoError(t, err)
	_, err = m.Show(ctx, "s1", toast.New(toast.TypeWarning, "bleibt").WithDuration(0))
	require.NoError(t, err)

	clock.Advance(time.Second)
	list, _ := m.List(ctx, "s1")
	assert.Len(t, list, 2)

	clock.Advance(time.Second)
	list, _ = m.List(ctx, "s1")
	require.Len(t, list, 1)
	assert.Equal(t, "bleibt", list[0].Message)
	assert.True(t, list[0].Sticky())

	d.AssertCalled(t, "Dismiss", mock.Anything, "s1", short.ID)
	d.AssertExpectations(t)
}

func TestManager_Close(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	d := new(MockDeliverer)
	d.On("Deliver", mock.Anything, mock.Anything).Return(nil)
	d.On("Dismiss", mock.Anything, "s1", mock.Anything).Return(nil).Once()

	clock := newFakeClock()
	m := toast.NewManager(nil, d, toast.WithClock(clock), toast.WithLogger(logger.Nop()))

	shown, err := m.Info(ctx, "s1", "Hallo")
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, "s1", shown.ID))

	// The cancelled timer must not dismiss a second time.
	clock.Advance(toast.DefaultDuration)
	d.AssertNumberOfCalls(t, "Dismiss", 1)

	assert.ErrorIs(t, m.Close(ctx, "s1", shown.ID), toast.ErrToastNotFound)
}

func TestType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in    string
		typ   toast.Type
		icon  string
		class string
	}{
		{"info", toast.TypeInfo, "ℹ️", "alert-info"},
		{"success", toast.TypeSuccess, "✅", "alert-success"},
		{"warning", toast.TypeWarning, "⚠️", "alert-warning"},
		{"danger", toast.TypeError, "❌", "alert-danger"},
		{"error", toast.TypeError, "❌", "alert-danger"},
		{"whatever", toast.TypeInfo, "ℹ️", "alert-info"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			typ := toast.ParseType(tt.in)
			assert.Equal(t, tt.typ, typ)
			assert.Equal(t, tt.icon, typ.Icon())
			assert.Equal(t, tt.class, typ.AlertClass())
		})
	}
}

func TestMultiDeliverer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tt := toast.Toast{ID: "t1", Session: "s1"}

	failing := new(MockDeliverer)
	failing.On("Deliver", ctx, tt).Return(errors.New("down"))
	failing.On("Dismiss", ctx, "s1", "t1").Return(errors.New("down"))
	ok := new(MockDeliverer)
	ok.On("Deliver", ctx, tt).Return(nil)
	ok.On("Dismiss", ctx, "s1", "t1").Return(nil)

	md := toast.NewMultiDeliverer(logger.Nop(), failing, ok)
	assert.NoError(t, md.Deliver(ctx, tt))
	assert.NoError(t, md.Dismiss(ctx, "s1", "t1"))
	ok.AssertExpectations(t)
}
