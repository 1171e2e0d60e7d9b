package web

import (
	"context"
	"log/slog"

	"github.com/borrmann/bautagebuch/handler"
	"github.com/borrmann/bautagebuch/pkg/broadcast"
	"github.com/borrmann/bautagebuch/pkg/logger"
	"github.com/borrmann/bautagebuch/pkg/toast"
)

// Push carries actions to the event stream of one session.
type Push = broadcast.Message[[]handler.Action]

// StreamDeliverer shows and dismisses toasts by pushing element patches to
// the session's event stream. A session without an open stream sees the
// toast on its next page load, since toasts stay stored until dismissed.
type StreamDeliverer struct {
	streams broadcast.Broadcaster[[]handler.Action]
	logger  *slog.Logger
}

// NewStreamDeliverer creates a deliverer publishing to streams.
func NewStreamDeliverer(streams broadcast.Broadcaster[[]handler.Action], l *slog.Logger) *StreamDeliverer {
	if l == nil {
		l = logger.Nop()
	}
	return &StreamDeliverer{streams: streams, logger: l}
}

func (d *StreamDeliverer) Deliver(ctx context.Context, t toast.Toast) error {
	n := d.streams.Publish(ctx, t.Session, Push{Data: []handler.Action{
		handler.Element(ToastItem(t),
			handler.WithTarget("#toast-container"),
			handler.WithPatchMode(handler.PatchAppend),
		),
	}})
	if n == 0 {
		d.logger.LogAttrs(ctx, slog.LevelDebug, "toast stored without open stream",
			logger.Component("toast"),
			logger.ToastID(t.ID),
			logger.Session(t.Session),
		)
	}
	return nil
}

func (d *StreamDeliverer) Dismiss(ctx context.Context, session, id string) error {
	d.streams.Publish(ctx, session, Push{Data: []handler.Action{handler.Remove("#" + ToastID(id))}})
	return nil
}

// Events holds the long-lived event stream of each session.
type Events struct {
	streams broadcast.Broadcaster[[]handler.Action]
	toasts  *toast.Manager
	logger  *slog.Logger
}

// stream keeps the datastar connection of a page open and forwards every
// push for its session until the client goes away.
func (e *Events) stream(ctx handler.Context, _ struct{}) handler.Response {
	session := SessionID(ctx)
	return handler.SSE(func(s handler.StreamContext) error {
		sub := e.streams.Subscribe(s, session)
		defer sub.Close()

		for {
			select {
			case <-s.Done():
				return nil
			case msg, ok := <-sub.Receive():
				if !ok {
					return nil
				}
				if err := s.Send(msg.Data...); err != nil {
					e.logger.LogAttrs(s, slog.LevelDebug, "event stream closed",
						logger.Component("events"),
						logger.Error(err),
					)
					return nil
				}
			}
		}
	})
}

// closeToast dismisses a toast before its duration elapses.
func (e *Events) closeToast(ctx handler.Context, _ struct{}) handler.Response {
	id := ctx.Param("id")
	if err := e.toasts.Close(ctx, SessionID(ctx), id); err != nil {
		e.logger.LogAttrs(ctx, slog.LevelWarn, "failed to close toast",
			logger.Component("toast"),
			logger.ToastID(id),
			logger.Error(err),
		)
	}
	// The stream may be gone; remove the element in this response too.
	return handler.Stream(handler.Remove("#" + ToastID(id)))
}

// publish pushes actions to the session's stream.
func publish(ctx context.Context, streams broadcast.Broadcaster[[]handler.Action], session string, actions ...handler.Action) int {
	if len(actions) == 0 {
		return 0
	}
	return streams.Publish(ctx, session, Push{Data: actions})
}

// showFunc is one of the Manager's typed helpers, such as (*toast.Manager).Success.
type showFunc func(m *toast.Manager, ctx context.Context, session, message string) (toast.Toast, error)

// notify shows message to session with the default duration. Failures are
// logged; the action that triggered the toast has already happened.
func notify(ctx context.Context, toasts *toast.Manager, l *slog.Logger, session string, show showFunc, message string) {
	if toasts == nil {
		return
	}
	_, err := show(toasts, ctx, session, message)
	logToastFailure(ctx, l, session, err)
}

// notifyToast shows a prepared toast, for durations other than the default.
func notifyToast(ctx context.Context, toasts *toast.Manager, l *slog.Logger, session string, t toast.Toast) {
	if toasts == nil {
		return
	}
	_, err := toasts.Show(ctx, session, t)
	logToastFailure(ctx, l, session, err)
}

func logToastFailure(ctx context.Context, l *slog.Logger, session string, err error) {
	if err == nil {
		return
	}
	l.LogAttrs(ctx, slog.LevelWarn, "failed to show toast",
		logger.Component("toast"),
		logger.Session(session),
		logger.Error(err),
	)
}

var _ toast.Deliverer = (*StreamDeliverer)(nil)
