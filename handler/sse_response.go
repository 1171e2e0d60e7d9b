package handler

import (
	"net/http"
)

// StreamContext is a Context whose datastar stream is open for the
// lifetime of the handler.
type StreamContext interface {
	Context
	Send(actions ...Action) error
}

// SSEHandler runs until the client disconnects or it returns.
type SSEHandler func(ctx StreamContext) error

type streamContext struct {
	Context
}

func (c streamContext) Send(actions ...Action) error {
	return Run(c.Context, actions...)
}

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, MessageBadRequest)
	}
	base := NewContext(w, r)
	if base.SSE() == nil {
		return ErrSSENotInitialized
	}
	return s.handler(streamContext{Context: base})
}

// SSE keeps a datastar stream open and lets handler push actions.
//
//	return handler.SSE(func(stream handler.StreamContext) error {
//		for {
//			select {
//			case <-stream.Done():
//				return nil
//			case ev := <-events:
//				if err := stream.Send(ev...); err != nil {
//					return err
//				}
//			}
//		}
//	})
func SSE(h SSEHandler) Response {
	return sseResponse{handler: h}
}
