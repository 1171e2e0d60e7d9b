package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/httpserver"
)

func TestServer_Run(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is cancelled", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(time.Second))
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "ok")
			}))
		}()

		require.Eventually(t, func() bool { return srv.Addr() != nil }, time.Second, 5*time.Millisecond)

		resp, err := http.Get("http://" + srv.Addr().String())
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, "ok", string(body))

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("server did not stop")
		}
	})

	t.Run("listen failure", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.WithAddr("256.0.0.1:bad"))
		err := srv.Run(context.Background(), nil)
		assert.ErrorIs(t, err, httpserver.ErrStart)
	})

	t.Run("shutdown before run is a no-op", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, httpserver.New().Shutdown(context.Background()))
	})
}

func TestHealthHandler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		checks []httpserver.HealthCheck
		code   int
		body   string
	}{
		{"liveness", nil, http.StatusOK, "ALIVE"},
		{"ready", []httpserver.HealthCheck{func(context.Context) error { return nil }}, http.StatusOK, "READY"},
		{"not ready", []httpserver.HealthCheck{
			func(context.Context) error { return nil },
			func(context.Context) error { return errors.New("redis down") },
		}, http.StatusServiceUnavailable, "NOT_READY"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.HealthHandler(nil, tc.checks...)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.body, rec.Body.String())
		})
	}
}
