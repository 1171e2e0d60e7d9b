package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

func TestAttrs(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		attr := logger.Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, slog.Attr{}, logger.Error(nil))
	})

	t.Run("request id skips empty", func(t *testing.T) {
		assert.Equal(t, slog.Attr{}, logger.RequestID(""))
		assert.Equal(t, "abc", logger.RequestID("abc").Value.String())
	})

	t.Run("domain keys", func(t *testing.T) {
		assert.Equal(t, "form", logger.Form("aufmass").Key)
		assert.Equal(t, "field", logger.Field("menge").Key)
		assert.Equal(t, "storage_key", logger.StorageKey("autosave_x").Key)
		assert.Equal(t, "component", logger.Component("theme").Key)
		assert.Equal(t, "event", logger.Event("blur").Key)
		assert.Equal(t, "toast_id", logger.ToastID("t1").Key)
		assert.Equal(t, "session", logger.Session("s1").Key)
		assert.Equal(t, "url", logger.URL("/api").Key)
		assert.Equal(t, 2*time.Second, logger.Duration(2*time.Second).Value.Duration())
	})
}
