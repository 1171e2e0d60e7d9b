package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/borrmann/bautagebuch/pkg/config"
)

type serverConfig struct {
	Addr    string        `env:"CFGTEST_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"CFGTEST_TIMEOUT" envDefault:"5s"`
	Secrets []string      `env:"CFGTEST_SECRETS" envSeparator:","`
}

type requiredConfig struct {
	Token string `env:"CFGTEST_TOKEN,required"`
}

type fileConfig struct {
	Name  string `env:"CFGTEST_FILE_NAME"`
	Count int    `env:"CFGTEST_FILE_COUNT"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults and env values", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_TIMEOUT", "2s")
		t.Setenv("CFGTEST_SECRETS", "a,b")

		var cfg serverConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, 2*time.Second, cfg.Timeout)
		assert.Equal(t, []string{"a", "b"}, cfg.Secrets)
	})

	t.Run("cached per type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("CFGTEST_ADDR", ":1")

		var first serverConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("CFGTEST_ADDR", ":2")
		var second serverConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, ":1", second.Addr)

		require.NoError(t, config.Reload(&second))
		assert.Equal(t, ":2", second.Addr)
	})

	t.Run("missing required value", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("CFGTEST_TOKEN")

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *serverConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("non struct", func(t *testing.T) {
		var s string
		assert.ErrorIs(t, config.Load(&s), config.ErrInvalidConfigType)
	})
}

func TestLoadEnv(t *testing.T) {
	t.Run("reads dotenv file", func(t *testing.T) {
		config.ResetCache()
		path := filepath.Join(t.TempDir(), ".env.test")
		require.NoError(t, os.WriteFile(path, []byte("CFGTEST_FILE_NAME=\"Baustelle Nord\"\nCFGTEST_FILE_COUNT=3\n"), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("CFGTEST_FILE_NAME")
			os.Unsetenv("CFGTEST_FILE_COUNT")
		})

		require.NoError(t, config.LoadEnv(path))

		var cfg fileConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "Baustelle Nord", cfg.Name)
		assert.Equal(t, 3, cfg.Count)
	})

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "nope.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
	})
}
