package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsheet/finsheet/internal/common"
)

func TestLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	t.Run("missing backend url", func(t *testing.T) {
		_, err := Load()
		assert.ErrorIs(t, err, common.ErrMissingConfig)
	})

	t.Run("defaults applied", func(t *testing.T) {
		viper.Set("backend.url", "http://localhost:8080")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080", cfg.BackendURL)
		assert.Equal(t, "500ms", cfg.SyncWindow.String())
		assert.Equal(t, "1s", cfg.PersistWindow.String())
		assert.Equal(t, "3s", cfg.HealthTimeout.String())
		assert.Equal(t, "30s", cfg.SubmitTimeout.String())
		assert.NotEmpty(t, cfg.CachePath)
	})

	t.Run("invalid window rejected", func(t *testing.T) {
		viper.Set("backend.url", "http://localhost:8080")
		viper.Set("sync.window", "0s")
		_, err := Load()
		assert.ErrorIs(t, err, common.ErrInvalidConfig)
	})
}

func TestSetupEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetupEnv()
	SetDefaults()

	t.Setenv("FINSHEET_BACKEND_URL", "http://env-host:9090")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://env-host:9090", cfg.BackendURL)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "tilde slash", in: "~/data/cache.db", want: filepath.Join(home, "data/cache.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "absolute untouched", in: "/var/lib/finsheet.db", want: "/var/lib/finsheet.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
