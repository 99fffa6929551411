// Package config provides the typed application configuration and path
// utilities.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/finsheet/finsheet/internal/common"
)

// Config is the full application configuration, populated from viper
// (config file, environment, flags).
type Config struct {
	BackendURL    string
	CachePath     string
	SyncWindow    time.Duration
	PersistWindow time.Duration
	HealthTimeout time.Duration
	FetchTimeout  time.Duration
	ItemTimeout   time.Duration
	SubmitTimeout time.Duration
	DisplayWindow time.Duration
}

// SetupEnv wires FINSHEET_ environment overrides into viper. Dots in
// config keys map to underscores, so backend.url reads
// FINSHEET_BACKEND_URL.
func SetupEnv() {
	viper.SetEnvPrefix("FINSHEET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// SetDefaults registers the default values with viper.
func SetDefaults() {
	viper.SetDefault("cache.path", "~/.local/share/finsheet/cache.db")
	viper.SetDefault("sync.window", "500ms")
	viper.SetDefault("sync.persist_window", "1s")
	viper.SetDefault("backend.health_timeout", "3s")
	viper.SetDefault("backend.fetch_timeout", "10s")
	viper.SetDefault("backend.item_timeout", "15s")
	viper.SetDefault("backend.submit_timeout", "30s")
	viper.SetDefault("submit.display_window", "3s")
}

// Load builds a Config from the current viper state.
func Load() (*Config, error) {
	backendURL := viper.GetString("backend.url")
	if backendURL == "" {
		return nil, fmt.Errorf("%w: backend.url (set it in the config file or FINSHEET_BACKEND_URL)", common.ErrMissingConfig)
	}

	cfg := &Config{
		BackendURL:    backendURL,
		CachePath:     ExpandPath(viper.GetString("cache.path")),
		SyncWindow:    viper.GetDuration("sync.window"),
		PersistWindow: viper.GetDuration("sync.persist_window"),
		HealthTimeout: viper.GetDuration("backend.health_timeout"),
		FetchTimeout:  viper.GetDuration("backend.fetch_timeout"),
		ItemTimeout:   viper.GetDuration("backend.item_timeout"),
		SubmitTimeout: viper.GetDuration("backend.submit_timeout"),
		DisplayWindow: viper.GetDuration("submit.display_window"),
	}

	if cfg.SyncWindow <= 0 || cfg.PersistWindow <= 0 {
		return nil, fmt.Errorf("%w: sync windows must be positive", common.ErrInvalidConfig)
	}
	return cfg, nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
