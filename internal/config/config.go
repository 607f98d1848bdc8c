package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

const appName = "accidentmon"

// Defaults
const (
	DefaultBackendURL        = "http://127.0.0.1:5000"
	DefaultStatusIntervalMS  = 1000 // accident status poll
	DefaultRefreshIntervalMS = 5000 // logs + stats refresh
	DefaultAlertDurationMS   = 5000 // alert overlay auto-hide
	DefaultRequestTimeoutMS  = 10000
	DefaultSource            = "webcam"

	DefaultMapLat  = 28.6139 // Delhi
	DefaultMapLng  = 77.2090
	DefaultMapZoom = 10

	DefaultTileURL     = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	DefaultAttribution = "© OpenStreetMap contributors"

	// Below this the backend is hammered for nothing
	MinIntervalMS = 100
)

// Env overrides, applied after the config file
const (
	EnvBackendURL      = "ACCIDENTMON_BACKEND_URL"
	EnvStatusInterval  = "ACCIDENTMON_STATUS_INTERVAL_MS"
	EnvRefreshInterval = "ACCIDENTMON_REFRESH_INTERVAL_MS"
	EnvAlertDuration   = "ACCIDENTMON_ALERT_DURATION_MS"
	EnvRequestTimeout  = "ACCIDENTMON_REQUEST_TIMEOUT_MS"
	EnvDataDir         = "ACCIDENTMON_DATA_DIR"
)

type Config struct {
	BackendURL        string  `json:"backend_url"`
	StatusIntervalMS  int     `json:"status_interval_ms"`
	RefreshIntervalMS int     `json:"refresh_interval_ms"`
	AlertDurationMS   int     `json:"alert_duration_ms"`
	RequestTimeoutMS  int     `json:"request_timeout_ms"`
	DefaultSource     string  `json:"default_source"` // initial video feed source
	MapLat            float64 `json:"map_lat"`
	MapLng            float64 `json:"map_lng"`
	MapZoom           int     `json:"map_zoom"`
	TileURL           string  `json:"tile_url"`
	Attribution       string  `json:"attribution"`
	DataDir           string  `json:"data_dir"` // history database and log file
	History           bool    `json:"history"`
}

func DefaultConfig() *Config {
	dataDir := filepath.Join(xdg.DataHome, appName)

	return &Config{
		BackendURL:        DefaultBackendURL,
		StatusIntervalMS:  DefaultStatusIntervalMS,
		RefreshIntervalMS: DefaultRefreshIntervalMS,
		AlertDurationMS:   DefaultAlertDurationMS,
		RequestTimeoutMS:  DefaultRequestTimeoutMS,
		DefaultSource:     DefaultSource,
		MapLat:            DefaultMapLat,
		MapLng:            DefaultMapLng,
		MapZoom:           DefaultMapZoom,
		TileURL:           DefaultTileURL,
		Attribution:       DefaultAttribution,
		DataDir:           dataDir,
		History:           true,
	}
}

// DefaultPath is the config file location under the XDG config home
func DefaultPath() (string, error) {
	return xdg.ConfigFile(filepath.Join(appName, "config.json"))
}

// LoadOrCreateConfig reads configPath, writing a default config there
// first if it does not exist. Env overrides are applied to the result.
func LoadOrCreateConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Decode over the defaults so missing fields keep them
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		data, err := json.MarshalIndent(config, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write config: %w", err)
		}
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from the environment
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBackendURL); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}

	ints := []struct {
		env string
		dst *int
	}{
		{EnvStatusInterval, &c.StatusIntervalMS},
		{EnvRefreshInterval, &c.RefreshIntervalMS},
		{EnvAlertDuration, &c.AlertDurationMS},
		{EnvRequestTimeout, &c.RequestTimeoutMS},
	}
	for _, o := range ints {
		v := os.Getenv(o.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", o.env, v, err)
		}
		*o.dst = n
	}
	return nil
}

// Validate checks the values the dashboard cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend_url %q", c.BackendURL)
	}
	if c.StatusIntervalMS < MinIntervalMS {
		return fmt.Errorf("status_interval_ms must be at least %d", MinIntervalMS)
	}
	if c.RefreshIntervalMS < MinIntervalMS {
		return fmt.Errorf("refresh_interval_ms must be at least %d", MinIntervalMS)
	}
	if c.AlertDurationMS <= 0 {
		return fmt.Errorf("alert_duration_ms must be positive")
	}
	if c.RequestTimeoutMS <= 0 {
		return fmt.Errorf("request_timeout_ms must be positive")
	}
	if c.MapLat < -90 || c.MapLat > 90 || c.MapLng < -180 || c.MapLng > 180 {
		return fmt.Errorf("map center %.4f,%.4f out of range", c.MapLat, c.MapLng)
	}
	return nil
}

func (c *Config) StatusInterval() time.Duration {
	return time.Duration(c.StatusIntervalMS) * time.Millisecond
}

func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

func (c *Config) AlertDuration() time.Duration {
	return time.Duration(c.AlertDurationMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, appName+".log")
}
