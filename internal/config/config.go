// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvStore        = "DOGCENTER_STORE"
	EnvLogLevel     = "DOGCENTER_LOG_LEVEL"
	EnvScanInterval = "DOGCENTER_SCAN_INTERVAL"
	EnvNoColor      = "DOGCENTER_NO_COLOR"
)

// Config holds settings shared by all commands.
type Config struct {
	StorePath    string        // directory holding dogcenter.db
	LogLevel     string        // debug|info|warn|error
	ScanInterval time.Duration // reminder rescan period
	NoColor      bool
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		StorePath:    ".",
		LogLevel:     "info",
		ScanInterval: 60 * time.Second,
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then applies the environment over the
// defaults. An empty envFile skips the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if v := strings.TrimSpace(os.Getenv(EnvStore)); v != "" {
		cfg.StorePath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvScanInterval)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvScanInterval, v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: must be positive", EnvScanInterval, v)
		}
		cfg.ScanInterval = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvNoColor)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", EnvNoColor, v, err)
		}
		cfg.NoColor = b
	}
	return cfg, nil
}
