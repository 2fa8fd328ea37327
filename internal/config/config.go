// Package config loads and stores gymlog settings in the XDG config dir.
// Only non-secret settings are kept here; the session lives in the keyring.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gymlog/cli/internal/xdg"
)

// Keyring backends accepted in KeyringBackend.
const (
	KeyringAuto   = "auto"
	KeyringFile   = "file"
	KeyringMemory = "memory"
)

// DefaultAPIURL points at a locally running backend.
const DefaultAPIURL = "http://localhost:3333"

// Config holds non-sensitive CLI settings.
type Config struct {
	APIURL         string `json:"api_url"`
	LogLevel       string `json:"log_level"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	KeyringBackend string `json:"keyring_backend"`
	// HealthGRPCAddr is optional; when set, status also probes the
	// backend's gRPC health service.
	HealthGRPCAddr string `json:"health_grpc_addr,omitempty"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		LogLevel:       "warn",
		TimeoutSeconds: 10,
		KeyringBackend: KeyringAuto,
	}
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; a missing file yields defaults. Environment
// overrides are applied last.
func Load() (Config, error) {
	c, err := ReadFile()
	if err != nil {
		return c, err
	}
	c.applyEnv()
	c.fill()
	return c, nil
}

// ReadFile returns what the config file holds, with defaults for missing
// fields and no environment overrides. Use it before Save so overrides are
// not written back.
func ReadFile() (Config, error) {
	c := Defaults()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, err
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, err
		}
	}
	c.fill()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("GYMLOG_API_URL")); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv("GYMLOG_KEYRING_BACKEND")); v != "" {
		c.KeyringBackend = v
	}
	if os.Getenv("GYMLOG_VERBOSE") == "1" {
		c.LogLevel = "debug"
	}
}

// fill replaces zero values left by a partial config file.
func (c *Config) fill() {
	d := Defaults()
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = d.APIURL
	}
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = d.TimeoutSeconds
	}
	if c.KeyringBackend == "" {
		c.KeyringBackend = d.KeyringBackend
	}
}

// Keys lists the settings accepted by Set, in file order.
var Keys = []string{"api_url", "log_level", "timeout_seconds", "keyring_backend", "health_grpc_addr"}

// Set changes one setting by its file key. Values are validated; an empty
// health_grpc_addr disables the gRPC probe.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "api_url":
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("api_url must be an http:// or https:// URL, got %q", value)
		}
		c.APIURL = strings.TrimRight(value, "/")
	case "log_level":
		switch lvl := strings.ToLower(value); lvl {
		case "debug", "info", "warn", "error":
			c.LogLevel = lvl
		default:
			return fmt.Errorf("log_level must be debug, info, warn or error, got %q", value)
		}
	case "timeout_seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("timeout_seconds must be a positive number, got %q", value)
		}
		c.TimeoutSeconds = n
	case "keyring_backend":
		switch value {
		case KeyringAuto, KeyringFile, KeyringMemory:
			c.KeyringBackend = value
		default:
			return fmt.Errorf("keyring_backend must be auto, file or memory, got %q", value)
		}
	case "health_grpc_addr":
		c.HealthGRPCAddr = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}
