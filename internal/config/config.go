package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the API endpoint used when nothing else is configured
const DefaultAPIURL = "http://localhost:8000/api"

// Environment variables overriding the config file
const (
	EnvConfigDir       = "GATHERLY_CONFIG_DIR"
	EnvAPIURL          = "GATHERLY_API_URL"
	EnvLogLevel        = "GATHERLY_LOG_LEVEL"
	EnvLogFormat       = "GATHERLY_LOG_FORMAT"
	EnvTokenPassphrase = "GATHERLY_TOKEN_PASSPHRASE"
)

// LogConfig holds the logging section of the config file
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the global Gatherly configuration stored at
// ~/.gatherly/config.yaml
type Config struct {
	APIURL string    `yaml:"api_url"`
	Log    LogConfig `yaml:"log"`

	// TokenPassphrase enables token-at-rest encryption. It comes from the
	// environment only and is never written to the config file.
	TokenPassphrase string `yaml:"-"`
}

// Dir returns the Gatherly config directory, honoring GATHERLY_CONFIG_DIR
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".gatherly"), nil
}

// Path returns the config file path
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// TokenPath returns where the auth token is persisted
func TokenPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

// Load reads the config file (when present) and applies environment
// overrides on top of the defaults
func Load() (*Config, error) {
	cfg := &Config{
		APIURL: DefaultAPIURL,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}

	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	cfg.TokenPassphrase = os.Getenv(EnvTokenPassphrase)

	return cfg, nil
}

// Save writes the config file with restrictive permissions
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Get retrieves a configuration value by dotted key
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "log.level":
		return c.Log.Level, nil
	case "log.format":
		return c.Log.Format, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set updates a configuration value by dotted key; Save persists it
func (c *Config) Set(key, value string) error {
	switch key {
	case "api_url":
		c.APIURL = value
	case "log.level":
		c.Log.Level = value
	case "log.format":
		c.Log.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Keys lists the settable configuration keys
func Keys() []string {
	return []string{"api_url", "log.level", "log.format"}
}
