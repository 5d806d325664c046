// Package config loads client configuration from defaults, an optional
// YAML file and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config defines client configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Store StoreConfig `yaml:"store"`
	Log   LogConfig   `yaml:"log"`
}

// APIConfig locates the remote CRM API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StoreConfig locates the local key/value store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Validate checks the assembled configuration.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.API,
		validation.Field(&c.API.BaseURL, validation.Required, is.URL),
		validation.Field(&c.API.TimeoutSeconds, validation.Required, validation.Min(1)),
	); err != nil {
		return fmt.Errorf("api config: %w", err)
	}
	if err := validation.ValidateStruct(&c.Store,
		validation.Field(&c.Store.Path, validation.Required),
	); err != nil {
		return fmt.Errorf("store config: %w", err)
	}
	if err := validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Load reads configuration from an optional YAML file and environment
// variables, then validates the result.
func Load() (Config, error) {
	cfg := Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("CRM_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if base := os.Getenv("CRM_API_BASE_URL"); base != "" {
		cfg.API.BaseURL = base
	}
	if timeoutStr := os.Getenv("CRM_API_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CRM_API_TIMEOUT_SECONDS: %w", err)
		}
		cfg.API.TimeoutSeconds = timeout
	}
	if path := os.Getenv("CRM_STORE_PATH"); path != "" {
		cfg.Store.Path = path
	}
	if level := os.Getenv("CRM_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "freelancecrm.db"
	}
	return filepath.Join(home, ".freelancecrm", "store.db")
}
