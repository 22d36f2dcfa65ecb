package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is the vendor's production GraphQL endpoint.
const DefaultAPIURL = "https://api.monday.com/v2"

var (
	// ErrMissingToken indicates no API token was configured.
	ErrMissingToken = errors.New("config: api token is not set")
	// ErrMissingURL indicates no API endpoint was configured.
	ErrMissingURL = errors.New("config: api url is not set")
)

// Config defines boardsync configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
	Format FormatConfig `yaml:"format"`
}

// APIConfig holds credentials and endpoint for the remote platform.
type APIConfig struct {
	Token      string `yaml:"token"`
	URL        string `yaml:"url"`
	CACertPath string `yaml:"ca_cert_path"`
}

// CacheConfig locates the durable column-catalog cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls operational logging and the rotating error log.
type LogConfig struct {
	Level          string `yaml:"level"`
	ErrorFile      string `yaml:"error_file"`
	ErrorMaxSizeMB int    `yaml:"error_max_size_mb"`
	ErrorBackups   int    `yaml:"error_backups"`
}

// FormatConfig carries column-id-specific formatter wiring.
type FormatConfig struct {
	// DurationColumns lists column ids whose text values are "Hh Mm"
	// durations to be converted to minutes.
	DurationColumns []string `yaml:"duration_columns"`
}

// Load reads configuration from an optional .env file, an optional YAML
// file, and environment variables, in increasing order of precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		API: APIConfig{
			URL: DefaultAPIURL,
		},
		Cache: CacheConfig{
			Path: "boardsync.db",
		},
		Log: LogConfig{
			Level:          "info",
			ErrorFile:      "logs/api_errors.log",
			ErrorMaxSizeMB: 1,
			ErrorBackups:   5,
		},
	}

	if path := os.Getenv("BOARDSYNC_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if token := firstEnv("BOARDSYNC_API_TOKEN", "MONDAY_API_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if url := firstEnv("BOARDSYNC_API_URL", "MONDAY_API_URL"); url != "" {
		cfg.API.URL = url
	}
	if pem := os.Getenv("BOARDSYNC_CA_CERT"); pem != "" {
		cfg.API.CACertPath = pem
	}
	if path := os.Getenv("BOARDSYNC_CACHE_PATH"); path != "" {
		cfg.Cache.Path = path
	}
	if level := os.Getenv("BOARDSYNC_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("BOARDSYNC_ERROR_LOG"); file != "" {
		cfg.Log.ErrorFile = file
	}

	return cfg, nil
}

// Validate checks that the API surface is usable. Absence of token or URL
// is a fatal configuration error at first use.
func (c Config) Validate() error {
	if c.API.Token == "" {
		return ErrMissingToken
	}
	if c.API.URL == "" {
		return ErrMissingURL
	}
	return nil
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

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
