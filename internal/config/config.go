package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// ProviderConfig overrides a provider's key or endpoint.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// Config holds all application configuration.
type Config struct {
	Port           int                       `yaml:"port"`
	APIKey         string                    `yaml:"api_key"`
	LogLevel       string                    `yaml:"log_level"`
	RequestTimeout time.Duration             `yaml:"request_timeout"`
	Fallback       string                    `yaml:"fallback"`
	LocalEmoji     bool                      `yaml:"local_emoji"`
	MaxTextLength  int                       `yaml:"max_text_length"`
	RateLimit      int                       `yaml:"rate_limit"`
	KeysFile       string                    `yaml:"keys_file"`
	RedisURL       string                    `yaml:"redis_url"`
	HistoryBackend string                    `yaml:"history_backend"`
	HistoryPath    string                    `yaml:"history_path"`
	Providers      map[string]ProviderConfig `yaml:"providers"`
}

func defaults() Config {
	return Config{
		Port:           5000,
		LogLevel:       "info",
		RequestTimeout: 30 * time.Second,
		Fallback:       "surface",
		MaxTextLength:  10000,
		RateLimit:      10,
		HistoryBackend: "memory",
		HistoryPath:    "draftly_history.json",
	}
}

// Load loads configuration from a YAML file (if path is non-empty), then
// applies DRAFTLY_* environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DRAFTLY_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DRAFTLY_PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("DRAFTLY_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("DRAFTLY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DRAFTLY_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid DRAFTLY_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("DRAFTLY_FALLBACK"); v != "" {
		cfg.Fallback = v
	}
	if v := os.Getenv("DRAFTLY_LOCAL_EMOJI"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid DRAFTLY_LOCAL_EMOJI %q: %w", v, err)
		}
		cfg.LocalEmoji = b
	}
	if v := os.Getenv("DRAFTLY_MAX_TEXT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DRAFTLY_MAX_TEXT_LENGTH %q: %w", v, err)
		}
		cfg.MaxTextLength = n
	}
	if v := os.Getenv("DRAFTLY_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid DRAFTLY_RATE_LIMIT %q: %w", v, err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("DRAFTLY_KEYS_FILE"); v != "" {
		cfg.KeysFile = v
	}
	if v := os.Getenv("DRAFTLY_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("DRAFTLY_HISTORY_BACKEND"); v != "" {
		cfg.HistoryBackend = v
	}
	if v := os.Getenv("DRAFTLY_HISTORY_PATH"); v != "" {
		cfg.HistoryPath = v
	}
	for _, p := range registry.Providers() {
		if v := os.Getenv("DRAFTLY_" + strings.ToUpper(string(p)) + "_BASE_URL"); v != "" {
			if cfg.Providers == nil {
				cfg.Providers = make(map[string]ProviderConfig)
			}
			pc := cfg.Providers[string(p)]
			pc.BaseURL = v
			cfg.Providers[string(p)] = pc
		}
	}
	return nil
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port out of range: %d", c.Port)
	}
	switch c.Fallback {
	case "surface", "mock":
	default:
		return fmt.Errorf("config: fallback must be surface or mock, got %q", c.Fallback)
	}
	switch c.HistoryBackend {
	case "memory", "file":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("config: history_backend redis requires redis_url")
		}
	default:
		return fmt.Errorf("config: unknown history_backend %q", c.HistoryBackend)
	}
	if c.MaxTextLength <= 0 {
		return fmt.Errorf("config: max_text_length must be positive")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("config: rate_limit must be positive")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	for name := range c.Providers {
		p, err := registry.ParseProvider(name)
		if err != nil || p == registry.Other {
			return fmt.Errorf("config: unknown provider %q", name)
		}
	}
	return nil
}

// Keys returns the API keys set in the providers section.
func (c Config) Keys() credential.Static {
	keys := credential.Static{}
	for name, pc := range c.Providers {
		if pc.APIKey != "" {
			keys[registry.Provider(name)] = pc.APIKey
		}
	}
	return keys
}

// BaseURL returns the endpoint override for p, or "".
func (c Config) BaseURL(p registry.Provider) string {
	return c.Providers[string(p)].BaseURL
}

// SlogLevel returns the parsed log level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: invalid log_level %q", s)
	}
	return l, nil
}
