package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"DRAFTLY_PORT", "DRAFTLY_API_KEY", "DRAFTLY_LOG_LEVEL", "DRAFTLY_REQUEST_TIMEOUT",
		"DRAFTLY_FALLBACK", "DRAFTLY_LOCAL_EMOJI", "DRAFTLY_MAX_TEXT_LENGTH", "DRAFTLY_RATE_LIMIT",
		"DRAFTLY_KEYS_FILE", "DRAFTLY_REDIS_URL", "DRAFTLY_HISTORY_BACKEND", "DRAFTLY_HISTORY_PATH",
		"DRAFTLY_OPENAI_BASE_URL",
	} {
		t.Setenv(k, "")
	}
}

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Port, 5000},
		{"api_key", cfg.APIKey, ""},
		{"log_level", cfg.LogLevel, "info"},
		{"request_timeout", cfg.RequestTimeout, 30 * time.Second},
		{"fallback", cfg.Fallback, "surface"},
		{"local_emoji", cfg.LocalEmoji, false},
		{"max_text_length", cfg.MaxTextLength, 10000},
		{"rate_limit", cfg.RateLimit, 10},
		{"history_backend", cfg.HistoryBackend, "memory"},
		{"keys_file", cfg.KeysFile, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadFromYAML(t *testing.T) {
	clearEnv(t)

	path := writeYAML(t, `port: 9999
api_key: "my-secret-key"
log_level: debug
request_timeout: 45s
fallback: mock
local_emoji: true
max_text_length: 500
rate_limit: 3
keys_file: /etc/draftly/keys.yaml
history_backend: file
history_path: /var/lib/draftly/history.json
providers:
  openai:
    api_key: sk-yaml
    base_url: http://localhost:8080/v1
  google:
    api_key: AIzaYaml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port", cfg.Port, 9999},
		{"api_key", cfg.APIKey, "my-secret-key"},
		{"log level", cfg.SlogLevel(), slog.LevelDebug},
		{"request_timeout", cfg.RequestTimeout, 45 * time.Second},
		{"fallback", cfg.Fallback, "mock"},
		{"local_emoji", cfg.LocalEmoji, true},
		{"max_text_length", cfg.MaxTextLength, 500},
		{"rate_limit", cfg.RateLimit, 3},
		{"keys_file", cfg.KeysFile, "/etc/draftly/keys.yaml"},
		{"history_backend", cfg.HistoryBackend, "file"},
		{"history_path", cfg.HistoryPath, "/var/lib/draftly/history.json"},
		{"openai base_url", cfg.BaseURL(registry.OpenAI), "http://localhost:8080/v1"},
		{"deepseek base_url", cfg.BaseURL(registry.Deepseek), ""},
		{"openai key", cfg.Keys()[registry.OpenAI], "sk-yaml"},
		{"google key", cfg.Keys()[registry.Google], "AIzaYaml"},
		{"key count", len(cfg.Keys()), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `port: 9999
fallback: mock
`)

	t.Setenv("DRAFTLY_PORT", "7777")
	t.Setenv("DRAFTLY_API_KEY", "env-api-key")
	t.Setenv("DRAFTLY_FALLBACK", "surface")
	t.Setenv("DRAFTLY_REQUEST_TIMEOUT", "5s")
	t.Setenv("DRAFTLY_LOCAL_EMOJI", "true")
	t.Setenv("DRAFTLY_HISTORY_BACKEND", "redis")
	t.Setenv("DRAFTLY_REDIS_URL", "redis://cache:6379/1")
	t.Setenv("DRAFTLY_OPENAI_BASE_URL", "http://from-env:8080/v1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"port from env", cfg.Port, 7777},
		{"api_key from env", cfg.APIKey, "env-api-key"},
		{"fallback from env", cfg.Fallback, "surface"},
		{"timeout from env", cfg.RequestTimeout, 5 * time.Second},
		{"local_emoji from env", cfg.LocalEmoji, true},
		{"history_backend from env", cfg.HistoryBackend, "redis"},
		{"redis_url from env", cfg.RedisURL, "redis://cache:6379/1"},
		{"base_url from env", cfg.BaseURL(registry.OpenAI), "http://from-env:8080/v1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	for _, kv := range [][2]string{
		{"DRAFTLY_PORT", "eighty"},
		{"DRAFTLY_REQUEST_TIMEOUT", "soon"},
		{"DRAFTLY_LOCAL_EMOJI", "maybe"},
		{"DRAFTLY_MAX_TEXT_LENGTH", "lots"},
	} {
		t.Run(kv[0], func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			if _, err := Load(""); err == nil {
				t.Errorf("expected error for %s=%q", kv[0], kv[1])
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad fallback", func(c *Config) { c.Fallback = "retry" }},
		{"bad history backend", func(c *Config) { c.HistoryBackend = "s3" }},
		{"redis without url", func(c *Config) { c.HistoryBackend = "redis" }},
		{"zero max length", func(c *Config) { c.MaxTextLength = 0 }},
		{"zero rate limit", func(c *Config) { c.RateLimit = 0 }},
		{"bad port", func(c *Config) { c.Port = 70000 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown provider", func(c *Config) { c.Providers = map[string]ProviderConfig{"mistral": {}} }},
		{"other provider", func(c *Config) { c.Providers = map[string]ProviderConfig{"other": {}} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}

	if err := defaults().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, "{{invalid")

	_, err := Load(path)
	if err == nil {
		t.Error("expected error for invalid YAML, got nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}
