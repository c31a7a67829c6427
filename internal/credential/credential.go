// Package credential resolves provider API keys from pluggable sources.
package credential

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// ErrNotFound is returned when a source holds no key for a provider.
var ErrNotFound = errors.New("credential: not found")

// Source resolves the API key for a provider.
type Source interface {
	Lookup(ctx context.Context, p registry.Provider) (string, error)
}

// Static serves keys from an in-memory map, typically filled from config.yaml.
type Static map[registry.Provider]string

func (s Static) Lookup(_ context.Context, p registry.Provider) (string, error) {
	if k := strings.TrimSpace(s[p]); k != "" {
		return k, nil
	}
	return "", ErrNotFound
}

// envVars lists the variables checked per provider, in order.
var envVars = map[registry.Provider][]string{
	registry.OpenAI:     {"OPENAI_API_KEY"},
	registry.Perplexity: {"PERPLEXITY_API_KEY"},
	registry.Anthropic:  {"ANTHROPIC_API_KEY"},
	registry.Google:     {"GOOGLE_API_KEY", "GEMINI_API_KEY"},
	registry.Deepseek:   {"DEEPSEEK_API_KEY"},
}

// Env reads keys from the process environment.
type Env struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (e Env) Lookup(_ context.Context, p registry.Provider) (string, error) {
	getenv := e.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, name := range envVars[p] {
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", ErrNotFound
}

// Chain tries each source in order; the first key found wins. Errors other
// than ErrNotFound stop the search.
type Chain []Source

func (c Chain) Lookup(ctx context.Context, p registry.Provider) (string, error) {
	for _, s := range c {
		key, err := s.Lookup(ctx, p)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
	}
	return "", ErrNotFound
}
