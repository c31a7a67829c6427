package credential

import (
	"context"
	"strings"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// Status describes a configured key without revealing it.
type Status struct {
	Exists      bool   `json:"exists"`
	ValidFormat bool   `json:"validFormat"`
	Prefix      string `json:"prefix"`
}

var keyPrefixes = map[registry.Provider]string{
	registry.OpenAI:     "sk-",
	registry.Perplexity: "pplx-",
	registry.Anthropic:  "sk-ant-",
	registry.Google:     "AIza",
	registry.Deepseek:   "sk-",
}

const shownPrefix = 5

// Inspect checks the key for p against the provider's known key format.
func Inspect(ctx context.Context, src Source, p registry.Provider) Status {
	key, err := src.Lookup(ctx, p)
	if err != nil || key == "" {
		return Status{Prefix: "N/A"}
	}
	return Status{
		Exists:      true,
		ValidFormat: ValidFormat(p, key),
		Prefix:      prefix(key),
	}
}

// ValidFormat reports whether key looks like a key issued by p.
func ValidFormat(p registry.Provider, key string) bool {
	want, ok := keyPrefixes[p]
	if !ok {
		return false
	}
	return strings.HasPrefix(key, want) && len(key) > len(want)
}

// prefix returns the first runes of key as valid UTF-8.
func prefix(key string) string {
	runes := []rune(key)
	if len(runes) <= shownPrefix {
		// Never echo a whole key back, however short.
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:shownPrefix])
}
