// Package registry maps selectable model identifiers to the provider that serves them.
package registry

import "fmt"

// Provider identifies an upstream language-model vendor.
type Provider string

const (
	OpenAI     Provider = "openai"
	Perplexity Provider = "perplexity"
	Anthropic  Provider = "anthropic"
	Google     Provider = "google"
	Deepseek   Provider = "deepseek"
	// Other is the terminal bucket for models without a real backend.
	Other Provider = "other"
)

// Providers lists every provider with a real backend.
func Providers() []Provider {
	return []Provider{OpenAI, Perplexity, Anthropic, Google, Deepseek}
}

func (p Provider) String() string { return string(p) }

// ParseProvider validates s against the known providers, including Other.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	switch p {
	case OpenAI, Perplexity, Anthropic, Google, Deepseek, Other:
		return p, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", s)
	}
}

// Model is a selectable model identifier.
type Model string

const (
	GPT35Turbo    Model = "gpt-3.5-turbo"
	GPT4o         Model = "gpt-4o"
	Llama3        Model = "llama-3"
	Llama3Large   Model = "llama-3-70b"
	Claude3Opus   Model = "claude-3-opus"
	Claude3Sonnet Model = "claude-3-sonnet"
	GeminiPro     Model = "gemini-pro"
	DeepseekCoder Model = "deepseek-coder"

	// Placeholder models are offered in the picker but only ever answered by
	// the mock responder.
	Claude2 Model = "claude-2"
	PaLM    Model = "palm"
)

// ModelInfo is exposed via GET /api/models.
type ModelInfo struct {
	ID       Model    `json:"id"`
	Name     string   `json:"name"`
	Provider Provider `json:"provider"`
}

var catalog = []ModelInfo{
	{ID: GPT35Turbo, Name: "GPT-3.5 Turbo", Provider: OpenAI},
	{ID: GPT4o, Name: "GPT-4o", Provider: OpenAI},
	{ID: Llama3, Name: "Llama 3 (Sonar small)", Provider: Perplexity},
	{ID: Llama3Large, Name: "Llama 3 70B (Sonar large)", Provider: Perplexity},
	{ID: Claude3Opus, Name: "Claude 3 Opus", Provider: Anthropic},
	{ID: Claude3Sonnet, Name: "Claude 3 Sonnet", Provider: Anthropic},
	{ID: GeminiPro, Name: "Gemini Pro", Provider: Google},
	{ID: DeepseekCoder, Name: "Deepseek Coder", Provider: Deepseek},
}

var placeholders = []ModelInfo{
	{ID: Claude2, Name: "Claude 2 (preview)", Provider: Other},
	{ID: PaLM, Name: "PaLM (preview)", Provider: Other},
}

var byID = func() map[Model]Provider {
	m := make(map[Model]Provider, len(catalog))
	for _, info := range catalog {
		m[info.ID] = info.Provider
	}
	return m
}()

// ResolveProvider returns the provider serving m. Unrecognized models resolve to Other.
func ResolveProvider(m Model) Provider {
	if p, ok := byID[m]; ok {
		return p
	}
	return Other
}

// Known reports whether m is served by a real provider.
func Known(m Model) bool {
	_, ok := byID[m]
	return ok
}

// IsPlaceholder reports whether m is a listed mock-only model.
func IsPlaceholder(m Model) bool {
	for _, info := range placeholders {
		if info.ID == m {
			return true
		}
	}
	return false
}

// Models returns the routable models, optionally followed by the placeholders.
func Models(withPlaceholders bool) []ModelInfo {
	out := make([]ModelInfo, 0, len(catalog)+len(placeholders))
	out = append(out, catalog...)
	if withPlaceholders {
		out = append(out, placeholders...)
	}
	return out
}

// ModelsFor returns the routable models served by p.
func ModelsFor(p Provider) []Model {
	var out []Model
	for _, info := range catalog {
		if info.Provider == p {
			out = append(out, info.ID)
		}
	}
	return out
}
