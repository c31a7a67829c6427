package adapter

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/prompt"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

const (
	openAIDefaultBaseURL     = "https://api.openai.com/v1"
	perplexityDefaultBaseURL = "https://api.perplexity.ai"
	deepseekDefaultBaseURL   = "https://api.deepseek.com/v1"
)

// ChatAdapter speaks the OpenAI-compatible /chat/completions protocol shared
// by OpenAI, Perplexity and Deepseek.
type ChatAdapter struct {
	ID      registry.Provider
	Label   string
	BaseURL string
	Keys    credential.Source
	Client  *http.Client

	// Models maps selectable models to the upstream model name.
	Models      map[registry.Model]string
	Temperature float64
	MaxTokens   int
	TopP        float64
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	Stream      bool          `json:"stream"`
}

type chatChoice struct {
	Message *chatMessage `json:"message"`
}

type chatResponse struct {
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

// NewOpenAI returns the adapter for the OpenAI chat API.
func NewOpenAI(keys credential.Source, baseURL string, timeout time.Duration) *ChatAdapter {
	return &ChatAdapter{
		ID:      registry.OpenAI,
		Label:   "OpenAI",
		BaseURL: orDefault(baseURL, openAIDefaultBaseURL),
		Keys:    keys,
		Client:  &http.Client{Timeout: timeout},
		Models: map[registry.Model]string{
			registry.GPT35Turbo: "gpt-3.5-turbo",
			registry.GPT4o:      "gpt-4o",
		},
		Temperature: 0.7,
		MaxTokens:   1500,
	}
}

// NewPerplexity returns the adapter for Perplexity's Sonar models.
func NewPerplexity(keys credential.Source, baseURL string, timeout time.Duration) *ChatAdapter {
	return &ChatAdapter{
		ID:      registry.Perplexity,
		Label:   "Perplexity",
		BaseURL: orDefault(baseURL, perplexityDefaultBaseURL),
		Keys:    keys,
		Client:  &http.Client{Timeout: timeout},
		Models: map[registry.Model]string{
			registry.Llama3:      "llama-3.1-sonar-small-128k-online",
			registry.Llama3Large: "llama-3.1-sonar-large-128k-online",
		},
		Temperature: 0.2,
		MaxTokens:   1500,
		TopP:        0.9,
	}
}

// NewDeepseek returns the adapter for the Deepseek chat API.
func NewDeepseek(keys credential.Source, baseURL string, timeout time.Duration) *ChatAdapter {
	return &ChatAdapter{
		ID:      registry.Deepseek,
		Label:   "Deepseek",
		BaseURL: orDefault(baseURL, deepseekDefaultBaseURL),
		Keys:    keys,
		Client:  &http.Client{Timeout: timeout},
		Models: map[registry.Model]string{
			registry.DeepseekCoder: "deepseek-coder",
		},
		Temperature: 0.7,
		MaxTokens:   2048,
	}
}

func (c *ChatAdapter) Name() string { return c.Label }

func (c *ChatAdapter) Provider() registry.Provider { return c.ID }

func (c *ChatAdapter) Transform(ctx context.Context, text string, a action.Action, model registry.Model) (string, error) {
	upstream, ok := c.Models[model]
	if !ok {
		return "", InvalidModel(model)
	}

	key, err := lookupKey(ctx, c.Keys, c.ID)
	if err != nil {
		return "", err
	}

	reqBody := chatRequest{
		Model: upstream,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.BuildSystemPrompt(a)},
			{Role: "user", Content: text},
		},
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		TopP:        c.TopP,
		Stream:      false,
	}

	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := newJSONRequest(ctx, c.ID, url, reqBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)

	var chatResp chatResponse
	if err := doJSON(c.Client, c.ID, req, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message == nil {
		return "", emptyResponse(c.ID, http.StatusOK)
	}
	out := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if out == "" {
		return "", emptyResponse(c.ID, http.StatusOK)
	}
	return out, nil
}

func (c *ChatAdapter) Available(ctx context.Context) bool {
	return keyPresent(ctx, c.Keys, c.ID)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
