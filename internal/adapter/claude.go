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
	claudeDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion     = "2023-06-01"
)

// ClaudeAdapter connects to the Anthropic Messages API.
type ClaudeAdapter struct {
	BaseURL string
	Keys    credential.Source
	Client  *http.Client

	Models      map[registry.Model]string
	MaxTokens   int
	Temperature float64
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeMessagesRequest struct {
	Model       string          `json:"model"`
	System      string          `json:"system"`
	Messages    []claudeMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type claudeContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type claudeMessagesResponse struct {
	Content []claudeContentBlock `json:"content"`
}

// NewClaude returns the adapter for Claude 3 models.
func NewClaude(keys credential.Source, baseURL string, timeout time.Duration) *ClaudeAdapter {
	return &ClaudeAdapter{
		BaseURL: orDefault(baseURL, claudeDefaultBaseURL),
		Keys:    keys,
		Client:  &http.Client{Timeout: timeout},
		Models: map[registry.Model]string{
			registry.Claude3Opus:   "claude-3-opus-20240229",
			registry.Claude3Sonnet: "claude-3-sonnet-20240229",
		},
		MaxTokens:   4000,
		Temperature: 0.7,
	}
}

func (c *ClaudeAdapter) Name() string { return "Anthropic" }

func (c *ClaudeAdapter) Provider() registry.Provider { return registry.Anthropic }

func (c *ClaudeAdapter) Transform(ctx context.Context, text string, a action.Action, model registry.Model) (string, error) {
	upstream, ok := c.Models[model]
	if !ok {
		return "", InvalidModel(model)
	}

	key, err := lookupKey(ctx, c.Keys, registry.Anthropic)
	if err != nil {
		return "", err
	}

	maxTokens := c.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4000
	}
	reqBody := claudeMessagesRequest{
		Model:  upstream,
		System: prompt.BuildSystemPrompt(a),
		Messages: []claudeMessage{
			{Role: "user", Content: text},
		},
		MaxTokens:   maxTokens,
		Temperature: c.Temperature,
	}

	url := strings.TrimRight(orDefault(c.BaseURL, claudeDefaultBaseURL), "/") + "/v1/messages"
	req, err := newJSONRequest(ctx, registry.Anthropic, url, reqBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("anthropic-version", anthropicVersion)

	var msgResp claudeMessagesResponse
	if err := doJSON(c.Client, registry.Anthropic, req, &msgResp); err != nil {
		return "", err
	}

	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}

	out := strings.TrimSpace(result.String())
	if out == "" {
		return "", emptyResponse(registry.Anthropic, http.StatusOK)
	}
	return out, nil
}

func (c *ClaudeAdapter) Available(ctx context.Context) bool {
	return keyPresent(ctx, c.Keys, registry.Anthropic)
}
