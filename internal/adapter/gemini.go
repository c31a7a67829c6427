package adapter

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/prompt"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

const geminiDefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiAdapter connects to Google's generateContent API. The key travels as
// a query parameter and the instruction is folded into the user turn.
type GeminiAdapter struct {
	BaseURL string
	Keys    credential.Source
	Client  *http.Client

	Models          map[registry.Model]string
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
	TopK            int
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            int     `json:"topK,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiCandidate struct {
	Content *geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// NewGemini returns the adapter for Gemini models.
func NewGemini(keys credential.Source, baseURL string, timeout time.Duration) *GeminiAdapter {
	return &GeminiAdapter{
		BaseURL: orDefault(baseURL, geminiDefaultBaseURL),
		Keys:    keys,
		Client:  &http.Client{Timeout: timeout},
		Models: map[registry.Model]string{
			registry.GeminiPro: "gemini-pro",
		},
		Temperature:     0.7,
		MaxOutputTokens: 2048,
		TopP:            0.95,
		TopK:            40,
	}
}

func (g *GeminiAdapter) Name() string { return "Google" }

func (g *GeminiAdapter) Provider() registry.Provider { return registry.Google }

func (g *GeminiAdapter) Transform(ctx context.Context, text string, a action.Action, model registry.Model) (string, error) {
	upstream, ok := g.Models[model]
	if !ok {
		return "", InvalidModel(model)
	}

	key, err := lookupKey(ctx, g.Keys, registry.Google)
	if err != nil {
		return "", err
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt.UserPrompt(prompt.BuildSystemPrompt(a), text)}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     g.Temperature,
			MaxOutputTokens: g.MaxOutputTokens,
			TopP:            g.TopP,
			TopK:            g.TopK,
		},
	}

	endpoint := strings.TrimRight(orDefault(g.BaseURL, geminiDefaultBaseURL), "/") +
		"/models/" + url.PathEscape(upstream) + ":generateContent?key=" + url.QueryEscape(key)
	req, err := newJSONRequest(ctx, registry.Google, endpoint, reqBody)
	if err != nil {
		return "", err
	}

	var genResp geminiResponse
	if err := doJSON(g.Client, registry.Google, req, &genResp); err != nil {
		return "", redactKey(err, key)
	}

	if len(genResp.Candidates) == 0 ||
		genResp.Candidates[0].Content == nil ||
		len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", emptyResponse(registry.Google, http.StatusOK)
	}

	out := strings.TrimSpace(genResp.Candidates[0].Content.Parts[0].Text)
	if out == "" {
		return "", emptyResponse(registry.Google, http.StatusOK)
	}
	return out, nil
}

func (g *GeminiAdapter) Available(ctx context.Context) bool {
	return keyPresent(ctx, g.Keys, registry.Google)
}

// redactKey scrubs the query-string key from transport errors, which embed the URL.
func redactKey(err error, key string) error {
	e, ok := err.(*Error)
	if !ok || e.Kind != KindNetworkError || key == "" {
		return err
	}
	e.Message = strings.ReplaceAll(e.Message, url.QueryEscape(key), "REDACTED")
	e.Err = nil
	return e
}
