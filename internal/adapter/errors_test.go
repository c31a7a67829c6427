package adapter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"with provider", missingCredential(registry.OpenAI, nil), "openai: no API key configured for openai"},
		{"without provider", InvalidModel("gpt-9"), "unknown model: gpt-9"},
		{"provider status", providerError(registry.Google, 500, "API error: boom"), "google: API error: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", networkError(registry.Deepseek, errors.New("dial tcp")))
	if got := KindOf(wrapped); got != KindNetworkError {
		t.Errorf("got %q, want %q", got, KindNetworkError)
	}
	if got := KindOf(errors.New("plain")); got != KindProviderError {
		t.Errorf("got %q, want %q", got, KindProviderError)
	}
}
