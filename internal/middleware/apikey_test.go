package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIKeyMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		expected string
		method   string
		path     string
		provided string
		want     int
		message  string
	}{
		{"disabled when key is empty", "", http.MethodPost, "/api/transform", "", http.StatusOK, ""},
		{"valid key passes", "secret-123", http.MethodPost, "/api/transform", "secret-123", http.StatusOK, ""},
		{"missing key", "secret-123", http.MethodPost, "/api/transform", "", http.StatusUnauthorized, "missing API key"},
		{"wrong key", "secret-123", http.MethodPost, "/api/transform", "wrong-key", http.StatusUnauthorized, "invalid API key"},
		{"health exempt", "secret-123", http.MethodGet, "/api/health", "", http.StatusOK, ""},
		{"metrics exempt", "secret-123", http.MethodGet, "/metrics", "", http.StatusOK, ""},
		{"models requires auth", "secret-123", http.MethodGet, "/api/models", "", http.StatusUnauthorized, "missing API key"},
		{"history requires auth", "secret-123", http.MethodDelete, "/api/history", "nope", http.StatusUnauthorized, "invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.provided != "" {
				req.Header.Set("X-API-Key", tt.provided)
			}
			w := httptest.NewRecorder()
			APIKey(tt.expected)(inner).ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("status: got %d, want %d", w.Code, tt.want)
			}
			if tt.message == "" {
				return
			}

			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] != "unauthorized" {
				t.Errorf("error: got %q, want %q", body["error"], "unauthorized")
			}
			if body["message"] != tt.message {
				t.Errorf("message: got %q, want %q", body["message"], tt.message)
			}
		})
	}
}
