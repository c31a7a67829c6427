package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// maxErrorBody bounds how much of a failed response is read for its message.
const maxErrorBody = 64 * 1024

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func lookupKey(ctx context.Context, keys credential.Source, p registry.Provider) (string, error) {
	if keys == nil {
		return "", missingCredential(p, credential.ErrNotFound)
	}
	key, err := keys.Lookup(ctx, p)
	if errors.Is(err, credential.ErrNotFound) || (err == nil && key == "") {
		return "", missingCredential(p, credential.ErrNotFound)
	}
	if err != nil {
		return "", missingCredential(p, err)
	}
	return key, nil
}

func keyPresent(ctx context.Context, keys credential.Source, p registry.Provider) bool {
	_, err := lookupKey(ctx, keys, p)
	return err == nil
}

func newJSONRequest(ctx context.Context, p registry.Provider, url string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindProviderError, Provider: p, Message: "marshal request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindProviderError, Provider: p, Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// doJSON sends req and decodes a 2xx body into out. Non-2xx bodies are
// decoded as {"error":{"message":...}} when possible.
func doJSON(client *http.Client, p registry.Provider, req *http.Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return networkError(p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(p, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		e := providerError(p, resp.StatusCode, "decode response")
		e.Err = err
		return e
	}
	return nil
}

func statusError(p registry.Provider, resp *http.Response) *Error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr apiErrorResponse
	if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Error.Message != "" {
		return providerError(p, resp.StatusCode, fmt.Sprintf("API error: %s", apiErr.Error.Message))
	}
	text := http.StatusText(resp.StatusCode)
	if text == "" {
		text = fmt.Sprintf("status %d", resp.StatusCode)
	}
	return providerError(p, resp.StatusCode, fmt.Sprintf("API error: %s", strings.ToLower(text)))
}

func emptyResponse(p registry.Provider, status int) *Error {
	return providerError(p, status, "empty response content")
}
