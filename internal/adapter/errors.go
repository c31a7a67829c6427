package adapter

import (
	"errors"
	"fmt"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// Kind classifies transform failures.
type Kind string

const (
	KindMissingCredential Kind = "missing_credential"
	KindProviderError     Kind = "provider_error"
	KindNetworkError      Kind = "network_error"
	KindInvalidModel      Kind = "invalid_model"
)

// Error is the single failure type returned by adapters and the orchestrator.
type Error struct {
	Kind     Kind
	Provider registry.Provider
	// Status is the upstream HTTP status for provider errors, zero otherwise.
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Provider == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindProviderError for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindProviderError
}

func missingCredential(p registry.Provider, err error) *Error {
	return &Error{
		Kind:     KindMissingCredential,
		Provider: p,
		Message:  fmt.Sprintf("no API key configured for %s", p),
		Err:      err,
	}
}

func providerError(p registry.Provider, status int, msg string) *Error {
	return &Error{Kind: KindProviderError, Provider: p, Status: status, Message: msg}
}

func networkError(p registry.Provider, err error) *Error {
	return &Error{Kind: KindNetworkError, Provider: p, Message: fmt.Sprintf("request failed: %v", err), Err: err}
}

// InvalidModel reports a model that no adapter serves.
func InvalidModel(model registry.Model) *Error {
	return &Error{Kind: KindInvalidModel, Message: fmt.Sprintf("unknown model: %s", model)}
}
