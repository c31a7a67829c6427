package adapter

import (
	"context"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// LLMAdapter defines the contract for provider backends. An adapter owns the
// provider's request shape, authentication, and response extraction; callers
// only ever see plain text or an *Error.
type LLMAdapter interface {
	Name() string
	Provider() registry.Provider
	Transform(ctx context.Context, text string, a action.Action, model registry.Model) (string, error)
	Available(ctx context.Context) bool
}
