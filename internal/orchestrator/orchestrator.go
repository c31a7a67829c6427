// Package orchestrator routes a transform request to the adapter serving its
// model, layers the emoji pass on top of rewrites, and applies the
// deployment's fallback policy to failures.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/adapter"
	"github.com/SharangSharma09/Draftly/internal/emoji"
	"github.com/SharangSharma09/Draftly/internal/metrics"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// DefaultTimeout bounds a whole transform, including the emoji pass.
const DefaultTimeout = 30 * time.Second

// Policy decides what a failed provider call turns into.
type Policy string

const (
	// PolicySurface returns the *adapter.Error to the caller.
	PolicySurface Policy = "surface"
	// PolicyMock replaces the failure with placeholder output.
	PolicyMock Policy = "mock"
)

// ParsePolicy validates s. An empty string selects PolicySurface.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicySurface:
		return PolicySurface, nil
	case PolicyMock:
		return PolicyMock, nil
	}
	return "", fmt.Errorf("unknown fallback policy: %s", s)
}

// Request is a single transform call.
type Request struct {
	Text   string
	Action action.Action
	Model  registry.Model
	Emoji  action.EmojiOption
}

// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	adapters   map[registry.Provider]adapter.LLMAdapter
	mock       adapter.LLMAdapter
	policy     Policy
	localEmoji bool
	pick       emoji.Picker
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithPolicy sets the fallback policy.
func WithPolicy(p Policy) Option {
	return func(o *Orchestrator) { o.policy = p }
}

// WithLocalEmoji decorates rewrites locally instead of making a second
// provider call. A nil pick chooses bullet emojis at random.
func WithLocalEmoji(pick emoji.Picker) Option {
	return func(o *Orchestrator) {
		o.localEmoji = true
		o.pick = pick
	}
}

// WithTimeout overrides DefaultTimeout. Zero or negative disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithMock replaces the adapter used for the other provider.
func WithMock(m adapter.LLMAdapter) Option {
	return func(o *Orchestrator) { o.mock = m }
}

// New indexes adapters by provider. A later adapter for the same provider
// replaces an earlier one.
func New(adapters []adapter.LLMAdapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		adapters: make(map[registry.Provider]adapter.LLMAdapter, len(adapters)),
		mock:     &adapter.MockAdapter{},
		policy:   PolicySurface,
		timeout:  DefaultTimeout,
		logger:   slog.Default(),
	}
	for _, a := range adapters {
		o.adapters[a.Provider()] = a
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Policy returns the configured fallback policy.
func (o *Orchestrator) Policy() Policy { return o.policy }

// Adapters returns the registered adapters, excluding the mock.
func (o *Orchestrator) Adapters() []adapter.LLMAdapter {
	out := make([]adapter.LLMAdapter, 0, len(o.adapters))
	for _, p := range registry.Providers() {
		if a, ok := o.adapters[p]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Transform runs req. Whitespace-only text returns "" without calling any
// adapter. Errors are *adapter.Error; under PolicyMock, Transform only fails
// when the placeholder adapter itself fails.
func (o *Orchestrator) Transform(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", nil
	}

	a, err := o.route(req.Model)
	if err != nil {
		return o.fallback(req, registry.Other, err)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := o.call(ctx, a, req.Text, req.Action, req.Model)
	if err != nil {
		return o.fallback(req, a.Provider(), err)
	}

	if req.Emoji.Enabled() && req.Action.IsRewrite() {
		out, err = o.decorate(ctx, a, req, out)
		if err != nil {
			return "", err
		}
	}

	o.logger.Info("transform",
		"provider", a.Provider(),
		"action", req.Action,
		"model", req.Model,
		"emoji", req.Emoji.Enabled(),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// Render is Transform under the string contract: failures become a one-line
// "Error: <message>. Please try again." result.
func (o *Orchestrator) Render(ctx context.Context, req Request) string {
	out, err := o.Transform(ctx, req)
	if err != nil {
		return FormatError(err)
	}
	return out
}

// FormatError renders err for display.
func FormatError(err error) string {
	msg := strings.TrimRight(strings.TrimSpace(err.Error()), ".")
	if msg == "" {
		msg = "transform failed"
	}
	return fmt.Sprintf("Error: %s. Please try again.", msg)
}

func (o *Orchestrator) route(model registry.Model) (adapter.LLMAdapter, error) {
	p := registry.ResolveProvider(model)
	if p == registry.Other {
		if registry.IsPlaceholder(model) || o.policy == PolicyMock {
			metrics.FallbackTotal.WithLabelValues("placeholder_model").Inc()
			return o.mock, nil
		}
		return nil, adapter.InvalidModel(model)
	}
	a, ok := o.adapters[p]
	if !ok {
		return nil, adapter.InvalidModel(model)
	}
	return a, nil
}

// decorate applies the emoji pass to a rewrite result. A failed second call
// under PolicyMock keeps the first result and decorates it locally.
func (o *Orchestrator) decorate(ctx context.Context, a adapter.LLMAdapter, req Request, out string) (string, error) {
	if o.localEmoji {
		return emoji.Decorate(out, req.Action, o.pick), nil
	}
	decorated, err := o.call(ctx, a, out, action.AddEmoji, req.Model)
	if err == nil {
		return decorated, nil
	}
	if o.policy != PolicyMock {
		return "", err
	}
	o.logger.Warn("emoji pass failed, decorating locally",
		"provider", a.Provider(),
		"kind", adapter.KindOf(err),
		"error", err,
	)
	metrics.FallbackTotal.WithLabelValues(string(adapter.KindOf(err))).Inc()
	return emoji.Decorate(out, req.Action, o.pick), nil
}

func (o *Orchestrator) call(ctx context.Context, a adapter.LLMAdapter, text string, act action.Action, model registry.Model) (out string, err error) {
	p := a.Provider()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("adapter panic", "provider", p, "panic", r)
			out, err = "", &adapter.Error{
				Kind:     adapter.KindProviderError,
				Provider: p,
				Message:  "internal adapter error",
				Err:      fmt.Errorf("panic: %v", r),
			}
		}
		metrics.TransformDuration.WithLabelValues(string(p), string(act)).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.ProviderErrors.WithLabelValues(string(p), string(adapter.KindOf(err))).Inc()
		}
	}()

	out, err = a.Transform(ctx, text, act, model)
	if err != nil {
		return "", normalize(p, err)
	}
	return out, nil
}

func (o *Orchestrator) fallback(req Request, p registry.Provider, err error) (string, error) {
	kind := adapter.KindOf(err)
	o.logger.Warn("transform failed",
		"provider", p,
		"action", req.Action,
		"model", req.Model,
		"kind", kind,
		"policy", o.policy,
		"error", err,
	)
	if o.policy != PolicyMock {
		return "", err
	}
	metrics.FallbackTotal.WithLabelValues(string(kind)).Inc()
	return adapter.Placeholder(req.Text, req.Action), nil
}

// normalize maps any adapter failure onto *adapter.Error.
func normalize(p registry.Provider, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &adapter.Error{Kind: adapter.KindNetworkError, Provider: p, Message: "request timed out", Err: err}
	case errors.Is(err, context.Canceled):
		return &adapter.Error{Kind: adapter.KindNetworkError, Provider: p, Message: "request cancelled", Err: err}
	}
	var e *adapter.Error
	if errors.As(err, &e) {
		return err
	}
	return &adapter.Error{Kind: adapter.KindProviderError, Provider: p, Message: err.Error(), Err: err}
}
