package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/handler"
	"github.com/SharangSharma09/Draftly/internal/history"
	"github.com/SharangSharma09/Draftly/internal/middleware"
	"github.com/SharangSharma09/Draftly/internal/orchestrator"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

// Options carries everything the proxy routes need.
type Options struct {
	Orchestrator *orchestrator.Orchestrator
	Keys         credential.Source
	// History enables /api/history and recording when non-nil.
	History *history.Recorder

	APIKey         string
	RateLimit      int
	MaxTextLength  int
	RequestTimeout time.Duration
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(opts Options) http.Handler {
	orch := opts.Orchestrator

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(opts.Keys, orch.Adapters(), orch.Policy() == orchestrator.PolicyMock))
	mux.HandleFunc("/api/models", handler.Models(registry.Models(true)))
	mux.HandleFunc("/api/transform", handler.Transform(orch, handler.TransformOptions{
		MaxTextLength: opts.MaxTextLength,
		History:       opts.History,
	}))
	if opts.History != nil {
		mux.HandleFunc("/api/history", handler.History(opts.History))
	}
	mux.Handle("/metrics", promhttp.Handler())

	limit := opts.RateLimit
	if limit <= 0 {
		limit = 10
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = orchestrator.DefaultTimeout
	}

	rl := middleware.NewRateLimiter(limit, time.Minute)
	return middleware.Chain(mux, rl, opts.APIKey, timeout+5*time.Second)
}
