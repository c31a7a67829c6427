package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SharangSharma09/Draftly/internal/adapter"
	"github.com/SharangSharma09/Draftly/internal/credential"
	"github.com/SharangSharma09/Draftly/internal/metrics"
	"github.com/SharangSharma09/Draftly/internal/registry"
)

const healthProbeTimeout = 2 * time.Second

type adapterStatus struct {
	Available bool `json:"available"`
}

type healthResponse struct {
	Status    string                                  `json:"status"`
	Timestamp time.Time                               `json:"timestamp"`
	APIKeys   map[registry.Provider]credential.Status `json:"apiKeys"`
	Adapters  map[registry.Provider]adapterStatus     `json:"adapters"`
}

// Health serves GET /api/health. Status is "ok" when at least one provider
// has a well-formed key, or always when mockMode is set; key values are
// never echoed beyond a short prefix.
func Health(keys credential.Source, adapters []adapter.LLMAdapter, mockMode bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthProbeTimeout)
		defer cancel()

		resp := healthResponse{
			Timestamp: time.Now().UTC(),
			APIKeys:   make(map[registry.Provider]credential.Status, len(registry.Providers())),
			Adapters:  make(map[registry.Provider]adapterStatus, len(adapters)),
		}

		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, p := range registry.Providers() {
			g.Go(func() error {
				s := credential.Status{Prefix: "N/A"}
				if keys != nil {
					s = credential.Inspect(gctx, keys, p)
				}
				mu.Lock()
				resp.APIKeys[p] = s
				mu.Unlock()
				return nil
			})
		}
		for _, a := range adapters {
			g.Go(func() error {
				ok := a.Available(gctx)
				gauge := 0.0
				if ok {
					gauge = 1
				}
				metrics.AdapterAvailable.WithLabelValues(string(a.Provider())).Set(gauge)
				mu.Lock()
				resp.Adapters[a.Provider()] = adapterStatus{Available: ok}
				mu.Unlock()
				return nil
			})
		}
		g.Wait()

		resp.Status = "error"
		if mockMode {
			resp.Status = "ok"
		}
		for _, s := range resp.APIKeys {
			if s.ValidFormat {
				resp.Status = "ok"
			}
		}

		writeJSON(w, resp)
	}
}
