package handler

import (
	"net/http"

	"github.com/SharangSharma09/Draftly/internal/registry"
)

// Models serves GET /api/models.
func Models(models []registry.ModelInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, models)
	}
}
