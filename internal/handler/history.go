package handler

import (
	"net/http"

	"github.com/SharangSharma09/Draftly/internal/history"
)

// History serves GET (list) and DELETE (clear) on /api/history.
func History(rec *history.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			entries, err := rec.List(r.Context())
			if err != nil {
				writeError(w, http.StatusInternalServerError, "history_unavailable", err.Error())
				return
			}
			writeJSON(w, entries)
		case http.MethodDelete:
			if err := rec.Clear(r.Context()); err != nil {
				writeError(w, http.StatusInternalServerError, "history_unavailable", err.Error())
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		}
	}
}
