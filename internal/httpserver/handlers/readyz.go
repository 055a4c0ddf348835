package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/slapp/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool   `json:"ready"`
	Reason string `json:"reason,omitempty"`
}

// Readyz reports ready once a roster has been loaded.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.MemoryIndex == nil || d.MemoryIndex.GetLastReload().IsZero() {
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Reason: "roster not loaded"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}
