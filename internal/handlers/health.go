package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/benx421/backoffice/internal/api"
)

// GetHealth handles GET /health. The engine itself is in memory, so only the
// optional database can make the service unhealthy.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	if h.healthChecker == nil {
		writeJSON(w, http.StatusOK, api.Health{Status: "healthy", Database: "disabled"})
		return
	}

	pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.healthChecker.PingContext(pingCtx); err != nil {
		h.logger.Error("health check failed: database unreachable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, api.Health{Status: "unhealthy", Database: "unreachable"})
		return
	}

	writeJSON(w, http.StatusOK, api.Health{Status: "healthy", Database: "up"})
}
