package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
)

// Pinger checks that the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the health endpoint.
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthHandler{
		pinger: pinger,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Health handles GET /health. It opens the pool if needed and pings it.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.Ping(r.Context()); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok", Database: "ok"})
}
