package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ecommerce-platform/internal/middleware"
)

// Pinger is a dependency the health check probes
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler reports whether the API and its database are reachable
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		middleware.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	middleware.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "ok"})
}
