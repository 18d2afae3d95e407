package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jwebster45206/pompeii/internal/storage"
	"github.com/jwebster45206/pompeii/pkg/world"
)

const serviceName = "pompeii"

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Service    string            `json:"service"`
	Components map[string]string `json:"components"`
	World      WorldSummary      `json:"world"`
}

// WorldSummary sizes the compiled-in game tables a new session plays on.
type WorldSummary struct {
	Locations int `json:"locations"`
	Items     int `json:"items"`
	Residents int `json:"residents"`
	Doors     int `json:"doors"`
}

type HealthHandler struct {
	storage    storage.Storage
	logger     *slog.Logger
	checkWorld func() error
}

func NewHealthHandler(storage storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		storage:    storage,
		logger:     logger,
		checkWorld: world.Check,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	h.logger.Debug("Health check requested",
		"method", r.Method,
		"path", r.URL.Path,
		"remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := make(map[string]string)
	overallStatus := "healthy"

	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Warn("Storage health check failed", "error", err)
		components["storage"] = "unhealthy"
		overallStatus = "degraded"
	} else {
		components["storage"] = "healthy"
	}

	// A broken world table means every new session is unwinnable.
	if err := h.checkWorld(); err != nil {
		h.logger.Error("World data check failed", "error", err)
		components["world"] = "invalid"
		overallStatus = "degraded"
	} else {
		components["world"] = "valid"
	}

	response := HealthResponse{
		Status:     overallStatus,
		Timestamp:  time.Now(),
		Service:    serviceName,
		Components: components,
		World: WorldSummary{
			Locations: len(world.LocationOrder),
			Items:     len(world.ItemOrder),
			Residents: len(world.NPCOrder),
			Doors:     len(world.DoorRules()),
		},
	}

	statusCode := http.StatusOK
	if overallStatus != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Error encoding health response",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path)
	}
}
