package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/repositories/cache"
)

// HealthResponse is the payload of the health endpoints.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthHandler handles the liveness and readiness endpoints.
type HealthHandler struct {
	cacheBackend interfaces.Cache
	catalogSkins int
}

// NewHealthHandler creates a new health handler. catalogSkins is the number
// of skins loaded at startup; a zero catalog marks the service not ready.
func NewHealthHandler(cacheBackend interfaces.Cache, catalogSkins int) *HealthHandler {
	return &HealthHandler{
		cacheBackend: cacheBackend,
		catalogSkins: catalogSkins,
	}
}

// Health verifies that the process is running. It never checks dependencies.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  map[string]string{"service": "running"},
	})
}

// Ready verifies that the service can serve traffic: the cache backend
// answers and the catalog loaded at least one skin.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	services := make(map[string]string)
	healthy := true

	// A miss on the probe key still proves the backend is reachable.
	if _, err := h.cacheBackend.Get(ctx, "readiness:probe"); err != nil && !cache.IsMiss(err) {
		services["cache"] = "error: " + err.Error()
		healthy = false
	} else {
		services["cache"] = "ready"
	}

	if h.catalogSkins == 0 {
		services["catalog"] = "error: no skins loaded"
		healthy = false
	} else {
		services["catalog"] = "ready"
	}

	status, code := "ready", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	h.writeJSONResponse(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Services:  services,
	})
}

func (h *HealthHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
	}
}
