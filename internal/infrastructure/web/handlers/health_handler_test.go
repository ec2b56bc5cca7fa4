package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/infrastructure/repositories/cache"
)

func TestHealth_AlwaysHealthy(t *testing.T) {
	handler := NewHealthHandler(cache.NewMemoryCache(), 0)

	rec := httptest.NewRecorder()
	handler.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "healthy", response.Status)
}

func TestReady_HealthyWithCatalogAndCache(t *testing.T) {
	handler := NewHealthHandler(cache.NewMemoryCache(), 42)

	rec := httptest.NewRecorder()
	handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "ready", response.Status)
	assert.Equal(t, "ready", response.Services["cache"])
	assert.Equal(t, "ready", response.Services["catalog"])
}

func TestReady_EmptyCatalogIsUnhealthy(t *testing.T) {
	handler := NewHealthHandler(cache.NewMemoryCache(), 0)

	rec := httptest.NewRecorder()
	handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "unhealthy", response.Status)
	assert.Contains(t, response.Services["catalog"], "no skins loaded")
}
