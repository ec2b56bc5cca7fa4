package handlers

import (
	"encoding/json"
	"net/http"

	"skin-price-service/internal/application/dto"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
)

// PriceHandler handles the price resolution endpoints.
type PriceHandler struct {
	resolver      interfaces.PriceResolver
	mapper        *dto.PriceMapper
	maxBatchItems int
}

// NewPriceHandler creates a new price handler.
func NewPriceHandler(resolver interfaces.PriceResolver, maxBatchItems int) *PriceHandler {
	return &PriceHandler{
		resolver:      resolver,
		mapper:        dto.NewPriceMapper(),
		maxBatchItems: maxBatchItems,
	}
}

// GetPrice handles GET /api/v1/price?item=...&wear=...&currency=...
func (h *PriceHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	request, err := dto.NewGetPriceRequest(r.URL.Query())
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	ctx := r.Context()
	resolveReq := h.mapper.ToResolveRequest(request)

	result, err := h.resolver.Resolve(ctx, resolveReq)
	if err != nil {
		logging.ErrorWithError(ctx, "Price resolution aborted", err, logging.Fields{
			"item":     request.Item,
			"currency": request.Currency,
		})
		h.writeErrorResponse(w, http.StatusServiceUnavailable, "RESOLUTION_ABORTED", err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, h.mapper.ToPriceResponse(resolveReq, result))
}

// ResolveBatch handles POST /api/v1/prices/batch. A fully failed batch
// answers 503, a partially resolved one 206, a fully resolved one 200.
func (h *PriceHandler) ResolveBatch(w http.ResponseWriter, r *http.Request) {
	var request dto.BatchResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}
	if err := request.Validate(h.maxBatchItems); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	ctx := r.Context()
	resolveReqs := make([]interfaces.ResolveRequest, len(request.Items))
	for i := range request.Items {
		resolveReqs[i] = h.mapper.ToResolveRequest(&request.Items[i])
	}

	logging.Info(ctx, "Resolving price batch", logging.Fields{
		"items_count": len(resolveReqs),
	})

	results := h.resolver.ResolveBatch(ctx, resolveReqs)
	response := h.mapper.ToBatchResponse(results)

	status := http.StatusOK
	switch {
	case response.Resolved == 0:
		status = http.StatusServiceUnavailable
	case response.Failed > 0:
		status = http.StatusPartialContent
		logging.Warn(ctx, "Partial success in batch resolution", logging.Fields{
			"resolved": response.Resolved,
			"failed":   response.Failed,
		})
	}

	h.writeJSONResponse(w, status, response)
}

// InvalidateCache handles DELETE /api/v1/cache.
func (h *PriceHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.resolver.InvalidateAll(ctx); err != nil {
		logging.ErrorWithError(ctx, "Cache invalidation failed", err, nil)
		h.writeErrorResponse(w, http.StatusInternalServerError, "CACHE_ERROR", err.Error())
		return
	}

	logging.Info(ctx, "Price cache invalidated", nil)
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

func (h *PriceHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
	}
}

func (h *PriceHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	h.writeJSONResponse(w, statusCode, dto.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Code:    statusCode,
	})
}
