package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"skin-price-service/internal/application/dto"
	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
)

// RateRefresher triggers an immediate exchange rate refresh.
type RateRefresher interface {
	RefreshNow(ctx context.Context) error
}

// RateUpdater accepts a manual exchange rate override.
type RateUpdater interface {
	Update(ctx context.Context, rates entities.ExchangeRates)
}

// RatesHandler handles the exchange rate endpoints.
type RatesHandler struct {
	rates     interfaces.RateSource
	updater   RateUpdater
	refresher RateRefresher
	mapper    *dto.PriceMapper
}

// NewRatesHandler creates a new rates handler. The refresher may be nil when
// scheduled refreshing is disabled.
func NewRatesHandler(rates interfaces.RateSource, updater RateUpdater, refresher RateRefresher) *RatesHandler {
	return &RatesHandler{
		rates:     rates,
		updater:   updater,
		refresher: refresher,
		mapper:    dto.NewPriceMapper(),
	}
}

// GetRates handles GET /api/v1/rates.
func (h *RatesHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, h.mapper.ToRatesResponse(h.rates.Rates()))
}

// SetRates handles PUT /api/v1/rates with a manual override body.
func (h *RatesHandler) SetRates(w http.ResponseWriter, r *http.Request) {
	var request dto.SetRatesRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "request body must be valid JSON")
		return
	}
	if err := request.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
		return
	}

	ctx := r.Context()
	current := h.rates.Rates()

	merged := entities.ExchangeRates{
		Rates:       make(map[string]float64, len(current.Rates)),
		LastUpdated: time.Now().UTC(),
	}
	for currency, rate := range current.Rates {
		merged.Rates[currency] = rate
	}
	for currency, rate := range request.Rates {
		merged.Rates[strings.ToUpper(currency)] = rate
	}

	h.updater.Update(ctx, merged)
	logging.Info(ctx, "Exchange rates overridden", logging.Fields{
		"currencies": len(request.Rates),
	})

	h.writeJSONResponse(w, http.StatusOK, h.mapper.ToRatesResponse(h.rates.Rates()))
}

// RefreshRates handles POST /api/v1/rates/refresh.
func (h *RatesHandler) RefreshRates(w http.ResponseWriter, r *http.Request) {
	if h.refresher == nil {
		h.writeErrorResponse(w, http.StatusNotImplemented, "REFRESH_DISABLED", "rate refreshing is not configured")
		return
	}

	ctx := r.Context()
	if err := h.refresher.RefreshNow(ctx); err != nil {
		logging.WarnWithError(ctx, "Manual exchange rate refresh failed", err, nil)
		h.writeErrorResponse(w, http.StatusBadGateway, "REFRESH_FAILED", err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, h.mapper.ToRatesResponse(h.rates.Rates()))
}

func (h *RatesHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		_, _ = w.Write([]byte(`{"error":"ENCODING_ERROR","message":"Failed to encode response"}`))
	}
}

func (h *RatesHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) {
	h.writeJSONResponse(w, statusCode, dto.ErrorResponse{
		Error:   errorCode,
		Message: message,
		Code:    statusCode,
	})
}
