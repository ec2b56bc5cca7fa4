package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/application/dto"
	"skin-price-service/internal/domain/entities"
)

// stubRateSource keeps rates in memory and records updates.
type stubRateSource struct {
	rates entities.ExchangeRates
}

func (s *stubRateSource) Rates() entities.ExchangeRates {
	return s.rates
}

func (s *stubRateSource) Update(ctx context.Context, rates entities.ExchangeRates) {
	s.rates = rates
}

type stubRefresher struct {
	err    error
	called bool
}

func (s *stubRefresher) RefreshNow(ctx context.Context) error {
	s.called = true
	return s.err
}

func newStubRateSource() *stubRateSource {
	return &stubRateSource{rates: entities.DefaultExchangeRates()}
}

func TestGetRates(t *testing.T) {
	source := newStubRateSource()
	handler := NewRatesHandler(source, source, nil)

	rec := httptest.NewRecorder()
	handler.GetRates(rec, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var response dto.RatesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 90.0, response.Rates["RUB"])
	assert.Equal(t, 1.0, response.Rates["USD"])
}

func TestSetRates_MergesOverride(t *testing.T) {
	source := newStubRateSource()
	handler := NewRatesHandler(source, source, nil)

	body := `{"rates":{"RUB":100.0}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SetRates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, source.rates.Rate("RUB"))
	// Untouched currencies keep their previous values.
	assert.Equal(t, 38.0, source.rates.Rate("UAH"))
}

func TestSetRates_RejectsUnknownCurrency(t *testing.T) {
	source := newStubRateSource()
	handler := NewRatesHandler(source, source, nil)

	body := `{"rates":{"GBP":0.8}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/rates", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.SetRates(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshRates_Success(t *testing.T) {
	source := newStubRateSource()
	refresher := &stubRefresher{}
	handler := NewRatesHandler(source, source, refresher)

	rec := httptest.NewRecorder()
	handler.RefreshRates(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rates/refresh", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, refresher.called)
}

func TestRefreshRates_FailureIsBadGateway(t *testing.T) {
	source := newStubRateSource()
	refresher := &stubRefresher{err: errors.New("all endpoints failed")}
	handler := NewRatesHandler(source, source, refresher)

	rec := httptest.NewRecorder()
	handler.RefreshRates(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rates/refresh", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRefreshRates_DisabledIsNotImplemented(t *testing.T) {
	source := newStubRateSource()
	handler := NewRatesHandler(source, source, nil)

	rec := httptest.NewRecorder()
	handler.RefreshRates(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rates/refresh", nil))

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}
