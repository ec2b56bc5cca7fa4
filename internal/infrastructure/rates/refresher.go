package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/robfig/cron/v3"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
)

// ratesResponse matches the common shape of public USD-base rate APIs.
type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Refresher periodically pulls fresh USD-base exchange rates from a list of
// public endpoints and feeds them into a FileSource. Endpoints are tried in
// order; the first successful response wins.
type Refresher struct {
	source    *FileSource
	endpoints []string
	client    *resty.Client
	cron      *cron.Cron
	schedule  string
}

// NewRefresher builds a refresher bound to the given source. It does not
// start any background work until Start is called.
func NewRefresher(source *FileSource, cfg config.RatesConfig) *Refresher {
	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(1).
		SetHeader("Accept", "application/json")

	return &Refresher{
		source:    source,
		endpoints: cfg.Endpoints,
		client:    client,
		cron:      cron.New(),
		schedule:  cfg.RefreshCron,
	}
}

// Start runs one immediate refresh and schedules recurring ones. A failed
// initial refresh is logged and swallowed: the source keeps serving its
// file-backed or default rates.
func (r *Refresher) Start(ctx context.Context) error {
	if err := r.RefreshNow(ctx); err != nil {
		logging.WarnWithError(ctx, "Initial exchange rate refresh failed", err, nil)
	}

	_, err := r.cron.AddFunc(r.schedule, func() {
		refreshCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := r.RefreshNow(refreshCtx); err != nil {
			logging.WarnWithError(refreshCtx, "Scheduled exchange rate refresh failed", err, nil)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
	}

	r.cron.Start()
	logging.Info(ctx, "Exchange rate refresher started", logging.Fields{
		"schedule":  r.schedule,
		"endpoints": len(r.endpoints),
	})
	return nil
}

// Stop halts the recurring schedule and waits for a running job to finish.
func (r *Refresher) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
}

// RefreshNow tries each endpoint in order and updates the source with the
// first complete response.
func (r *Refresher) RefreshNow(ctx context.Context) error {
	var lastErr error
	for _, endpoint := range r.endpoints {
		fetched, err := r.fetch(ctx, endpoint)
		if err != nil {
			lastErr = err
			logging.Warn(ctx, "Exchange rate endpoint failed", logging.Fields{
				"endpoint": endpoint,
				"error":    err.Error(),
			})
			continue
		}

		r.source.Update(ctx, fetched)
		metrics.RecordRateRefresh(true)
		logging.Info(ctx, "Exchange rates refreshed", logging.Fields{
			"endpoint": endpoint,
			"rub":      fetched.Rate("RUB"),
			"eur":      fetched.Rate("EUR"),
		})
		return nil
	}

	metrics.RecordRateRefresh(false)
	if lastErr == nil {
		lastErr = fmt.Errorf("no exchange rate endpoints configured")
	}
	return fmt.Errorf("all exchange rate endpoints failed: %w", lastErr)
}

// fetch pulls one endpoint and validates that every tracked currency is
// present with a positive rate.
func (r *Refresher) fetch(ctx context.Context, endpoint string) (entities.ExchangeRates, error) {
	var parsed ratesResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&parsed).
		Get(endpoint)
	if err != nil {
		return entities.ExchangeRates{}, err
	}
	if resp.IsError() {
		return entities.ExchangeRates{}, fmt.Errorf("HTTP %d from %s", resp.StatusCode(), endpoint)
	}

	result := entities.ExchangeRates{
		Rates:       map[string]float64{"USD": 1.0},
		LastUpdated: time.Now().UTC(),
	}
	for _, currency := range trackedCurrencies {
		rate, ok := parsed.Rates[currency]
		if !ok || rate <= 0 {
			return entities.ExchangeRates{}, fmt.Errorf("missing rate for %s", currency)
		}
		result.Rates[currency] = rate
	}
	return result, nil
}
