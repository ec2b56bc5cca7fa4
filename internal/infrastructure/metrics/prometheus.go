package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the skin price service.
var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skin_price_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Resolution metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_resolutions_total",
			Help: "Total number of price resolutions by provenance",
		},
		[]string{"source", "cached"},
	)

	BatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skin_price_batch_size",
			Help:    "Number of items per batch resolution request",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	// Cache metrics
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"}, // operation: get/set/clear, result: hit/miss/success/error
	)

	// History metrics
	HistoryAppendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_history_appends_total",
			Help: "Total number of price history appends",
		},
		[]string{"result"},
	)

	// External API metrics
	ExternalAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_external_api_calls_total",
			Help: "Total number of external API calls",
		},
		[]string{"service", "status_code"},
	)

	ExternalAPIRetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_external_api_retries_total",
			Help: "Total number of external API retry attempts",
		},
		[]string{"service"},
	)

	ExternalAPIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "skin_price_external_api_duration_seconds",
			Help:    "External API call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"service"},
	)

	// Exchange rate metrics
	ExchangeRateAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "skin_price_exchange_rate_age_seconds",
			Help: "Seconds since the exchange rates were last updated",
		},
	)

	ExchangeRateRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_exchange_rate_refreshes_total",
			Help: "Total number of exchange rate refresh attempts",
		},
		[]string{"result"},
	)

	// Inbound rate limiting
	RateLimitChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skin_price_rate_limit_checks_total",
			Help: "Total number of inbound rate limit checks",
		},
		[]string{"result"},
	)

	// Service info
	ServiceInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "skin_price_service_info",
			Help: "Service build and configuration information",
		},
		[]string{"version", "cache_backend", "history_backend"},
	)
)

// RecordHTTPRequest records metrics for one completed HTTP request.
func RecordHTTPRequest(method, path string, statusCode int, durationSeconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(durationSeconds)
}

// RecordResolution records the outcome of one price resolution.
func RecordResolution(source string, cached bool) {
	ResolutionsTotal.WithLabelValues(source, strconv.FormatBool(cached)).Inc()
}

// RecordCacheOperation records a cache operation outcome.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordHistoryAppend records a history append outcome.
func RecordHistoryAppend(result string) {
	HistoryAppendsTotal.WithLabelValues(result).Inc()
}

// RecordExternalAPICall records one completed external API call.
func RecordExternalAPICall(service string, statusCode int, durationSeconds float64) {
	ExternalAPICallsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
	ExternalAPIDuration.WithLabelValues(service).Observe(durationSeconds)
}

// RecordExternalAPIRetry records one retry attempt against an external API.
func RecordExternalAPIRetry(service string) {
	ExternalAPIRetriesTotal.WithLabelValues(service).Inc()
}

// RecordRateRefresh records an exchange rate refresh attempt.
func RecordRateRefresh(success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	ExchangeRateRefreshesTotal.WithLabelValues(result).Inc()
}

// RecordRateLimitResult records one inbound rate limit decision.
func RecordRateLimitResult(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "limited"
	}
	RateLimitChecksTotal.WithLabelValues(result).Inc()
}

// SetServiceInfo publishes static service metadata.
func SetServiceInfo(version, cacheBackend, historyBackend string) {
	ServiceInfo.WithLabelValues(version, cacheBackend, historyBackend).Set(1)
}
