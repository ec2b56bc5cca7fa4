package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
	"skin-price-service/internal/infrastructure/ratelimit"
	"skin-price-service/internal/infrastructure/web/handlers"
	"skin-price-service/internal/infrastructure/web/middleware"
)

// Handlers groups the HTTP handlers wired into the router.
type Handlers struct {
	Price  *handlers.PriceHandler
	Rates  *handlers.RatesHandler
	Health *handlers.HealthHandler
}

// NewRouter builds the full route table with the middleware chain applied:
// tracing, metrics, then rate limiting.
func NewRouter(h Handlers, rateLimiter *ratelimit.Middleware) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/ready", h.Health.Ready).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/price", h.Price.GetPrice).Methods(http.MethodGet)
	api.HandleFunc("/prices/batch", h.Price.ResolveBatch).Methods(http.MethodPost)
	api.HandleFunc("/cache", h.Price.InvalidateCache).Methods(http.MethodDelete)
	api.HandleFunc("/rates", h.Rates.GetRates).Methods(http.MethodGet)
	api.HandleFunc("/rates", h.Rates.SetRates).Methods(http.MethodPut)
	api.HandleFunc("/rates/refresh", h.Rates.RefreshRates).Methods(http.MethodPost)

	var handler http.Handler = router
	handler = rateLimiter.Handler(handler)
	handler = metrics.HTTPMetricsMiddleware(handler)
	handler = middleware.RequestTracingMiddleware(handler)
	return handler
}

// Server encapsulates the HTTP server configuration.
type Server struct {
	httpServer *http.Server
	port       int
}

// NewServer creates a new server instance.
func NewServer(handler http.Handler, port int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		port: port,
	}
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	ctx := context.Background()

	logging.Info(ctx, "HTTP server starting", logging.Fields{
		"port": s.port,
	})
	logging.Info(ctx, "Available endpoints", logging.Fields{
		"endpoints": []string{
			fmt.Sprintf("GET    http://localhost:%d/health", s.port),
			fmt.Sprintf("GET    http://localhost:%d/ready", s.port),
			fmt.Sprintf("GET    http://localhost:%d/metrics", s.port),
			fmt.Sprintf("GET    http://localhost:%d/api/v1/price?item=AK-47+%%7C+Redline&wear=Field-Tested&currency=RUB", s.port),
			fmt.Sprintf("POST   http://localhost:%d/api/v1/prices/batch", s.port),
			fmt.Sprintf("DELETE http://localhost:%d/api/v1/cache", s.port),
			fmt.Sprintf("GET    http://localhost:%d/api/v1/rates", s.port),
			fmt.Sprintf("POST   http://localhost:%d/api/v1/rates/refresh", s.port),
		},
	})

	return s.httpServer.ListenAndServe()
}

// Stop shuts the HTTP server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	logging.Info(ctx, "Stopping HTTP server gracefully", logging.Fields{
		"port": s.port,
	})
	return s.httpServer.Shutdown(ctx)
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}
