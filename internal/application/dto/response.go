package dto

import (
	"time"

	"skin-price-service/internal/domain/entities"
)

// PriceResponse is the JSON payload for one resolved item.
type PriceResponse struct {
	Item     string          `json:"item"`
	Wear     string          `json:"wear,omitempty"`
	Currency string          `json:"currency"`
	Price    *float64        `json:"price"`
	URL      string          `json:"url,omitempty"`
	Growth   entities.Growth `json:"growth"`
	Trend    entities.Trend  `json:"trend"`
	Source   string          `json:"source"`
}

// BatchItemResponse pairs one batch input with its outcome. Error is set
// only when the item's resolution was aborted, e.g. by cancellation.
type BatchItemResponse struct {
	PriceResponse
	Error string `json:"error,omitempty"`
}

// BatchResolveResponse is the JSON payload of a batch lookup.
type BatchResolveResponse struct {
	Results  []BatchItemResponse `json:"results"`
	Total    int                 `json:"total"`
	Resolved int                 `json:"resolved"`
	Failed   int                 `json:"failed"`
}

// RatesResponse reports the currently active exchange rates.
type RatesResponse struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated *time.Time         `json:"last_updated,omitempty"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
