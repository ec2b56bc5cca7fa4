package dto

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// DefaultCurrency is assumed when a request does not name one.
const DefaultCurrency = "RUB"

// supportedCurrencies are the codes the conversion layer has rates for.
var supportedCurrencies = map[string]bool{
	"USD": true,
	"RUB": true,
	"UAH": true,
	"EUR": true,
	"CNY": true,
}

// GetPriceRequest represents one single-item price lookup.
type GetPriceRequest struct {
	Item         string `json:"item"`
	Wear         string `json:"wear,omitempty"`
	Currency     string `json:"currency,omitempty"`
	ForceRefresh bool   `json:"force_refresh,omitempty"`
}

// NewGetPriceRequest builds a request from URL query parameters. The item
// name is required; wear is optional (the catalog substitutes the first
// available condition); currency defaults to RUB.
func NewGetPriceRequest(query url.Values) (*GetPriceRequest, error) {
	req := &GetPriceRequest{
		Item:         strings.TrimSpace(query.Get("item")),
		Wear:         strings.TrimSpace(query.Get("wear")),
		Currency:     strings.ToUpper(strings.TrimSpace(query.Get("currency"))),
		ForceRefresh: query.Get("force_refresh") == "true",
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the request and fills in the currency default.
func (r *GetPriceRequest) Validate() error {
	if r.Item == "" {
		return errors.New("item is required")
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if !supportedCurrencies[r.Currency] {
		return fmt.Errorf("unsupported currency: %s (supported: USD, RUB, UAH, EUR, CNY)", r.Currency)
	}
	return nil
}

// BatchResolveRequest is the JSON body of a batch price lookup.
type BatchResolveRequest struct {
	Items        []GetPriceRequest `json:"items"`
	Currency     string            `json:"currency,omitempty"`
	ForceRefresh bool              `json:"force_refresh,omitempty"`
}

// Validate checks the batch shape and normalizes every item. The top-level
// currency and force_refresh act as defaults for items that omit them.
func (r *BatchResolveRequest) Validate(maxItems int) error {
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	if maxItems > 0 && len(r.Items) > maxItems {
		return fmt.Errorf("too many items: %d (max %d)", len(r.Items), maxItems)
	}

	batchCurrency := strings.ToUpper(strings.TrimSpace(r.Currency))
	for i := range r.Items {
		item := &r.Items[i]
		item.Item = strings.TrimSpace(item.Item)
		item.Wear = strings.TrimSpace(item.Wear)
		item.Currency = strings.ToUpper(strings.TrimSpace(item.Currency))

		if item.Currency == "" {
			item.Currency = batchCurrency
		}
		if r.ForceRefresh {
			item.ForceRefresh = true
		}
		if err := item.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	return nil
}

// SetRatesRequest is the JSON body for a manual exchange rate override.
type SetRatesRequest struct {
	Rates map[string]float64 `json:"rates"`
}

// Validate checks that every supplied rate is a known currency with a
// positive multiplier.
func (r *SetRatesRequest) Validate() error {
	if len(r.Rates) == 0 {
		return errors.New("at least one rate is required")
	}
	for currency, rate := range r.Rates {
		if !supportedCurrencies[strings.ToUpper(currency)] {
			return fmt.Errorf("unsupported currency: %s", currency)
		}
		if rate <= 0 {
			return fmt.Errorf("rate for %s must be positive", currency)
		}
	}
	return nil
}
