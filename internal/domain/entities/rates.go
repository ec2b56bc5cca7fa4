package entities

import (
	"math"
	"time"
)

// ExchangeRates maps currency codes to their USD-relative multiplier
// (units of currency per 1 USD). USD is always 1.0.
type ExchangeRates struct {
	Rates       map[string]float64 `json:"rates"`
	LastUpdated time.Time          `json:"last_updated"`
}

// DefaultExchangeRates are the documented fallbacks used when the rate
// source is missing or unreadable.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		Rates: map[string]float64{
			"RUB": 90.0,
			"UAH": 38.0,
			"EUR": 0.92,
			"CNY": 7.2,
			"USD": 1.0,
		},
	}
}

// Rate returns the multiplier for a currency. Unknown currencies fall back
// to 1.0 so that conversion degrades to the USD price instead of failing.
func (r ExchangeRates) Rate(currency string) float64 {
	if rate, ok := r.Rates[currency]; ok && rate > 0 {
		return rate
	}
	return 1.0
}

// Convert converts a USD amount into the target currency, rounded to two
// decimal places.
func (r ExchangeRates) Convert(usd float64, currency string) float64 {
	return math.Round(usd*r.Rate(currency)*100) / 100
}
