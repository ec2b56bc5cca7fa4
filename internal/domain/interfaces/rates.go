package interfaces

import "skin-price-service/internal/domain/entities"

// RateSource supplies the current currency multipliers. Implementations
// never fail: a missing or unreadable source degrades to the documented
// default rates.
type RateSource interface {
	Rates() entities.ExchangeRates
}
