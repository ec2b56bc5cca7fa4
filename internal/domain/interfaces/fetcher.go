package interfaces

import "context"

// PriceFetcher is the fallback marketplace lookup used when the catalog has
// no usable base price. Implementations return a provider-specific
// "unavailable" error for any network, protocol or parse failure; context
// cancellation is propagated as the context's error so callers can tell the
// two apart.
type PriceFetcher interface {
	Fetch(ctx context.Context, marketURL, currency string) (float64, error)
}
