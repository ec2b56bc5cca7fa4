package interfaces

import (
	"context"

	"skin-price-service/internal/domain/entities"
)

// ResolveRequest carries one price resolution request.
type ResolveRequest struct {
	Item         string
	Wear         string
	Currency     string
	ForceRefresh bool
}

// BatchResult pairs one batch input with its outcome. Err is set only for
// context cancellation; every domain-level failure (not found, fetch
// unavailable) is reported in-band on the result.
type BatchResult struct {
	Request ResolveRequest
	Result  *entities.PriceResult
	Err     error
}

// PriceResolver is the public entry point of the price resolution engine.
type PriceResolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*entities.PriceResult, error)
	ResolveBatch(ctx context.Context, reqs []ResolveRequest) []BatchResult
	InvalidateAll(ctx context.Context) error
}
