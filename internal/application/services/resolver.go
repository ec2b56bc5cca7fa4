package services

import (
	"context"
	"sync"
	"time"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
	"skin-price-service/internal/infrastructure/repositories/cache"
)

// defaultCurrency is assumed when a request does not name one.
const defaultCurrency = "RUB"

// ResolverService is the price resolution engine. It orchestrates the cache,
// the static catalog, the marketplace fallback, currency conversion and the
// per-key price history, and degrades every failure to a well-defined
// partial result instead of an error.
type ResolverService struct {
	resultCache *cache.ResultCache
	catalog     interfaces.Catalog
	fetcher     interfaces.PriceFetcher
	history     interfaces.HistoryStore
	rates       interfaces.RateSource

	historyDepth int
	batchWorkers int
}

// NewResolverService wires the engine's collaborators together.
func NewResolverService(
	resultCache *cache.ResultCache,
	catalog interfaces.Catalog,
	fetcher interfaces.PriceFetcher,
	history interfaces.HistoryStore,
	rates interfaces.RateSource,
	historyCfg config.HistoryConfig,
	batchCfg config.BatchConfig,
) *ResolverService {
	workers := batchCfg.Workers
	if workers <= 0 {
		workers = 1
	}
	depth := historyCfg.MaxEntries
	if depth <= 0 {
		depth = 100
	}

	return &ResolverService{
		resultCache:  resultCache,
		catalog:      catalog,
		fetcher:      fetcher,
		history:      history,
		rates:        rates,
		historyDepth: depth,
		batchWorkers: workers,
	}
}

// Resolve implements interfaces.PriceResolver. The returned error is non-nil
// only for context cancellation; every domain-level failure (unknown item,
// marketplace unavailable) is reported in-band through the result's Source
// and a nil Price.
func (s *ResolverService) Resolve(ctx context.Context, req interfaces.ResolveRequest) (*entities.PriceResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	key := entities.NewItemKey(req.Item, req.Wear, currency)

	if !req.ForceRefresh {
		if cached, ok := s.resultCache.Get(ctx, key); ok {
			metrics.RecordResolution(string(cached.Source), true)
			return cached, nil
		}
	}

	record, found := s.catalog.Resolve(key.Name, key.Wear)
	if !found {
		logging.Debug(ctx, "Item not found in catalog", logging.Fields{
			"item": key.Name,
			"wear": key.Wear,
		})
		metrics.RecordResolution(string(entities.SourceNotFound), false)
		return entities.NewNotFoundResult(), nil
	}

	priceUSD := record.PriceUSD
	source := entities.SourceLocalCatalog

	if !record.HasLocalPrice() {
		source = entities.SourceExternalFetch
		fetched, err := s.fetcher.Fetch(ctx, record.MarketURL, "USD")
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Marketplace unavailable: report which path was attempted, with
			// no price and no cache or history write.
			metrics.RecordResolution(string(source), false)
			return &entities.PriceResult{
				MarketURL: record.MarketURL,
				Wear:      record.Wear,
				Growth:    entities.EmptyGrowth(),
				Trend:     entities.Trend{Label: TrendInsufficientData, Confidence: ConfidenceLow},
				Source:    source,
			}, nil
		}
		priceUSD = fetched
	}

	finalPrice := s.rates.Rates().Convert(priceUSD, key.Currency)

	// Growth and trend are computed against the history as it stood before
	// this observation, then the observation is appended.
	recent, err := s.history.Recent(ctx, key.String(), s.historyDepth)
	if err != nil {
		logging.WarnWithError(ctx, "History read failed, reporting empty growth", err, logging.Fields{
			"key": key.String(),
		})
		recent = nil
	}

	result := &entities.PriceResult{
		Price:     &finalPrice,
		MarketURL: record.MarketURL,
		Wear:      record.Wear,
		Growth:    CalculateGrowth(recent, finalPrice, key.Currency, time.Now()),
		Trend:     ClassifyTrend(recent),
		Source:    source,
	}

	if err := s.history.Append(ctx, key.String(), entities.NewHistoryEntry(finalPrice, record.MarketURL)); err != nil {
		metrics.RecordHistoryAppend("error")
		logging.WarnWithError(ctx, "History append failed", err, logging.Fields{
			"key": key.String(),
		})
	} else {
		metrics.RecordHistoryAppend("success")
	}

	if err := s.resultCache.Set(ctx, key, result); err != nil {
		logging.WarnWithError(ctx, "Cache write failed", err, logging.Fields{
			"key": key.String(),
		})
	}

	metrics.RecordResolution(string(source), false)
	return result, nil
}

// ResolveBatch resolves many requests concurrently through a bounded worker
// pool. Results keep the input order; one request's failure never affects
// its siblings, and a cancelled context marks the remaining requests with
// the context's error.
func (s *ResolverService) ResolveBatch(ctx context.Context, reqs []interfaces.ResolveRequest) []interfaces.BatchResult {
	metrics.BatchSize.Observe(float64(len(reqs)))

	results := make([]interfaces.BatchResult, len(reqs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	workers := s.batchWorkers
	if workers > len(reqs) {
		workers = len(reqs)
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				result, err := s.Resolve(ctx, reqs[idx])
				results[idx] = interfaces.BatchResult{
					Request: reqs[idx],
					Result:  result,
					Err:     err,
				}
			}
		}()
	}

	for idx := range reqs {
		results[idx].Request = reqs[idx]
		select {
		case jobs <- idx:
		case <-ctx.Done():
			results[idx].Err = ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	return results
}

// InvalidateAll drops every cached price result. History is untouched.
func (s *ResolverService) InvalidateAll(ctx context.Context) error {
	return s.resultCache.InvalidateAll(ctx)
}

var _ interfaces.PriceResolver = (*ResolverService)(nil)
