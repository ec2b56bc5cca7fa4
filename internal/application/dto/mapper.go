package dto

import (
	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
)

// PriceMapper converts between domain entities and transport DTOs.
type PriceMapper struct{}

// NewPriceMapper creates a new mapper instance.
func NewPriceMapper() *PriceMapper {
	return &PriceMapper{}
}

// ToResolveRequest converts a transport request into the engine's input.
func (m *PriceMapper) ToResolveRequest(req *GetPriceRequest) interfaces.ResolveRequest {
	return interfaces.ResolveRequest{
		Item:         req.Item,
		Wear:         req.Wear,
		Currency:     req.Currency,
		ForceRefresh: req.ForceRefresh,
	}
}

// ToPriceResponse converts one resolution outcome into its JSON shape. The
// response echoes the requested item and currency; the wear is the actually
// resolved one when the engine reports it.
func (m *PriceMapper) ToPriceResponse(req interfaces.ResolveRequest, result *entities.PriceResult) PriceResponse {
	wear := req.Wear
	if result.Wear != "" {
		wear = result.Wear
	}

	return PriceResponse{
		Item:     req.Item,
		Wear:     wear,
		Currency: req.Currency,
		Price:    result.Price,
		URL:      result.MarketURL,
		Growth:   result.Growth,
		Trend:    result.Trend,
		Source:   string(result.Source),
	}
}

// ToBatchResponse converts a batch outcome, counting resolved and failed
// items. An item counts as resolved only when it carries a price.
func (m *PriceMapper) ToBatchResponse(results []interfaces.BatchResult) BatchResolveResponse {
	response := BatchResolveResponse{
		Results: make([]BatchItemResponse, len(results)),
		Total:   len(results),
	}

	for i, r := range results {
		item := BatchItemResponse{}
		if r.Err != nil {
			item.PriceResponse = PriceResponse{
				Item:     r.Request.Item,
				Wear:     r.Request.Wear,
				Currency: r.Request.Currency,
				Growth:   entities.EmptyGrowth(),
				Source:   string(entities.SourceNotFound),
			}
			item.Error = r.Err.Error()
			response.Failed++
		} else {
			item.PriceResponse = m.ToPriceResponse(r.Request, r.Result)
			if r.Result.HasPrice() {
				response.Resolved++
			} else {
				response.Failed++
			}
		}
		response.Results[i] = item
	}
	return response
}

// ToRatesResponse converts the active exchange rates into their JSON shape.
func (m *PriceMapper) ToRatesResponse(rates entities.ExchangeRates) RatesResponse {
	response := RatesResponse{Rates: rates.Rates}
	if !rates.LastUpdated.IsZero() {
		t := rates.LastUpdated
		response.LastUpdated = &t
	}
	return response
}
