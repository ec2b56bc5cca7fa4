package services

import (
	"math"

	"skin-price-service/internal/domain/entities"
)

// Trend classifier bands. The thresholds are fixed percent-change bounds on
// the last trendWindowSize history entries; the resulting label is a
// heuristic hint, not a forecast.
const (
	trendMinEntries  = 5
	trendWindowSize  = 10
	strongGrowthPct  = 5.0
	moderateGrowPct  = 2.0
	moderateDropPct  = -2.0
	strongDeclinePct = -5.0
)

// Trend labels and confidence tiers.
const (
	TrendStrongGrowth     = "strong growth"
	TrendModerateGrowth   = "moderate growth"
	TrendStable           = "stable"
	TrendModerateDecline  = "moderate decline"
	TrendStrongDecline    = "strong decline"
	TrendInsufficientData = "insufficient data"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ClassifyTrend labels the price direction of a key's history, ordered
// oldest to newest. Fewer than trendMinEntries entries yields the fixed
// insufficient-data label; otherwise the percent change from the first to
// the last of the most recent trendWindowSize entries selects one of five
// bands.
func ClassifyTrend(history []entities.HistoryEntry) entities.Trend {
	if len(history) < trendMinEntries {
		return entities.Trend{Label: TrendInsufficientData, Confidence: ConfidenceLow}
	}

	window := history
	if len(window) > trendWindowSize {
		window = window[len(window)-trendWindowSize:]
	}

	first := window[0].Price
	last := window[len(window)-1].Price

	percent := 0.0
	if first > 0 {
		percent = (last - first) / first * 100
	}
	rounded := math.Round(percent*10) / 10

	label, confidence := trendBand(percent)
	return entities.Trend{
		Label:         label,
		Confidence:    confidence,
		ChangePercent: &rounded,
	}
}

func trendBand(percent float64) (label, confidence string) {
	switch {
	case percent > strongGrowthPct:
		return TrendStrongGrowth, ConfidenceHigh
	case percent > moderateGrowPct:
		return TrendModerateGrowth, ConfidenceMedium
	case percent > moderateDropPct:
		return TrendStable, ConfidenceMedium
	case percent > strongDeclinePct:
		return TrendModerateDecline, ConfidenceMedium
	default:
		return TrendStrongDecline, ConfidenceHigh
	}
}
