package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/domain/entities"
)

func historyWithPrices(prices ...float64) []entities.HistoryEntry {
	entries := make([]entities.HistoryEntry, len(prices))
	for i, p := range prices {
		entries[i] = entities.HistoryEntry{Timestamp: int64(i), Price: p}
	}
	return entries
}

func TestClassifyTrend_InsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		history []entities.HistoryEntry
	}{
		{"empty", nil},
		{"four entries", historyWithPrices(1, 2, 3, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ClassifyTrend(tt.history)
			assert.Equal(t, TrendInsufficientData, trend.Label)
			assert.Equal(t, ConfidenceLow, trend.Confidence)
			assert.Nil(t, trend.ChangePercent)
		})
	}
}

func TestClassifyTrend_Bands(t *testing.T) {
	tests := []struct {
		name           string
		prices         []float64
		wantLabel      string
		wantConfidence string
		wantPercent    float64
	}{
		{
			name:           "strong growth above five percent",
			prices:         []float64{100, 101, 102, 103, 110},
			wantLabel:      TrendStrongGrowth,
			wantConfidence: ConfidenceHigh,
			wantPercent:    10.0,
		},
		{
			name:           "moderate growth above two percent",
			prices:         []float64{100, 100, 100, 100, 103},
			wantLabel:      TrendModerateGrowth,
			wantConfidence: ConfidenceMedium,
			wantPercent:    3.0,
		},
		{
			name:           "stable within two percent",
			prices:         []float64{100, 99, 101, 100, 101},
			wantLabel:      TrendStable,
			wantConfidence: ConfidenceMedium,
			wantPercent:    1.0,
		},
		{
			name:           "moderate decline above minus five percent",
			prices:         []float64{100, 99, 98, 97, 96},
			wantLabel:      TrendModerateDecline,
			wantConfidence: ConfidenceMedium,
			wantPercent:    -4.0,
		},
		{
			name:           "strong decline below minus five percent",
			prices:         []float64{100, 95, 90, 85, 80},
			wantLabel:      TrendStrongDecline,
			wantConfidence: ConfidenceHigh,
			wantPercent:    -20.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend := ClassifyTrend(historyWithPrices(tt.prices...))
			assert.Equal(t, tt.wantLabel, trend.Label)
			assert.Equal(t, tt.wantConfidence, trend.Confidence)
			require.NotNil(t, trend.ChangePercent)
			assert.InDelta(t, tt.wantPercent, *trend.ChangePercent, 0.01)
		})
	}
}

func TestClassifyTrend_UsesOnlyLastTenEntries(t *testing.T) {
	// Twelve entries; the first two would signal a crash, but the last ten
	// are flat, so the trend must be stable.
	prices := []float64{1000, 900}
	for i := 0; i < 10; i++ {
		prices = append(prices, 100)
	}

	trend := ClassifyTrend(historyWithPrices(prices...))
	assert.Equal(t, TrendStable, trend.Label)
	require.NotNil(t, trend.ChangePercent)
	assert.InDelta(t, 0.0, *trend.ChangePercent, 0.01)
}

func TestClassifyTrend_ZeroFirstPriceIsStable(t *testing.T) {
	trend := ClassifyTrend(historyWithPrices(0, 10, 20, 30, 40))
	assert.Equal(t, TrendStable, trend.Label)
}
