package services

import (
	"fmt"
	"time"

	"skin-price-service/internal/domain/entities"
)

// Lookback window boundaries for the growth report.
const (
	window24h = 24 * time.Hour
	window7d  = 168 * time.Hour
	window30d = 720 * time.Hour
)

// currencySymbols maps currency codes to the glyph used in the growth text.
var currencySymbols = map[string]string{
	"USD": "$",
	"RUB": "₽",
	"UAH": "₴",
	"EUR": "€",
	"CNY": "¥",
}

// CalculateGrowth derives the 24h/7d/30d deltas of currentPrice against the
// given history, ordered oldest to newest. The history is scanned newest to
// oldest and each window's reference is the most recent entry inside that
// window, which biases the comparison toward very recent observations. At
// least two entries are required to attempt any window; a window with no
// entry, or whose reference price is zero, reports "N/A".
func CalculateGrowth(history []entities.HistoryEntry, currentPrice float64, currency string, now time.Time) entities.Growth {
	if len(history) < 2 {
		return entities.EmptyGrowth()
	}

	var ref24h, ref7d, ref30d *float64
	for i := len(history) - 1; i >= 0; i-- {
		entry := history[i]
		age := entry.Age(now)

		if age <= window24h && ref24h == nil {
			ref24h = &history[i].Price
		}
		if age <= window7d && ref7d == nil {
			ref7d = &history[i].Price
		}
		if age <= window30d && ref30d == nil {
			ref30d = &history[i].Price
		}
		if ref24h != nil && ref7d != nil && ref30d != nil {
			break
		}
	}

	symbol := currencySymbol(currency)
	return entities.Growth{
		H24: formatDelta(currentPrice, ref24h, symbol),
		D7:  formatDelta(currentPrice, ref7d, symbol),
		D30: formatDelta(currentPrice, ref30d, symbol),
	}
}

func currencySymbol(currency string) string {
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol
	}
	return "$"
}

// formatDelta renders one window's delta as "<change><symbol> (<percent>%)"
// with a '+' prefix on positive values only.
func formatDelta(currentPrice float64, ref *float64, symbol string) string {
	if ref == nil || *ref == 0 {
		return entities.GrowthNotAvailable
	}

	change := currentPrice - *ref
	percent := 0.0
	if *ref > 0 {
		percent = change / *ref * 100
	}

	return fmt.Sprintf("%s%.2f%s (%s%.1f%%)",
		signPrefix(change), change, symbol, signPrefix(percent), percent)
}

func signPrefix(v float64) string {
	if v > 0 {
		return "+"
	}
	return ""
}
