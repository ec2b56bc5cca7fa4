package entities

import "time"

// HistoryEntry is one observed price point for an ItemKey. Timestamp is a
// unix timestamp in seconds; Price is in the currency of the key.
type HistoryEntry struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
	URL       string  `json:"url,omitempty"`
}

// NewHistoryEntry records a price observation at the current time.
func NewHistoryEntry(price float64, url string) HistoryEntry {
	return HistoryEntry{
		Timestamp: time.Now().Unix(),
		Price:     price,
		URL:       url,
	}
}

// Age returns how old the entry is relative to now.
func (e HistoryEntry) Age(now time.Time) time.Duration {
	return now.Sub(time.Unix(e.Timestamp, 0))
}
