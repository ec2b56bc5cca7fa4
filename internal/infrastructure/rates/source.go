package rates

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"skin-price-service/internal/domain/entities"
	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
)

// trackedCurrencies are the non-USD currencies persisted in the rates file.
var trackedCurrencies = []string{"RUB", "UAH", "EUR", "CNY"}

// fileRates is the on-disk shape of the rates file.
type fileRates struct {
	RUB         float64 `json:"RUB"`
	UAH         float64 `json:"UAH"`
	EUR         float64 `json:"EUR"`
	CNY         float64 `json:"CNY"`
	USD         float64 `json:"USD"`
	LastUpdated string  `json:"last_updated,omitempty"`
	Source      string  `json:"source,omitempty"`
}

// FileSource is a file-backed exchange rate source. Reads never fail: a
// missing or unreadable file degrades to the documented default rates.
type FileSource struct {
	path string

	mu      sync.RWMutex
	current entities.ExchangeRates
}

// NewFileSource loads the rates file once and keeps the snapshot in memory.
func NewFileSource(path string) *FileSource {
	s := &FileSource{path: path}
	s.current = s.load()
	return s
}

// Rates implements interfaces.RateSource.
func (s *FileSource) Rates() entities.ExchangeRates {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.current.LastUpdated.IsZero() {
		metrics.ExchangeRateAge.Set(time.Since(s.current.LastUpdated).Seconds())
	}
	return s.current
}

// Update replaces the in-memory snapshot and persists it to the file. A
// failed write keeps the in-memory snapshot, so callers still see the new
// rates until the next restart.
func (s *FileSource) Update(ctx context.Context, updated entities.ExchangeRates) {
	updated.Rates["USD"] = 1.0

	s.mu.Lock()
	s.current = updated
	s.mu.Unlock()

	if err := s.persist(updated); err != nil {
		logging.WarnWithError(ctx, "Failed to persist exchange rates", err, logging.Fields{
			"path": s.path,
		})
	}
}

// load reads the rates file, falling back to defaults for the whole file or
// for any missing currency.
func (s *FileSource) load() entities.ExchangeRates {
	ctx := context.Background()
	defaults := entities.DefaultExchangeRates()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.WarnWithError(ctx, "Failed to read exchange rates file, using defaults", err, logging.Fields{
				"path": s.path,
			})
		}
		return defaults
	}

	var parsed fileRates
	if err := json.Unmarshal(data, &parsed); err != nil {
		logging.WarnWithError(ctx, "Malformed exchange rates file, using defaults", err, logging.Fields{
			"path": s.path,
		})
		return defaults
	}

	result := entities.ExchangeRates{
		Rates: map[string]float64{
			"RUB": orDefault(parsed.RUB, defaults.Rates["RUB"]),
			"UAH": orDefault(parsed.UAH, defaults.Rates["UAH"]),
			"EUR": orDefault(parsed.EUR, defaults.Rates["EUR"]),
			"CNY": orDefault(parsed.CNY, defaults.Rates["CNY"]),
			"USD": 1.0,
		},
	}
	if parsed.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339, parsed.LastUpdated); err == nil {
			result.LastUpdated = t
		}
	}
	return result
}

func (s *FileSource) persist(r entities.ExchangeRates) error {
	out := fileRates{
		RUB: r.Rate("RUB"),
		UAH: r.Rate("UAH"),
		EUR: r.Rate("EUR"),
		CNY: r.Rate("CNY"),
		USD: 1.0,
	}
	if !r.LastUpdated.IsZero() {
		out.LastUpdated = r.LastUpdated.Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}

func orDefault(v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	return fallback
}

var _ interfaces.RateSource = (*FileSource)(nil)
