package rates

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/domain/entities"
)

func TestFileSource_MissingFileUsesDefaults(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "absent.json"))

	rates := source.Rates()
	assert.Equal(t, 90.0, rates.Rate("RUB"))
	assert.Equal(t, 1.0, rates.Rate("USD"))
}

func TestFileSource_MalformedFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	source := NewFileSource(path)
	assert.Equal(t, 90.0, source.Rates().Rate("RUB"))
}

func TestFileSource_LoadsRatesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	content := `{"RUB": 95.5, "UAH": 41.0, "EUR": 0.9, "CNY": 7.0, "USD": 1.0, "last_updated": "2026-08-30T12:00:00Z"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	source := NewFileSource(path)
	rates := source.Rates()

	assert.Equal(t, 95.5, rates.Rate("RUB"))
	assert.Equal(t, 41.0, rates.Rate("UAH"))
	assert.Equal(t, 0.9, rates.Rate("EUR"))
	assert.Equal(t, 7.0, rates.Rate("CNY"))
	assert.Equal(t, 2026, rates.LastUpdated.Year())
}

func TestFileSource_MissingCurrencyFallsBackToDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"RUB": 95.5}`), 0o644))

	source := NewFileSource(path)
	rates := source.Rates()

	assert.Equal(t, 95.5, rates.Rate("RUB"))
	assert.Equal(t, 38.0, rates.Rate("UAH"))
}

func TestFileSource_UpdatePersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "rates.json")
	source := NewFileSource(path)

	source.Update(context.Background(), entities.ExchangeRates{
		Rates:       map[string]float64{"RUB": 100.0, "UAH": 42.0, "EUR": 0.95, "CNY": 7.5},
		LastUpdated: time.Now().UTC(),
	})

	assert.Equal(t, 100.0, source.Rates().Rate("RUB"))
	assert.Equal(t, 1.0, source.Rates().Rate("USD"), "USD is pinned to 1.0")

	// A fresh source reading the same file sees the persisted rates.
	reloaded := NewFileSource(path)
	assert.Equal(t, 100.0, reloaded.Rates().Rate("RUB"))
	assert.Equal(t, 42.0, reloaded.Rates().Rate("UAH"))
}
