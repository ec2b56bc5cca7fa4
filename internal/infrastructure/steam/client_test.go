package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skin-price-service/internal/infrastructure/config"
)

const testListingURL = "https://steamcommunity.com/market/listings/730/AK-47%20%7C%20Redline%20%28Field-Tested%29"

func newTestClient(baseURL string) *Client {
	return NewClient(config.SteamConfig{
		BaseURL:           baseURL,
		Timeout:           2 * time.Second,
		MaxRetries:        3,
		RequestsPerSecond: 1000,
	})
}

func TestParsePriceString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{"plain dollars", "$12.50", 12.50, false},
		{"dollars with thousands", "$1,234.56", 1234.56, false},
		{"rubles with comma decimal", "1125,50₽", 1125.50, false},
		{"rubles with space grouping", "1 125,50 ₽", 1125.50, false},
		{"rubles legacy glyph", "1125,50 pуб.", 1125.50, false},
		{"hryvnia", "460,99₴", 460.99, false},
		{"euros", "11,50€", 11.50, false},
		{"yuan with dot decimal", "¥88.88", 88.88, false},
		{"usd suffix", "12.50 USD", 12.50, false},
		{"dot grouping comma decimal", "1.234,56€", 1234.56, false},
		{"multiple dot grouping", "1.234.56", 1234.56, false},
		{"integer", "$15", 15, false},
		{"garbage", "N/A", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePriceString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarketHashName(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantHash string
		wantOK   bool
	}{
		{
			name:     "valid listing url",
			url:      testListingURL,
			wantHash: "AK-47%20%7C%20Redline%20%28Field-Tested%29",
			wantOK:   true,
		},
		{
			name:   "missing marker",
			url:    "https://example.com/foo",
			wantOK: false,
		},
		{
			name:   "marker with empty hash",
			url:    "https://steamcommunity.com/market/listings/730/",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, ok := marketHashName(tt.url)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantHash, hash)
			}
		})
	}
}

func TestProviderCurrencyCode(t *testing.T) {
	assert.Equal(t, 1, providerCurrencyCode("USD"))
	assert.Equal(t, 5, providerCurrencyCode("RUB"))
	assert.Equal(t, 18, providerCurrencyCode("UAH"))
	assert.Equal(t, 3, providerCurrencyCode("EUR"))
	assert.Equal(t, 23, providerCurrencyCode("CNY"))
	assert.Equal(t, 1, providerCurrencyCode("GBP"))
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/market/priceoverview/", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("currency"))
		assert.Equal(t, "730", r.URL.Query().Get("appid"))
		assert.NotEmpty(t, r.URL.Query().Get("market_hash_name"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"lowest_price":"$12.50","volume":"120"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	price, err := client.Fetch(context.Background(), testListingURL, "USD")
	require.NoError(t, err)
	assert.Equal(t, 12.50, price)
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"lowest_price":"$5.00"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	price, err := client.Fetch(context.Background(), testListingURL, "USD")
	require.NoError(t, err)
	assert.Equal(t, 5.0, price)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetch_ClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Fetch(context.Background(), testListingURL, "USD")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetch_UnsuccessfulResponseIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Fetch(context.Background(), testListingURL, "USD")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_BadMarketURLIsUnavailable(t *testing.T) {
	client := newTestClient("http://localhost:0")

	_, err := client.Fetch(context.Background(), "https://example.com/not-a-listing", "USD")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFetch_CancelledContextPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success":true,"lowest_price":"$1.00"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Fetch(ctx, testListingURL, "USD")
	assert.ErrorIs(t, err, context.Canceled)
}
