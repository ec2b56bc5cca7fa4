package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"

	"skin-price-service/internal/domain/interfaces"
	"skin-price-service/internal/infrastructure/config"
	"skin-price-service/internal/infrastructure/logging"
	"skin-price-service/internal/infrastructure/metrics"
)

const (
	serviceName = "steam"
	// listingsMarker locates the market hash name inside a listing URL.
	listingsMarker = "/market/listings/730/"

	baseBackoff = 200 * time.Millisecond
	maxBackoff  = 2 * time.Second
)

// Client fetches marketplace prices from the Steam Community Market
// priceoverview endpoint. It is the last-resort, lower-confidence price
// source: every failure degrades to ErrUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	limiter    *rate.Limiter
}

// NewClient creates a marketplace client from configuration.
func NewClient(cfg config.SteamConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Fetch implements interfaces.PriceFetcher. It returns ErrUnavailable for
// every recoverable failure; a context cancellation is propagated as the
// context's error so the caller can distinguish the two outcomes.
func (c *Client) Fetch(ctx context.Context, marketURL, currency string) (float64, error) {
	hash, ok := marketHashName(marketURL)
	if !ok {
		logging.Warn(ctx, "Market URL has no listing hash", logging.Fields{
			"market_url": marketURL,
		})
		return 0, ErrUnavailable
	}

	endpoint := fmt.Sprintf("%s/market/priceoverview/?currency=%d&appid=730&market_hash_name=%s",
		c.baseURL, providerCurrencyCode(currency), hash)

	var price float64
	retryErr := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			p, err := c.doPriceRequest(ctx, endpoint)
			if err != nil {
				return err
			}
			price = p
			return nil
		},
		retry.Attempts(uint(c.maxRetries)),
		retry.Delay(baseBackoff),
		retry.MaxDelay(maxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errRetryable)
		}),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordExternalAPIRetry(serviceName)
			logging.Warn(ctx, "Marketplace price fetch retry", logging.Fields{
				"attempt":      n + 1,
				"max_attempts": c.maxRetries,
				"error":        err.Error(),
			})
		}),
	)

	if retryErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		logging.WarnWithError(ctx, "Marketplace price fetch failed", retryErr, logging.Fields{
			"market_url": marketURL,
			"currency":   currency,
		})
		return 0, ErrUnavailable
	}

	return price, nil
}

// doPriceRequest performs one HTTP round trip and parses the price string.
func (c *Client) doPriceRequest(ctx context.Context, endpoint string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %v", errNonRetryable, err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, fmt.Errorf("%w: context timeout/canceled", errRetryable)
		}
		return 0, fmt.Errorf("%w: %v", errRetryable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(serviceName, resp.StatusCode, requestDuration.Seconds())
	logging.ExternalRequest(ctx, serviceName, "/market/priceoverview", resp.StatusCode,
		float64(requestDuration.Nanoseconds())/1e6, nil)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("%w: HTTP %d (rate limited)", errRetryable, resp.StatusCode)
	case resp.StatusCode >= 500:
		return 0, fmt.Errorf("%w: HTTP %d (server error)", errRetryable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("%w: HTTP %d (client error)", errNonRetryable, resp.StatusCode)
	}

	var overview priceOverviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&overview); err != nil {
		return 0, fmt.Errorf("%w: failed to decode response: %v", errRetryable, err)
	}

	if !overview.Success || overview.LowestPrice == "" {
		return 0, fmt.Errorf("%w: no price in response", errNonRetryable)
	}

	price, err := parsePriceString(overview.LowestPrice)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errNonRetryable, err)
	}
	return price, nil
}

// marketHashName extracts the URL-encoded market hash from a listing URL.
func marketHashName(marketURL string) (string, bool) {
	_, hash, found := strings.Cut(marketURL, listingsMarker)
	if !found || hash == "" {
		return "", false
	}
	return hash, true
}

// currencyGlyphs are stripped from price strings before numeric parsing.
var currencyGlyphs = []string{"$", "₽", "₴", "€", "¥", "р.", "pуб.", "USD"}

// parsePriceString parses a locale-formatted price such as "$12.50",
// "1 125,50₽" or "¥1,234.56" into a decimal number.
func parsePriceString(s string) (float64, error) {
	clean := s
	for _, glyph := range currencyGlyphs {
		clean = strings.ReplaceAll(clean, glyph, "")
	}
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.TrimSpace(clean)

	clean = normalizeSeparators(clean)

	price, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("unparsable price string %q", s)
	}
	return price, nil
}

// normalizeSeparators reduces mixed thousands/decimal punctuation to a
// single '.' decimal separator. When both '.' and ',' appear, the rightmost
// one is the decimal separator; a lone ',' is a decimal comma; repeated
// separators of one kind are thousands groups.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", -1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case lastDot >= 0 && strings.Count(s, ".") > 1:
		// "1.234.56": everything before the last dot is grouping.
		s = strings.ReplaceAll(s[:lastDot], ".", "") + s[lastDot:]
	}
	return s
}

var _ interfaces.PriceFetcher = (*Client)(nil)
