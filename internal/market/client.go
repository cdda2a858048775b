// Package market fetches live unit prices for portfolio holdings and
// converts them to AUD.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const (
	defaultBaseURL = "https://query1.finance.yahoo.com"
	cacheTTL       = 5 * time.Minute
)

var tickerPattern = regexp.MustCompile(`^[A-Z0-9.\-=]+$`)

// fallbackUSDToAUD is used when the FX quote is unavailable. Stale but
// bounded, which beats failing every USD-denominated lookup.
var fallbackUSDToAUD = decimal.NewFromFloat(1.55)

// Quote is a priced holding, always carrying an AUD conversion.
type Quote struct {
	Ticker   string          `json:"ticker"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	PriceAUD decimal.Decimal `json:"price_aud"`
	Cached   bool            `json:"cached"`
	Warning  string          `json:"warning,omitempty"`
}

type cachedQuote struct {
	quote   Quote
	fetched time.Time
}

type cachedRate struct {
	rate    decimal.Decimal
	fetched time.Time
}

// Client looks up market prices against a Yahoo-style quote endpoint with a
// short-lived in-memory cache. The zero BaseURL targets the public endpoint;
// tests point it at a local server.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string

	mu      sync.Mutex
	cache   map[string]cachedQuote
	fxCache *cachedRate
	now     func() time.Time
}

// NewClient creates a market price client with a 10 second request timeout.
func NewClient() *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    defaultBaseURL,
		cache:      make(map[string]cachedQuote),
		now:        time.Now,
	}
}

// SanitizeTicker upper-cases and validates a ticker symbol.
func SanitizeTicker(ticker string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(ticker))
	if t == "" {
		return "", fmt.Errorf("ticker is required")
	}
	if !tickerPattern.MatchString(t) {
		return "", fmt.Errorf("invalid ticker format %q", ticker)
	}
	return t, nil
}

// PriceInAUD returns the current price for a ticker converted to AUD.
// Results are cached for five minutes. A quote in a currency whose FX rate
// cannot be fetched is returned unconverted with a warning instead of an
// error.
func (c *Client) PriceInAUD(ctx context.Context, ticker string) (*Quote, error) {
	symbol, err := SanitizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if cached, ok := c.cache[symbol]; ok && c.now().Sub(cached.fetched) < cacheTTL {
		q := cached.quote
		q.Cached = true
		c.mu.Unlock()
		return &q, nil
	}
	c.mu.Unlock()

	price, currency, err := c.fetchQuote(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price for %q: %w", symbol, err)
	}

	quote := Quote{Ticker: symbol, Price: price, Currency: currency, PriceAUD: price}
	switch currency {
	case "AUD":
	case "USD":
		quote.PriceAUD = price.Mul(c.usdToAUDRate(ctx))
	default:
		fxPrice, _, fxErr := c.fetchQuote(ctx, currency+"AUD=X")
		if fxErr != nil || !fxPrice.IsPositive() {
			quote.Warning = fmt.Sprintf("could not convert %s to AUD", currency)
			return &quote, nil
		}
		quote.PriceAUD = price.Mul(fxPrice)
	}
	quote.PriceAUD = quote.PriceAUD.Round(2)

	c.mu.Lock()
	c.cache[symbol] = cachedQuote{quote: quote, fetched: c.now()}
	c.mu.Unlock()
	return &quote, nil
}

// usdToAUDRate fetches the USD to AUD rate via the AUDUSD=X quote, caching it
// alongside prices. Falls back to the last known rate, then to a fixed
// constant.
func (c *Client) usdToAUDRate(ctx context.Context) decimal.Decimal {
	c.mu.Lock()
	if c.fxCache != nil && c.now().Sub(c.fxCache.fetched) < cacheTTL {
		rate := c.fxCache.rate
		c.mu.Unlock()
		return rate
	}
	c.mu.Unlock()

	audusd, _, err := c.fetchQuote(ctx, "AUDUSD=X")
	if err != nil || !audusd.IsPositive() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.fxCache != nil {
			return c.fxCache.rate
		}
		return fallbackUSDToAUD
	}

	// AUDUSD=X quotes 1 AUD in USD, so invert it.
	rate := decimal.NewFromInt(1).Div(audusd)
	c.mu.Lock()
	c.fxCache = &cachedRate{rate: rate, fetched: c.now()}
	c.mu.Unlock()
	return rate
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			Symbol             string  `json:"symbol"`
			Currency           string  `json:"currency"`
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

func (c *Client) fetchQuote(ctx context.Context, symbol string) (decimal.Decimal, string, error) {
	endpoint := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return decimal.Zero, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, "", fmt.Errorf("quote endpoint returned status %d", resp.StatusCode)
	}

	var parsed quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, "", err
	}

	results := parsed.QuoteResponse.Result
	if len(results) == 0 || results[0].RegularMarketPrice <= 0 {
		return decimal.Zero, "", fmt.Errorf("no price data for %q", symbol)
	}

	currency := results[0].Currency
	if currency == "" {
		currency = "USD"
	}
	return decimal.NewFromFloat(results[0].RegularMarketPrice), currency, nil
}
