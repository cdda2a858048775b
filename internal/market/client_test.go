package market

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuote struct {
	currency string
	price    float64
}

// quoteServer serves canned quotes keyed by symbol and counts requests per
// symbol.
func quoteServer(t *testing.T, quotes map[string]fakeQuote, hits map[string]int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := r.URL.Query().Get("symbols")
		hits[symbol]++
		q, ok := quotes[symbol]
		if !ok {
			fmt.Fprint(w, `{"quoteResponse":{"result":[]}}`)
			return
		}
		fmt.Fprintf(w, `{"quoteResponse":{"result":[{"symbol":%q,"currency":%q,"regularMarketPrice":%v}]}}`,
			symbol, q.currency, q.price)
	}))
}

func testClient(serverURL string) *Client {
	c := NewClient()
	c.BaseURL = serverURL
	return c
}

func TestSanitizeTicker(t *testing.T) {
	got, err := SanitizeTicker(" vas.ax ")
	require.NoError(t, err)
	assert.Equal(t, "VAS.AX", got)

	got, err = SanitizeTicker("AUDUSD=X")
	require.NoError(t, err)
	assert.Equal(t, "AUDUSD=X", got)

	_, err = SanitizeTicker("")
	assert.Error(t, err)
	_, err = SanitizeTicker("bad ticker")
	assert.Error(t, err)
	_, err = SanitizeTicker("../etc")
	assert.Error(t, err)
}

func TestPriceInAUDDirect(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VAS.AX": {currency: "AUD", price: 95.50},
	}, hits)
	defer srv.Close()

	quote, err := testClient(srv.URL).PriceInAUD(context.Background(), "vas.ax")
	require.NoError(t, err)

	assert.Equal(t, "VAS.AX", quote.Ticker)
	assert.Equal(t, "AUD", quote.Currency)
	assert.True(t, quote.PriceAUD.Equal(decimal.NewFromFloat(95.50)))
	assert.False(t, quote.Cached)
	assert.Empty(t, quote.Warning)
}

func TestPriceInAUDConvertsUSD(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VTS":      {currency: "USD", price: 100},
		"AUDUSD=X": {currency: "USD", price: 0.64},
	}, hits)
	defer srv.Close()

	quote, err := testClient(srv.URL).PriceInAUD(context.Background(), "VTS")
	require.NoError(t, err)

	// 100 USD at 0.64 AUDUSD is 156.25 AUD.
	assert.True(t, quote.PriceAUD.Equal(decimal.NewFromFloat(156.25)),
		"got %s", quote.PriceAUD.String())
	assert.Equal(t, "USD", quote.Currency)
}

func TestPriceInAUDFallbackRate(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VTS": {currency: "USD", price: 100},
		// No AUDUSD=X quote available.
	}, hits)
	defer srv.Close()

	quote, err := testClient(srv.URL).PriceInAUD(context.Background(), "VTS")
	require.NoError(t, err)
	assert.True(t, quote.PriceAUD.Equal(decimal.NewFromInt(155)),
		"fallback rate applies: got %s", quote.PriceAUD.String())
}

func TestPriceInAUDOtherCurrency(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VWRL.L":   {currency: "GBP", price: 80},
		"GBPAUD=X": {currency: "AUD", price: 1.95},
	}, hits)
	defer srv.Close()

	quote, err := testClient(srv.URL).PriceInAUD(context.Background(), "VWRL.L")
	require.NoError(t, err)
	assert.True(t, quote.PriceAUD.Equal(decimal.NewFromInt(156)), "got %s", quote.PriceAUD.String())
	assert.Empty(t, quote.Warning)
}

func TestPriceInAUDUnconvertibleCurrency(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VWRL.L": {currency: "GBP", price: 80},
	}, hits)
	defer srv.Close()

	quote, err := testClient(srv.URL).PriceInAUD(context.Background(), "VWRL.L")
	require.NoError(t, err)

	// The quote comes back unconverted, flagged with a warning.
	assert.True(t, quote.PriceAUD.Equal(decimal.NewFromInt(80)))
	assert.Contains(t, quote.Warning, "GBP")
}

func TestPriceInAUDUnknownSymbol(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, nil, hits)
	defer srv.Close()

	_, err := testClient(srv.URL).PriceInAUD(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestPriceInAUDCaching(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VAS.AX": {currency: "AUD", price: 95.50},
	}, hits)
	defer srv.Close()

	client := testClient(srv.URL)
	ctx := context.Background()

	first, err := client.PriceInAUD(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := client.PriceInAUD(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, second.PriceAUD.Equal(first.PriceAUD))
	assert.Equal(t, 1, hits["VAS.AX"], "second lookup must not hit the server")
}

func TestPriceInAUDCacheExpiry(t *testing.T) {
	hits := map[string]int{}
	srv := quoteServer(t, map[string]fakeQuote{
		"VAS.AX": {currency: "AUD", price: 95.50},
	}, hits)
	defer srv.Close()

	client := testClient(srv.URL)
	current := time.Now()
	client.now = func() time.Time { return current }
	ctx := context.Background()

	_, err := client.PriceInAUD(ctx, "VAS.AX")
	require.NoError(t, err)

	current = current.Add(cacheTTL + time.Second)
	quote, err := client.PriceInAUD(ctx, "VAS.AX")
	require.NoError(t, err)
	assert.False(t, quote.Cached)
	assert.Equal(t, 2, hits["VAS.AX"])
}

func TestPriceInAUDServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).PriceInAUD(context.Background(), "VAS.AX")
	assert.Error(t, err)
}
