package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinGeckoRequest(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "markets.json"))
	require.NoError(t, err)

	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	s := NewCoinGecko(srv.URL+"/", time.Second)
	records, err := s.Load(context.Background())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/coins/markets", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "usd", q.Get("vs_currency"))
	assert.Equal(t, "1h,24h,7d", q.Get("price_change_percentage"))
	assert.Equal(t, "market_cap_desc", q.Get("order"))

	require.Len(t, records, 2)
	assert.Equal(t, "bitcoin", records[0].ID)
	assert.True(t, records[0].CurrentPrice.Valid)
	require.NotNil(t, records[0].MarketCapRank)
	assert.Equal(t, 1, *records[0].MarketCapRank)
	assert.False(t, records[1].PriceChangePercentage1h.Valid)
	assert.Equal(t, "-0.01", records[1].PriceChangePercentage24h.Decimal.String())
}

func TestCoinGeckoFailures(t *testing.T) {
	cases := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"status":{"error_code":429,"error_message":"You've exceeded the Rate Limit."}}`))
			},
			want: "Rate Limit",
		},
		{
			name: "decode",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"not":"a list"}`))
			},
			want: "decode response",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(tc.handler)
			defer srv.Close()

			_, err := NewCoinGecko(srv.URL, time.Second).Load(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFetch))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestCoinGeckoTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewCoinGecko(url, time.Second).Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestCoinGeckoURLDefaults(t *testing.T) {
	u, err := (&CoinGecko{}).URL()
	require.NoError(t, err)
	assert.Contains(t, u, DefaultBaseURL+"/coins/markets?")
}

func TestFileSource(t *testing.T) {
	records, err := File{Path: filepath.Join("testdata", "markets.json")}.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = File{Path: filepath.Join("testdata", "markets.yaml")}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "dogecoin", records[1].ID)
	assert.Equal(t, "0.1234", records[1].CurrentPrice.Decimal.String())
	assert.False(t, records[1].PriceChangePercentage7d.Valid)

	_, err = File{Path: filepath.Join("testdata", "missing.json")}.Load(context.Background())
	assert.ErrorIs(t, err, ErrFetch)

	_, err = File{}.Load(context.Background())
	assert.ErrorIs(t, err, ErrFetch)
}

const mixedListing = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":67000,"low_24h":66000,"high_24h":68000,"price_change_percentage_24h":1.5},
  {"id":"bad-price","symbol":"bp","name":"Bad Price","current_price":"n/a","low_24h":1,"high_24h":2,"price_change_percentage_24h":0.5},
  {"id":"bad-symbol","symbol":123,"name":"Bad Symbol","current_price":1,"low_24h":1,"high_24h":2,"price_change_percentage_24h":0.5},
  {"id":"bad-rank","symbol":"br","name":"Bad Rank","market_cap_rank":1.5,"current_price":1,"low_24h":1,"high_24h":2,"price_change_percentage_24h":0.5},
  42
]`

func TestCoinGeckoKeepsListingPastMalformedEntries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(mixedListing))
	}))
	defer srv.Close()

	records, err := NewCoinGecko(srv.URL, time.Second).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.NoError(t, records[0].Err)
	assert.Equal(t, "bitcoin", records[0].ID)
	assert.Equal(t, "67000", records[0].CurrentPrice.Decimal.String())

	for i, id := range []string{"bad-price", "bad-symbol", "bad-rank", ""} {
		assert.Error(t, records[i+1].Err, id)
		assert.Equal(t, id, records[i+1].ID)
	}
}

func TestFileSourceKeepsListingPastMalformedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markets.json")
	require.NoError(t, os.WriteFile(path, []byte(mixedListing), 0o600))

	records, err := File{Path: path}.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.NoError(t, records[0].Err)
	assert.Error(t, records[1].Err)
}
