package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/coinboard/pkg/coinboard/filter"
	"github.com/komsit37/coinboard/pkg/coinboard/pipeline"
	"github.com/komsit37/coinboard/pkg/coinboard/render"
	"github.com/komsit37/coinboard/pkg/coinboard/source"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

type stubSource struct {
	records []types.MarketRecord
	err     error
}

func (s stubSource) Load(context.Context) ([]types.MarketRecord, error) { return s.records, s.err }

func market(id, name, sym string, change float64) types.MarketRecord {
	d := func(f float64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromFloat(f)) }
	return types.MarketRecord{
		ID: id, Name: name, Symbol: sym,
		CurrentPrice: d(100), Low24h: d(90), High24h: d(110),
		PriceChangePercentage24h: d(change),
	}
}

func newEngine(src source.Source, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger, _ := test.NewNullLogger()
	opts.Logger = logger
	return New(&pipeline.Runner{Source: src, Logger: logger}, opts)
}

func get(e *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

var listing = []types.MarketRecord{
	market("bitcoin", "Bitcoin", "btc", 2),
	market("ethereum", "Ethereum", "eth", -1),
	market("solana", "Solana", "sol", 7),
}

func TestBoardPage(t *testing.T) {
	e := newEngine(stubSource{records: listing}, Options{})

	w := get(e, "/?q=eth")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `value="eth"`)
	assert.Contains(t, body, `data-id="ethereum"`)
	// gainers still come from the full listing
	assert.Contains(t, body, `data-id="solana"`)
}

func TestBoardPageFetchFailure(t *testing.T) {
	e := newEngine(stubSource{err: fmt.Errorf("%w: down", source.ErrFetch)}, Options{})

	w := get(e, "/")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), FetchFailedNotice)
	assert.Contains(t, w.Body.String(), `id="crypto-table"`)
}

func TestBoardJSON(t *testing.T) {
	e := newEngine(stubSource{records: listing}, Options{})

	w := get(e, "/api/board?q=SOL")
	require.Equal(t, http.StatusOK, w.Code)
	var m render.BoardModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	require.Len(t, m.Rows, 1)
	assert.Equal(t, "solana", m.Rows[0].ID)
	require.Len(t, m.Gainers, 2)
	assert.Equal(t, "solana", m.Gainers[0].ID)
	assert.Equal(t, "bitcoin", m.Gainers[1].ID)
	require.Len(t, m.Losers, 1)

	e = newEngine(stubSource{err: source.ErrFetch}, Options{})
	w = get(e, "/api/board")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestPatternSearch(t *testing.T) {
	e := newEngine(stubSource{records: listing}, Options{NewFilter: filter.Parse})

	w := get(e, "/api/board?q=btc,sol")
	require.Equal(t, http.StatusOK, w.Code)
	var m render.BoardModel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Len(t, m.Rows, 2)

	w = get(e, "/api/board?q=%2F%5B%2F")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCoinDetails(t *testing.T) {
	// a primary-table limit must not hide coins from the details view
	e := newEngine(stubSource{records: listing}, Options{Base: pipeline.ExecuteOptions{Limit: 1}})

	w := get(e, "/api/coins/solana")
	require.Equal(t, http.StatusOK, w.Code)
	var d render.Details
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Solana", d.Name)
	assert.Equal(t, "SOL", d.Symbol)
	assert.Equal(t, "$100", d.Price)
	assert.Equal(t, "$90", d.Low24h)
	assert.Equal(t, "$110", d.High24h)
	assert.Equal(t, "+7.00%", d.Change24h)

	w = get(e, "/api/coins/dogecoin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	e := newEngine(stubSource{}, Options{AllowOrigins: []string{"https://app.coinboard.dev"}})

	w := get(e, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://app.coinboard.dev")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, "https://app.coinboard.dev", w.Header().Get("Access-Control-Allow-Origin"))
}
