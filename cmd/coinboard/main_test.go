package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/coinboard/pkg/coinboard/config"
	"github.com/komsit37/coinboard/pkg/coinboard/source"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

func TestExecuteOptions(t *testing.T) {
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	cfg.Display.Columns = []string{"name"}
	cfg.Display.Sets = []string{"change"}

	opts, err := executeOptions(cfg, "bit")
	require.NoError(t, err)
	assert.Equal(t, "bit", opts.Query)
	assert.Equal(t, []string{"name", "chg_1h", "chg_24h", "chg_7d"}, opts.Columns)
	assert.Equal(t, 10, opts.Limit)
	assert.True(t, opts.Filter.Match("Bitcoin"))
	assert.False(t, opts.Filter.Match("Ethereum"))

	cfg.Display.Sets = []string{"nope"}
	_, err = executeOptions(cfg, "")
	assert.Error(t, err)
}

func TestNewFilterModes(t *testing.T) {
	btc := types.Record{Name: "Bitcoin", Symbol: "btc"}

	f, err := newFilter(config.SearchSubstring)("btc,eth")
	require.NoError(t, err)
	assert.False(t, f.Match(btc.Symbol), "substring mode takes the comma literally")

	f, err = newFilter(config.SearchPattern)("btc,eth")
	require.NoError(t, err)
	assert.True(t, f.Match(btc.Symbol))
}

func TestSetNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"change", "compact", "default", "price"}, setNames())
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, fmt.Errorf("%w: GET /coins/markets: status 429", source.ErrFetch))
	assert.Empty(t, buf.String(), "fetch failures are logged by the pipeline")

	reportError(&buf, errors.New("unknown column: volume"))
	assert.Equal(t, "Error: unknown column: volume\n", buf.String())
}
