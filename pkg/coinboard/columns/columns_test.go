package columns

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

func sample() types.Record {
	rank := 2
	return types.Record{
		ID:            "ethereum",
		Name:          "Ethereum",
		Symbol:        "eth",
		Image:         "https://img/eth.png",
		MarketCapRank: &rank,
		CurrentPrice:  decimal.RequireFromString("2521.71"),
		Low24h:        decimal.RequireFromString("2400"),
		High24h:       decimal.RequireFromString("0.123456789"),
		Change1h:      decimal.NullDecimal{},
		Change24h:     decimal.RequireFromString("-2.5"),
		Change7d:      decimal.NewNullDecimal(decimal.RequireFromString("3.14159")),
	}
}

func TestRenderValue(t *testing.T) {
	r := sample()
	cases := map[string]string{
		"image":    "https://img/eth.png",
		"rank":     "2",
		"name":     "Ethereum",
		"symbol":   "ETH",
		"price":    "$2521.71",
		"low_24h":  "$2400",
		"high_24h": "$0.12345679",
		"chg_1h":   "N/A",
		"chg_24h":  "-2.50%",
		"chg_7d":   "+3.14%",
		"chg%":     "-2.50%",
		"SYM":      "ETH",
		"nope":     "",
	}
	for col, want := range cases {
		assert.Equal(t, want, RenderValue(col, r), col)
	}
}

func TestCompute(t *testing.T) {
	cols, err := Compute(nil)
	require.NoError(t, err)
	assert.Equal(t, Default, cols)

	cols, err = Compute([]string{"sym", "price", "symbol", "24h", " "})
	require.NoError(t, err)
	assert.Equal(t, []string{"symbol", "price", "chg_24h"}, cols)

	_, err = Compute([]string{"name", "volume"})
	var ue *UnknownColumnError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "volume", ue.Name)
	assert.Contains(t, err.Error(), "chg_24h")
}

func TestChangeSign(t *testing.T) {
	r := sample()

	sign, ok := ChangeSign("chg_24h", r)
	assert.True(t, ok)
	assert.Equal(t, -1, sign)

	sign, ok = ChangeSign("7d", r)
	assert.True(t, ok)
	assert.Equal(t, 1, sign)

	_, ok = ChangeSign("chg_1h", r)
	assert.False(t, ok, "absent window")

	_, ok = ChangeSign("price", r)
	assert.False(t, ok)
}

func TestExpandSets(t *testing.T) {
	cols, err := ExpandSets([]string{"price", "change", "price", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"price", "low_24h", "high_24h", "chg_1h", "chg_24h", "chg_7d"}, cols)

	_, err = ExpandSets([]string{"fundamentals"})
	var se *UnknownSetError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "fundamentals", se.Name)
	assert.Contains(t, se.Available, "default")
}

func TestSetColumnsAreRegistered(t *testing.T) {
	for name, cols := range Sets {
		for _, c := range cols {
			_, ok := Registry[c]
			assert.True(t, ok, "set %s: column %s", name, c)
		}
	}
}
