package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketRecord is one raw entry of the /coins/markets listing.
// Numeric fields are NullDecimal so that a missing key and an explicit
// null both decode as absent.
type MarketRecord struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	MarketCapRank *int   `json:"market_cap_rank"`

	CurrentPrice decimal.NullDecimal `json:"current_price"`
	Low24h       decimal.NullDecimal `json:"low_24h"`
	High24h      decimal.NullDecimal `json:"high_24h"`

	PriceChangePercentage1h  decimal.NullDecimal `json:"price_change_percentage_1h_in_currency"`
	PriceChangePercentage24h decimal.NullDecimal `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  decimal.NullDecimal `json:"price_change_percentage_7d_in_currency"`

	// Err is set when the entry could not be decoded; only ID is then known.
	Err error `json:"-"`
}

// Record is a validated, display-ready subset of a MarketRecord.
// Required values are plain decimals; the 1h and 7d windows may be absent.
type Record struct {
	ID            string
	Name          string
	Symbol        string
	Image         string
	MarketCapRank *int

	CurrentPrice decimal.Decimal
	Low24h       decimal.Decimal
	High24h      decimal.Decimal

	Change1h  decimal.NullDecimal
	Change24h decimal.Decimal
	Change7d  decimal.NullDecimal
}

// Board is everything one render cycle needs.
// Rows is the search-narrowed primary table; Gainers and Losers are always
// ranked over the full normalized set.
type Board struct {
	Query   string
	Columns []string

	Rows    []Record
	Gainers []Record
	Losers  []Record

	Total     int // records that passed normalization
	Dropped   int // malformed or incomplete records
	FetchedAt time.Time
}
