package render

import (
	"time"

	"github.com/komsit37/coinboard/pkg/coinboard/columns"
	"github.com/komsit37/coinboard/pkg/coinboard/format"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// BoardModel is the serialized shape shared by the json and yaml renderers
// and the HTTP API.
type BoardModel struct {
	Query     string      `json:"query" yaml:"query"`
	FetchedAt time.Time   `json:"fetched_at" yaml:"fetched_at"`
	Columns   []string    `json:"columns" yaml:"columns"`
	Total     int         `json:"total" yaml:"total"`
	Dropped   int         `json:"dropped" yaml:"dropped"`
	Rows      []ItemModel `json:"rows" yaml:"rows"`
	Gainers   []ItemModel `json:"gainers" yaml:"gainers"`
	Losers    []ItemModel `json:"losers" yaml:"losers"`
}

type ItemModel struct {
	ID     string            `json:"id" yaml:"id"`
	Name   string            `json:"name" yaml:"name"`
	Symbol string            `json:"symbol" yaml:"symbol"`
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// NewBoardModel formats every list of the board with its columns.
func NewBoardModel(b types.Board) BoardModel {
	cols := boardColumns(b)
	return BoardModel{
		Query:     b.Query,
		FetchedAt: b.FetchedAt,
		Columns:   cols,
		Total:     b.Total,
		Dropped:   b.Dropped,
		Rows:      items(cols, b.Rows),
		Gainers:   items(cols, b.Gainers),
		Losers:    items(cols, b.Losers),
	}
}

func items(cols []string, recs []types.Record) []ItemModel {
	out := make([]ItemModel, 0, len(recs))
	for _, r := range recs {
		fields := make(map[string]string, len(cols))
		for _, c := range cols {
			fields[c] = columns.RenderValue(c, r)
		}
		out = append(out, ItemModel{ID: r.ID, Name: r.Name, Symbol: format.Symbol(r.Symbol), Fields: fields})
	}
	return out
}

// Details is the view of a single selected record.
type Details struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
	Image     string `json:"image"`
	Price     string `json:"current_price"`
	Low24h    string `json:"low_24h"`
	High24h   string `json:"high_24h"`
	Change1h  string `json:"change_1h"`
	Change24h string `json:"change_24h"`
	Change7d  string `json:"change_7d"`
}

// NewDetails formats the details view of r.
func NewDetails(r types.Record) Details {
	return Details{
		ID:        r.ID,
		Name:      r.Name,
		Symbol:    format.Symbol(r.Symbol),
		Image:     r.Image,
		Price:     columns.RenderValue("price", r),
		Low24h:    columns.RenderValue("low_24h", r),
		High24h:   columns.RenderValue("high_24h", r),
		Change1h:  columns.RenderValue("chg_1h", r),
		Change24h: columns.RenderValue("chg_24h", r),
		Change7d:  columns.RenderValue("chg_7d", r),
	}
}

func boardColumns(b types.Board) []string {
	if len(b.Columns) > 0 {
		return b.Columns
	}
	return columns.Default
}
