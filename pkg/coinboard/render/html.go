package render

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/komsit37/coinboard/pkg/coinboard/columns"
	"github.com/komsit37/coinboard/pkg/coinboard/format"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var boardTemplate = template.Must(template.ParseFS(templateFS, "templates/board.html.tmpl"))

// HTMLRenderer renders the board as a standalone page. Each call renders the
// whole page from the board it is given.
type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer { return &HTMLRenderer{tmpl: boardTemplate} }

type htmlPage struct {
	Title     string
	Query     string
	Notice    string
	FetchedAt string
	Total     int
	Dropped   int
	Tables    []htmlTable
}

type htmlTable struct {
	ID      string
	Title   string
	Headers []string
	Rows    []htmlRow
	Empty   string
}

// htmlRow carries the data-* attributes the row click handler reads.
type htmlRow struct {
	ID     string
	Name   string
	Symbol string
	Price  string
	Low    string
	High   string
	Cells  []htmlCell
}

type htmlCell struct {
	Text  string
	Image string
	Class string
}

func (r *HTMLRenderer) Render(w io.Writer, board types.Board, opts RenderOptions) error {
	cols := boardColumns(board)
	page := htmlPage{
		Title:   firstNonEmpty(opts.Title, DefaultTitle),
		Query:   board.Query,
		Notice:  opts.Notice,
		Total:   board.Total,
		Dropped: board.Dropped,
		Tables: []htmlTable{
			newHTMLTable("crypto-table", "", cols, board.Rows, "No coins match the search."),
			newHTMLTable("biggest-gainers-table", GainersTitle, cols, board.Gainers, "No gainers."),
			newHTMLTable("biggest-losers-table", LosersTitle, cols, board.Losers, "No losers."),
		},
	}
	if !board.FetchedAt.IsZero() {
		page.FetchedAt = board.FetchedAt.UTC().Format(time.RFC1123)
	}
	return r.tmpl.ExecuteTemplate(w, "board", page)
}

func newHTMLTable(id, title string, cols []string, recs []types.Record, empty string) htmlTable {
	t := htmlTable{ID: id, Title: title, Empty: empty}
	for _, c := range cols {
		d, _ := columns.GetDef(c)
		t.Headers = append(t.Headers, d.Title)
	}
	for _, rec := range recs {
		row := htmlRow{
			ID:     rec.ID,
			Name:   rec.Name,
			Symbol: format.Symbol(rec.Symbol),
			Price:  format.USD(rec.CurrentPrice),
			Low:    format.USD(rec.Low24h),
			High:   format.USD(rec.High24h),
		}
		for _, c := range cols {
			cell := htmlCell{Text: columns.RenderValue(c, rec)}
			if d, ok := columns.GetDef(c); ok && d.Kind == columns.KindImage {
				cell = htmlCell{Image: rec.Image, Text: rec.Name}
			}
			if sign, ok := columns.ChangeSign(c, rec); ok {
				switch {
				case sign > 0:
					cell.Class = "up"
				case sign < 0:
					cell.Class = "down"
				default:
					cell.Class = "flat"
				}
			}
			row.Cells = append(row.Cells, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
