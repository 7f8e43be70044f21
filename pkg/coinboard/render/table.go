package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/coinboard/pkg/coinboard/columns"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

const (
	DefaultTitle   = "Cryptocurrency Prices"
	GainersTitle   = "Biggest Gainers (24h)"
	LosersTitle    = "Biggest Losers (24h)"
	defaultColWrap = 40
)

// TableRenderer writes the three boards as terminal tables.
type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, board types.Board, opts RenderOptions) error {
	// image URLs are noise in a terminal
	cols := make([]string, 0, len(board.Columns))
	for _, c := range boardColumns(board) {
		if d, ok := columns.GetDef(c); ok && d.Kind == columns.KindImage {
			continue
		}
		cols = append(cols, c)
	}

	if opts.Notice != "" {
		fmt.Fprintln(w, text.Colors{text.FgYellow}.Sprint(opts.Notice))
	}

	sections := []struct {
		title string
		recs  []types.Record
	}{
		{firstNonEmpty(opts.Title, DefaultTitle), board.Rows},
		{GainersTitle, board.Gainers},
		{LosersTitle, board.Losers},
	}
	for si, sec := range sections {
		fmt.Fprintln(w, text.Bold.Sprint(strings.ToUpper(sec.title)))
		writeTable(w, cols, sec.recs, opts)
		if si < len(sections)-1 {
			// blank line between tables
			fmt.Fprintln(w)
		}
	}
	return nil
}

func writeTable(w io.Writer, cols []string, recs []types.Record, opts RenderOptions) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false
	if !opts.Color {
		tw.Style().Color = table.ColorOptions{}
	}
	if opts.MaxRowLen > 0 {
		tw.SetAllowedRowLength(opts.MaxRowLen)
	}

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		title := c
		if d, ok := columns.GetDef(c); ok && d.Title != "" {
			title = d.Title
		}
		hdr[i] = strings.ToUpper(title)
	}
	tw.AppendHeader(hdr)

	// Column configs: wrap text to MaxColWidth, right-align numbers
	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = defaultColWrap
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if d, ok := columns.GetDef(c); ok && (d.Kind == columns.KindPrice || d.Kind == columns.KindChange || d.Key == "rank") {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) > 0 {
		tw.SetColumnConfigs(cfgs)
	}

	for _, rec := range recs {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			val := columns.RenderValue(c, rec)
			if opts.Color {
				if sign, ok := columns.ChangeSign(c, rec); ok {
					if sign > 0 {
						val = text.Colors{text.FgGreen}.Sprint(val)
					} else if sign < 0 {
						val = text.Colors{text.FgRed}.Sprint(val)
					}
				}
			}
			row[i] = val
		}
		tw.AppendRow(row)
	}
	tw.Render()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
