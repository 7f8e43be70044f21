package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/komsit37/coinboard/pkg/coinboard/columns"
	"github.com/komsit37/coinboard/pkg/coinboard/filter"
	"github.com/komsit37/coinboard/pkg/coinboard/normalize"
	"github.com/komsit37/coinboard/pkg/coinboard/rank"
	"github.com/komsit37/coinboard/pkg/coinboard/render"
	"github.com/komsit37/coinboard/pkg/coinboard/source"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// DefaultLimit is the number of rows in the primary table.
const DefaultLimit = 10

type Runner struct {
	Source   source.Source
	Renderer render.Renderer
	Writer   io.Writer
	Logger   logrus.FieldLogger

	// Now stamps Board.FetchedAt; defaults to time.Now.
	Now func() time.Time
}

type ExecuteOptions struct {
	Query string
	// Filter overrides the substring filter built from Query.
	Filter filter.Filter
	// Limit caps the primary table; negative means unlimited, zero means DefaultLimit.
	Limit       int
	Columns     []string
	Color       bool
	PrettyJSON  bool
	MaxColWidth int
	MaxRowLen   int
	Title       string
}

// Build runs one fetch-render cycle up to, but not including, rendering.
// A failed fetch is logged and returned; nothing downstream runs.
func (r *Runner) Build(ctx context.Context, opts ExecuteOptions) (types.Board, error) {
	logger := r.logger()

	cols, err := columns.Compute(opts.Columns)
	if err != nil {
		return types.Board{}, err
	}

	raw, err := r.Source.Load(ctx)
	if err != nil {
		logger.WithError(err).Error("fetch market data")
		return types.Board{}, err
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	records := normalize.All(raw, logger)

	// Search narrows the primary table only; rankings use every record.
	filt := opts.Filter
	if filt == nil {
		filt = filter.Search(opts.Query)
	}
	rows := filter.Records(records, filt)
	limit := opts.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	board := types.Board{
		Query:     opts.Query,
		Columns:   cols,
		Rows:      rows,
		Gainers:   rank.Gainers(records),
		Losers:    rank.Losers(records),
		Total:     len(records),
		Dropped:   len(raw) - len(records),
		FetchedAt: now(),
	}
	logger.WithFields(logrus.Fields{
		"query":   opts.Query,
		"fetched": len(raw),
		"dropped": board.Dropped,
		"rows":    len(board.Rows),
		"gainers": len(board.Gainers),
		"losers":  len(board.Losers),
	}).Debug("board built")
	return board, nil
}

// Execute builds the board and renders it to the runner's writer.
func (r *Runner) Execute(ctx context.Context, opts ExecuteOptions) error {
	board, err := r.Build(ctx, opts)
	if err != nil {
		return err
	}
	return r.Renderer.Render(r.Writer, board, RenderOptions(opts))
}

// RenderOptions projects the execute options a renderer cares about.
func RenderOptions(opts ExecuteOptions) render.RenderOptions {
	return render.RenderOptions{
		Color:       opts.Color,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
		MaxRowLen:   opts.MaxRowLen,
		Title:       opts.Title,
	}
}

func (r *Runner) logger() logrus.FieldLogger {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.StandardLogger()
}
