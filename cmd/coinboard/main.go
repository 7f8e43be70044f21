package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/komsit37/coinboard/pkg/coinboard/columns"
	"github.com/komsit37/coinboard/pkg/coinboard/config"
	"github.com/komsit37/coinboard/pkg/coinboard/filter"
	"github.com/komsit37/coinboard/pkg/coinboard/pipeline"
	"github.com/komsit37/coinboard/pkg/coinboard/render"
	"github.com/komsit37/coinboard/pkg/coinboard/source"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	v := config.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "coinboard [search term]",
		Short:         "Render crypto market prices with biggest gainers and losers",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// --no-color inverts display.color
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				v.Set("display.color", false)
			}
			cfg, err := setup(v, cfgFile)
			if err != nil {
				return err
			}
			var term string
			if len(args) == 1 {
				term = args[0]
			}

			renderer, err := render.New(cfg.Display.Format)
			if err != nil {
				return err
			}
			opts, err := executeOptions(cfg, term)
			if err != nil {
				return err
			}
			if cfg.Display.Format == "table" {
				opts.MaxRowLen = detectTerminalWidth()
			}

			out := io.Writer(os.Stdout)
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create %s: %w", path, err)
				}
				defer f.Close()
				out = f
			}

			runner := &pipeline.Runner{
				Source:   cfg.Source.NewSource(),
				Renderer: renderer,
				Writer:   out,
				Logger:   log.StandardLogger(),
			}
			return runner.Execute(cmd.Context(), opts)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml)")
	pf.String("source", "coingecko", "data source: coingecko or file")
	pf.String("file", "", "market listing fixture for --source=file (json or yaml)")
	pf.String("base-url", "", "CoinGecko API base URL")
	pf.Duration("timeout", 0, "request timeout, e.g. 10s")
	pf.Int("limit", 10, "rows in the primary table (-1 for all)")
	pf.StringSlice("columns", nil, "columns to show, e.g. name,symbol,price,chg_24h")
	pf.StringSlice("sets", nil, "column sets to show: "+strings.Join(setNames(), ", "))
	pf.String("search-mode", "substring", "search term syntax: substring or pattern (/regex/, glob, a,b)")
	pf.String("log-level", "info", "log level")
	pf.String("log-format", "text", "log format: text or json")

	f := rootCmd.Flags()
	f.StringP("format", "f", "table", "output format: "+strings.Join(render.Formats(), ", "))
	f.StringP("output", "o", "", "write output to a file instead of stdout")
	f.Bool("no-color", false, "disable colored table output")
	f.Bool("pretty", false, "indent json output")
	f.Int("max-col-width", 40, "wrap table columns at this width")

	bind(v, pf, map[string]string{
		"source.kind":         "source",
		"source.file":         "file",
		"source.base_url":     "base-url",
		"source.timeout":      "timeout",
		"display.limit":       "limit",
		"display.columns":     "columns",
		"display.sets":        "sets",
		"display.search_mode": "search-mode",
		"log.level":           "log-level",
		"log.format":          "log-format",
	})
	bind(v, f, map[string]string{
		"display.format":        "format",
		"display.pretty":        "pretty",
		"display.max_col_width": "max-col-width",
	})
	rootCmd.AddCommand(newServeCmd(v, &cfgFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		reportError(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// reportError prints err unless the pipeline has already logged it.
func reportError(w io.Writer, err error) {
	if errors.Is(err, source.ErrFetch) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}

// setup loads configuration and applies the logging settings.
func setup(v *viper.Viper, cfgFile string) (config.Config, error) {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return config.Config{}, fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	if cfg.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	}
	return cfg, nil
}

// executeOptions resolves columns, sets and the search filter from config.
func executeOptions(cfg config.Config, term string) (pipeline.ExecuteOptions, error) {
	cols := append([]string(nil), cfg.Display.Columns...)
	if len(cfg.Display.Sets) > 0 {
		setCols, err := columns.ExpandSets(cfg.Display.Sets)
		if err != nil {
			return pipeline.ExecuteOptions{}, err
		}
		cols = append(cols, setCols...)
	}
	filt, err := newFilter(cfg.Display.SearchMode)(term)
	if err != nil {
		return pipeline.ExecuteOptions{}, err
	}
	return pipeline.ExecuteOptions{
		Query:       term,
		Filter:      filt,
		Limit:       cfg.Display.Limit,
		Columns:     cols,
		Color:       cfg.Display.Color,
		PrettyJSON:  cfg.Display.Pretty,
		MaxColWidth: cfg.Display.MaxColWidth,
		Title:       cfg.Display.Title,
	}, nil
}

func newFilter(mode string) func(term string) (filter.Filter, error) {
	if mode == config.SearchPattern {
		return filter.Parse
	}
	return func(term string) (filter.Filter, error) { return filter.Search(term), nil }
}

// bind maps viper keys to flags so a flag set on the command line wins over
// the config file and environment.
func bind(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", name, err))
		}
	}
}

func setNames() []string {
	names := make([]string, 0, len(columns.Sets))
	for k := range columns.Sets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
