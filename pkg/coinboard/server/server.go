package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/komsit37/coinboard/pkg/coinboard/filter"
	"github.com/komsit37/coinboard/pkg/coinboard/pipeline"
	"github.com/komsit37/coinboard/pkg/coinboard/render"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// FetchFailedNotice is shown on the page when the market listing could not be loaded.
const FetchFailedNotice = "Market data is unavailable right now. Try again shortly."

// Builder runs the pipeline up to a board.
type Builder interface {
	Build(ctx context.Context, opts pipeline.ExecuteOptions) (types.Board, error)
}

type Options struct {
	// Base is copied for every request; the query and filter are per request.
	Base         pipeline.ExecuteOptions
	AllowOrigins []string
	// NewFilter turns the q parameter into a filter; defaults to filter.Search.
	NewFilter func(term string) (filter.Filter, error)
	Logger    logrus.FieldLogger
}

type Server struct {
	builder Builder
	opts    Options
	html    *render.HTMLRenderer
	logger  logrus.FieldLogger
}

// New wires the routes. Every request is its own fetch-render cycle.
func New(b Builder, opts Options) *gin.Engine {
	s := &Server{builder: b, opts: opts, html: render.NewHTMLRenderer(), logger: opts.Logger}
	if s.logger == nil {
		s.logger = logrus.StandardLogger()
	}
	if s.opts.NewFilter == nil {
		s.opts.NewFilter = func(term string) (filter.Filter, error) { return filter.Search(term), nil }
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.logger), cors.New(corsConfig(opts.AllowOrigins)))

	r.GET("/", s.handleBoardPage)
	r.GET("/api/board", s.handleBoardJSON)
	r.GET("/api/coins/:id", s.handleCoin)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.AllowOrigins = nil
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
		cfg.AllowOrigins = append(cfg.AllowOrigins, o)
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cfg
}

func (s *Server) options(q string) (pipeline.ExecuteOptions, error) {
	opts := s.opts.Base
	opts.Query = q
	f, err := s.opts.NewFilter(q)
	if err != nil {
		return opts, err
	}
	opts.Filter = f
	return opts, nil
}

func (s *Server) handleBoardPage(c *gin.Context) {
	opts, err := s.options(c.Query("q"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	ropts := pipeline.RenderOptions(opts)
	status := http.StatusOK
	board, err := s.builder.Build(c.Request.Context(), opts)
	if err != nil {
		// stale/empty view: the page still renders, without data
		status = http.StatusBadGateway
		board = types.Board{Query: opts.Query}
		ropts.Notice = FetchFailedNotice
	}

	var buf bytes.Buffer
	if err := s.html.Render(&buf, board, ropts); err != nil {
		s.logger.WithError(err).Error("render board page")
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleBoardJSON(c *gin.Context) {
	opts, err := s.options(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	board, err := s.builder.Build(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, render.NewBoardModel(board))
}

// handleCoin serves the details view of the row a user selected.
func (s *Server) handleCoin(c *gin.Context) {
	id := c.Param("id")
	opts := s.opts.Base
	opts.Limit = -1
	opts.Filter = filter.Always(true)
	board, err := s.builder.Build(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	for _, r := range board.Rows {
		if r.ID == id {
			c.JSON(http.StatusOK, render.NewDetails(r))
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "unknown coin: " + id})
}

func requestLogger(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("http request")
	}
}
