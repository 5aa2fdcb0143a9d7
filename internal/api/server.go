package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/urbansense/lst-insight/internal/assistant"
	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/community"
	"github.com/urbansense/lst-insight/internal/observability"
	"github.com/urbansense/lst-insight/internal/raster"
	"github.com/urbansense/lst-insight/internal/stats"
)

// Prober reports whether the generative model endpoint is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// Options carries the dependencies for a Server. Grid, Stats, and
// Classification may be nil when no raster has been loaded; Prober may be
// nil when no model is configured.
type Options struct {
	Addr           string
	Location       string
	Grid           *raster.Grid
	Stats          *stats.Summary
	Classification *climate.Classification
	Assistant      *assistant.Assistant
	Store          *community.Store
	Metrics        *observability.Metrics
	Prober         Prober
	Logger         *slog.Logger
}

// Server exposes the analysis, advisory, and community board endpoints,
// along with health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger

	location string
	grid     *raster.Grid
	stats    *stats.Summary
	class    *climate.Classification
	asst     *assistant.Assistant
	store    *community.Store
	metrics  *observability.Metrics
	prober   Prober
}

// NewServer builds the router and wraps it in an http.Server.
func NewServer(opts Options) *Server {
	s := &Server{
		logger:   opts.Logger,
		location: opts.Location,
		grid:     opts.Grid,
		stats:    opts.Stats,
		class:    opts.Classification,
		asst:     opts.Assistant,
		store:    opts.Store,
		metrics:  opts.Metrics,
		prober:   opts.Prober,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/healthz", s.handleHealth)
	r.GET("/readyz", s.handleReady)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/questions", s.handleQuestion)
		api.GET("/statistics", s.handleStatistics)
		api.GET("/classification", s.handleClassification)
		api.GET("/context", s.handleContext)
		api.GET("/insights", s.handleInsights)
		api.GET("/usage", s.handleUsage)
		api.GET("/model/status", s.handleModelStatus)

		api.POST("/greenspace/impact", s.handleGreenspaceImpact)
		api.GET("/greenspace/inventory", s.handleGreenspaceInventory)

		api.POST("/plans/analyze", s.handleAnalyzePlan)

		board := api.Group("/community")
		{
			board.POST("/plans", s.handleCreatePlan)
			board.GET("/plans", s.handleListPlans)
			board.POST("/plans/:id/votes", s.handleCastVote)
			board.GET("/plans/:id/votes", s.handleVoteHistory)
			board.GET("/summary", s.handleBoardSummary)
		}
	}

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout: 10 * time.Second,
		// Model calls retry with backoff and can take well over the usual
		// write window.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
