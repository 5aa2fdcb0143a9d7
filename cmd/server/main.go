package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urbansense/lst-insight/internal/adapter/azureopenai"
	kafkaadapter "github.com/urbansense/lst-insight/internal/adapter/kafka"
	"github.com/urbansense/lst-insight/internal/api"
	"github.com/urbansense/lst-insight/internal/assistant"
	"github.com/urbansense/lst-insight/internal/climate"
	"github.com/urbansense/lst-insight/internal/community"
	"github.com/urbansense/lst-insight/internal/config"
	"github.com/urbansense/lst-insight/internal/observability"
	"github.com/urbansense/lst-insight/internal/raster"
	"github.com/urbansense/lst-insight/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Load the temperature raster. The service still serves the community
	// board and rule-based fallbacks when no raster is available.
	grid, summary, classification := loadAnalysis(cfg, metrics, logger)

	store, err := community.Open(cfg.SQLitePath, nil)
	if err != nil {
		logger.Error("failed to open community store", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}

	// Answer-event publishing (feature-flagged via KAFKA_BROKERS).
	var publisher assistant.EventPublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled() {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaEventsTopic, logger)
		publisher = writer
		logger.Info("answer event publishing enabled", "topic", cfg.KafkaEventsTopic)
	} else {
		logger.Info("answer event publishing disabled")
	}

	// Model client (feature-flagged via the OPENAI_* credential slots).
	var modelClient assistant.ModelClient
	var prober api.Prober
	if cfg.OpenAIConfigured() {
		client := azureopenai.NewClient(azureopenai.Config{
			APIKey:     cfg.OpenAIKey,
			Endpoint:   cfg.OpenAIEndpoint,
			APIVersion: cfg.OpenAIAPIVersion,
			Deployment: cfg.OpenAIDeployment,
		}, cfg.OpenAITimeout, logger)
		modelClient = client
		prober = client
		logger.Info("generative model enabled", "deployment", cfg.OpenAIDeployment, "timeout", cfg.OpenAITimeout)
	} else {
		logger.Info("generative model disabled, using rule-based answers")
	}

	retry := assistant.RetryPolicy{MaxRetries: cfg.OpenAIMaxRetries, Base: time.Second}
	asst := assistant.New(modelClient, cfg.LocationName, retry,
		assistant.NewUsageTracker(nil), publisher, metrics, logger, nil)

	srv := api.NewServer(api.Options{
		Addr:           cfg.HTTPAddr,
		Location:       cfg.LocationName,
		Grid:           grid,
		Stats:          summary,
		Classification: classification,
		Assistant:      asst,
		Store:          store,
		Metrics:        metrics,
		Prober:         prober,
		Logger:         logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("community store close error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// loadAnalysis loads the raster and derives the statistics and
// classification served by the analysis endpoints. Failures are logged and
// leave the analysis surface in its "no data" state.
func loadAnalysis(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*raster.Grid, *stats.Summary, *climate.Classification) {
	if cfg.RasterPath == "" {
		logger.Warn("no raster path configured, analysis endpoints disabled")
		return nil, nil, nil
	}

	grid, err := raster.Load(cfg.RasterPath)
	if err != nil {
		logger.Error("failed to load raster", "path", cfg.RasterPath, "error", err)
		return nil, nil, nil
	}

	values := grid.ValidValues()
	summary := stats.Compute(values)
	if summary == nil {
		logger.Warn("raster has no valid pixels", "path", cfg.RasterPath)
		return grid, nil, nil
	}

	classification := climate.Classify(summary, values)
	metrics.AnalysisReady.Set(1)
	logger.Info("analysis data loaded",
		"path", cfg.RasterPath,
		"pixels", summary.TotalPixelCount,
		"mean_temp", summary.Mean)
	return grid, summary, classification
}
