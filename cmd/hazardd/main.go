package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-decision-service/internal/adapter/feed"
	httpadapter "github.com/couchcryptid/hazard-decision-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-decision-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-decision-service/internal/config"
	"github.com/couchcryptid/hazard-decision-service/internal/observability"
	"github.com/couchcryptid/hazard-decision-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	client := feed.NewClient(cfg.FeedBaseURL, cfg.FeedTimeout, metrics, logger)
	cached := feed.NewCachedFeed(client, cfg.FeedCacheSize, cfg.FeedCacheTTL, clock, metrics)
	loader := pipeline.NewSnapshotLoader(cached, logger)
	logger.Info("dataset feed configured",
		"base_url", cfg.FeedBaseURL,
		"cache_size", cfg.FeedCacheSize,
		"cache_ttl", cfg.FeedCacheTTL,
	)

	// Assessment sink is feature-flagged via KAFKA_ENABLED.
	var (
		publisher pipeline.Publisher
		writer    *kafkaadapter.Writer
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka sink enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka sink disabled")
	}

	evaluator := pipeline.New(loader, publisher, clock, logger, metrics, pipeline.Options{
		Interval:       cfg.EvalInterval,
		Center:         cfg.Center,
		MockFlags:      cfg.MockFlags,
		DengueRadiusKm: cfg.DengueRadiusKm,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, evaluator, evaluator, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start scheduled evaluation.
	go func() {
		if err := evaluator.Run(ctx); err != nil {
			logger.Error("evaluator error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
