package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/hazard-decision-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream dataset feed.
	FeedBaseURL   string
	FeedTimeout   time.Duration
	FeedCacheTTL  time.Duration
	FeedCacheSize int

	// Scheduled evaluation.
	EvalInterval   time.Duration
	Center         *domain.Coordinate
	DengueRadiusKm float64
	MockFlags      domain.MockFlags

	// Kafka assessment sink.
	KafkaEnabled   bool
	KafkaBrokers   []string
	KafkaSinkTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	feedTimeout, err := parsePositiveDuration("FEED_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	feedCacheTTL, err := parsePositiveDuration("FEED_CACHE_TTL", "1m")
	if err != nil {
		return nil, err
	}
	evalInterval, err := parsePositiveDuration("EVAL_INTERVAL", "1m")
	if err != nil {
		return nil, err
	}

	center, err := parseCenter()
	if err != nil {
		return nil, err
	}

	radius, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("DENGUE_RADIUS_KM", "5"), 64)
	if err != nil || radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, errors.New("invalid DENGUE_RADIUS_KM")
	}

	flags, err := domain.ParseMockFlags(os.Getenv("MOCK_FLAGS"))
	if err != nil {
		return nil, fmt.Errorf("invalid MOCK_FLAGS: %w", err)
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		FeedBaseURL:   sharedcfg.EnvOrDefault("FEED_BASE_URL", "http://localhost:8081/v1/datasets"),
		FeedTimeout:   feedTimeout,
		FeedCacheTTL:  feedCacheTTL,
		FeedCacheSize: parseFeedCacheSize(),

		EvalInterval:   evalInterval,
		Center:         center,
		DengueRadiusKm: radius,
		MockFlags:      flags,

		KafkaEnabled:   os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:   sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSinkTopic: sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "hazard-assessments"),
	}

	if cfg.FeedBaseURL == "" {
		return nil, errors.New("FEED_BASE_URL is required")
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
	}
	if cfg.KafkaEnabled && cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseCenter reads CENTER_LAT and CENTER_LON. Both must be set together.
func parseCenter() (*domain.Coordinate, error) {
	latStr, lonStr := os.Getenv("CENTER_LAT"), os.Getenv("CENTER_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("CENTER_LAT and CENTER_LON must be set together")
	}

	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	c := domain.Coordinate{Lat: lat, Lon: lon}
	if errLat != nil || errLon != nil || !c.Valid() || math.Abs(lat) > 90 || math.Abs(lon) > 180 {
		return nil, errors.New("invalid CENTER_LAT/CENTER_LON")
	}
	return &c, nil
}

func parseFeedCacheSize() int {
	if s := os.Getenv("FEED_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 32
}
