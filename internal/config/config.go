package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Analysis inputs.
	RasterPath   string
	LocationName string

	// Community board storage.
	SQLitePath string

	// Azure OpenAI configuration. The model is treated as absent unless all
	// four slots are set.
	OpenAIKey        string
	OpenAIEndpoint   string
	OpenAIAPIVersion string
	OpenAIDeployment string
	OpenAITimeout    time.Duration
	OpenAIMaxRetries int

	// Optional Kafka answer-event publishing.
	KafkaBrokers     []string
	KafkaEventsTopic string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	openAITimeout, err := parseDuration("OPENAI_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	maxRetries, err := parseInt("OPENAI_MAX_RETRIES", 3)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		RasterPath:   os.Getenv("RASTER_PATH"),
		LocationName: envOrDefault("LOCATION_NAME", "Kilimani area, Nairobi, Kenya"),

		SQLitePath: envOrDefault("SQLITE_PATH", "community.db"),

		OpenAIKey:        os.Getenv("AZURE_OPENAI_API_KEY"),
		OpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIAPIVersion: os.Getenv("AZURE_OPENAI_API_VERSION"),
		OpenAIDeployment: os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"),
		OpenAITimeout:    openAITimeout,
		OpenAIMaxRetries: maxRetries,

		KafkaBrokers:     parseBrokers(os.Getenv("KAFKA_BROKERS")),
		KafkaEventsTopic: envOrDefault("KAFKA_EVENTS_TOPIC", "lst-answer-events"),
	}

	if cfg.OpenAIMaxRetries < 0 {
		return nil, errors.New("OPENAI_MAX_RETRIES must not be negative")
	}
	if cfg.KafkaEnabled() && cfg.KafkaEventsTopic == "" {
		return nil, errors.New("KAFKA_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

// OpenAIConfigured reports whether all four credential slots are present.
func (c *Config) OpenAIConfigured() bool {
	return c.OpenAIKey != "" && c.OpenAIEndpoint != "" && c.OpenAIAPIVersion != "" && c.OpenAIDeployment != ""
}

// KafkaEnabled reports whether answer-event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
