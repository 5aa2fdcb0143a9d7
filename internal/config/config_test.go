package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "sk-test-key"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.RasterPath)
	assert.Equal(t, "Kilimani area, Nairobi, Kenya", cfg.LocationName)
	assert.Equal(t, "community.db", cfg.SQLitePath)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 3, cfg.OpenAIMaxRetries)
	assert.False(t, cfg.OpenAIConfigured())
	assert.False(t, cfg.KafkaEnabled())
	assert.Equal(t, "lst-answer-events", cfg.KafkaEventsTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("RASTER_PATH", "/data/lst.asc")
	t.Setenv("LOCATION_NAME", "Westlands, Nairobi, Kenya")
	t.Setenv("SQLITE_PATH", "/var/lib/lst/community.db")
	t.Setenv("OPENAI_TIMEOUT", "45s")
	t.Setenv("OPENAI_MAX_RETRIES", "5")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_EVENTS_TOPIC", "custom-events")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/data/lst.asc", cfg.RasterPath)
	assert.Equal(t, "Westlands, Nairobi, Kenya", cfg.LocationName)
	assert.Equal(t, "/var/lib/lst/community.db", cfg.SQLitePath)
	assert.Equal(t, 45*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, 5, cfg.OpenAIMaxRetries)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "custom-events", cfg.KafkaEventsTopic)
}

func TestLoad_OpenAIConfigured(t *testing.T) {
	t.Setenv("AZURE_OPENAI_API_KEY", testAPIKey)
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_API_VERSION", "2024-02-01")
	t.Setenv("AZURE_OPENAI_DEPLOYMENT_NAME", "gpt-4o")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.OpenAIConfigured())
}

func TestLoad_OpenAIPartialIsNotConfigured(t *testing.T) {
	t.Setenv("AZURE_OPENAI_API_KEY", testAPIKey)
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.OpenAIConfigured())
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidOpenAITimeout(t *testing.T) {
	t.Setenv("OPENAI_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_TIMEOUT")
}

func TestLoad_InvalidMaxRetries(t *testing.T) {
	t.Setenv("OPENAI_MAX_RETRIES", "many")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_MAX_RETRIES")
}

func TestLoad_NegativeMaxRetries(t *testing.T) {
	t.Setenv("OPENAI_MAX_RETRIES", "-1")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_MAX_RETRIES")
}

func TestLoad_ZeroMaxRetries(t *testing.T) {
	t.Setenv("OPENAI_MAX_RETRIES", "0")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.OpenAIMaxRetries)
}

func TestParseBrokers(t *testing.T) {
	assert.Nil(t, parseBrokers(""))
	assert.Equal(t, []string{"a:1"}, parseBrokers("a:1"))
	assert.Equal(t, []string{"a:1", "b:2"}, parseBrokers(" a:1 ,, b:2 "))
}
