package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAP-F-2025/assessment-engine/internal/events"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 2*time.Hour, cfg.SessionIdleTimeout)
	assert.Equal(t, time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, "memory", cfg.Storage.Driver)
	assert.False(t, cfg.Storage.UsesRedis())
	assert.False(t, cfg.Events.Enabled)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("RESULT_CACHE_TTL", "10m")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.True(t, cfg.Storage.ResultCacheEnabled())
	assert.True(t, cfg.Storage.UsesRedis())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")
	_, err := Parse()
	assert.Error(t, err)
}

func TestParse_RejectsSweepWithoutInterval(t *testing.T) {
	t.Setenv("SESSION_SWEEP_INTERVAL", "0s")
	_, err := Parse()
	assert.Error(t, err)

	t.Setenv("SESSION_IDLE_TIMEOUT", "0s")
	cfg, err := Parse()
	require.NoError(t, err)
	assert.Zero(t, cfg.SessionIdleTimeout)
}

func TestCreateEventPublisher_FallsBackToMock(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	disabled := EventConfig{Enabled: false, Publisher: "kafka"}
	pub, err := disabled.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, pub)

	unknown := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
	pub, err = unknown.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, pub)
}
