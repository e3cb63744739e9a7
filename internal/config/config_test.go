package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "9090", cfg.GRPCPort)
	assert.Equal(t, DriverSpanner, cfg.StoreDriver)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "total-price", cfg.Topics.TotalPrice)
	assert.Equal(t, "fetch-qty", cfg.Topics.FetchQty)
	assert.Equal(t, "restore-qty", cfg.Topics.RestoreQty)
	assert.Equal(t, "total-price-replies", cfg.Topics.PriceReplies)
	assert.Equal(t, "catalog-dlq", cfg.Topics.DeadLetter)
	assert.Equal(t, 2, cfg.ConsumerWorkers)
	assert.False(t, cfg.DedupEnabled())
	assert.Equal(t, 24*time.Hour, cfg.DedupTTL)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"STORE_DRIVER":     "POSTGRES",
		"POSTGRES_DSN":     "postgres://u:p@db:5432/catalog",
		"KAFKA_BROKERS":    "k1:9092, k2:9092,",
		"CONSUMER_WORKERS": "4",
		"REDIS_ADDR":       "redis:6379",
		"DEDUP_TTL":        "90m",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 4, cfg.ConsumerWorkers)
	assert.True(t, cfg.DedupEnabled())
	assert.Equal(t, 90*time.Minute, cfg.DedupTTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		msg  string
	}{
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo"}, "STORE_DRIVER"},
		{"bad integer", map[string]string{"CONSUMER_WORKERS": "many"}, "CONSUMER_WORKERS"},
		{"zero workers", map[string]string{"CONSUMER_WORKERS": "0"}, "CONSUMER_WORKERS must be positive"},
		{"bad duration", map[string]string{"DEDUP_TTL": "1 day"}, "DEDUP_TTL"},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}, "LOG_FORMAT"},
		{"zero outbox interval", map[string]string{"OUTBOX_INTERVAL": "0s"}, "OUTBOX_INTERVAL must be positive"},
		{"negative dedup ttl", map[string]string{"DEDUP_TTL": "-1m"}, "DEDUP_TTL must be positive"},
		{"zero shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}, "SHUTDOWN_TIMEOUT must be positive"},
		{"fetch and restore share a topic", map[string]string{"TOPIC_FETCH_QTY": "qty", "TOPIC_RESTORE_QTY": "qty"},
			`TOPIC_FETCH_QTY and TOPIC_RESTORE_QTY must differ, both are "qty"`},
		{"dead letter is an input", map[string]string{"TOPIC_DEAD_LETTER": "total-price"},
			"TOPIC_TOTAL_PRICE and TOPIC_DEAD_LETTER must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(envMap(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidate_EmptyTopic(t *testing.T) {
	cfg, err := load(envMap(nil))
	require.NoError(t, err)

	cfg.Topics.Events = ""
	assert.ErrorContains(t, cfg.Validate(), "TOPIC_PRODUCT_EVENTS must not be empty")
}
