package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/contact-service/internal/repository"
	"github.com/weiawesome/contact-service/pkg/pubsub"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Server.Addr())
	assert.Equal(t, "/contact.html", cfg.Server.FormPage)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, repository.DriverGorm, cfg.Store.Driver)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, []string{"localhost"}, cfg.Cassandra.Hosts)
	assert.Equal(t, pubsub.DriverNone, cfg.PubSub.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "cassandra")
	t.Setenv("DATABASE_URL", "postgres://contact@db/contact")
	t.Setenv("CASSANDRA_HOSTS", "cass-1,cass-2")
	t.Setenv("PUBSUB_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, repository.DriverCassandra, cfg.Store.Driver)
	assert.Equal(t, []string{"cass-1", "cass-2"}, cfg.Cassandra.Hosts)
	assert.Equal(t, pubsub.DriverKafka, cfg.PubSub.Driver)
	assert.Equal(t, "kafka:9092", cfg.PubSub.Kafka.Brokers)
	assert.False(t, cfg.Metrics.Enabled)

	dbCfg := cfg.Database.ToDatabaseConfig()
	assert.Equal(t, "postgres://contact@db/contact", dbCfg.DSN)
}
