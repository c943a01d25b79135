package config

import (
	"fmt"
	"time"

	"github.com/weiawesome/contact-service/internal/repository"
	pkgconfig "github.com/weiawesome/contact-service/pkg/config"
	"github.com/weiawesome/contact-service/pkg/database"
	"github.com/weiawesome/contact-service/pkg/pubsub"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Cassandra repository.CassandraConfig
	PubSub    pubsub.Config `mapstructure:"pubsub"`
	Log       LogConfig
	Metrics   MetricsConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	StaticDir       string        `mapstructure:"static_dir"`
	FormPage        string        `mapstructure:"form_page"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type StoreConfig struct {
	Driver         string        `mapstructure:"driver"` // gorm, cassandra
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	URL             string `mapstructure:"url"`
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	FilePath        string `mapstructure:"file_path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type MetricsConfig struct {
	Enabled bool
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ToDatabaseConfig converts to the shared GORM connection settings.
func (c DatabaseConfig) ToDatabaseConfig() *database.Config {
	return &database.Config{
		Driver:          c.Driver,
		DSN:             c.URL,
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		DBName:          c.DBName,
		SSLMode:         c.SSLMode,
		FilePath:        c.FilePath,
		MaxIdleConns:    c.MaxIdleConns,
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
		LogLevel:        c.LogLevel,
	}
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	pubsubDefaults := pubsub.DefaultConfig()

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.static_dir", "")
	v.SetDefault("server.form_page", "/contact.html")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("store.driver", repository.DriverGorm)
	v.SetDefault("store.publish_timeout", 2*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "contact_form")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.file_path", "./data/contact.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("cassandra.hosts", []string{"localhost"})
	v.SetDefault("cassandra.keyspace", "contact_form")
	v.SetDefault("cassandra.consistency", "LOCAL_ONE")
	v.SetDefault("cassandra.connect_timeout", 10*time.Second)
	v.SetDefault("cassandra.timeout", 5*time.Second)
	v.SetDefault("pubsub.driver", pubsubDefaults.Driver)
	v.SetDefault("pubsub.redis.address", pubsubDefaults.Redis.Address)
	v.SetDefault("pubsub.redis.pool_size", pubsubDefaults.Redis.PoolSize)
	v.SetDefault("pubsub.redis.read_timeout", pubsubDefaults.Redis.ReadTimeout)
	v.SetDefault("pubsub.redis.write_timeout", pubsubDefaults.Redis.WriteTimeout)
	v.SetDefault("pubsub.kafka.brokers", pubsubDefaults.Kafka.Brokers)
	v.SetDefault("pubsub.kafka.partitions", pubsubDefaults.Kafka.Partitions)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("metrics.enabled", true)

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.static_dir", "STATIC_DIR")
	v.BindEnv("server.form_page", "FORM_PAGE")
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.sslmode", "DB_SSLMODE")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("database.max_idle_conns", "DB_MAX_IDLE_CONNS")
	v.BindEnv("database.max_open_conns", "DB_MAX_OPEN_CONNS")
	v.BindEnv("database.conn_max_lifetime", "DB_CONN_MAX_LIFETIME")
	v.BindEnv("cassandra.hosts", "CASSANDRA_HOSTS")
	v.BindEnv("cassandra.keyspace", "CASSANDRA_KEYSPACE")
	v.BindEnv("cassandra.username", "CASSANDRA_USERNAME")
	v.BindEnv("cassandra.password", "CASSANDRA_PASSWORD")
	v.BindEnv("pubsub.driver", "PUBSUB_DRIVER")
	v.BindEnv("pubsub.redis.address", "REDIS_ADDRESS")
	v.BindEnv("pubsub.redis.password", "REDIS_PASSWORD")
	v.BindEnv("pubsub.kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("metrics.enabled", "METRICS_ENABLED")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
