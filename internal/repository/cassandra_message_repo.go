package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"github.com/weiawesome/contact-service/internal/domain"
	"github.com/weiawesome/contact-service/pkg/log"
)

// cassandraBucket is the single partition holding every message, so the
// clustering order yields a global newest-first listing.
const cassandraBucket = "all"

const createMessagesTable = `
	CREATE TABLE IF NOT EXISTS messages_by_bucket (
		bucket    text,
		timestamp timestamp,
		id        text,
		name      text,
		email     text,
		subject   text,
		message   text,
		PRIMARY KEY ((bucket), timestamp, id)
	) WITH CLUSTERING ORDER BY (timestamp DESC, id DESC)`

// CassandraConfig holds the Cassandra connection settings.
type CassandraConfig struct {
	Hosts          []string      `mapstructure:"hosts"`
	Keyspace       string        `mapstructure:"keyspace"`
	Consistency    string        `mapstructure:"consistency"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// CassandraMessageRepository implements MessageRepository on Cassandra.
type CassandraMessageRepository struct {
	session *gocql.Session
	clock   Clock
}

// NewCassandraMessageRepository connects to the cluster and creates the
// messages table if it does not exist. The keyspace must already exist.
func NewCassandraMessageRepository(cfg CassandraConfig, clock Clock) (*CassandraMessageRepository, error) {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Keyspace = cfg.Keyspace
	cluster.Consistency = parseConsistency(cfg.Consistency)
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
	}
	if cfg.Timeout > 0 {
		cluster.Timeout = cfg.Timeout
	}
	if cfg.Username != "" && cfg.Password != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create cassandra session: %w", err)
	}

	if err := session.Query(createMessagesTable).Exec(); err != nil {
		session.Close()
		return nil, fmt.Errorf("failed to create messages table: %w", err)
	}

	return &CassandraMessageRepository{session: session, clock: clockOrDefault(clock)}, nil
}

// Create validates and inserts a message.
func (r *CassandraMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	l := log.Ctx(ctx)

	if err := prepare(msg, r.clock); err != nil {
		return err
	}

	query := `
		INSERT INTO messages_by_bucket (
			bucket, timestamp, id, name, email, subject, message
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	err := r.session.Query(query,
		cassandraBucket,
		msg.Timestamp,
		msg.ID,
		msg.Name,
		msg.Email,
		msg.Subject,
		msg.Message,
	).WithContext(ctx).Exec()
	if err != nil {
		l.Error().Err(err).Msg("failed to insert message in cassandra")
		return fmt.Errorf("failed to insert message: %w", err)
	}

	l.Debug().Str(log.FieldMessageID, msg.ID).Msg("message inserted in cassandra")
	return nil
}

// List retrieves every message, newest first.
func (r *CassandraMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	iter := r.session.Query(
		`SELECT id, name, email, subject, message, timestamp
		 FROM messages_by_bucket
		 WHERE bucket = ?`,
		cassandraBucket,
	).WithContext(ctx).Iter()

	messages := []domain.Message{}
	var msg domain.Message
	for iter.Scan(&msg.ID, &msg.Name, &msg.Email, &msg.Subject, &msg.Message, &msg.Timestamp) {
		msg.Timestamp = msg.Timestamp.UTC()
		messages = append(messages, msg)
		msg = domain.Message{}
	}

	if err := iter.Close(); err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Msg("failed to list messages from cassandra")
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return messages, nil
}

// Ping runs a trivial query against the system keyspace.
func (r *CassandraMessageRepository) Ping(ctx context.Context) error {
	return r.session.Query("SELECT release_version FROM system.local").WithContext(ctx).Exec()
}

// Close closes the Cassandra session.
func (r *CassandraMessageRepository) Close() error {
	r.session.Close()
	return nil
}

// parseConsistency converts a string consistency level to gocql.Consistency.
func parseConsistency(s string) gocql.Consistency {
	switch strings.ToUpper(s) {
	case "ONE":
		return gocql.One
	case "QUORUM":
		return gocql.Quorum
	case "ALL":
		return gocql.All
	case "LOCAL_QUORUM":
		return gocql.LocalQuorum
	case "EACH_QUORUM":
		return gocql.EachQuorum
	default:
		return gocql.LocalOne
	}
}
