package repository

import (
	"context"
	"time"

	"github.com/weiawesome/contact-service/internal/domain"
)

// Supported store drivers.
const (
	DriverGorm      = "gorm"
	DriverCassandra = "cassandra"
)

// Clock supplies insert timestamps.
type Clock func() time.Time

// MessageRepository is the Message Store: it applies defaults, enforces the
// message schema, assigns identifiers and timestamps, and lists messages
// newest first.
type MessageRepository interface {
	// Create persists msg, filling ID, Subject default and Timestamp.
	// Schema violations are returned as *domain.ValidationError.
	Create(ctx context.Context, msg *domain.Message) error
	// List returns every message ordered by timestamp descending.
	List(ctx context.Context) ([]domain.Message, error)
	Ping(ctx context.Context) error
	Close() error
}
