package repository

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weiawesome/contact-service/internal/domain"
	"github.com/weiawesome/contact-service/pkg/database"
	"github.com/weiawesome/contact-service/pkg/log"
)

// GormMessageRepository implements MessageRepository using GORM.
type GormMessageRepository struct {
	db    *gorm.DB
	clock Clock
}

// NewGormMessageRepository creates a new GORM-based message repository.
// A nil clock means time.Now.
func NewGormMessageRepository(db *gorm.DB, clock Clock) *GormMessageRepository {
	return &GormMessageRepository{db: db, clock: clockOrDefault(clock)}
}

// Migrate creates the messages table and its timestamp index if missing.
func (r *GormMessageRepository) Migrate() error {
	return database.AutoMigrate(r.db, &domain.MessageModel{})
}

// Create validates and inserts a message.
func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	l := log.Ctx(ctx)

	if err := prepare(msg, r.clock); err != nil {
		return err
	}

	model := domain.MessageToModel(msg)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		l.Error().Err(err).Msg("failed to insert message in db")
		return fmt.Errorf("failed to insert message: %w", err)
	}

	l.Debug().Str(log.FieldMessageID, msg.ID).Msg("message inserted in db")
	return nil
}

// List retrieves every message, newest first.
func (r *GormMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	l := log.Ctx(ctx)

	var models []domain.MessageModel
	err := r.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&models).Error
	if err != nil {
		l.Error().Err(err).Msg("failed to list messages from db")
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	return lo.Map(models, func(m domain.MessageModel, _ int) domain.Message {
		return m.ToDomain()
	}), nil
}

// Ping checks the database connection.
func (r *GormMessageRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (r *GormMessageRepository) Close() error {
	return database.Close(r.db)
}
