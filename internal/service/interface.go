package service

import (
	"context"

	"github.com/weiawesome/contact-service/internal/domain"
)

// ContactService defines the interface for contact-form business logic.
type ContactService interface {
	SubmitMessage(ctx context.Context, req domain.SubmitRequest) (*domain.Message, error)
	ListMessages(ctx context.Context) ([]domain.Message, error)
	Health(ctx context.Context) error
}
