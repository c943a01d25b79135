package service

import (
	"context"
	"errors"
	"time"

	"github.com/weiawesome/contact-service/internal/audit"
	"github.com/weiawesome/contact-service/internal/domain"
	"github.com/weiawesome/contact-service/internal/metrics"
	"github.com/weiawesome/contact-service/internal/repository"
	pkglog "github.com/weiawesome/contact-service/pkg/log"
	"github.com/weiawesome/contact-service/pkg/pubsub"
)

const defaultPublishTimeout = 2 * time.Second

// contactServiceImpl implements ContactService interface.
type contactServiceImpl struct {
	repo           repository.MessageRepository
	publisher      pubsub.Publisher
	publishTimeout time.Duration
}

// NewContactService creates a new contact service. A nil publisher disables
// submission notifications.
func NewContactService(repo repository.MessageRepository, publisher pubsub.Publisher, publishTimeout time.Duration) ContactService {
	if publisher == nil {
		publisher = pubsub.NoopPublisher{}
	}
	if publishTimeout <= 0 {
		publishTimeout = defaultPublishTimeout
	}
	return &contactServiceImpl{
		repo:           repo,
		publisher:      publisher,
		publishTimeout: publishTimeout,
	}
}

// SubmitMessage sanitizes the submission and stores it. Rejections are
// returned as *domain.ValidationError.
func (s *contactServiceImpl) SubmitMessage(ctx context.Context, req domain.SubmitRequest) (*domain.Message, error) {
	clean := req.Sanitized()
	msg := clean.Candidate()

	if castErrs := clean.CastErrors(); len(castErrs) > 0 {
		err := &domain.ValidationError{Fields: castErrs}
		mergeSchemaErrors(err, msg)
		s.reject(ctx, err)
		return nil, err
	}

	start := time.Now()
	err := s.repo.Create(ctx, msg)
	metrics.RecordStoreOperation("create", time.Since(start), err)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.reject(ctx, verr)
			return nil, err
		}
		metrics.RecordSubmission(metrics.OutcomeFailed)
		return nil, err
	}

	metrics.RecordSubmission(metrics.OutcomeAccepted)
	audit.Log(ctx, audit.ActionSubmitMessage, msg.ID, "contact message stored")

	s.notify(ctx, msg)
	return msg, nil
}

// ListMessages returns every stored message, newest first.
func (s *contactServiceImpl) ListMessages(ctx context.Context) ([]domain.Message, error) {
	start := time.Now()
	messages, err := s.repo.List(ctx)
	metrics.RecordStoreOperation("list", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []domain.Message{}
	}

	l := pkglog.Ctx(ctx)
	l.Debug().Int(pkglog.FieldCount, len(messages)).Msg("messages listed")
	return messages, nil
}

// Health reports whether the message store is reachable.
func (s *contactServiceImpl) Health(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *contactServiceImpl) reject(ctx context.Context, err *domain.ValidationError) {
	metrics.RecordSubmission(metrics.OutcomeRejected)
	audit.LogWithDetail(ctx, audit.ActionRejectMessage, err.Summary(), "contact message rejected")
}

// notify publishes the submission event. Failures are logged only.
func (s *contactServiceImpl) notify(ctx context.Context, msg *domain.Message) {
	l := pkglog.Ctx(ctx)

	event, err := pubsub.NewEvent(pubsub.EventMessageSubmitted, msg.ID, &pubsub.MessageSubmittedPayload{
		MessageID: msg.ID,
		Name:      msg.Name,
		Email:     msg.Email,
		Subject:   msg.Subject,
		Timestamp: msg.Timestamp,
	})
	if err != nil {
		metrics.RecordNotificationFailure()
		l.Error().Err(err).Str(pkglog.FieldMessageID, msg.ID).Msg("failed to build submission event")
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, pubsub.ChannelMessageSubmitted, event); err != nil {
		metrics.RecordNotificationFailure()
		l.Error().Err(err).Str(pkglog.FieldMessageID, msg.ID).Msg("failed to publish submission event")
	}
}

// mergeSchemaErrors appends schema violations for fields not already reported.
func mergeSchemaErrors(dst *domain.ValidationError, msg *domain.Message) {
	var verr *domain.ValidationError
	if !errors.As(repository.ValidateMessage(msg), &verr) {
		return
	}

	reported := make(map[string]bool, len(dst.Fields))
	for _, f := range dst.Fields {
		reported[f.Field] = true
	}
	for _, f := range verr.Fields {
		if !reported[f.Field] {
			dst.Fields = append(dst.Fields, f)
			reported[f.Field] = true
		}
	}
}
