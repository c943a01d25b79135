package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/contact-service/internal/domain"
	"github.com/weiawesome/contact-service/pkg/database"
)

func stepClock(start time.Time, step time.Duration) Clock {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func newSQLiteRepository(t *testing.T, clock Clock) *GormMessageRepository {
	t.Helper()
	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "contact.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)

	repo := NewGormMessageRepository(db, clock)
	require.NoError(t, repo.Migrate())
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestGormCreateAssignsDefaults(t *testing.T) {
	at := time.Date(2024, 5, 1, 9, 30, 0, 123456789, time.UTC)
	repo := newSQLiteRepository(t, func() time.Time { return at })
	ctx := context.Background()

	msg := &domain.Message{Name: "Ann", Message: "Hello there"}
	require.NoError(t, repo.Create(ctx, msg))

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, domain.DefaultSubject, msg.Subject)
	assert.True(t, at.Truncate(time.Millisecond).Equal(msg.Timestamp))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, msg.ID, stored[0].ID)
	assert.Equal(t, "Ann", stored[0].Name)
	assert.Equal(t, "Hello there", stored[0].Message)
	assert.Equal(t, domain.DefaultSubject, stored[0].Subject)
	assert.Empty(t, stored[0].Email)
	assert.True(t, msg.Timestamp.Equal(stored[0].Timestamp))
}

func TestGormCreateKeepsGivenSubjectAndEmail(t *testing.T) {
	repo := newSQLiteRepository(t, nil)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Message{
		Name:    "Bob",
		Email:   "bob@example.com",
		Subject: "Quote",
		Message: "Need a quote",
	}))

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Quote", stored[0].Subject)
	assert.Equal(t, "bob@example.com", stored[0].Email)
}

func TestGormCreateRejectsInvalidMessages(t *testing.T) {
	repo := newSQLiteRepository(t, nil)
	ctx := context.Background()

	err := repo.Create(ctx, &domain.Message{Message: "hi"})
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name is required, message must be at least 3 characters", verr.Summary())

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestGormListNewestFirst(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newSQLiteRepository(t, stepClock(start, time.Minute))
	ctx := context.Background()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, &domain.Message{Name: name, Message: "message from " + name}))
	}

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, "third", stored[0].Name)
	assert.Equal(t, "second", stored[1].Name)
	assert.Equal(t, "first", stored[2].Name)
	for i := 1; i < len(stored); i++ {
		assert.False(t, stored[i].Timestamp.After(stored[i-1].Timestamp))
	}
}

func TestGormListBreaksTimestampTiesByInsertionOrder(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newSQLiteRepository(t, func() time.Time { return at })
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &domain.Message{Name: name, Message: "same instant"}))
	}

	stored, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{stored[0].Name, stored[1].Name, stored[2].Name})
}

func TestGormClosedStoreFails(t *testing.T) {
	repo := newSQLiteRepository(t, nil)
	ctx := context.Background()
	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.Close())

	_, err := repo.List(ctx)
	assert.Error(t, err)
	assert.Error(t, repo.Ping(ctx))
	assert.Error(t, repo.Create(ctx, &domain.Message{Name: "Ann", Message: "Hello"}))
}
