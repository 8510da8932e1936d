package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance_backend/internal/feature/auth/domain/entity"
	"finance_backend/internal/feature/auth/usecase"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests use redismock to exercise failure paths that miniredis
// cannot simulate, such as transport errors from the redis server.

func TestSessionRedis_FindByID_RedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	mock.ExpectGet("session:token-1").SetErr(errors.New("connection refused"))

	_, err := repo.FindByID(context.Background(), "token-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, usecase.ErrSessionNotFound, "transport errors must not be reported as a missing session")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_FindByID_MissingKey(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	mock.ExpectGet("session:token-1").RedisNil()

	_, err := repo.FindByID(context.Background(), "token-1")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRedis_Create_RejectsExpiredSession(t *testing.T) {
	client, _ := redismock.NewClientMock()
	repo := NewSessionRedis(client, "session")

	session := &entity.Session{
		ID:        "token-1",
		UserID:    1,
		CreatedAt: time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}

	err := repo.Create(context.Background(), session)
	require.Error(t, err, "an already expired session must not be stored")
}
