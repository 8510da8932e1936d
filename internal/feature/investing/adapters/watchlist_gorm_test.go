package adapters

import (
	"context"
	"testing"
	"time"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistGorm_AddAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWatchlistGorm(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Add(ctx, &entity.WatchlistEntry{UserID: 1, Symbol: "AAPL", AddedAt: base}))
	require.NoError(t, repo.Add(ctx, &entity.WatchlistEntry{UserID: 1, Symbol: "MSFT", AddedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.Add(ctx, &entity.WatchlistEntry{UserID: 2, Symbol: "AAPL", AddedAt: base}))

	entries, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "AAPL", entries[0].Symbol, "entries are listed oldest first")
	assert.Equal(t, "MSFT", entries[1].Symbol)
}

func TestWatchlistGorm_AddDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWatchlistGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entity.WatchlistEntry{UserID: 1, Symbol: "AAPL", AddedAt: time.Now().UTC()}))

	err := repo.Add(ctx, &entity.WatchlistEntry{UserID: 1, Symbol: "AAPL", AddedAt: time.Now().UTC()})
	assert.ErrorIs(t, err, domain.ErrAlreadyInWatchlist)

	// 別ユーザーの同一銘柄は登録できる
	err = repo.Add(ctx, &entity.WatchlistEntry{UserID: 2, Symbol: "AAPL", AddedAt: time.Now().UTC()})
	assert.NoError(t, err)
}

func TestWatchlistGorm_Remove(t *testing.T) {
	db := setupTestDB(t)
	repo := NewWatchlistGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, &entity.WatchlistEntry{UserID: 1, Symbol: "AAPL", AddedAt: time.Now().UTC()}))
	require.NoError(t, repo.Remove(ctx, 1, "AAPL"))

	entries, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, repo.Remove(ctx, 1, "AAPL"), domain.ErrNotInWatchlist)
}
