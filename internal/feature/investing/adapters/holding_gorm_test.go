package adapters

import (
	"context"
	"testing"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを作成します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Holding{}, &entity.Order{}, &entity.WatchlistEntry{}))
	return db
}

func TestHoldingGorm_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHoldingGorm(db)
	ctx := context.Background()

	holding := &entity.Holding{UserID: 1, Symbol: "AAPL", Shares: 10, AveragePrice: 100}
	require.NoError(t, repo.Save(ctx, holding))
	assert.NotZero(t, holding.ID)

	found, err := repo.FindByUserAndSymbol(ctx, 1, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 10.0, found.Shares)
	assert.Equal(t, 100.0, found.AveragePrice)

	// 同じレコードの更新
	found.Shares = 15
	require.NoError(t, repo.Save(ctx, &found))

	updated, err := repo.FindByUserAndSymbol(ctx, 1, "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 15.0, updated.Shares)

	var count int64
	db.Model(&entity.Holding{}).Count(&count)
	assert.Equal(t, int64(1), count, "update should not create a second row")
}

func TestHoldingGorm_FindNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHoldingGorm(db)

	_, err := repo.FindByUserAndSymbol(context.Background(), 1, "NOPE")
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}

func TestHoldingGorm_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHoldingGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Holding{UserID: 1, Symbol: "AAPL", Shares: 10, AveragePrice: 100}))
	require.NoError(t, repo.Save(ctx, &entity.Holding{UserID: 1, Symbol: "MSFT", Shares: 5, AveragePrice: 200}))
	require.NoError(t, repo.Save(ctx, &entity.Holding{UserID: 2, Symbol: "AAPL", Shares: 1, AveragePrice: 90}))

	holdings, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, holdings, 2, "only the requesting user's holdings are returned")
}

func TestHoldingGorm_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewHoldingGorm(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.Holding{UserID: 1, Symbol: "AAPL", Shares: 10, AveragePrice: 100}))
	require.NoError(t, repo.Delete(ctx, 1, "AAPL"))

	_, err := repo.FindByUserAndSymbol(ctx, 1, "AAPL")
	assert.ErrorIs(t, err, domain.ErrHoldingNotFound)
}
