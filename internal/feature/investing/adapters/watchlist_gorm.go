package adapters

import (
	"context"
	"fmt"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
	"finance_backend/internal/feature/investing/usecase"

	"gorm.io/gorm"
)

// watchlistGorm はWatchlistRepositoryのgorm実装です。
type watchlistGorm struct {
	db *gorm.DB
}

// インターフェースを満たしているかのコンパイル時チェック
var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistGorm は指定されたDBでWatchlistRepositoryを生成します。
func NewWatchlistGorm(db *gorm.DB) usecase.WatchlistRepository {
	return &watchlistGorm{db: db}
}

// ListByUser はユーザーのウォッチリストを登録順で返します。
func (r *watchlistGorm) ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error) {
	var entries []entity.WatchlistEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	return entries, nil
}

// Add は銘柄をウォッチリストに登録します。登録済みの場合はエラーを返します。
func (r *watchlistGorm) Add(ctx context.Context, entry *entity.WatchlistEntry) error {
	// DBの複合一意制約に先行して重複を検査し、ドメインエラーに揃える
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.WatchlistEntry{}).
		Where("user_id = ? AND symbol = ?", entry.UserID, entry.Symbol).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check watchlist: %w", err)
	}
	if count > 0 {
		return domain.ErrAlreadyInWatchlist
	}

	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to add to watchlist: %w", err)
	}
	return nil
}

// Remove は銘柄をウォッチリストから削除します。未登録の場合はエラーを返します。
func (r *watchlistGorm) Remove(ctx context.Context, userID uint, symbol string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.WatchlistEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotInWatchlist
	}
	return nil
}
