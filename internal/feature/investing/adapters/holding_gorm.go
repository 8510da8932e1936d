// Package adapters はinvestingフィーチャーの永続化アダプターを提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
	"finance_backend/internal/feature/investing/usecase"

	"gorm.io/gorm"
)

// holdingGorm はHoldingRepositoryのgorm実装です。
type holdingGorm struct {
	db *gorm.DB
}

// インターフェースを満たしているかのコンパイル時チェック
var _ usecase.HoldingRepository = (*holdingGorm)(nil)

// NewHoldingGorm は指定されたDBでHoldingRepositoryを生成します。
func NewHoldingGorm(db *gorm.DB) usecase.HoldingRepository {
	return &holdingGorm{db: db}
}

// ListByUser はユーザーの全保有ポジションを返します。
func (r *holdingGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	var holdings []entity.Holding
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&holdings).Error; err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	return holdings, nil
}

// FindByUserAndSymbol はユーザーの特定銘柄の保有を返します。
func (r *holdingGorm) FindByUserAndSymbol(ctx context.Context, userID uint, symbol string) (entity.Holding, error) {
	var holding entity.Holding
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Holding{}, domain.ErrHoldingNotFound
	}
	if err != nil {
		return entity.Holding{}, fmt.Errorf("failed to find holding: %w", err)
	}
	return holding, nil
}

// Save は保有を挿入または更新します。
func (r *holdingGorm) Save(ctx context.Context, holding *entity.Holding) error {
	if err := r.db.WithContext(ctx).Save(holding).Error; err != nil {
		return fmt.Errorf("failed to save holding: %w", err)
	}
	return nil
}

// Delete はユーザーの特定銘柄の保有を削除します。
func (r *holdingGorm) Delete(ctx context.Context, userID uint, symbol string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND symbol = ?", userID, symbol).
		Delete(&entity.Holding{}).Error; err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}
	return nil
}
