package adapters

import (
	"context"
	"fmt"

	"finance_backend/internal/feature/investing/domain/entity"
	"finance_backend/internal/feature/investing/usecase"

	"gorm.io/gorm"
)

// orderGorm はOrderRepositoryのgorm実装です。
type orderGorm struct {
	db *gorm.DB
}

// インターフェースを満たしているかのコンパイル時チェック
var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderGorm は指定されたDBでOrderRepositoryを生成します。
func NewOrderGorm(db *gorm.DB) usecase.OrderRepository {
	return &orderGorm{db: db}
}

// Create は注文を新規登録します。
func (r *orderGorm) Create(ctx context.Context, order *entity.Order) error {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// Update は注文を更新します。
func (r *orderGorm) Update(ctx context.Context, order *entity.Order) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	return nil
}

// ListByUser はユーザーの注文履歴を新しい順で返します。
func (r *orderGorm) ListByUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
