// Package usecase はポートフォリオ・注文・ウォッチリストのビジネスロジックを実装します。
package usecase

import (
	"context"

	"finance_backend/internal/feature/investing/domain/entity"
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
)

// SnapshotFetcher は現在価格の取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, symbol string) (marketentity.Snapshot, error)
}

// HoldingRepository は保有ポジションの永続化を抽象化します。
type HoldingRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error)
	// FindByUserAndSymbol は保有が存在しない場合domain.ErrHoldingNotFoundを返します。
	FindByUserAndSymbol(ctx context.Context, userID uint, symbol string) (entity.Holding, error)
	Save(ctx context.Context, holding *entity.Holding) error
	Delete(ctx context.Context, userID uint, symbol string) error
}

// OrderRepository は注文履歴の永続化を抽象化します。
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	ListByUser(ctx context.Context, userID uint) ([]entity.Order, error)
}

// WatchlistRepository はウォッチリストの永続化を抽象化します。
type WatchlistRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error)
	// Add は既に登録済みの場合domain.ErrAlreadyInWatchlistを返します。
	Add(ctx context.Context, entry *entity.WatchlistEntry) error
	// Remove は未登録の場合domain.ErrNotInWatchlistを返します。
	Remove(ctx context.Context, userID uint, symbol string) error
}
