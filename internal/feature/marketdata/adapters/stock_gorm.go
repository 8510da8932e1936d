// Package adapters はmarketdataフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
	"finance_backend/internal/feature/marketdata/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// stockGorm はStockRepositoryインターフェースのリレーショナルDB実装です。
type stockGorm struct {
	db *gorm.DB
}

var _ usecase.StockRepository = (*stockGorm)(nil)

// NewStockRepository は指定されたDB接続でstockGormリポジトリの新しいインスタンスを生成します。
func NewStockRepository(db *gorm.DB) *stockGorm {
	return &stockGorm{db: db}
}

// StockModel は銘柄サマリーのテーブル定義です。
// 取得パイプラインが最新値で上書きします。
type StockModel struct {
	ID     uint   `gorm:"primaryKey"`
	Symbol string `gorm:"size:32;not null;uniqueIndex"`
	Name   string `gorm:"size:255;not null"`

	Price         float64 `gorm:"not null;default:0"`
	PreviousClose float64 `gorm:"not null;default:0"`
	Volume        int64   `gorm:"not null;default:0"`
	MarketCap     int64   `gorm:"not null;default:0"`
	High52w       float64 `gorm:"not null;default:0"`
	Low52w        float64 `gorm:"not null;default:0"`

	UpdatedAt time.Time
}

func (StockModel) TableName() string {
	return "stocks"
}

// Upsert はSnapshotの最新フィールドをsymbolをキーに挿入または更新します。
func (r *stockGorm) Upsert(ctx context.Context, snap entity.Snapshot) error {
	m := StockModel{
		Symbol:        snap.Symbol,
		Name:          snap.Name,
		Price:         snap.Price,
		PreviousClose: snap.PreviousClose,
		Volume:        snap.Volume,
		MarketCap:     snap.MarketCap,
		High52w:       snap.High52w,
		Low52w:        snap.Low52w,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "price", "previous_close", "volume", "market_cap", "high52w", "low52w", "updated_at"}),
	}).Create(&m).Error
}

// FindBySymbol は銘柄サマリーを検索します。存在しない場合はErrSymbolNotFoundを返します。
func (r *stockGorm) FindBySymbol(ctx context.Context, symbol string) (entity.Quote, error) {
	var m StockModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entity.Quote{}, domain.ErrSymbolNotFound
		}
		return entity.Quote{}, err
	}
	return entity.Quote{
		Symbol:        m.Symbol,
		Name:          m.Name,
		Price:         m.Price,
		PreviousClose: m.PreviousClose,
		Volume:        m.Volume,
		MarketCap:     m.MarketCap,
		High52w:       m.High52w,
		Low52w:        m.Low52w,
	}, nil
}
