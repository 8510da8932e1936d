// Package entity はinvestingフィーチャーのドメインモデルを定義します。
package entity

import "time"

// OrderType は注文の売買区分です。
type OrderType string

const (
	OrderTypeBuy  OrderType = "BUY"
	OrderTypeSell OrderType = "SELL"
)

// OrderStatus は注文の処理状態です。
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
)

// Holding はユーザーの1銘柄分の保有ポジションです。
// AveragePriceは買い付けのたびに取得単価の加重平均で更新されます。
type Holding struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       uint    `gorm:"not null;uniqueIndex:idx_holdings_user_symbol"`
	Symbol       string  `gorm:"size:32;not null;uniqueIndex:idx_holdings_user_symbol"`
	Shares       float64 `gorm:"not null"`
	AveragePrice float64 `gorm:"not null"`
	UpdatedAt    time.Time
}

// Order は約定済みまたは処理中の注文1件です。
// 価格は注文時点のスナップショット価格で確定します（成行のみ）。
type Order struct {
	ID          uint        `gorm:"primaryKey"`
	UserID      uint        `gorm:"index;not null"`
	Symbol      string      `gorm:"size:32;not null"`
	Type        OrderType   `gorm:"size:8;not null"`
	Quantity    float64     `gorm:"not null"`
	Price       float64     `gorm:"not null"`
	TotalAmount float64     `gorm:"not null"`
	Status      OrderStatus `gorm:"size:16;not null"`
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// WatchlistEntry はユーザーのウォッチリスト登録1件です。
type WatchlistEntry struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"not null;uniqueIndex:idx_watchlist_user_symbol"`
	Symbol  string `gorm:"size:32;not null;uniqueIndex:idx_watchlist_user_symbol"`
	AddedAt time.Time
}

// TableName は複数形化を避けて元のテーブル名に合わせます。
func (WatchlistEntry) TableName() string { return "watchlist" }
