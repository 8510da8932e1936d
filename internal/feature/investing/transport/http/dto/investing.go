// Package dto defines data transfer objects for the investing HTTP API.
package dto

// OrderRequest は注文作成リクエストです。
type OrderRequest struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Type     string  `json:"type" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

// WatchlistRequest はウォッチリスト登録リクエストです。
type WatchlistRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

// HoldingResponse は評価済み保有1件のレスポンスDTOです。
type HoldingResponse struct {
	Symbol          string  `json:"symbol"`
	Name            string  `json:"name"`
	Shares          float64 `json:"shares"`
	AveragePrice    float64 `json:"average_price"`
	CurrentPrice    float64 `json:"current_price"`
	TotalValue      float64 `json:"total_value"`
	GainLoss        float64 `json:"gain_loss"`
	GainLossPercent float64 `json:"gain_loss_percent"`
}

// PortfolioResponse はポートフォリオ全体のレスポンスDTOです。
type PortfolioResponse struct {
	TotalValue         float64           `json:"total_value"`
	DailyChange        float64           `json:"daily_change"`
	DailyChangePercent float64           `json:"daily_change_percent"`
	Holdings           []HoldingResponse `json:"holdings"`
}

// OrderResponse は注文1件のレスポンスDTOです。
type OrderResponse struct {
	ID          uint    `json:"id"`
	Symbol      string  `json:"symbol"`
	Type        string  `json:"type"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	TotalAmount float64 `json:"total_amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt string  `json:"completed_at,omitempty"`
}

// WatchlistQuoteResponse はウォッチリスト銘柄の現在値レスポンスDTOです。
type WatchlistQuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}
