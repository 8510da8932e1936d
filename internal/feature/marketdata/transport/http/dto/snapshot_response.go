// Package dto defines data transfer objects for the marketdata HTTP API.
package dto

// HistoryPoint は履歴上の1点のレスポンスDTOです。
type HistoryPoint struct {
	Time     string  `json:"time"`     // RFC3339
	Price    float64 `json:"price"`    // 終値
	Intraday bool    `json:"intraday"` // 当日の日中足かどうか
}

// SnapshotResponse は銘柄SnapshotのレスポンスDTOです。
type SnapshotResponse struct {
	Symbol        string         `json:"symbol"`
	Name          string         `json:"name"`
	Price         float64        `json:"price"`
	PreviousClose float64        `json:"previous_close"`
	Change        float64        `json:"change"`
	ChangePercent float64        `json:"change_percent"`
	Volume        int64          `json:"volume"`
	MarketCap     int64          `json:"market_cap"`
	High52w       float64        `json:"high_52w"`
	Low52w        float64        `json:"low_52w"`
	History       []HistoryPoint `json:"history"`
	FetchedAt     string         `json:"fetched_at"` // RFC3339
}
