// Package dto defines data transfer objects for the advisor HTTP API.
package dto

// RecommendationResponse は1銘柄の推奨結果のレスポンスDTOです。
type RecommendationResponse struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	ChangePercent float64  `json:"change_percent"`
	Score         int      `json:"score"`
	Label         string   `json:"label"`
	Reasons       []string `json:"reasons"`
}
