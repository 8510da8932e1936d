// Package dto はreceiptsフィーチャーのHTTPリクエスト/レスポンス型を定義します。
package dto

// ReceiptDraftResponse はレシート読み取り結果のレスポンスです。
type ReceiptDraftResponse struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Date     string  `json:"date,omitempty"`
	Category string  `json:"category"`
	RawText  string  `json:"raw_text,omitempty"`
}
