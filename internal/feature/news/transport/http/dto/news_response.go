// Package dto defines data transfer objects for the news HTTP API.
package dto

// NewsItemResponse は正規化済みニュース1件のレスポンスDTOです。
type NewsItemResponse struct {
	Title          string   `json:"title"`
	Publisher      string   `json:"publisher"`
	Link           string   `json:"link"`
	PublishedDate  string   `json:"published_date"`
	Summary        string   `json:"summary,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	RelatedSymbols []string `json:"related_symbols,omitempty"`
}
