// Package entity はnewsフィーチャーのドメインモデルを定義します。
package entity

import "time"

// NewsItem は正規化済みのニュース記事1件を表します。
// 上流のペイロード形状（フラット/ネスト）の違いはアダプター側で吸収され、
// この型に到達した時点でTitle・Publisher・Linkは必ず非空です。
// 同一バッチ内ではTitleの一意性が保証されます。
type NewsItem struct {
	Title          string    `json:"title"`
	Publisher      string    `json:"publisher"`
	Link           string    `json:"link"`
	PublishedAt    time.Time `json:"published_date"`
	Summary        string    `json:"summary,omitempty"`
	Thumbnail      string    `json:"thumbnail,omitempty"`
	RelatedSymbols []string  `json:"related_symbols,omitempty"`
}
