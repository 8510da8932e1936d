// Package yahoo はYahoo Finance公開APIから市場データを取得するクライアントを提供します。
package yahoo

import (
	"os"
	"time"
)

// Config はYahoo Financeクライアントの設定を保持します。
type Config struct {
	QuoteBaseURL string        // quoteエンドポイントのベースURL
	ChartBaseURL string        // chartエンドポイントのベースURL
	NewsBaseURL  string        // ニュース検索エンドポイントのベースURL
	UserAgent    string        // リクエストに付与するUser-Agent
	Timeout      time.Duration // HTTPリクエストのタイムアウト
}

// LoadConfig は環境変数からYahoo Financeクライアントの設定を読み込みます。
// 未設定の場合は公開エンドポイントのデフォルト値を使用します。
func LoadConfig() Config {
	cfg := Config{
		QuoteBaseURL: os.Getenv("YAHOO_QUOTE_BASE_URL"),
		ChartBaseURL: os.Getenv("YAHOO_CHART_BASE_URL"),
		NewsBaseURL:  os.Getenv("YAHOO_NEWS_BASE_URL"),
		UserAgent:    "Mozilla/5.0",
		Timeout:      10 * time.Second,
	}
	if cfg.QuoteBaseURL == "" {
		cfg.QuoteBaseURL = "https://query1.finance.yahoo.com/v7/finance"
	}
	if cfg.ChartBaseURL == "" {
		cfg.ChartBaseURL = "https://query1.finance.yahoo.com/v8/finance"
	}
	if cfg.NewsBaseURL == "" {
		cfg.NewsBaseURL = "https://query1.finance.yahoo.com/v1/finance"
	}
	return cfg
}
