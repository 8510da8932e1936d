package entity

// HoldingValuation は現在価格で評価済みの保有ポジションです。
type HoldingValuation struct {
	Symbol          string
	Name            string
	Shares          float64
	AveragePrice    float64
	CurrentPrice    float64
	TotalValue      float64
	GainLoss        float64
	GainLossPercent float64
}

// Portfolio はユーザーの保有全体の評価サマリーです。
// DailyChangeは前日終値で評価した場合との差分です。
type Portfolio struct {
	TotalValue         float64
	DailyChange        float64
	DailyChangePercent float64
	Holdings           []HoldingValuation
}

// WatchlistQuote はウォッチリスト銘柄の現在値サマリーです。
type WatchlistQuote struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
}
