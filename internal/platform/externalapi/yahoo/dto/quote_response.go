// Package dto はYahoo Finance APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// QuoteResponse はv7 quoteエンドポイントのJSONレスポンスを表します。
type QuoteResponse struct {
	QuoteResponse struct {
		Result []QuoteResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"quoteResponse"`
}

// QuoteResult は1銘柄分のquote結果です。
type QuoteResult struct {
	Symbol                    string  `json:"symbol"`
	LongName                  string  `json:"longName"`
	ShortName                 string  `json:"shortName"`
	RegularMarketPrice        float64 `json:"regularMarketPrice"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume       int64   `json:"regularMarketVolume"`
	MarketCap                 int64   `json:"marketCap"`
	FiftyTwoWeekHigh          float64 `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow           float64 `json:"fiftyTwoWeekLow"`
}

// APIError はYahoo Financeのエラーペイロードです。
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
