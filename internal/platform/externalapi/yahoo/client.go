package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
	"finance_backend/internal/platform/externalapi/yahoo/dto"
)

// Client はYahoo Finance公開APIのクライアントです。
// 上流のスロットリングはdomain.ErrThrottled、未知の銘柄は
// domain.ErrSymbolNotFoundに分類して返します。
type Client struct {
	cfg    Config
	client *http.Client
}

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// doGet はGETリクエストを実行し、ステータスコードを分類した上でボディを返します。
func (c *Client) doGet(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo request: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, domain.ErrThrottled
	case res.StatusCode == http.StatusNotFound:
		return nil, domain.ErrSymbolNotFound
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("yahoo http %d: %s", res.StatusCode, string(body))
	}
	return body, nil
}

// classifyAPIError はペイロード内のエラーオブジェクトを分類済みエラーに変換します。
// ステータスコードが200でもボディにエラーが入るケースがあるためです。
func classifyAPIError(e *dto.APIError) error {
	if e == nil {
		return nil
	}
	desc := strings.ToLower(e.Description + " " + e.Code)
	if strings.Contains(desc, "too many requests") {
		return domain.ErrThrottled
	}
	if strings.Contains(desc, "not found") {
		return domain.ErrSymbolNotFound
	}
	return fmt.Errorf("yahoo api error: %s", e.Description)
}

// GetQuote は銘柄の基本情報（現在価格、前日終値、出来高、時価総額、52週高安、表示名）を取得します。
func (c *Client) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbols", symbol)
	u := fmt.Sprintf("%s/quote?%s", c.cfg.QuoteBaseURL, q.Encode())

	body, err := c.doGet(ctx, u)
	if err != nil {
		return entity.Quote{}, err
	}

	var resp dto.QuoteResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return entity.Quote{}, fmt.Errorf("yahoo decode quote: %w", err)
	}
	if err := classifyAPIError(resp.QuoteResponse.Error); err != nil {
		return entity.Quote{}, err
	}
	if len(resp.QuoteResponse.Result) == 0 {
		return entity.Quote{}, domain.ErrSymbolNotFound
	}

	r := resp.QuoteResponse.Result[0]
	name := r.LongName
	if name == "" {
		name = r.ShortName
	}
	if name == "" {
		name = symbol
	}
	return entity.Quote{
		Symbol:        r.Symbol,
		Name:          name,
		Price:         r.RegularMarketPrice,
		PreviousClose: r.RegularMarketPreviousClose,
		Volume:        r.RegularMarketVolume,
		MarketCap:     r.MarketCap,
		High52w:       r.FiftyTwoWeekHigh,
		Low52w:        r.FiftyTwoWeekLow,
	}, nil
}

// fetchChart はchartエンドポイントを呼び出し、nullバー（休場日等）を除いた
// 終値系列を時刻昇順で返します。
func (c *Client) fetchChart(ctx context.Context, symbol, interval, rng string) ([]entity.PricePoint, error) {
	u := fmt.Sprintf("%s/chart/%s?interval=%s&range=%s",
		c.cfg.ChartBaseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))

	body, err := c.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp dto.ChartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yahoo decode chart: %w", err)
	}
	if err := classifyAPIError(resp.Chart.Error); err != nil {
		return nil, err
	}
	if len(resp.Chart.Result) == 0 {
		return nil, domain.ErrSymbolNotFound
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return []entity.PricePoint{}, nil
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]entity.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue // 休場日などのnullバーはスキップ
		}
		points = append(points, entity.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Price: *closes[i],
		})
	}
	return points, nil
}

// GetDailySeries は指定レンジの日足終値系列を取得します。
// レンジの例: "5y", "1y", "3mo", "max"
func (c *Client) GetDailySeries(ctx context.Context, symbol, rng string) ([]entity.PricePoint, error) {
	return c.fetchChart(ctx, symbol, "1d", rng)
}

// GetIntradaySeries は当日の日中足終値系列を取得します。
// インターバルの例: "5m", "15m", "60m"
func (c *Client) GetIntradaySeries(ctx context.Context, symbol, interval string) ([]entity.PricePoint, error) {
	points, err := c.fetchChart(ctx, symbol, interval, "1d")
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Intraday = true
	}
	return points, nil
}
