// Package usecase は市場ニュースの集約ロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"finance_backend/internal/feature/news/domain/entity"
)

const (
	// NewsTTL はニュースバッチのキャッシュ鮮度です。
	NewsTTL = 30 * time.Minute

	// marketNewsKey は市場全体ニュースのキャッシュキーです。
	marketNewsKey = "market_news"

	// perTickerCount は1ティッカーあたりの上流取得件数です。
	perTickerCount = 10

	marketNewsLimit    = 20 // 市場ニュースの返却上限
	watchlistNewsLimit = 30 // ウォッチリストニュースの返却上限
)

// marketTickers は市場全体ニュースの取得対象です（S&P 500、ダウ、NASDAQ）。
var marketTickers = []string{"^GSPC", "^DJI", "^IXIC"}

// NewsRepository は上流のニュース取得を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type NewsRepository interface {
	GetNews(ctx context.Context, tickers []string, count int) ([]entity.NewsItem, error)
}

// NewsCache はニュースバッチのTTLキャッシュを抽象化します。
// Snapshotキャッシュとは独立した名前空間とTTLを持ちます。
type NewsCache interface {
	Get(key string) ([]entity.NewsItem, time.Duration, bool)
	GetStale(key string) ([]entity.NewsItem, bool)
	Put(key string, items []entity.NewsItem)
}

// NewsUsecase はティッカーごとのニュースを取得・集約するユースケースです。
// タイトルで重複排除し、公開日時の降順で返します。
type NewsUsecase struct {
	news  NewsRepository
	cache NewsCache
}

// NewNewsUsecase はNewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(news NewsRepository, cache NewsCache) *NewsUsecase {
	return &NewsUsecase{news: news, cache: cache}
}

// MarketNews は市場全体の最新ニュースを最大20件返します。
func (nu *NewsUsecase) MarketNews(ctx context.Context) ([]entity.NewsItem, error) {
	if items, _, ok := nu.cache.Get(marketNewsKey); ok {
		slog.Debug("returning cached market news")
		return truncate(items, marketNewsLimit), nil
	}

	items := nu.collect(ctx, marketTickers)
	if len(items) == 0 {
		// 全ティッカーで取得に失敗した場合は古いキャッシュへ劣化する
		if stale, ok := nu.cache.GetStale(marketNewsKey); ok {
			slog.Info("serving stale market news")
			return truncate(stale, marketNewsLimit), nil
		}
		return []entity.NewsItem{}, nil
	}

	nu.cache.Put(marketNewsKey, items)
	return truncate(items, marketNewsLimit), nil
}

// NewsForSymbols は指定銘柄群に関連するニュースを最大30件返します。
// バッチ全体のキャッシュキーはソート済み銘柄の結合で決まるため、
// 同じ銘柄集合なら順序によらず同じエントリを共有します。
func (nu *NewsUsecase) NewsForSymbols(ctx context.Context, symbols []string) ([]entity.NewsItem, error) {
	if len(symbols) == 0 {
		return []entity.NewsItem{}, nil
	}

	key := batchKey(symbols)
	if items, _, ok := nu.cache.Get(key); ok {
		slog.Debug("returning cached watchlist news", "key", key)
		return truncate(items, watchlistNewsLimit), nil
	}

	items := nu.collect(ctx, symbols)
	if len(items) == 0 {
		if stale, ok := nu.cache.GetStale(key); ok {
			slog.Info("serving stale watchlist news", "key", key)
			return truncate(stale, watchlistNewsLimit), nil
		}
		return []entity.NewsItem{}, nil
	}

	nu.cache.Put(key, items)
	return truncate(items, watchlistNewsLimit), nil
}

// StockNews は1銘柄のニュースを最大30件返します。
func (nu *NewsUsecase) StockNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	return nu.NewsForSymbols(ctx, []string{symbol})
}

// collect はティッカーごとにニュースを取得し、タイトルで重複排除した上で
// 公開日時の降順に並べます。個別ティッカーの失敗はスキップします。
// ティッカー単位の結果も個別にキャッシュし、バッチの組み替えで再利用します。
func (nu *NewsUsecase) collect(ctx context.Context, tickers []string) []entity.NewsItem {
	var all []entity.NewsItem
	for _, ticker := range tickers {
		tickerKey := "stock_news_" + ticker
		if cached, _, ok := nu.cache.Get(tickerKey); ok {
			all = append(all, cached...)
			continue
		}

		items, err := nu.news.GetNews(ctx, []string{ticker}, perTickerCount)
		if err != nil {
			slog.Warn("failed to fetch news", "ticker", ticker, "error", err)
			continue
		}
		nu.cache.Put(tickerKey, items)
		all = append(all, items...)
	}

	// タイトルで重複排除する。最初に出現したものを残す。
	seen := make(map[string]struct{}, len(all))
	unique := all[:0]
	for _, item := range all {
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		unique = append(unique, item)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].PublishedAt.After(unique[j].PublishedAt)
	})
	return unique
}

func batchKey(symbols []string) string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return "watchlist_news_" + strings.Join(sorted, "-")
}

func truncate(items []entity.NewsItem, limit int) []entity.NewsItem {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
