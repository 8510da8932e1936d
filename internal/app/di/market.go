// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"time"

	"gorm.io/gorm"

	marketadapters "finance_backend/internal/feature/marketdata/adapters"
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
	marketusecase "finance_backend/internal/feature/marketdata/usecase"
	newsentity "finance_backend/internal/feature/news/domain/entity"
	newsusecase "finance_backend/internal/feature/news/usecase"
	"finance_backend/internal/platform/cache"
	"finance_backend/internal/platform/externalapi/yahoo"
	platformhttp "finance_backend/internal/platform/http"
	"finance_backend/internal/shared/ratelimiter"
)

const (
	// upstreamLimit はスライディングウィンドウあたりの上流呼び出し上限です。
	upstreamLimit = 5
	// upstreamWindow はレートリミッターのウィンドウ幅です。
	upstreamWindow = time.Minute
	// upstreamBackoff は上限到達後のバックオフ期間です。
	upstreamBackoff = 30 * time.Second

	// sweepInterval はキャッシュ掃除の実行間隔です。
	sweepInterval = 10 * time.Minute
	// sweepMaxAge はこの齢を超えたエントリを破棄する閾値です。
	// 古いエントリはフォールバックとして残すため、TTLより十分長く取ります。
	sweepMaxAge = 24 * time.Hour
)

// NewYahooClient creates a fully configured Yahoo Finance client with HTTP client.
func NewYahooClient() *yahoo.Client {
	cfg := yahoo.LoadConfig()
	httpClient := platformhttp.NewHTTPClient(cfg.Timeout)
	return yahoo.NewClient(cfg, httpClient)
}

// NewSnapshotUsecase assembles the market data pipeline: in-memory TTL cache,
// sliding window rate limiter, Yahoo Finance upstream, and the stock store.
// A background sweeper evicts long-dead cache entries until ctx is cancelled.
func NewSnapshotUsecase(ctx context.Context, client *yahoo.Client, db *gorm.DB) *marketusecase.SnapshotUsecase {
	snapCache := cache.New[marketentity.Snapshot](marketusecase.QuoteTTL)
	cache.StartSweeper(ctx, snapCache, sweepInterval, sweepMaxAge)
	limiter := ratelimiter.NewSlidingWindowLimiter(upstreamLimit, upstreamWindow, upstreamBackoff)
	stocks := marketadapters.NewStockRepository(db)
	return marketusecase.NewSnapshotUsecase(client, snapCache, limiter, stocks)
}

// NewNewsUsecase assembles the news aggregation pipeline with its own TTL cache.
func NewNewsUsecase(ctx context.Context, client *yahoo.Client) *newsusecase.NewsUsecase {
	newsCache := cache.New[[]newsentity.NewsItem](newsusecase.NewsTTL)
	cache.StartSweeper(ctx, newsCache, sweepInterval, sweepMaxAge)
	return newsusecase.NewNewsUsecase(client, newsCache)
}
