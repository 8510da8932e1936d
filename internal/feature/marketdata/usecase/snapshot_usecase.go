// Package usecase は市場データ取得パイプラインのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
)

const (
	// QuoteTTL は価格Snapshotのキャッシュ鮮度です。
	QuoteTTL = 5 * time.Minute

	// minDailyPoints は日足系列を採用する最低データ点数です。
	// これ未満ならより短いレンジへ劣化します。
	minDailyPoints = 2
)

// dailyRanges は日足取得のフォールバック階層です。長いレンジから試行し、
// データ点数が不足したら順に劣化します。
var dailyRanges = []string{"5y", "1y", "3mo", "max"}

// intradayIntervals は当日の日中足取得のフォールバック階層です。
// 細かい間隔から試行し、空なら粗い間隔へ劣化します。
var intradayIntervals = []string{"5m", "15m", "60m"}

// MarketRepository は上流の市場データ取得を抽象化します。
// スロットリングはdomain.ErrThrottled、未知の銘柄はdomain.ErrSymbolNotFoundで通知します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
	GetDailySeries(ctx context.Context, symbol, rng string) ([]entity.PricePoint, error)
	GetIntradaySeries(ctx context.Context, symbol, interval string) ([]entity.PricePoint, error)
}

// SnapshotCache はSnapshotのTTLキャッシュを抽象化します。
type SnapshotCache interface {
	Get(key string) (entity.Snapshot, time.Duration, bool)
	GetStale(key string) (entity.Snapshot, bool)
	Put(key string, s entity.Snapshot)
}

// Limiter は上流呼び出しの許可判定を抽象化します。
type Limiter interface {
	Allow() bool
	Throttle()
	RetryAfter() time.Duration
}

// StockRepository は銘柄サマリーの永続化レイヤーを抽象化します。
type StockRepository interface {
	Upsert(ctx context.Context, snap entity.Snapshot) error
}

// SnapshotUsecase はキャッシュ→レートリミッター→上流の順で市場データを取得する
// パイプラインです。上流障害時は古いキャッシュへ劣化します。
type SnapshotUsecase struct {
	market  MarketRepository
	cache   SnapshotCache
	limiter Limiter
	stocks  StockRepository

	now func() time.Time // テスト用に差し替え可能
}

// NewSnapshotUsecase はSnapshotUsecaseの新しいインスタンスを生成します。
func NewSnapshotUsecase(market MarketRepository, cache SnapshotCache, limiter Limiter, stocks StockRepository) *SnapshotUsecase {
	return &SnapshotUsecase{
		market:  market,
		cache:   cache,
		limiter: limiter,
		stocks:  stocks,
		now:     time.Now,
	}
}

// NormalizeSymbol は銘柄コードを正規化します（空白除去と大文字化）。
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// FetchSnapshot は銘柄のSnapshotを取得します。
//  1. 新鮮なキャッシュがあれば上流を呼ばずに即返す。
//  2. レートリミッターに拒否されたら古いキャッシュ、それも無ければErrRateLimited。
//  3. 許可されたら上流から基本情報と履歴を取得して正規化し、キャッシュと
//     銘柄ストアの両方を更新する。ストア書き込み失敗はログに留める。
//
// 返すSnapshotは常にコピーです。呼び出し側の変更がキャッシュへ書き戻される
// ことはありません。
func (su *SnapshotUsecase) FetchSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return entity.Snapshot{}, domain.ErrSymbolNotFound
	}

	if snap, age, ok := su.cache.Get(symbol); ok {
		slog.Debug("snapshot cache hit", "symbol", symbol, "age", age)
		return snap.Clone(), nil
	}

	if !su.limiter.Allow() {
		return su.fallbackStale(symbol, domain.ErrRateLimited)
	}

	// 呼び出し元がキャンセルされても取得中の上流リクエストは完了させ、
	// 後続の呼び出しのためにキャッシュへ反映します。
	snap, err := su.fetchUpstream(context.WithoutCancel(ctx), symbol)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrThrottled):
			// 上流は自身の制限について常に正。即座にバックオフへ遷移する。
			su.limiter.Throttle()
			return su.fallbackStale(symbol, domain.ErrRateLimited)
		case errors.Is(err, domain.ErrSymbolNotFound):
			return entity.Snapshot{}, err
		default:
			slog.Warn("upstream fetch failed", "symbol", symbol, "error", err)
			return su.fallbackStale(symbol, domain.ErrUpstream)
		}
	}

	// 価格が解決できなかった場合はゼロ価格のSnapshotを返すより
	// 古いキャッシュを優先する。
	if snap.Price == 0 {
		slog.Warn("upstream returned zero price", "symbol", symbol)
		return su.fallbackStale(symbol, domain.ErrUpstream)
	}

	su.cache.Put(symbol, snap)
	if err := su.stocks.Upsert(ctx, snap); err != nil {
		// ストア書き込みの失敗で取得済みのSnapshotを捨てない
		slog.Error("failed to upsert stock summary", "symbol", symbol, "error", err)
	}

	return snap.Clone(), nil
}

// RetryAfter はレート制限中の場合、再試行までの推奨待機時間を返します。
func (su *SnapshotUsecase) RetryAfter() time.Duration {
	return su.limiter.RetryAfter()
}

// fallbackStale は古いキャッシュがあればそれを返し、無ければterminalを返します。
func (su *SnapshotUsecase) fallbackStale(symbol string, terminal error) (entity.Snapshot, error) {
	if snap, ok := su.cache.GetStale(symbol); ok {
		slog.Info("serving stale snapshot", "symbol", symbol, "reason", terminal)
		return snap.Clone(), nil
	}
	return entity.Snapshot{}, terminal
}

// fetchUpstream は上流から基本情報・日足・日中足を取得し、
// 1つの正規化済みSnapshotへ組み立てます。
func (su *SnapshotUsecase) fetchUpstream(ctx context.Context, symbol string) (entity.Snapshot, error) {
	quote, err := su.market.GetQuote(ctx, symbol)
	if err != nil {
		return entity.Snapshot{}, err
	}

	daily, err := su.fetchDaily(ctx, symbol)
	if err != nil {
		return entity.Snapshot{}, err
	}
	intraday, err := su.fetchIntraday(ctx, symbol)
	if err != nil {
		return entity.Snapshot{}, err
	}

	snap := entity.Snapshot{
		Symbol:        symbol,
		Name:          quote.Name,
		Price:         quote.Price,
		PreviousClose: quote.PreviousClose,
		Volume:        quote.Volume,
		MarketCap:     quote.MarketCap,
		High52w:       quote.High52w,
		Low52w:        quote.Low52w,
		History:       mergeHistory(daily, intraday),
		FetchedAt:     su.now(),
	}
	snap.Change = snap.Price - snap.PreviousClose
	if snap.PreviousClose != 0 {
		snap.ChangePercent = snap.Change / snap.PreviousClose * 100
	}
	return snap, nil
}

// fetchDaily は日足系列をレンジ階層に沿って取得します。
// データ点数が不足するレンジはスキップし、全レンジで不足なら
// 得られた中で最長の系列を返します（上場直後の銘柄など）。
func (su *SnapshotUsecase) fetchDaily(ctx context.Context, symbol string) ([]entity.PricePoint, error) {
	var best []entity.PricePoint
	var lastErr error
	for _, rng := range dailyRanges {
		points, err := su.market.GetDailySeries(ctx, symbol, rng)
		if err != nil {
			if errors.Is(err, domain.ErrThrottled) || errors.Is(err, domain.ErrSymbolNotFound) {
				return nil, err
			}
			lastErr = err
			continue
		}
		if len(points) >= minDailyPoints {
			return points, nil
		}
		slog.Debug("daily series too short, degrading range", "symbol", symbol, "range", rng, "points", len(points))
		if len(points) > len(best) {
			best = points
		}
	}
	if best == nil && lastErr != nil {
		return nil, fmt.Errorf("all daily ranges failed: %w", lastErr)
	}
	return best, nil
}

// fetchIntraday は当日の日中足をインターバル階層に沿って取得します。
// どの階層も空なら空系列を返します（日中足なしは正常系）。
func (su *SnapshotUsecase) fetchIntraday(ctx context.Context, symbol string) ([]entity.PricePoint, error) {
	for _, interval := range intradayIntervals {
		points, err := su.market.GetIntradaySeries(ctx, symbol, interval)
		if err != nil {
			if errors.Is(err, domain.ErrThrottled) {
				return nil, err
			}
			// 日中足は補助データなので一時エラーで全体を落とさない
			slog.Debug("intraday fetch failed", "symbol", symbol, "interval", interval, "error", err)
			continue
		}
		if len(points) > 0 {
			return points, nil
		}
	}
	return nil, nil
}

// mergeHistory は日足と日中足を時刻昇順の1系列へ統合します。
// タイムスタンプが重複した場合は日足を優先します。
func mergeHistory(daily, intraday []entity.PricePoint) []entity.PricePoint {
	merged := make([]entity.PricePoint, 0, len(daily)+len(intraday))
	merged = append(merged, daily...)
	merged = append(merged, intraday...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Time.Before(merged[j].Time)
	})

	out := merged[:0]
	for _, p := range merged {
		if len(out) > 0 && out[len(out)-1].Time.Equal(p.Time) {
			continue
		}
		out = append(out, p)
	}
	return out
}
