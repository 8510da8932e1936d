package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
)

// SnapshotFetcher は取得パイプラインを抽象化します。
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error)
	RetryAfter() time.Duration
}

// WarmUsecase は指定銘柄群のSnapshotを事前取得し、キャッシュと銘柄ストアを
// 温めるユースケースです。バッチ実行（cmd/ingest）から利用されます。
type WarmUsecase struct {
	fetcher SnapshotFetcher
}

// NewWarmUsecase は新しいWarmUsecaseを作成します。
func NewWarmUsecase(fetcher SnapshotFetcher) *WarmUsecase {
	return &WarmUsecase{fetcher: fetcher}
}

// WarmAll は全銘柄のSnapshotを順に取得します。レート制限に当たった場合は
// バックオフ期限まで待機してから同じ銘柄を再試行します。
// 1銘柄の失敗で処理を止めず、ログに出力して次へ進みます。
func (wu *WarmUsecase) WarmAll(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		if err := wu.warmOne(ctx, s); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Error("failed to warm snapshot", "symbol", s, "error", err)
		}
	}
	return nil
}

func (wu *WarmUsecase) warmOne(ctx context.Context, symbol string) error {
	_, err := wu.fetcher.FetchSnapshot(ctx, symbol)
	if !errors.Is(err, domain.ErrRateLimited) {
		return err
	}

	// バックオフ期限まで待機してから1回だけ再試行する
	if err := wu.waitBackoff(ctx); err != nil {
		return err
	}
	_, err = wu.fetcher.FetchSnapshot(ctx, symbol)
	return err
}

func (wu *WarmUsecase) waitBackoff(ctx context.Context) error {
	d := wu.fetcher.RetryAfter()
	if d <= 0 {
		return nil
	}
	slog.Info("rate limited, waiting before retry", "wait", d)
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
