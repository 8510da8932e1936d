package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"finance_backend/internal/feature/investing/domain/entity"
)

// WatchlistUsecase はウォッチリストの管理と現在値付きの一覧取得を実装します。
type WatchlistUsecase struct {
	watchlist WatchlistRepository
	market    SnapshotFetcher
	now       func() time.Time
}

// NewWatchlistUsecase はWatchlistUsecaseの新しいインスタンスを生成します。
func NewWatchlistUsecase(watchlist WatchlistRepository, market SnapshotFetcher) *WatchlistUsecase {
	return &WatchlistUsecase{watchlist: watchlist, market: market, now: time.Now}
}

// Add は銘柄をウォッチリストに登録します。
// 登録前にスナップショット取得で銘柄の実在を検証します。
func (wu *WatchlistUsecase) Add(ctx context.Context, userID uint, symbol string) (entity.WatchlistEntry, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if _, err := wu.market.FetchSnapshot(ctx, symbol); err != nil {
		return entity.WatchlistEntry{}, err
	}

	entry := entity.WatchlistEntry{
		UserID:  userID,
		Symbol:  symbol,
		AddedAt: wu.now(),
	}
	if err := wu.watchlist.Add(ctx, &entry); err != nil {
		return entity.WatchlistEntry{}, err
	}
	return entry, nil
}

// Remove は銘柄をウォッチリストから削除します。
func (wu *WatchlistUsecase) Remove(ctx context.Context, userID uint, symbol string) error {
	return wu.watchlist.Remove(ctx, userID, strings.ToUpper(strings.TrimSpace(symbol)))
}

// Symbols はウォッチリストの銘柄コード一覧を返します。
func (wu *WatchlistUsecase) Symbols(ctx context.Context, userID uint) ([]string, error) {
	entries, err := wu.watchlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}
	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		symbols = append(symbols, e.Symbol)
	}
	return symbols, nil
}

// Priced はウォッチリスト銘柄の現在値サマリーを返します。
// 価格取得に失敗した銘柄はスキップされます。
func (wu *WatchlistUsecase) Priced(ctx context.Context, userID uint) ([]entity.WatchlistQuote, error) {
	entries, err := wu.watchlist.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load watchlist: %w", err)
	}

	quotes := make([]entity.WatchlistQuote, 0, len(entries))
	for _, e := range entries {
		snap, err := wu.market.FetchSnapshot(ctx, e.Symbol)
		if err != nil {
			slog.Warn("skipping watchlist symbol", "symbol", e.Symbol, "error", err)
			continue
		}
		quotes = append(quotes, entity.WatchlistQuote{
			Symbol:        snap.Symbol,
			Name:          snap.Name,
			Price:         snap.Price,
			Change:        snap.Change,
			ChangePercent: snap.ChangePercent,
		})
	}
	return quotes, nil
}
