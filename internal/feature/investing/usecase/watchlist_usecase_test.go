package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
	marketdomain "finance_backend/internal/feature/marketdata/domain"
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
)

func newTestWatchlistUsecase(watchlist *fakeWatchlistRepository, market *mockSnapshotFetcher) *WatchlistUsecase {
	wu := NewWatchlistUsecase(watchlist, market)
	wu.now = func() time.Time { return time.Date(2024, 1, 8, 15, 0, 0, 0, time.UTC) }
	return wu
}

func TestWatchlistUsecase_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a normalized symbol after validating it", func(t *testing.T) {
		watchlist := &fakeWatchlistRepository{}
		wu := newTestWatchlistUsecase(watchlist, priceFetcher(100))

		entry, err := wu.Add(ctx, 1, " aapl ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Symbol != "AAPL" {
			t.Errorf("Symbol = %q, want AAPL", entry.Symbol)
		}
		if len(watchlist.entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(watchlist.entries))
		}
	})

	t.Run("rejects unknown symbols", func(t *testing.T) {
		watchlist := &fakeWatchlistRepository{}
		market := &mockSnapshotFetcher{
			FetchSnapshotFunc: func(ctx context.Context, symbol string) (marketentity.Snapshot, error) {
				return marketentity.Snapshot{}, marketdomain.ErrSymbolNotFound
			},
		}
		wu := newTestWatchlistUsecase(watchlist, market)

		_, err := wu.Add(ctx, 1, "NOPE")
		if !errors.Is(err, marketdomain.ErrSymbolNotFound) {
			t.Errorf("error = %v, want ErrSymbolNotFound", err)
		}
		if len(watchlist.entries) != 0 {
			t.Errorf("nothing should be registered, got %d entries", len(watchlist.entries))
		}
	})

	t.Run("rejects duplicates", func(t *testing.T) {
		watchlist := &fakeWatchlistRepository{}
		wu := newTestWatchlistUsecase(watchlist, priceFetcher(100))

		if _, err := wu.Add(ctx, 1, "AAPL"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := wu.Add(ctx, 1, "aapl")
		if !errors.Is(err, domain.ErrAlreadyInWatchlist) {
			t.Errorf("error = %v, want ErrAlreadyInWatchlist", err)
		}
	})
}

func TestWatchlistUsecase_Remove(t *testing.T) {
	ctx := context.Background()

	watchlist := &fakeWatchlistRepository{
		entries: []entity.WatchlistEntry{{ID: 1, UserID: 1, Symbol: "AAPL"}},
	}
	wu := newTestWatchlistUsecase(watchlist, &mockSnapshotFetcher{})

	if err := wu.Remove(ctx, 1, "aapl"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(watchlist.entries) != 0 {
		t.Errorf("expected empty watchlist, got %d entries", len(watchlist.entries))
	}

	if err := wu.Remove(ctx, 1, "AAPL"); !errors.Is(err, domain.ErrNotInWatchlist) {
		t.Errorf("error = %v, want ErrNotInWatchlist", err)
	}
}

func TestWatchlistUsecase_Priced(t *testing.T) {
	ctx := context.Background()

	watchlist := &fakeWatchlistRepository{
		entries: []entity.WatchlistEntry{
			{ID: 1, UserID: 1, Symbol: "AAPL"},
			{ID: 2, UserID: 1, Symbol: "BROKEN"},
			{ID: 3, UserID: 1, Symbol: "MSFT"},
		},
	}
	market := &mockSnapshotFetcher{
		FetchSnapshotFunc: func(ctx context.Context, symbol string) (marketentity.Snapshot, error) {
			if symbol == "BROKEN" {
				return marketentity.Snapshot{}, errors.New("upstream down")
			}
			return snapshotWithPrice(symbol, 110, 100), nil
		},
	}
	wu := newTestWatchlistUsecase(watchlist, market)

	quotes, err := wu.Priced(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(quotes))
	}
	if quotes[0].Symbol != "AAPL" || quotes[1].Symbol != "MSFT" {
		t.Errorf("unexpected quote order: %v", quotes)
	}
	if !almostEqual(quotes[0].ChangePercent, 10) {
		t.Errorf("ChangePercent = %f, want 10", quotes[0].ChangePercent)
	}
}

func TestWatchlistUsecase_Symbols(t *testing.T) {
	ctx := context.Background()

	watchlist := &fakeWatchlistRepository{
		entries: []entity.WatchlistEntry{
			{ID: 1, UserID: 1, Symbol: "AAPL"},
			{ID: 2, UserID: 1, Symbol: "MSFT"},
		},
	}
	wu := newTestWatchlistUsecase(watchlist, &mockSnapshotFetcher{})

	symbols, err := wu.Symbols(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"AAPL", "MSFT"}
	if len(symbols) != len(want) || symbols[0] != want[0] || symbols[1] != want[1] {
		t.Errorf("symbols = %v, want %v", symbols, want)
	}
}
