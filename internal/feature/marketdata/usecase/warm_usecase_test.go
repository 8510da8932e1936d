package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
)

// mockSnapshotFetcher is a mock implementation of the SnapshotFetcher interface.
type mockSnapshotFetcher struct {
	FetchSnapshotFunc  func(ctx context.Context, symbol string) (entity.Snapshot, error)
	FetchSnapshotCalls int
	retryAfter         time.Duration
}

func (m *mockSnapshotFetcher) FetchSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error) {
	m.FetchSnapshotCalls++
	if m.FetchSnapshotFunc != nil {
		return m.FetchSnapshotFunc(ctx, symbol)
	}
	return entity.Snapshot{Symbol: symbol}, nil
}

func (m *mockSnapshotFetcher) RetryAfter() time.Duration { return m.retryAfter }

func TestWarmUsecase_WarmAll(t *testing.T) {
	ctx := context.Background()

	t.Run("warms every symbol", func(t *testing.T) {
		fetcher := &mockSnapshotFetcher{}
		wu := NewWarmUsecase(fetcher)

		if err := wu.WarmAll(ctx, []string{"AAPL", "GOOG", "MSFT"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher.FetchSnapshotCalls != 3 {
			t.Errorf("FetchSnapshot was called %d times, expected 3", fetcher.FetchSnapshotCalls)
		}
	})

	t.Run("continues past per-symbol failures", func(t *testing.T) {
		fetcher := &mockSnapshotFetcher{
			FetchSnapshotFunc: func(ctx context.Context, symbol string) (entity.Snapshot, error) {
				if symbol == "INVALID" {
					return entity.Snapshot{}, domain.ErrSymbolNotFound
				}
				return entity.Snapshot{Symbol: symbol}, nil
			},
		}
		wu := NewWarmUsecase(fetcher)

		if err := wu.WarmAll(ctx, []string{"AAPL", "INVALID", "GOOG"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher.FetchSnapshotCalls != 3 {
			t.Errorf("FetchSnapshot was called %d times, expected 3", fetcher.FetchSnapshotCalls)
		}
	})

	t.Run("retries once after a rate limit", func(t *testing.T) {
		calls := 0
		fetcher := &mockSnapshotFetcher{
			FetchSnapshotFunc: func(ctx context.Context, symbol string) (entity.Snapshot, error) {
				calls++
				if calls == 1 {
					return entity.Snapshot{}, domain.ErrRateLimited
				}
				return entity.Snapshot{Symbol: symbol}, nil
			},
			retryAfter: time.Millisecond,
		}
		wu := NewWarmUsecase(fetcher)

		if err := wu.WarmAll(ctx, []string{"AAPL"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fetcher.FetchSnapshotCalls != 2 {
			t.Errorf("FetchSnapshot was called %d times, expected 2 (initial + retry)", fetcher.FetchSnapshotCalls)
		}
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		fetcher := &mockSnapshotFetcher{
			FetchSnapshotFunc: func(ctx context.Context, symbol string) (entity.Snapshot, error) {
				cancel()
				return entity.Snapshot{}, errors.New("transient")
			},
		}
		wu := NewWarmUsecase(fetcher)

		err := wu.WarmAll(cancelled, []string{"AAPL", "GOOG"})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if fetcher.FetchSnapshotCalls != 1 {
			t.Errorf("FetchSnapshot was called %d times, expected 1", fetcher.FetchSnapshotCalls)
		}
	})
}
