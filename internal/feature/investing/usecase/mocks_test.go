package usecase

import (
	"context"
	"errors"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
)

// mockSnapshotFetcher はSnapshotFetcherインターフェースのモック実装です。
type mockSnapshotFetcher struct {
	FetchSnapshotFunc func(ctx context.Context, symbol string) (marketentity.Snapshot, error)
	FetchCalls        []string
}

func (m *mockSnapshotFetcher) FetchSnapshot(ctx context.Context, symbol string) (marketentity.Snapshot, error) {
	m.FetchCalls = append(m.FetchCalls, symbol)
	if m.FetchSnapshotFunc != nil {
		return m.FetchSnapshotFunc(ctx, symbol)
	}
	return marketentity.Snapshot{}, errors.New("FetchSnapshotFunc is not implemented")
}

// fakeHoldingRepository は保有ポジションのインメモリ実装です。
type fakeHoldingRepository struct {
	holdings map[string]entity.Holding // key: symbol (single-user tests)
	saveErr  error
	nextID   uint
}

func newFakeHoldingRepository() *fakeHoldingRepository {
	return &fakeHoldingRepository{holdings: make(map[string]entity.Holding)}
}

func (f *fakeHoldingRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Holding, error) {
	out := make([]entity.Holding, 0, len(f.holdings))
	for _, h := range f.holdings {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHoldingRepository) FindByUserAndSymbol(ctx context.Context, userID uint, symbol string) (entity.Holding, error) {
	h, ok := f.holdings[symbol]
	if !ok {
		return entity.Holding{}, domain.ErrHoldingNotFound
	}
	return h, nil
}

func (f *fakeHoldingRepository) Save(ctx context.Context, holding *entity.Holding) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if holding.ID == 0 {
		f.nextID++
		holding.ID = f.nextID
	}
	f.holdings[holding.Symbol] = *holding
	return nil
}

func (f *fakeHoldingRepository) Delete(ctx context.Context, userID uint, symbol string) error {
	delete(f.holdings, symbol)
	return nil
}

// fakeOrderRepository は注文履歴のインメモリ実装です。
type fakeOrderRepository struct {
	orders    []entity.Order
	createErr error
	nextID    uint
}

func (f *fakeOrderRepository) Create(ctx context.Context, order *entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	order.ID = f.nextID
	f.orders = append(f.orders, *order)
	return nil
}

func (f *fakeOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	for i := range f.orders {
		if f.orders[i].ID == order.ID {
			f.orders[i] = *order
			return nil
		}
	}
	return errors.New("order not found")
}

func (f *fakeOrderRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Order, error) {
	return f.orders, nil
}

// fakeWatchlistRepository はウォッチリストのインメモリ実装です。
type fakeWatchlistRepository struct {
	entries []entity.WatchlistEntry
	nextID  uint
}

func (f *fakeWatchlistRepository) ListByUser(ctx context.Context, userID uint) ([]entity.WatchlistEntry, error) {
	return f.entries, nil
}

func (f *fakeWatchlistRepository) Add(ctx context.Context, entry *entity.WatchlistEntry) error {
	for _, e := range f.entries {
		if e.Symbol == entry.Symbol {
			return domain.ErrAlreadyInWatchlist
		}
	}
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeWatchlistRepository) Remove(ctx context.Context, userID uint, symbol string) error {
	for i, e := range f.entries {
		if e.Symbol == symbol {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotInWatchlist
}

func snapshotWithPrice(symbol string, price, previousClose float64) marketentity.Snapshot {
	return marketentity.Snapshot{
		Symbol:        symbol,
		Name:          symbol + " Inc.",
		Price:         price,
		PreviousClose: previousClose,
		Change:        price - previousClose,
		ChangePercent: (price - previousClose) / previousClose * 100,
	}
}
