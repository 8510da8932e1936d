package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance_backend/internal/feature/news/domain/entity"
	jwtmw "finance_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// mockNewsUsecase はNewsUsecaseインターフェースのモック実装です。
type mockNewsUsecase struct {
	MarketNewsFunc     func(ctx context.Context) ([]entity.NewsItem, error)
	NewsForSymbolsFunc func(ctx context.Context, symbols []string) ([]entity.NewsItem, error)
	StockNewsFunc      func(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

func (m *mockNewsUsecase) MarketNews(ctx context.Context) ([]entity.NewsItem, error) {
	return m.MarketNewsFunc(ctx)
}

func (m *mockNewsUsecase) NewsForSymbols(ctx context.Context, symbols []string) ([]entity.NewsItem, error) {
	return m.NewsForSymbolsFunc(ctx, symbols)
}

func (m *mockNewsUsecase) StockNews(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
	return m.StockNewsFunc(ctx, symbol)
}

// mockWatchlistSource はWatchlistSourceインターフェースのモック実装です。
type mockWatchlistSource struct {
	SymbolsFunc  func(ctx context.Context, userID uint) ([]string, error)
	SymbolsCalls int
}

func (m *mockWatchlistSource) Symbols(ctx context.Context, userID uint) ([]string, error) {
	m.SymbolsCalls++
	if m.SymbolsFunc != nil {
		return m.SymbolsFunc(ctx, userID)
	}
	return nil, errors.New("SymbolsFunc is not implemented")
}

// newRouter はテスト用ルーターを生成します。userIDが0以外なら認証ミドルウェアが
// 設定する値を模倣してコンテキストに注入します。
func newRouter(mockUC *mockNewsUsecase, watchlist *mockWatchlistSource, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if userID != 0 {
		router.Use(func(c *gin.Context) {
			c.Set(jwtmw.ContextUserID, userID)
			c.Next()
		})
	}
	h := NewNewsHandler(mockUC, watchlist)
	router.GET("/news/market", h.GetMarketNews)
	router.GET("/news/watchlist", h.GetWatchlistNews)
	router.GET("/news/stock/:symbol", h.GetStockNews)
	return router
}

func TestNewsHandler_GetMarketNews(t *testing.T) {
	t.Parallel()

	mockUC := &mockNewsUsecase{
		MarketNewsFunc: func(ctx context.Context) ([]entity.NewsItem, error) {
			return []entity.NewsItem{
				{
					Title:       "Fed holds rates steady",
					Publisher:   "Reuters",
					Link:        "https://example.com/fed",
					PublishedAt: time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC),
					Thumbnail:   "https://example.com/thumb.jpg",
				},
			}, nil
		},
	}
	router := newRouter(mockUC, &mockWatchlistSource{}, 0)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/market", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Fed holds rates steady"`)
	assert.Contains(t, w.Body.String(), `"published_date":"2024-01-08T12:00:00Z"`)
	assert.Contains(t, w.Body.String(), `"thumbnail":"https://example.com/thumb.jpg"`)
}

func TestNewsHandler_GetMarketNews_UpstreamError(t *testing.T) {
	t.Parallel()

	mockUC := &mockNewsUsecase{
		MarketNewsFunc: func(ctx context.Context) ([]entity.NewsItem, error) {
			return nil, errors.New("upstream down")
		},
	}
	router := newRouter(mockUC, &mockWatchlistSource{}, 0)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/market", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch market news")
}

func TestNewsHandler_GetWatchlistNews_UsesStoredWatchlist(t *testing.T) {
	t.Parallel()

	var gotSymbols []string
	mockUC := &mockNewsUsecase{
		NewsForSymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsItem, error) {
			gotSymbols = symbols
			return []entity.NewsItem{
				{
					Title:       "Apple releases earnings",
					Publisher:   "Bloomberg",
					Link:        "https://example.com/apple",
					PublishedAt: time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	watchlist := &mockWatchlistSource{
		SymbolsFunc: func(ctx context.Context, userID uint) ([]string, error) {
			assert.Equal(t, uint(7), userID)
			return []string{"AAPL", "MSFT"}, nil
		},
	}
	router := newRouter(mockUC, watchlist, 7)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/watchlist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Apple releases earnings"`)
	assert.Equal(t, []string{"AAPL", "MSFT"}, gotSymbols)
}

func TestNewsHandler_GetWatchlistNews_EmptyWatchlist(t *testing.T) {
	t.Parallel()

	watchlist := &mockWatchlistSource{
		SymbolsFunc: func(ctx context.Context, userID uint) ([]string, error) {
			return nil, nil
		},
	}
	router := newRouter(&mockNewsUsecase{}, watchlist, 7)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/watchlist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestNewsHandler_GetWatchlistNews_SymbolsOverride(t *testing.T) {
	t.Parallel()

	var gotSymbols []string
	mockUC := &mockNewsUsecase{
		NewsForSymbolsFunc: func(ctx context.Context, symbols []string) ([]entity.NewsItem, error) {
			gotSymbols = symbols
			return []entity.NewsItem{}, nil
		},
	}
	watchlist := &mockWatchlistSource{}
	router := newRouter(mockUC, watchlist, 7)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/watchlist?symbols=AAPL,%20MSFT,", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, []string{"AAPL", "MSFT"}, gotSymbols)
	assert.Zero(t, watchlist.SymbolsCalls, "explicit symbols must not hit the stored watchlist")
}

func TestNewsHandler_GetWatchlistNews_Unauthenticated(t *testing.T) {
	t.Parallel()

	router := newRouter(&mockNewsUsecase{}, &mockWatchlistSource{}, 0)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/watchlist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewsHandler_GetWatchlistNews_WatchlistError(t *testing.T) {
	t.Parallel()

	watchlist := &mockWatchlistSource{
		SymbolsFunc: func(ctx context.Context, userID uint) ([]string, error) {
			return nil, errors.New("db down")
		},
	}
	router := newRouter(&mockNewsUsecase{}, watchlist, 7)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/watchlist", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to load watchlist")
}

func TestNewsHandler_GetStockNews(t *testing.T) {
	t.Parallel()

	mockUC := &mockNewsUsecase{
		StockNewsFunc: func(ctx context.Context, symbol string) ([]entity.NewsItem, error) {
			assert.Equal(t, "AAPL", symbol)
			return []entity.NewsItem{
				{
					Title:          "Apple releases earnings",
					Publisher:      "Bloomberg",
					Link:           "https://example.com/apple",
					PublishedAt:    time.Date(2024, 1, 8, 9, 30, 0, 0, time.UTC),
					RelatedSymbols: []string{"AAPL"},
				},
			}, nil
		},
	}
	router := newRouter(mockUC, &mockWatchlistSource{}, 0)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/news/stock/AAPL", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Apple releases earnings"`)
	assert.Contains(t, w.Body.String(), `"related_symbols":["AAPL"]`)
}
