// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"finance_backend/internal/feature/news/domain/entity"
	"finance_backend/internal/feature/news/transport/http/dto"
	jwtmw "finance_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// NewsUsecase はニュース集約のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NewsUsecase interface {
	MarketNews(ctx context.Context) ([]entity.NewsItem, error)
	NewsForSymbols(ctx context.Context, symbols []string) ([]entity.NewsItem, error)
	StockNews(ctx context.Context, symbol string) ([]entity.NewsItem, error)
}

// WatchlistSource は利用者のウォッチリスト銘柄を解決します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type WatchlistSource interface {
	Symbols(ctx context.Context, userID uint) ([]string, error)
}

// NewsHandler はニュース取得のHTTPリクエストを処理します。
type NewsHandler struct {
	uc        NewsUsecase
	watchlist WatchlistSource
}

// NewNewsHandler は指定されたusecaseでNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(uc NewsUsecase, watchlist WatchlistSource) *NewsHandler {
	return &NewsHandler{uc: uc, watchlist: watchlist}
}

// GetMarketNews は市場全体の最新ニュースをJSONで返します。
//
// エンドポイント例:
// GET /news/market
func (h *NewsHandler) GetMarketNews(c *gin.Context) {
	items, err := h.uc.MarketNews(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch market news"})
		return
	}
	c.JSON(http.StatusOK, toNewsResponses(items))
}

// GetWatchlistNews は利用者のウォッチリスト銘柄に関連するニュースをJSONで返します。
// ウォッチリストが空なら空のリストを返します。symbolsクエリで銘柄群を明示的に
// 上書きすることもできます。
//
// エンドポイント例:
// GET /news/watchlist
// GET /news/watchlist?symbols=AAPL,MSFT
func (h *NewsHandler) GetWatchlistNews(c *gin.Context) {
	var symbols []string
	for _, s := range strings.Split(c.Query("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}

	if len(symbols) == 0 {
		userID := c.GetUint(jwtmw.ContextUserID)
		if userID == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		stored, err := h.watchlist.Symbols(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlist"})
			return
		}
		if len(stored) == 0 {
			c.JSON(http.StatusOK, []dto.NewsItemResponse{})
			return
		}
		symbols = stored
	}

	items, err := h.uc.NewsForSymbols(c.Request.Context(), symbols)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch watchlist news"})
		return
	}
	c.JSON(http.StatusOK, toNewsResponses(items))
}

// GetStockNews は1銘柄のニュースをJSONで返します。
//
// エンドポイント例:
// GET /news/stock/AAPL
func (h *NewsHandler) GetStockNews(c *gin.Context) {
	symbol := strings.TrimSpace(c.Param("symbol"))
	if symbol == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	items, err := h.uc.StockNews(c.Request.Context(), symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch stock news"})
		return
	}
	c.JSON(http.StatusOK, toNewsResponses(items))
}

func toNewsResponses(items []entity.NewsItem) []dto.NewsItemResponse {
	out := make([]dto.NewsItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewsItemResponse{
			Title:          item.Title,
			Publisher:      item.Publisher,
			Link:           item.Link,
			PublishedDate:  item.PublishedAt.UTC().Format(time.RFC3339),
			Summary:        item.Summary,
			Thumbnail:      item.Thumbnail,
			RelatedSymbols: item.RelatedSymbols,
		})
	}
	return out
}
