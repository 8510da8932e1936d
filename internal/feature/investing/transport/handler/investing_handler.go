// Package handler はinvestingフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
	"finance_backend/internal/feature/investing/transport/http/dto"
	marketdomain "finance_backend/internal/feature/marketdata/domain"
	jwtmw "finance_backend/internal/platform/jwt"

	"github.com/gin-gonic/gin"
)

// PortfolioUsecase はポートフォリオ評価のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	GetPortfolio(ctx context.Context, userID uint) (entity.Portfolio, error)
}

// OrderUsecase は注文のユースケースインターフェースを定義します。
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uint, symbol string, orderType entity.OrderType, quantity float64) (entity.Order, error)
	ListOrders(ctx context.Context, userID uint) ([]entity.Order, error)
}

// WatchlistUsecase はウォッチリストのユースケースインターフェースを定義します。
type WatchlistUsecase interface {
	Add(ctx context.Context, userID uint, symbol string) (entity.WatchlistEntry, error)
	Remove(ctx context.Context, userID uint, symbol string) error
	Priced(ctx context.Context, userID uint) ([]entity.WatchlistQuote, error)
}

// InvestingHandler はポートフォリオ・注文・ウォッチリストのHTTPリクエストを処理します。
// すべてのエンドポイントは認証済みユーザーを前提とします。
type InvestingHandler struct {
	portfolio PortfolioUsecase
	orders    OrderUsecase
	watchlist WatchlistUsecase
}

// NewInvestingHandler はInvestingHandlerの新しいインスタンスを生成します。
func NewInvestingHandler(portfolio PortfolioUsecase, orders OrderUsecase, watchlist WatchlistUsecase) *InvestingHandler {
	return &InvestingHandler{portfolio: portfolio, orders: orders, watchlist: watchlist}
}

// GetPortfolio はユーザーのポートフォリオ評価をJSONで返します。
//
// エンドポイント例:
// GET /portfolio
func (h *InvestingHandler) GetPortfolio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	portfolio, err := h.portfolio.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load portfolio"})
		return
	}

	out := dto.PortfolioResponse{
		TotalValue:         portfolio.TotalValue,
		DailyChange:        portfolio.DailyChange,
		DailyChangePercent: portfolio.DailyChangePercent,
		Holdings:           make([]dto.HoldingResponse, 0, len(portfolio.Holdings)),
	}
	for _, v := range portfolio.Holdings {
		out.Holdings = append(out.Holdings, dto.HoldingResponse{
			Symbol:          v.Symbol,
			Name:            v.Name,
			Shares:          v.Shares,
			AveragePrice:    v.AveragePrice,
			CurrentPrice:    v.CurrentPrice,
			TotalValue:      v.TotalValue,
			GainLoss:        v.GainLoss,
			GainLossPercent: v.GainLossPercent,
		})
	}
	c.JSON(http.StatusOK, out)
}

// CreateOrder は成行注文を受け付けて即時約定させます。
//
// エンドポイント例:
// POST /orders {"symbol":"AAPL","type":"BUY","quantity":5}
func (h *InvestingHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol, type and quantity are required"})
		return
	}

	order, err := h.orders.PlaceOrder(c.Request.Context(), userID, req.Symbol, entity.OrderType(req.Type), req.Quantity)
	if err != nil {
		writeInvestingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// ListOrders はユーザーの注文履歴を新しい順にJSONで返します。
//
// エンドポイント例:
// GET /orders
func (h *InvestingHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := h.orders.ListOrders(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load orders"})
		return
	}

	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, out)
}

// GetWatchlist はウォッチリスト銘柄の現在値一覧をJSONで返します。
//
// エンドポイント例:
// GET /watchlist
func (h *InvestingHandler) GetWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	quotes, err := h.watchlist.Priced(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load watchlist"})
		return
	}

	out := make([]dto.WatchlistQuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, dto.WatchlistQuoteResponse{
			Symbol:        q.Symbol,
			Name:          q.Name,
			Price:         q.Price,
			Change:        q.Change,
			ChangePercent: q.ChangePercent,
		})
	}
	c.JSON(http.StatusOK, out)
}

// AddToWatchlist は銘柄をウォッチリストに登録します。
//
// エンドポイント例:
// POST /watchlist {"symbol":"AAPL"}
func (h *InvestingHandler) AddToWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	entry, err := h.watchlist.Add(c.Request.Context(), userID, req.Symbol)
	if err != nil {
		writeInvestingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"symbol": entry.Symbol, "added_at": entry.AddedAt.UTC().Format(time.RFC3339)})
}

// RemoveFromWatchlist は銘柄をウォッチリストから削除します。
//
// エンドポイント例:
// DELETE /watchlist/AAPL
func (h *InvestingHandler) RemoveFromWatchlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.watchlist.Remove(c.Request.Context(), userID, c.Param("symbol")); err != nil {
		writeInvestingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stock removed from watchlist"})
}

// currentUserID は認証ミドルウェアが設定したユーザーIDを取り出します。
func currentUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return 0, false
	}
	return userID, true
}

// writeInvestingError はドメインエラーをHTTPステータスに対応付けます。
func writeInvestingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOrderType),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrAlreadyInWatchlist):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotInWatchlist),
		errors.Is(err, marketdomain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, marketdomain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func toOrderResponse(o entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:          o.ID,
		Symbol:      o.Symbol,
		Type:        string(o.Type),
		Quantity:    o.Quantity,
		Price:       o.Price,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
	if o.CompletedAt != nil {
		out.CompletedAt = o.CompletedAt.UTC().Format(time.RFC3339)
	}
	return out
}
