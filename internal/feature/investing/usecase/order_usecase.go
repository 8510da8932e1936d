package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"finance_backend/internal/feature/investing/domain"
	"finance_backend/internal/feature/investing/domain/entity"
)

// OrderUsecase は成行注文の受付と約定処理を実装するユースケースです。
// 注文価格は受付時点のスナップショット価格で確定します。
type OrderUsecase struct {
	orders   OrderRepository
	holdings HoldingRepository
	market   SnapshotFetcher
	now      func() time.Time
}

// NewOrderUsecase はOrderUsecaseの新しいインスタンスを生成します。
func NewOrderUsecase(orders OrderRepository, holdings HoldingRepository, market SnapshotFetcher) *OrderUsecase {
	return &OrderUsecase{orders: orders, holdings: holdings, market: market, now: time.Now}
}

// PlaceOrder は注文を受け付けて即時に約定させ、保有ポジションを更新します。
// 売り注文は保有数量が不足している場合domain.ErrInsufficientSharesで拒否されます。
// 買い注文は既存保有の平均取得単価を加重平均で更新します。
func (ou *OrderUsecase) PlaceOrder(ctx context.Context, userID uint, symbol string, orderType entity.OrderType, quantity float64) (entity.Order, error) {
	if quantity <= 0 {
		return entity.Order{}, domain.ErrInvalidQuantity
	}
	if orderType != entity.OrderTypeBuy && orderType != entity.OrderTypeSell {
		return entity.Order{}, domain.ErrInvalidOrderType
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	snap, err := ou.market.FetchSnapshot(ctx, symbol)
	if err != nil {
		return entity.Order{}, err
	}

	// 売り注文は約定前に保有数量を検証する
	var held entity.Holding
	if orderType == entity.OrderTypeSell {
		held, err = ou.holdings.FindByUserAndSymbol(ctx, userID, symbol)
		if errors.Is(err, domain.ErrHoldingNotFound) || (err == nil && held.Shares < quantity) {
			return entity.Order{}, domain.ErrInsufficientShares
		}
		if err != nil {
			return entity.Order{}, fmt.Errorf("failed to load holding: %w", err)
		}
	}

	order := entity.Order{
		UserID:      userID,
		Symbol:      symbol,
		Type:        orderType,
		Quantity:    quantity,
		Price:       snap.Price,
		TotalAmount: quantity * snap.Price,
		Status:      entity.OrderStatusPending,
		CreatedAt:   ou.now(),
	}
	if err := ou.orders.Create(ctx, &order); err != nil {
		return entity.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	// 保有更新に失敗した注文はPENDINGのまま残り、照会で区別できる
	if orderType == entity.OrderTypeBuy {
		err = ou.applyBuy(ctx, userID, symbol, quantity, order.TotalAmount, snap.Price)
	} else {
		err = ou.applySell(ctx, held, quantity)
	}
	if err != nil {
		return order, fmt.Errorf("failed to process order: %w", err)
	}

	completed := ou.now()
	order.Status = entity.OrderStatusCompleted
	order.CompletedAt = &completed
	if err := ou.orders.Update(ctx, &order); err != nil {
		return order, fmt.Errorf("failed to complete order: %w", err)
	}
	return order, nil
}

// ListOrders はユーザーの注文履歴を新しい順に返します。
func (ou *OrderUsecase) ListOrders(ctx context.Context, userID uint) ([]entity.Order, error) {
	return ou.orders.ListByUser(ctx, userID)
}

func (ou *OrderUsecase) applyBuy(ctx context.Context, userID uint, symbol string, quantity, totalAmount, price float64) error {
	holding, err := ou.holdings.FindByUserAndSymbol(ctx, userID, symbol)
	switch {
	case errors.Is(err, domain.ErrHoldingNotFound):
		holding = entity.Holding{
			UserID:       userID,
			Symbol:       symbol,
			Shares:       quantity,
			AveragePrice: price,
		}
	case err != nil:
		return err
	default:
		totalShares := holding.Shares + quantity
		totalCost := holding.Shares*holding.AveragePrice + totalAmount
		holding.AveragePrice = totalCost / totalShares
		holding.Shares = totalShares
	}
	return ou.holdings.Save(ctx, &holding)
}

func (ou *OrderUsecase) applySell(ctx context.Context, holding entity.Holding, quantity float64) error {
	holding.Shares -= quantity
	if holding.Shares <= 0 {
		return ou.holdings.Delete(ctx, holding.UserID, holding.Symbol)
	}
	return ou.holdings.Save(ctx, &holding)
}
