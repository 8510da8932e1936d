package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"finance_backend/internal/feature/investing/domain/entity"
)

// PortfolioUsecase はユーザーの保有全体を現在価格で評価するユースケースです。
type PortfolioUsecase struct {
	holdings HoldingRepository
	market   SnapshotFetcher
}

// NewPortfolioUsecase はPortfolioUsecaseの新しいインスタンスを生成します。
func NewPortfolioUsecase(holdings HoldingRepository, market SnapshotFetcher) *PortfolioUsecase {
	return &PortfolioUsecase{holdings: holdings, market: market}
}

// GetPortfolio はユーザーの保有を現在価格で評価したサマリーを返します。
// 価格取得に失敗した銘柄は評価から除外され、合計値には含まれません。
func (pu *PortfolioUsecase) GetPortfolio(ctx context.Context, userID uint) (entity.Portfolio, error) {
	holdings, err := pu.holdings.ListByUser(ctx, userID)
	if err != nil {
		return entity.Portfolio{}, fmt.Errorf("failed to load holdings: %w", err)
	}

	portfolio := entity.Portfolio{Holdings: make([]entity.HoldingValuation, 0, len(holdings))}
	var previousValue float64

	for _, h := range holdings {
		snap, err := pu.market.FetchSnapshot(ctx, h.Symbol)
		if err != nil {
			slog.Warn("excluding holding from valuation", "symbol", h.Symbol, "error", err)
			continue
		}

		value := h.Shares * snap.Price
		cost := h.Shares * h.AveragePrice
		gain := value - cost

		v := entity.HoldingValuation{
			Symbol:       h.Symbol,
			Name:         snap.Name,
			Shares:       h.Shares,
			AveragePrice: h.AveragePrice,
			CurrentPrice: snap.Price,
			TotalValue:   value,
			GainLoss:     gain,
		}
		if cost != 0 {
			v.GainLossPercent = gain / cost * 100
		}

		portfolio.Holdings = append(portfolio.Holdings, v)
		portfolio.TotalValue += value
		previousValue += h.Shares * snap.PreviousClose
	}

	portfolio.DailyChange = portfolio.TotalValue - previousValue
	if previousValue != 0 {
		portfolio.DailyChangePercent = portfolio.DailyChange / previousValue * 100
	}
	return portfolio, nil
}
