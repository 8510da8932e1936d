// Package usecase は銘柄推奨のスコアリングロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"finance_backend/internal/feature/advisor/domain/entity"
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
)

const (
	// DefaultTopN はデフォルトの推奨返却件数です。
	DefaultTopN = 5
	// MaxTopN は推奨の最大返却件数です。
	MaxTopN = 20

	momentumLookback   = 7  // モメンタム計算に使う日足点数
	volatilityLookback = 30 // ボラティリティ計算に使う日足点数

	highVolumeThreshold = 10_000_000
	lowVolumeThreshold  = 1_000_000
	largeCapThreshold   = 100_000_000_000
	smallCapThreshold   = 10_000_000_000
)

// defaultUniverse は対象銘柄が全滅した場合のフォールバック銘柄リストです。
var defaultUniverse = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}

// defaultReason はフォールバック銘柄に付与する定型の理由文です。
const defaultReason = "Widely held large-cap included as a default pick"

// DefaultUniverse はフォールバック銘柄リストのコピーを返します。
// 事前ウォームアップの対象としてcmd/ingestから参照されます。
func DefaultUniverse() []string {
	return slices.Clone(defaultUniverse)
}

// SnapshotFetcher は取得パイプラインを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, symbol string) (marketentity.Snapshot, error)
}

// AdvisorUsecase は銘柄ユニバースをスコアリングし、上位N件を推奨として返します。
type AdvisorUsecase struct {
	fetcher SnapshotFetcher
}

// NewAdvisorUsecase はAdvisorUsecaseの新しいインスタンスを生成します。
func NewAdvisorUsecase(fetcher SnapshotFetcher) *AdvisorUsecase {
	return &AdvisorUsecase{fetcher: fetcher}
}

// Rank は指定ユニバースの各銘柄をスコアリングし、理由数の降順で上位topN件を返します。
// 個別銘柄の取得失敗はスキップするだけで、全体としては失敗しません。
// ユニバースが全滅した場合は固定のデフォルト銘柄リストへフォールバックします。
func (au *AdvisorUsecase) Rank(ctx context.Context, symbols []string, topN int) []entity.Recommendation {
	if topN <= 0 || topN > MaxTopN {
		topN = DefaultTopN
	}

	results := au.scoreUniverse(ctx, symbols)
	if len(results) == 0 {
		slog.Warn("no eligible symbols, falling back to default universe")
		results = au.scoreDefaults(ctx)
	}

	// 理由数の降順でランク付けする。スコア順ではない点に注意。
	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].Reasons) > len(results[j].Reasons)
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results
}

func (au *AdvisorUsecase) scoreUniverse(ctx context.Context, symbols []string) []entity.Recommendation {
	results := make([]entity.Recommendation, 0, len(symbols))
	for _, s := range symbols {
		snap, err := au.fetcher.FetchSnapshot(ctx, s)
		if err != nil {
			slog.Info("skipping symbol in recommendation pass", "symbol", s, "error", err)
			continue
		}
		score, reasons := scoreSnapshot(snap)
		results = append(results, entity.Recommendation{
			Symbol:   snap.Symbol,
			Snapshot: snap,
			Score:    score,
			Reasons:  reasons,
			Label:    labelFor(score),
		})
	}
	return results
}

func (au *AdvisorUsecase) scoreDefaults(ctx context.Context) []entity.Recommendation {
	results := make([]entity.Recommendation, 0, len(defaultUniverse))
	for _, s := range defaultUniverse {
		snap, err := au.fetcher.FetchSnapshot(ctx, s)
		if err != nil {
			slog.Info("skipping default symbol", "symbol", s, "error", err)
			continue
		}
		score, _ := scoreSnapshot(snap)
		results = append(results, entity.Recommendation{
			Symbol:   snap.Symbol,
			Snapshot: snap,
			Score:    score,
			Reasons:  []string{defaultReason},
			Label:    labelFor(score),
		})
	}
	return results
}

// scoreSnapshot はポイント制ヒューリスティックでSnapshotを採点します。
// ルールは定義順（モメンタム、出来高、時価総額、ボラティリティ）に評価され、
// 発火したルールの説明が同じ順でreasonsに積まれます。
func scoreSnapshot(snap marketentity.Snapshot) (int, []string) {
	score := 0
	reasons := []string{}
	closes := snap.DailyCloses()

	// モメンタム: 直近7日足の騰落率
	if len(closes) >= momentumLookback {
		first := closes[len(closes)-momentumLookback]
		last := closes[len(closes)-1]
		if first != 0 {
			r := (last - first) / first
			switch {
			case r > 0.05:
				score += 2
				reasons = append(reasons, fmt.Sprintf("Strong upward momentum over the last 7 trading days (%+.1f%%)", r*100))
			case r > 0.02:
				score++
				reasons = append(reasons, fmt.Sprintf("Positive momentum over the last 7 trading days (%+.1f%%)", r*100))
			case r < -0.05:
				score--
				reasons = append(reasons, fmt.Sprintf("Sharp decline over the last 7 trading days (%+.1f%%)", r*100))
			}
		}
	}

	// 出来高・時価総額の0は欠損値として扱い、減点しません。
	switch {
	case snap.Volume > highVolumeThreshold:
		score++
		reasons = append(reasons, "High trading volume indicates strong investor interest")
	case snap.Volume < lowVolumeThreshold && snap.Volume > 0:
		score--
		reasons = append(reasons, "Low trading volume suggests thin liquidity")
	}

	// 時価総額
	switch {
	case snap.MarketCap > largeCapThreshold:
		score++
		reasons = append(reasons, "Large market capitalization provides stability")
	case snap.MarketCap < smallCapThreshold && snap.MarketCap > 0:
		score--
		reasons = append(reasons, "Small market capitalization carries higher risk")
	}

	// ボラティリティ: 直近30日足の(最高値-最安値)/最安値
	if v, ok := trailingVolatility(closes, volatilityLookback); ok {
		switch {
		case v < 0.10:
			score++
			reasons = append(reasons, "Low volatility over the last 30 trading days")
		case v > 0.30:
			score--
			reasons = append(reasons, "High volatility over the last 30 trading days")
		}
	}

	return score, reasons
}

// trailingVolatility は直近lookback点の終値から(max-min)/minを計算します。
func trailingVolatility(closes []float64, lookback int) (float64, bool) {
	if len(closes) < 2 {
		return 0, false
	}
	if len(closes) > lookback {
		closes = closes[len(closes)-lookback:]
	}

	minClose, maxClose := closes[0], closes[0]
	for _, c := range closes[1:] {
		if c < minClose {
			minClose = c
		}
		if c > maxClose {
			maxClose = c
		}
	}
	if minClose <= 0 {
		return 0, false
	}
	return (maxClose - minClose) / minClose, true
}

func labelFor(score int) string {
	switch {
	case score >= 2:
		return entity.LabelBuy
	case score > 0:
		return entity.LabelConsider
	default:
		return entity.LabelHold
	}
}
