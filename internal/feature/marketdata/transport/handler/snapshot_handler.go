// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"finance_backend/internal/feature/marketdata/domain"
	"finance_backend/internal/feature/marketdata/domain/entity"
	"finance_backend/internal/feature/marketdata/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// SnapshotUsecase は市場データ取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SnapshotUsecase interface {
	FetchSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error)
	RetryAfter() time.Duration
}

// SnapshotHandler は銘柄SnapshotのHTTPリクエストを処理します。
type SnapshotHandler struct {
	uc SnapshotUsecase
}

// NewSnapshotHandler は指定されたusecaseでSnapshotHandlerの新しいインスタンスを生成します。
func NewSnapshotHandler(uc SnapshotUsecase) *SnapshotHandler {
	return &SnapshotHandler{uc: uc}
}

// GetStock は銘柄コードを受け取り、正規化済みSnapshotをJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol
func (h *SnapshotHandler) GetStock(c *gin.Context) {
	snap, err := h.uc.FetchSnapshot(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ToSnapshotResponse(snap))
}

// writeError はドメインエラーをHTTPステータスへ対応付けます。
func (h *SnapshotHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSymbolNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrRateLimited):
		// バックオフ期限から導出したretry-afterヒントを付与する
		retryAfter := int(h.uc.RetryAfter().Round(time.Second).Seconds())
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error(), "retry_after": retryAfter})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// ToSnapshotResponse はSnapshotをレスポンスDTOへ変換します。
func ToSnapshotResponse(snap entity.Snapshot) dto.SnapshotResponse {
	history := make([]dto.HistoryPoint, 0, len(snap.History))
	for _, p := range snap.History {
		history = append(history, dto.HistoryPoint{
			Time:     p.Time.UTC().Format(time.RFC3339),
			Price:    p.Price,
			Intraday: p.Intraday,
		})
	}
	return dto.SnapshotResponse{
		Symbol:        snap.Symbol,
		Name:          snap.Name,
		Price:         snap.Price,
		PreviousClose: snap.PreviousClose,
		Change:        snap.Change,
		ChangePercent: snap.ChangePercent,
		Volume:        snap.Volume,
		MarketCap:     snap.MarketCap,
		High52w:       snap.High52w,
		Low52w:        snap.Low52w,
		History:       history,
		FetchedAt:     snap.FetchedAt.UTC().Format(time.RFC3339),
	}
}
