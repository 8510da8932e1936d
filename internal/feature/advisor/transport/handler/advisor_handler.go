// Package handler はadvisorフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"finance_backend/internal/feature/advisor/domain/entity"
	"finance_backend/internal/feature/advisor/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// AdvisorUsecase は銘柄推奨のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AdvisorUsecase interface {
	Rank(ctx context.Context, symbols []string, topN int) []entity.Recommendation
}

// AdvisorHandler は銘柄推奨のHTTPリクエストを処理します。
type AdvisorHandler struct {
	uc AdvisorUsecase
}

// NewAdvisorHandler は指定されたusecaseでAdvisorHandlerの新しいインスタンスを生成します。
func NewAdvisorHandler(uc AdvisorUsecase) *AdvisorHandler {
	return &AdvisorHandler{uc: uc}
}

// GetRecommendations は対象銘柄をスコアリングし、上位N件の推奨をJSONで返します。
// symbols未指定の場合はデフォルトの銘柄リストが対象になります。
//
// エンドポイント例:
// GET /recommendations?symbols=AAPL,MSFT&top_n=5
func (h *AdvisorHandler) GetRecommendations(c *gin.Context) {
	var symbols []string
	if raw := c.Query("symbols"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, s)
			}
		}
	}
	topN, _ := strconv.Atoi(c.DefaultQuery("top_n", "5"))

	results := h.uc.Rank(c.Request.Context(), symbols, topN)

	out := make([]dto.RecommendationResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.RecommendationResponse{
			Symbol:        r.Symbol,
			Name:          r.Snapshot.Name,
			Price:         r.Snapshot.Price,
			ChangePercent: r.Snapshot.ChangePercent,
			Score:         r.Score,
			Label:         r.Label,
			Reasons:       r.Reasons,
		})
	}
	c.JSON(http.StatusOK, out)
}
