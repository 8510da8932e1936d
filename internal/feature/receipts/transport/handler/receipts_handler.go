// Package handler はreceiptsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"finance_backend/internal/feature/receipts/domain"
	"finance_backend/internal/feature/receipts/domain/entity"
	"finance_backend/internal/feature/receipts/transport/http/dto"
)

// ReceiptsUsecase はレシート読み取りのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ReceiptsUsecase interface {
	// ScanReceipt はレシート画像から取引の下書きを抽出します。
	ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*entity.ReceiptDraft, error)
}

// ReceiptsHandler はレシート読み取りのHTTPリクエストを処理します。
type ReceiptsHandler struct {
	uc ReceiptsUsecase
}

// NewReceiptsHandler はReceiptsHandlerの新しいインスタンスを生成します。
func NewReceiptsHandler(uc ReceiptsUsecase) *ReceiptsHandler {
	return &ReceiptsHandler{uc: uc}
}

// ScanReceipt はレシート画像をアップロードして取引の下書きを返します。
//
// エンドポイント: POST /v1/receipts/scan
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）
func (h *ReceiptsHandler) ScanReceipt(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("画像ファイルのオープンに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()

	imageData, err := io.ReadAll(f)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
		return
	}

	draft, err := h.uc.ScanReceipt(c.Request.Context(), imageData, file.Header.Get("Content-Type"))
	if err != nil {
		writeReceiptError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ReceiptDraftResponse{
		Merchant: draft.Merchant,
		Total:    draft.Total,
		Date:     draft.Date,
		Category: draft.Category,
		RawText:  draft.RawText,
	})
}

// writeReceiptError はドメインエラーをHTTPステータスに対応付けます。
func writeReceiptError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyImage),
		errors.Is(err, domain.ErrImageTooLarge),
		errors.Is(err, domain.ErrUnsupportedImageType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoTextFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no text found in image"})
	default:
		slog.Error("レシート読み取りに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, gin.H{"error": "receipt scan failed"})
	}
}
