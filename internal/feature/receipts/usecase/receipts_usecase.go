// Package usecase はreceiptsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"finance_backend/internal/feature/receipts/domain"
	"finance_backend/internal/feature/receipts/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// FallbackCategory はカテゴリを特定できなかった場合の既定値です。
	FallbackCategory = "Other"
	// dateLayout は抽出された取引日の期待フォーマットです。
	dateLayout = "2006-01-02"
)

// allowedImageTypes はアップロードを許可する画像のMIMEタイプです。
var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ExpenseCategories は支出カテゴリの固定リストです。
// 抽出結果のカテゴリはこのリストのいずれかに正規化されます。
var ExpenseCategories = []string{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Healthcare",
	"Entertainment",
	"Shopping",
	"Education",
	"Personal Care",
	"Travel",
	"Insurance",
	"Investments",
	"Gifts & Donations",
	"Other",
}

// extractionPromptTemplate はレシート項目抽出のプロンプトテンプレートです。
const extractionPromptTemplate = `Extract the following fields from this receipt text and respond with JSON only, no explanation:
{"merchant": string, "total": number, "date": "YYYY-MM-DD", "category": string}
The category must be exactly one of: %s.
If a field cannot be determined, use an empty string (or 0 for total).

Receipt text:
%s`

// TextExtractor は画像からテキストを抽出するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type TextExtractor interface {
	// ExtractText は画像バイト列から全文テキストを抽出します。
	ExtractText(ctx context.Context, imageData []byte) (string, error)
}

// FieldExtractor はプロンプトから構造化テキストを生成するリポジトリインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FieldExtractor interface {
	// Extract はプロンプトから抽出結果のテキストを生成します。
	Extract(ctx context.Context, prompt string) (string, error)
}

// receiptsUsecase はレシート読み取りのビジネスロジックを提供します。
type receiptsUsecase struct {
	ocr       TextExtractor
	extractor FieldExtractor
}

// NewReceiptsUsecase はreceiptsUsecaseの新しいインスタンスを生成します。
func NewReceiptsUsecase(ocr TextExtractor, extractor FieldExtractor) *receiptsUsecase {
	return &receiptsUsecase{ocr: ocr, extractor: extractor}
}

// ScanReceipt はレシート画像から取引の下書きを抽出します。
// 画像のバリデーション、OCR、項目抽出の順に処理します。
func (u *receiptsUsecase) ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*entity.ReceiptDraft, error) {
	if len(imageData) == 0 {
		return nil, domain.ErrEmptyImage
	}
	if len(imageData) > MaxImageSize {
		return nil, fmt.Errorf("%w of %d bytes", domain.ErrImageTooLarge, MaxImageSize)
	}
	if _, ok := allowedImageTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, contentType)
	}

	text, err := u.ocr.ExtractText(ctx, imageData)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrNoTextFound
	}

	prompt := fmt.Sprintf(extractionPromptTemplate, strings.Join(ExpenseCategories, ", "), text)
	raw, err := u.extractor.Extract(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("field extraction failed: %w", err)
	}

	fields, err := parseExtraction(raw)
	if err != nil {
		return nil, err
	}

	draft := &entity.ReceiptDraft{
		Merchant: strings.TrimSpace(fields.Merchant),
		Total:    fields.Total,
		Date:     normalizeDate(fields.Date),
		Category: normalizeCategory(fields.Category),
		RawText:  text,
	}
	return draft, nil
}

// extractionResult はモデルが返すJSONの構造です。
type extractionResult struct {
	Merchant string  `json:"merchant"`
	Total    float64 `json:"total"`
	Date     string  `json:"date"`
	Category string  `json:"category"`
}

// parseExtraction はモデル出力のJSONを解釈します。
// モデルがコードフェンスで囲んで返す場合があるため、先に取り除きます。
func parseExtraction(raw string) (extractionResult, error) {
	cleaned := stripCodeFence(raw)

	var result extractionResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return extractionResult{}, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}
	return result, nil
}

func stripCodeFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

// normalizeCategory は抽出されたカテゴリを固定リストに正規化します。
func normalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range ExpenseCategories {
		if strings.EqualFold(trimmed, c) {
			return c
		}
	}
	return FallbackCategory
}

// normalizeDate は取引日をYYYY-MM-DDとして検証し、不正な場合は空にします。
func normalizeDate(date string) string {
	trimmed := strings.TrimSpace(date)
	if trimmed == "" {
		return ""
	}
	if _, err := time.Parse(dateLayout, trimmed); err != nil {
		return ""
	}
	return trimmed
}
