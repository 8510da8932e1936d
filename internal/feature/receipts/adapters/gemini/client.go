// Package gemini はGoogle Gemini APIを使用したレシート項目抽出クライアントを提供します。
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"finance_backend/internal/feature/receipts/usecase"
)

const (
	// DefaultModel はGemini APIのデフォルトモデルです。
	DefaultModel = "gemini-2.5-flash"
)

// GeminiFieldExtractor はGoogle Gemini APIを使用してレシート項目を抽出します。
type GeminiFieldExtractor struct {
	client *genai.Client
	model  string
}

// GeminiFieldExtractorがFieldExtractorを実装していることをコンパイル時に検証します。
var _ usecase.FieldExtractor = (*GeminiFieldExtractor)(nil)

// NewGeminiFieldExtractor はADCを使用してGeminiFieldExtractorの新しいインスタンスを生成します。
// 環境変数 GOOGLE_GENAI_USE_VERTEXAI, GOOGLE_CLOUD_PROJECT, GOOGLE_CLOUD_LOCATION が必要です。
func NewGeminiFieldExtractor(ctx context.Context) (*GeminiFieldExtractor, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiFieldExtractor{client: client, model: DefaultModel}, nil
}

// Extract はプロンプトから抽出結果のテキストを生成します。
func (g *GeminiFieldExtractor) Extract(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API request failed: %w", err)
	}

	return resp.Text(), nil
}
