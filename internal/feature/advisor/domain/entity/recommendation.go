// Package entity はadvisorフィーチャーのドメインモデルを定義します。
package entity

import (
	marketentity "finance_backend/internal/feature/marketdata/domain/entity"
)

// 推奨ラベルです。スコアから導出されます。
const (
	LabelBuy      = "BUY"
	LabelConsider = "CONSIDER"
	LabelHold     = "HOLD"
)

// Recommendation は1銘柄のスコアリング結果です。
// リクエストごとに最新のSnapshotから再計算され、永続化はされません。
type Recommendation struct {
	Symbol   string                // 銘柄コード
	Snapshot marketentity.Snapshot // スコアリングに使用したSnapshot
	Score    int                   // ポイント合計
	Reasons  []string              // 発火したルールの説明（ルール定義順）
	Label    string                // スコアから導出したラベル
}
