// Package entity はreceiptsフィーチャーのドメインモデルを定義します。
package entity

// ReceiptDraft はレシート画像から抽出された取引の下書きを表します。
// 利用者が確認・修正してから取引として確定する前提の暫定データです。
type ReceiptDraft struct {
	Merchant string  // 店舗名
	Total    float64 // 合計金額
	Date     string  // 取引日（YYYY-MM-DD、読み取れない場合は空）
	Category string  // 推定された支出カテゴリ
	RawText  string  // OCRで抽出された全文
}
