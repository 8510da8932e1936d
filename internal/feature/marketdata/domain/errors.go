// Package domain はmarketdataフィーチャーのドメインレベルのエラーを定義します。
package domain

import "errors"

// 取得パイプラインのエラー分類です。
// 上流（外部API）の生のエラーはusecase境界でこのいずれかに再分類され、
// 呼び出し側（ハンドラー、advisor等）が上流の例外を直接見ることはありません。
var (
	// ErrSymbolNotFound は銘柄が上流に存在しないことを示します（終端エラー、404相当）。
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrRateLimited はレート制限中でキャッシュフォールバックも不可能なことを示します。
	// レスポンスにはバックオフ期限から導出したretry-afterヒントを付与します。
	ErrRateLimited = errors.New("rate limited and no cached data available")

	// ErrUpstream は一時的な上流障害でキャッシュフォールバックも不可能なことを示します（5xx相当）。
	ErrUpstream = errors.New("upstream market data unavailable")

	// ErrThrottled は上流がスロットリング（HTTP 429相当）を通知したことを示します。
	// アダプターが返し、usecaseがバックオフ遷移とキャッシュフォールバックに変換します。
	// 呼び出し側へそのまま露出することはありません。
	ErrThrottled = errors.New("throttled by upstream")
)
