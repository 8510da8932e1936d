// Package ratelimiter は上流API呼び出しの頻度を制限します。
package ratelimiter

import (
	"sync"
	"time"
)

// SlidingWindowLimiter は直近ウィンドウ内の許可済みリクエスト時刻列を追跡し、
// 許可/拒否を判定するレートリミッターです。ウィンドウを使い切ると
// バックオフ（クールダウン）に入り、期限が切れるまで全リクエストを拒否します。
//
// バックオフ期限が切れた時点で時刻列は完全にリセットされます（部分的な減衰
// ではなく全消去）。古いタイムスタンプが残っていると復帰直後に再度
// バックオフを引き起こすためです。
type SlidingWindowLimiter struct {
	mu           sync.Mutex
	limit        int           // ウィンドウあたりの上限
	window       time.Duration // スライディングウィンドウの幅
	backoff      time.Duration // バックオフ期間
	calls        []time.Time   // ウィンドウ内の許可済みリクエスト時刻（挿入順=時刻順）
	backoffUntil time.Time     // バックオフ期限（ゼロ値なら未設定）

	now func() time.Time // テスト用に差し替え可能
}

// NewSlidingWindowLimiter は新しいSlidingWindowLimiterを生成します。
func NewSlidingWindowLimiter(limit int, window, backoff time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		limit:   limit,
		window:  window,
		backoff: backoff,
		now:     time.Now,
	}
}

// Allow は1リクエストの許可可否を判定します。
// 許可した場合は現在時刻を追跡列に追加します。
func (l *SlidingWindowLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	// バックオフ中なら拒否。期限切れなら全リセットして通常状態に戻る。
	if !l.backoffUntil.IsZero() {
		if now.Before(l.backoffUntil) {
			return false
		}
		l.backoffUntil = time.Time{}
		l.calls = l.calls[:0]
	}

	l.purge(now)

	// ウィンドウを使い切ったらバックオフに入る
	if len(l.calls) >= l.limit {
		l.backoffUntil = now.Add(l.backoff)
		return false
	}

	l.calls = append(l.calls, now)
	return true
}

// Throttle は上流がスロットリングを通知した場合に呼び出され、
// ローカルのウィンドウ状態に関わらず即座にバックオフへ遷移します。
// 上流は自身の制限について常に正であるためです。
func (l *SlidingWindowLimiter) Throttle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.backoffUntil = l.now().Add(l.backoff)
}

// RetryAfter はバックオフ期限までの残り時間を返します。
// バックオフ中でなければ0を返します。
func (l *SlidingWindowLimiter) RetryAfter() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.backoffUntil.IsZero() {
		return 0
	}
	d := l.backoffUntil.Sub(l.now())
	if d < 0 {
		return 0
	}
	return d
}

// purge はウィンドウより古いタイムスタンプを追跡列から取り除きます。
// 呼び出し側でロックを保持していることが前提です。
func (l *SlidingWindowLimiter) purge(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.calls[:0]
	for _, t := range l.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	l.calls = kept
}
