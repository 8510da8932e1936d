// Package entity はmarketdataフィーチャーのドメインモデルを定義します。
package entity

import "time"

// PricePoint は銘柄の履歴上の1点（終値）を表します。
// Intradayがtrueの場合、当日の日中データであることを示します。
type PricePoint struct {
	Time     time.Time // この価格の時刻
	Price    float64   // 終値
	Intraday bool      // 当日の日中足かどうか
}

// Snapshot はある時点における銘柄の正規化済み市場データです。
// 履歴（History）は時刻昇順・タイムスタンプ重複なしで保持されます。
type Snapshot struct {
	Symbol        string       // 銘柄コード（大文字に正規化済み）
	Name          string       // 表示名
	Price         float64      // 現在価格
	PreviousClose float64      // 前日終値
	Change        float64      // 前日比（絶対値）
	ChangePercent float64      // 前日比（%）
	Volume        int64        // 出来高
	MarketCap     int64        // 時価総額
	High52w       float64      // 52週高値
	Low52w        float64      // 52週安値
	History       []PricePoint // 時刻昇順の履歴
	FetchedAt     time.Time    // 取得時刻
}

// Clone はSnapshotの深いコピーを返します。
// キャッシュされたSnapshotは共有されるため、呼び出し側が変更する場合は
// 必ずコピーに対して行います（copy-then-mutate）。
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.History != nil {
		out.History = make([]PricePoint, len(s.History))
		copy(out.History, s.History)
	}
	return out
}

// DailyCloses は履歴のうち日足（Intraday=false）の終値のみを昇順で返します。
func (s Snapshot) DailyCloses() []float64 {
	closes := make([]float64, 0, len(s.History))
	for _, p := range s.History {
		if !p.Intraday {
			closes = append(closes, p.Price)
		}
	}
	return closes
}
