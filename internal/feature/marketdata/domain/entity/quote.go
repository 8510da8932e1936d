package entity

// Quote は上流プロバイダから取得した銘柄の基本情報です。
// 履歴系列とマージされてSnapshotに正規化されます。
type Quote struct {
	Symbol        string  // 銘柄コード
	Name          string  // 表示名
	Price         float64 // 現在価格
	PreviousClose float64 // 前日終値
	Volume        int64   // 出来高
	MarketCap     int64   // 時価総額
	High52w       float64 // 52週高値
	Low52w        float64 // 52週安値
}
