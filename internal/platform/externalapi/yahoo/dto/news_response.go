package dto

// NewsResponse はニュース検索エンドポイントのJSONレスポンスを表します。
type NewsResponse struct {
	News []NewsPayload `json:"news"`
}

// NewsPayload は上流のニュース1件の生ペイロードです。
// 上流スキーマは不安定で、旧来のフラット形状と"content"配下にネストされた
// 新形状の2通りが存在します。Contentが非nilなら新形状です。
type NewsPayload struct {
	// フラット形状（レガシー）。titleにはheadline、publisherにはsource、
	// linkにはurlという別名フィールドで返るケースもあります。
	Title               string     `json:"title"`
	Headline            string     `json:"headline"`
	Publisher           string     `json:"publisher"`
	Source              string     `json:"source"`
	Link                string     `json:"link"`
	URL                 string     `json:"url"`
	ProviderPublishTime int64      `json:"providerPublishTime"`
	PublishedAt         int64      `json:"publishedAt"`
	Summary             string     `json:"summary"`
	Thumbnail           *Thumbnail `json:"thumbnail"`
	RelatedTickers      []string   `json:"relatedTickers"`

	// ネスト形状（新）
	Content *NewsContent `json:"content"`
}

// NewsContent は新形状のニュース本体です。
type NewsContent struct {
	Title    string `json:"title"`
	Provider *struct {
		DisplayName string `json:"displayName"`
	} `json:"provider"`
	CanonicalURL *struct {
		URL string `json:"url"`
	} `json:"canonicalUrl"`
	ClickThroughURL *struct {
		URL string `json:"url"`
	} `json:"clickThroughUrl"`
	PubDate     string     `json:"pubDate"`     // RFC3339
	DisplayTime string     `json:"displayTime"` // RFC3339
	Summary     string     `json:"summary"`
	Thumbnail   *Thumbnail `json:"thumbnail"`
	Finance     *struct {
		StockTickers []struct {
			Symbol string `json:"symbol"`
		} `json:"stockTickers"`
	} `json:"finance"`
}

// Thumbnail はサムネイル画像の解像度リストです。
type Thumbnail struct {
	Resolutions []struct {
		URL string `json:"url"`
	} `json:"resolutions"`
}
