package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	newsentity "finance_backend/internal/feature/news/domain/entity"
	"finance_backend/internal/platform/externalapi/yahoo/dto"
)

// GetNews は指定ティッカーに関連するニュース記事を取得します。
// 上流は旧フラット形状と"content"配下のネスト形状の2通りのペイロードを返すため、
// どちらも同じNewsItemへ正規化します。タイトル・発行元・リンクのいずれかを
// 欠く記事は破棄します。
func (c *Client) GetNews(ctx context.Context, tickers []string, count int) ([]newsentity.NewsItem, error) {
	q := url.Values{}
	q.Set("q", strings.Join(tickers, ","))
	q.Set("newsCount", strconv.Itoa(count))
	u := fmt.Sprintf("%s/search?%s", c.cfg.NewsBaseURL, q.Encode())

	body, err := c.doGet(ctx, u)
	if err != nil {
		return nil, err
	}

	var resp dto.NewsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("yahoo decode news: %w", err)
	}

	items := make([]newsentity.NewsItem, 0, len(resp.News))
	for _, payload := range resp.News {
		item, ok := normalizeNewsItem(payload)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// normalizeNewsItem は上流ペイロードをNewsItemへ正規化します。
// 必須フィールド（タイトル・発行元・リンク）が空白除去後に欠けていればfalseを返します。
func normalizeNewsItem(p dto.NewsPayload) (newsentity.NewsItem, bool) {
	var item newsentity.NewsItem

	if p.Content != nil {
		// ネスト形状
		item.Title = strings.TrimSpace(p.Content.Title)
		if p.Content.Provider != nil {
			item.Publisher = strings.TrimSpace(p.Content.Provider.DisplayName)
		}
		if p.Content.CanonicalURL != nil {
			item.Link = strings.TrimSpace(p.Content.CanonicalURL.URL)
		}
		if item.Link == "" && p.Content.ClickThroughURL != nil {
			item.Link = strings.TrimSpace(p.Content.ClickThroughURL.URL)
		}
		item.PublishedAt = parseNewsTime(p.Content.PubDate, p.Content.DisplayTime)
		item.Summary = strings.TrimSpace(p.Content.Summary)
		item.Thumbnail = thumbnailURL(p.Content.Thumbnail)
		if p.Content.Finance != nil {
			for _, t := range p.Content.Finance.StockTickers {
				if sym := strings.TrimSpace(t.Symbol); sym != "" {
					item.RelatedSymbols = append(item.RelatedSymbols, sym)
				}
			}
		}
	} else {
		// フラット形状。別名フィールドで返るケースもカバーします。
		item.Title = strings.TrimSpace(firstNonEmpty(p.Title, p.Headline))
		item.Publisher = strings.TrimSpace(firstNonEmpty(p.Publisher, p.Source))
		item.Link = strings.TrimSpace(firstNonEmpty(p.Link, p.URL))
		if ts := p.ProviderPublishTime; ts > 0 {
			item.PublishedAt = time.Unix(ts, 0).UTC()
		} else if p.PublishedAt > 0 {
			item.PublishedAt = time.Unix(p.PublishedAt, 0).UTC()
		}
		item.Summary = strings.TrimSpace(p.Summary)
		item.Thumbnail = thumbnailURL(p.Thumbnail)
		item.RelatedSymbols = p.RelatedTickers
	}

	if item.Title == "" || item.Publisher == "" || item.Link == "" {
		return newsentity.NewsItem{}, false
	}
	return item, true
}

// parseNewsTime はRFC3339文字列の候補を順に解釈し、最初に成功した時刻を返します。
func parseNewsTime(candidates ...string) time.Time {
	for _, s := range candidates {
		if s == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func thumbnailURL(t *dto.Thumbnail) string {
	if t == nil || len(t.Resolutions) == 0 {
		return ""
	}
	return t.Resolutions[0].URL
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
