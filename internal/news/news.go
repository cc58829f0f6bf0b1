// Package news assembles the renewable-investment headline feed.
package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/htmltext"
)

const (
	// Query is the search phrase used for the feed.
	Query = "재생에너지 투자 RE100"
	// Display is the number of articles requested.
	Display = 10

	pubDateLayout = "Mon, 02 Jan 2006 15:04:05 -0700"
)

// Searcher finds news articles for a query.
type Searcher interface {
	Search(ctx context.Context, query string, display int) ([]domain.NewsItem, error)
}

// Feed produces news items from a searcher, falling back to a fixed set of
// placeholder headlines.
type Feed struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewFeed creates a feed. Pass a nil searcher to always use placeholders.
func NewFeed(searcher Searcher, logger *slog.Logger) *Feed {
	return &Feed{searcher: searcher, logger: logger}
}

// Items returns cleaned search results, or placeholders dated relative to
// now when search is disabled, fails, or finds nothing.
func (f *Feed) Items(ctx context.Context, now time.Time) []domain.NewsItem {
	if f.searcher != nil {
		items, err := f.searcher.Search(ctx, Query, Display)
		switch {
		case err != nil:
			f.logger.Warn("news search failed, using placeholders", "error", err)
		case len(items) == 0:
			f.logger.Warn("news search returned no items, using placeholders")
		default:
			f.logger.Info("news fetched", "items", len(items))
			return clean(items)
		}
	}
	return Placeholders(now)
}

func clean(items []domain.NewsItem) []domain.NewsItem {
	out := make([]domain.NewsItem, len(items))
	for i, it := range items {
		out[i] = domain.NewsItem{
			Title:       htmltext.Plain(it.Title),
			Link:        it.Link,
			PubDate:     it.PubDate,
			Description: htmltext.Plain(it.Description),
		}
	}
	return out
}

type placeholder struct {
	title, link, description string
	age                      time.Duration
}

var placeholders = []placeholder{
	{
		title:       "한화솔루션, 미국 최대 태양광 통합 생산 단지 '솔라 허브' 가동 임박",
		link:        "https://www.hankyung.com/article/2024011500001",
		description: "북미 시장 공략을 위한 한화솔루션의 대규모 투자가 결실을 맺고 있습니다. 현지 생산을 통한 보조금 혜택이 기대됩니다.",
	},
	{
		title:       "정부, 2024년 신재생에너지 보급지원사업 공고... 1500억 규모",
		link:        "https://www.etnews.com/2024011600002",
		description: "산업통상자원부는 주택, 건물용 태양광 및 지열 등 신재생에너지 설비 설치를 지원하는 보조금 사업을 시작한다고 밝혔습니다.",
		age:         5 * time.Hour,
	},
	{
		title:       "국내 주요 대기업 RE100 가입 가속... 재생에너지 조달이 관건",
		link:        "https://www.sedaily.com/NewsView/2D43Z00003",
		description: "글로벌 공급망의 탄소 중립 요구가 거세짐에 따라 국내 기업들의 재생에너지(RE100) 전환 시도가 이어지고 있습니다.",
		age:         15 * time.Hour,
	},
}

// Placeholders returns the fallback headlines with publication times
// relative to now, in KST.
func Placeholders(now time.Time) []domain.NewsItem {
	now = now.In(domain.KST)
	items := make([]domain.NewsItem, len(placeholders))
	for i, p := range placeholders {
		items[i] = domain.NewsItem{
			Title:       p.title,
			Link:        p.link,
			PubDate:     now.Add(-p.age).Format(pubDateLayout),
			Description: p.description,
		}
	}
	return items
}
