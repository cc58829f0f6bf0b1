// Package policy builds the subsidy programme board from the announcement
// feed or the embedded listings.
package policy

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/adapter/bizinfo"
	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/couchcryptid/green-check-collector/internal/htmltext"
	"gopkg.in/yaml.v3"
)

//go:embed policies.yaml
var embeddedListings []byte

const (
	// Keyword is the announcement search term.
	Keyword = "에너지"
	// SearchCount is the number of announcements requested.
	SearchCount = 10

	nationwide        = "전국"
	detailAmount      = "지원상세"
	descriptionRunes  = 80
	closingWindowDays = 7
	periodDateLayout  = "20060102"
)

// Searcher finds programme announcements by keyword.
type Searcher interface {
	Search(ctx context.Context, keyword string, count int) ([]bizinfo.Announcement, error)
}

// LoadListings reads the fallback listings from path, or the embedded set
// when path is empty.
func LoadListings(path string) ([]domain.Policy, error) {
	data := embeddedListings
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read policy listings: %w", err)
		}
		data = b
	}
	var doc struct {
		Policies []domain.Policy `yaml:"policies"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse policy listings: %w", err)
	}
	return doc.Policies, nil
}

// Board produces the policy-data.json document.
type Board struct {
	searcher Searcher
	listings []domain.Policy
	logger   *slog.Logger
}

// NewBoard creates a board. Pass a nil searcher to always use listings.
func NewBoard(searcher Searcher, listings []domain.Policy, logger *slog.Logger) *Board {
	return &Board{searcher: searcher, listings: listings, logger: logger}
}

// List maps current announcements to policies, falling back to the
// listings when the feed is disabled, fails, or is empty.
func (b *Board) List(ctx context.Context, now time.Time) domain.PolicyList {
	if b.searcher != nil {
		items, err := b.searcher.Search(ctx, Keyword, SearchCount)
		switch {
		case err != nil:
			b.logger.Warn("announcement search failed, using listings", "error", err)
		case len(items) == 0:
			b.logger.Warn("announcement search returned no items, using listings")
		default:
			policies := make([]domain.Policy, len(items))
			for i, it := range items {
				policies[i] = FromAnnouncement(it, now)
			}
			b.logger.Info("announcements fetched", "items", len(policies))
			return domain.PolicyList{Policies: policies}
		}
	}
	return domain.PolicyList{Policies: append([]domain.Policy(nil), b.listings...)}
}

// FromAnnouncement maps one announcement to a policy entry.
func FromAnnouncement(a bizinfo.Announcement, now time.Time) domain.Policy {
	summary := a.Summary
	if summary == "" {
		summary = a.Abstract
	}
	return domain.Policy{
		ID:          a.ID,
		Region:      ShortRegion(a.Area),
		Title:       htmltext.Plain(a.Title),
		Amount:      detailAmount,
		Status:      StatusFromPeriod(a.Period, now),
		Description: htmltext.Truncate(htmltext.Plain(summary), descriptionRunes),
		Link:        a.URL,
	}
}

// ShortRegion condenses a comma-separated area list: more than two areas
// become "first 외 N".
func ShortRegion(area string) string {
	area = strings.TrimSpace(area)
	if area == "" {
		return nationwide
	}
	parts := strings.Split(area, ",")
	if len(parts) > 2 {
		return fmt.Sprintf("%s 외 %d", strings.TrimSpace(parts[0]), len(parts)-1)
	}
	return area
}

// StatusFromPeriod derives a status from a "YYYYMMDD~YYYYMMDD" application
// period. The end date is inclusive. Periods without a parsable end date
// are treated as open.
func StatusFromPeriod(period string, now time.Time) string {
	_, endStr, ok := strings.Cut(period, "~")
	if !ok {
		return domain.PolicyOpen
	}
	end, err := time.ParseInLocation(periodDateLayout, strings.TrimSpace(endStr), domain.KST)
	if err != nil {
		return domain.PolicyOpen
	}

	n := now.In(domain.KST)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, domain.KST)
	days := int(end.Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return domain.PolicyClosed
	case days <= closingWindowDays:
		return domain.PolicyClosing
	default:
		return domain.PolicyOpen
	}
}
