package policy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/adapter/bizinfo"
	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	items []bizinfo.Announcement
	err   error
}

func (s *stubSearcher) Search(_ context.Context, _ string, _ int) ([]bizinfo.Announcement, error) {
	return s.items, s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var now = time.Date(2025, 6, 10, 15, 0, 0, 0, domain.KST)

func TestLoadListings_Embedded(t *testing.T) {
	listings, err := LoadListings("")
	require.NoError(t, err)

	require.Len(t, listings, 6)
	assert.Equal(t, "gyeonggi", listings[0].ID)
	assert.Equal(t, "900,000", listings[1].Amount)
	assert.Equal(t, domain.PolicyAlwaysOpen, listings[2].Status)
}

func TestLoadListings_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(path, []byte("policies:\n  - id: x\n    region: 부산\n    title: t\n    amount: a\n    status: 접수중\n    description: d\n"), 0o644))

	listings, err := LoadListings(path)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "부산", listings[0].Region)
}

func TestLoadListings_Missing(t *testing.T) {
	_, err := LoadListings(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestStatusFromPeriod(t *testing.T) {
	tests := []struct {
		period string
		want   string
	}{
		{"20250101~20250609", domain.PolicyClosed},
		{"20250101~20250610", domain.PolicyClosing},
		{"20250101~20250617", domain.PolicyClosing},
		{"20250101~20250618", domain.PolicyOpen},
		{"20250101 ~ 20250618 ", domain.PolicyOpen},
		{"", domain.PolicyOpen},
		{"상시", domain.PolicyOpen},
		{"20250101~미정", domain.PolicyOpen},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFromPeriod(tt.period, now))
		})
	}
}

func TestShortRegion(t *testing.T) {
	assert.Equal(t, "전국", ShortRegion(""))
	assert.Equal(t, "서울", ShortRegion("서울"))
	assert.Equal(t, "서울,경기", ShortRegion("서울,경기"))
	assert.Equal(t, "서울 외 2", ShortRegion("서울, 경기, 인천"))
}

func TestFromAnnouncement(t *testing.T) {
	a := bizinfo.Announcement{
		ID:       "PBLN_1",
		Title:    "에너지 효율 지원",
		Area:     "서울,경기,인천,부산",
		Period:   "20250101~20251231",
		URL:      "https://www.bizinfo.go.kr/1",
		Abstract: "<p>" + strings.Repeat("가", 90) + "</p>",
	}

	p := FromAnnouncement(a, now)

	assert.Equal(t, "PBLN_1", p.ID)
	assert.Equal(t, "서울 외 3", p.Region)
	assert.Equal(t, "지원상세", p.Amount)
	assert.Equal(t, domain.PolicyOpen, p.Status)
	assert.Equal(t, strings.Repeat("가", 80)+"...", p.Description)
	assert.Equal(t, "https://www.bizinfo.go.kr/1", p.Link)
}

func TestBoard_List(t *testing.T) {
	listings, err := LoadListings("")
	require.NoError(t, err)

	t.Run("feed", func(t *testing.T) {
		s := &stubSearcher{items: []bizinfo.Announcement{{ID: "a"}, {ID: "b"}}}
		got := NewBoard(s, listings, discardLogger()).List(context.Background(), now)
		require.Len(t, got.Policies, 2)
		assert.Equal(t, "전국", got.Policies[0].Region)
	})
	t.Run("feed error", func(t *testing.T) {
		s := &stubSearcher{err: errors.New("timeout")}
		got := NewBoard(s, listings, discardLogger()).List(context.Background(), now)
		assert.Equal(t, listings, got.Policies)
	})
	t.Run("empty feed", func(t *testing.T) {
		got := NewBoard(&stubSearcher{}, listings, discardLogger()).List(context.Background(), now)
		assert.Equal(t, listings, got.Policies)
	})
	t.Run("no feed", func(t *testing.T) {
		got := NewBoard(nil, listings, discardLogger()).List(context.Background(), now)
		assert.Equal(t, listings, got.Policies)
	})
}
