package bizinfo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/green-check-collector/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return NewClient("cert", baseURL, 5*time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Search_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "cert", q.Get("crtfcKey"))
		assert.Equal(t, "json", q.Get("dataType"))
		assert.Equal(t, "10", q.Get("searchCnt"))
		assert.Equal(t, "A", q.Get("searchTy"))
		assert.Equal(t, "에너지", q.Get("keyword"))
		_, _ = w.Write([]byte(`{"jsonArray":[{"pblancId":"PBLN_1","pblancNm":"에너지 바우처","reqstAreaNm":"서울,경기,인천","reqstBeginEndDe":"20250101~20250131","pblancUrl":"https://www.bizinfo.go.kr/1","bsnsSumryCn":"<p>요약</p>"}]}`))
	}))
	defer srv.Close()

	items, err := testClient(srv.URL).Search(context.Background(), "에너지", 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, Announcement{
		ID:      "PBLN_1",
		Title:   "에너지 바우처",
		Area:    "서울,경기,인천",
		Period:  "20250101~20250131",
		URL:     "https://www.bizinfo.go.kr/1",
		Summary: "<p>요약</p>",
	}, items[0])
}

func TestClient_Search_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonArray":[]}`))
	}))
	defer srv.Close()

	items, err := testClient(srv.URL).Search(context.Background(), "에너지", 10)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_Search_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Search(context.Background(), "에너지", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
