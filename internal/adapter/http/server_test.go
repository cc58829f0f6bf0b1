package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	httpadapter "github.com/couchcryptid/green-check-collector/internal/adapter/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(t *testing.T, readyErr error) (*httpadapter.Server, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return httpadapter.NewServer(":0", dir, &mockReadiness{err: readyErr}, logger), dir
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, fmt.Errorf("no collection has completed yet"))
	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no collection has completed yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestDataServesArtifact(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "location-master.json"), []byte(`{"seoul":{"grade":"A"}}`), 0o644))

	rec := get(srv, "/data/location-master.json")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.JSONEq(t, `{"seoul":{"grade":"A"}}`, rec.Body.String())
}

func TestDataMissingArtifact(t *testing.T) {
	srv, _ := newTestServer(t, nil)
	rec := get(srv, "/data/market-data.json")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDataHidesNonJSON(t *testing.T) {
	srv, dir := newTestServer(t, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".location-master.json123"), []byte("partial"), 0o644))

	assert.Equal(t, http.StatusNotFound, get(srv, "/data/.location-master.json123").Code)
	assert.Equal(t, http.StatusNotFound, get(srv, "/data/").Code)
}
