// Package http serves the collected artifacts alongside health, readiness,
// and metrics endpoints.
package http

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /healthz, /readyz, /metrics, and the artifact directory
// under /data/.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates the data server. Readiness is delegated to ready, which
// reports healthy once the first collection has been written.
func NewServer(addr, dataDir string, ready sharedobs.ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /data/", noCache(http.StripPrefix("/data/", http.FileServer(jsonOnly{http.Dir(dataDir)}))))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// Artifacts are rewritten on every run.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

// jsonOnly hides directory listings and anything that is not a .json file,
// including renameio temp files.
type jsonOnly struct {
	fs http.FileSystem
}

func (j jsonOnly) Open(name string) (http.File, error) {
	if !strings.HasSuffix(name, ".json") {
		return nil, fs.ErrNotExist
	}
	return j.fs.Open(name)
}
