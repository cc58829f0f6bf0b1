// Package jsonfile writes the JSON artifacts consumed by the front-end.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/green-check-collector/internal/domain"
	"github.com/google/renameio/v2"
)

// Artifact file names under the output directory.
const (
	ReportsFile      = "location-master.json"
	MarketFile       = "market-data.json"
	EnergyStatusFile = "energy-status.json"
	NewsFile         = "news-data.json"
	PolicyFile       = "policy-data.json"
)

// Writer writes artifacts into a directory. Each file is replaced
// atomically so readers never observe a partial document.
type Writer struct {
	dir    string
	logger *slog.Logger
}

// NewWriter creates a writer rooted at dir. The directory is created on
// first write.
func NewWriter(dir string, logger *slog.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteReports replaces location-master.json with the run's reports.
// It implements pipeline.ReportSink.
func (w *Writer) WriteReports(_ context.Context, run domain.Run, reports domain.ReportSet) error {
	if err := w.Write(ReportsFile, reports); err != nil {
		return err
	}
	w.logger.Info("reports written", "path", filepath.Join(w.dir, ReportsFile), "regions", len(reports), "run_id", run.ID)
	return nil
}

// Write encodes v as indented UTF-8 JSON and atomically replaces name.
func (w *Writer) Write(name string, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Marshal encodes v with two-space indentation and without escaping HTML
// characters, so Hangul and markup survive verbatim.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadReports loads a location-master.json document.
func ReadReports(path string) (domain.ReportSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reports: %w", err)
	}
	var reports domain.ReportSet
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}
	for code, r := range reports {
		r.Code = code
		reports[code] = r
	}
	return reports, nil
}
