// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tendermap/internal/assets"
	"tendermap/internal/core"
	"tendermap/internal/document"
	"tendermap/pkg/schema"
)

// maxUploadBytes caps the size of an uploaded notice document.
const maxUploadBytes = 32 << 20

// Analyzer runs one analysis request. Satisfied by *core.Pipeline.
type Analyzer interface {
	AnalyzeWithSource(ctx context.Context, noticeText string, source assets.Source) (*core.AnalysisResult, error)
}

// SourceResolver builds an asset source for a request-supplied sheet
// location. Satisfied by a closure over assets.NewSheetSource.
type SourceResolver func(ctx context.Context, sheetURL, sheetTab string) (assets.Source, error)

// Server handles HTTP traffic for the analysis API.
type Server struct {
	analyzer      Analyzer
	docs          document.TextExtractor
	defaultSource assets.Source
	resolveSource SourceResolver
	log           core.Logger

	mux *http.ServeMux
}

// New assembles the HTTP server. defaultSource may be nil when no catalogue
// is configured; requests must then supply sheet_url.
func New(
	analyzer Analyzer,
	docs document.TextExtractor,
	defaultSource assets.Source,
	resolveSource SourceResolver,
	log core.Logger,
) *Server {
	s := &Server{
		analyzer:      analyzer,
		docs:          docs,
		defaultSource: defaultSource,
		resolveSource: resolveSource,
		log:           log,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe blocks serving requests until the context is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	s.log.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeResponse is the wire shape of a successful analysis.
type analyzeResponse struct {
	ID              string                     `json:"id"`
	Strategic       core.StrategicAnalysis     `json:"analysis_strategic"`
	ComplianceMap   []schema.ComplianceVerdict `json:"compliance_map"`
	ExtractionError string                     `json:"extraction_error,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("notice")
	if err != nil {
		writeError(w, http.StatusBadRequest, `missing file field "notice"`)
		return
	}
	defer func() { _ = file.Close() }()

	if !isPDF(header.Filename, header.Header.Get("Content-Type")) {
		writeError(w, http.StatusBadRequest, "only PDF documents are accepted")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable upload")
		return
	}
	path, err := document.SaveUpload(content, header.Filename)
	if err != nil {
		s.log.Error("save upload failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "could not store upload")
		return
	}
	defer func() {
		if err := document.Cleanup(path); err != nil {
			s.log.Warn("temp file cleanup failed", "path", path, "error", err.Error())
		}
	}()

	noticeText, err := s.docs.ExtractText(path)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read document text")
		return
	}
	if strings.TrimSpace(noticeText) == "" {
		writeError(w, http.StatusBadRequest, "document contains no extractable text")
		return
	}

	source, err := s.requestSource(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.analyzer.AnalyzeWithSource(r.Context(), noticeText, source)
	if err != nil {
		var gwErr *core.GatewayError
		if errors.As(err, &gwErr) {
			s.log.Error("gateway failure", "gateway", gwErr.Gateway, "error", err.Error())
			writeError(w, http.StatusBadGateway, gwErr.Error())
			return
		}
		s.log.Error("analysis failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	s.log.Info("analysis complete",
		"analysis_id", result.ID,
		"rows", len(result.ComplianceMap.Rows),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	writeJSON(w, http.StatusOK, analyzeResponse{
		ID:              result.ID,
		Strategic:       result.Strategic,
		ComplianceMap:   result.ComplianceMap.Rows,
		ExtractionError: result.ExtractionError,
	})
}

// requestSource picks the asset source for one request: the sheet named in
// the form when present, the configured default otherwise.
func (s *Server) requestSource(r *http.Request) (assets.Source, error) {
	sheetURL := r.FormValue("sheet_url")
	if sheetURL == "" {
		if s.defaultSource == nil {
			return nil, fmt.Errorf("no asset catalogue configured; supply sheet_url")
		}
		return s.defaultSource, nil
	}
	source, err := s.resolveSource(r.Context(), sheetURL, r.FormValue("sheet_tab"))
	if err != nil {
		return nil, fmt.Errorf("invalid sheet location: %w", err)
	}
	return source, nil
}

// isPDF accepts uploads by extension or declared content type.
func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
