package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/crash-data-etl/internal/domain"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxNormalizeBody caps the POST /v1/normalize request body.
const maxNormalizeBody = 10 << 20

// Server exposes health, readiness and metrics endpoints alongside an
// on-demand normalization API backed by the same engine as the pipeline.
type Server struct {
	httpServer *http.Server
	engine     *domain.Engine
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics,
// POST /v1/normalize and GET /v1/gazetteer routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, engine *domain.Engine, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine: engine,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/normalize", s.handleNormalize)
	mux.HandleFunc("GET /v1/gazetteer", s.handleGazetteer)

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

// handleNormalize accepts one flat JSON object or an array of them and
// answers with the normalized record(s) in the same shape.
func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxNormalizeBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("read body: %w", err))
		return
	}

	payloads, isArray, err := splitPayload(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	out := make([]domain.AccidentRecord, 0, len(payloads))
	for i, p := range payloads {
		raw, err := domain.ParseRawEvent(domain.RawEvent{Value: p})
		if err != nil {
			if isArray {
				err = fmt.Errorf("record %d: %w", i, err)
			}
			writeError(w, http.StatusBadRequest, err)
			return
		}
		out = append(out, s.engine.Normalize(raw))
	}

	s.logger.Debug("normalized records via api", "count", len(out))
	if isArray {
		sharedobs.WriteJSON(w, http.StatusOK, out)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, out[0])
}

func (s *Server) handleGazetteer(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.engine.Gazetteer().WriteYAML(&buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// splitPayload separates a request body into per-record JSON documents.
func splitPayload(body []byte) ([]json.RawMessage, bool, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, false, errors.New("request body is empty")
	}
	if trimmed[0] != '[' {
		return []json.RawMessage{trimmed}, false, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, true, fmt.Errorf("decode request: %w", err)
	}
	return items, true, nil
}

func writeError(w http.ResponseWriter, status int, err error) {
	sharedobs.WriteJSON(w, status, map[string]string{"error": err.Error()})
}
