package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/frasig"
	"github.com/aretw0/frasig/pkg/bracket"
	"github.com/aretw0/frasig/pkg/domain"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds form and JSON request bodies.
const maxBodyBytes = 64 << 10

// Analyzer defines the interface for the FRASIG analysis pipeline.
type Analyzer interface {
	Analyze(ctx context.Context, sentence string) (*domain.Analysis, error)
}

// Server serves the web form, the JSON API and the operational endpoints.
type Server struct {
	Analyzer Analyzer

	logger  *slog.Logger
	metrics http.Handler
	health  func(context.Context) error
	timeout time.Duration
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck makes GET /health report 503 when check fails.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// WithRequestTimeout bounds the time spent analysing one request.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.timeout = d
	}
}

// NewHandler creates a new HTTP handler for the analyzer.
func NewHandler(analyzer Analyzer, opts ...Option) http.Handler {
	s := &Server{Analyzer: analyzer}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/", s.Index)
	r.Post("/", s.Index)
	r.Post("/api/analyze", s.Analyze)
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec())
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func (s *Server) analyze(ctx context.Context, sentence string) (*domain.Analysis, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.Analyzer.Analyze(ctx, sentence)
}

// Index handles GET / and POST /.
// Analysis failures never produce an error page: they are logged and the
// form is shown again with the sentence and no graphic.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	data := pageData{}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			loggerFrom(r.Context(), s.logger).Warn("Index: Invalid form", "error", err)
		}
		data.Sentence = r.PostFormValue("sentence")

		if a, err := s.analyze(r.Context(), data.Sentence); err != nil {
			loggerFrom(r.Context(), s.logger).Error("Analysis failed", "error", err, "sentence", data.Sentence)
		} else {
			data.setAnalysis(a)
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		loggerFrom(r.Context(), s.logger).Error("Index: Template execution failed", "error", err)
	}
}

// AnalyzeRequest is the body of POST /api/analyze.
type AnalyzeRequest struct {
	Sentence string `json:"sentence"`
}

// AnalyzeResponse is the successful answer of POST /api/analyze.
type AnalyzeResponse struct {
	ID        string `json:"id"`
	Sentence  string `json:"sentence"`
	Span      string `json:"span"`
	Tree      string `json:"tree"`
	Skeleton  string `json:"skeleton"`
	RawTree   string `json:"raw_tree"`
	SVG       string `json:"svg"`
	Discarded int    `json:"discarded"`
}

// ErrorResponse carries an error message.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Analyze handles the POST /api/analyze request.
func (s *Server) Analyze(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), s.logger)

	var body AnalyzeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		logger.Warn("Analyze: Invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	a, err := s.analyze(r.Context(), body.Sentence)
	if err != nil {
		logger.Error("Analysis failed", "error", err, "sentence", body.Sentence)
		writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		ID:        a.ID,
		Sentence:  a.Input,
		Span:      a.Span,
		Tree:      a.Bracketed,
		Skeleton:  bracket.Skeleton(a.Tree),
		RawTree:   bracket.Format(a.Raw),
		SVG:       a.SVG,
		Discarded: a.Discarded,
	})
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrParse),
		errors.Is(err, domain.ErrDeserialize),
		errors.Is(err, domain.ErrNormalize),
		errors.Is(err, domain.ErrRender):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			loggerFrom(r.Context(), s.logger).Warn("Health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if swagger, err := GetSwagger(); err == nil && swagger.Info != nil {
		apiVersion = swagger.Info.Version
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "frasig-http",
		"version":     strings.TrimSpace(frasig.Version),
		"api_version": apiVersion,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
