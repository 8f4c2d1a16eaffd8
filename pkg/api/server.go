// Package api exposes the planning pipeline over HTTP.
//
// Endpoints:
//
//	POST /api/plan    run the pipeline for a project spec
//	GET  /api/health  liveness probe
//
// Validation failures return 422 with a JSON body carrying the error
// detail under a "detail" key.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/nirmanlabs/nirman/pkg/assist"
	"github.com/nirmanlabs/nirman/pkg/errors"
	"github.com/nirmanlabs/nirman/pkg/pipeline"
	"github.com/nirmanlabs/nirman/pkg/plan"
)

// Server wires the pipeline runner into an HTTP handler.
type Server struct {
	runner      *pipeline.Runner
	assist      *assist.Client
	strategy    string
	aspectRatio float64
	logger      *log.Logger
}

// NewServer creates a server. The assist client is optional; nil
// disables the external layout attempt and model-backed analysis.
// Strategy and aspectRatio are the configured layout defaults; zero
// values select the layout package defaults.
func NewServer(runner *pipeline.Runner, assistClient *assist.Client, strategy string, aspectRatio float64, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:      runner,
		assist:      assistClient,
		strategy:    strategy,
		aspectRatio: aspectRatio,
		logger:      logger,
	}
}

// Handler builds the routed handler with request-ID and logging
// middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/plan", s.handlePlan)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// planRequest is the POST /api/plan body: the spec itself plus optional
// run controls.
type planRequest struct {
	plan.ProjectSpec
	Strategy string `json:"strategy,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	strategy := req.Strategy
	if strategy == "" {
		strategy = s.strategy
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Spec:        req.ProjectSpec,
		Strategy:    strategy,
		AspectRatio: s.aspectRatio,
		Refresh:     req.Refresh,
		Assist:      s.assist,
		Logger:      s.logger,
	})
	if err != nil {
		switch errors.GetCode(err) {
		case errors.ErrCodeInvalidSpec, errors.ErrCodeInvalidStrategy, errors.ErrCodeInvalidInput:
			writeError(w, http.StatusUnprocessableEntity, errors.UserMessage(err))
		default:
			s.logger.Error("plan generation failed", "err", err)
			writeError(w, http.StatusInternalServerError, errors.UserMessage(err))
		}
		return
	}

	w.Header().Set("X-Plan-Id", result.PlanID)
	writeJSON(w, http.StatusOK, result)
}

// ============================================================================
// Middleware and helpers
// ============================================================================

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestID assigns a UUID to every request and echoes it in the
// response headers.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(contextWithRequestID(r.Context(), id)))
	})
}

// logRequests logs one line per request with method, path, status and
// duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", RequestIDFromContext(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError renders {"detail": "..."} error bodies.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
