// Package api exposes the rendering pipeline over HTTP.
//
// The service is a thin shell around pipeline.Runner: it decodes a
// render request, executes the pipeline, optionally persists the
// recorded scene, and returns the artifacts. Every request carries a
// generated request id for log correlation.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/deckdraw/pkg/buildinfo"
	"github.com/matzehuels/deckdraw/pkg/errors"
	"github.com/matzehuels/deckdraw/pkg/pipeline"
	"github.com/matzehuels/deckdraw/pkg/store"
)

// Server hosts the render endpoints.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// Option configures a server.
type Option func(*Server)

// WithStore enables scene persistence. Without it the scene endpoints
// return 404 for every id.
func WithStore(s store.Store) Option {
	return func(srv *Server) { srv.store = s }
}

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(srv *Server) { srv.logger = l }
}

// NewServer creates the HTTP server around a pipeline runner.
func NewServer(runner *pipeline.Runner, opts ...Option) *Server {
	srv := &Server{
		runner: runner,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(srv.requestID)

	r.Get("/healthz", srv.handleHealth)
	r.Post("/render", srv.handleRender)
	r.Get("/scenes/{id}", srv.handleGetScene)
	r.Get("/decks/{hash}/scenes", srv.handleListScenes)

	srv.router = r
	return srv
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID assigns a uuid to each request and logs its outcome.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)

		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// statusForCode maps pipeline error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidDeck, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidEngine, errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidTheme:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound, errors.ErrCodeSlideNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
