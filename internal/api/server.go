// Package api serves the learner's state as JSON for a local web front end.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/abhisek/lumi/internal/bootstrap"
	"github.com/abhisek/lumi/internal/logger"
)

// Server exposes Deps over HTTP. Every request holds mu: the domain
// services are single-owner.
type Server struct {
	deps *bootstrap.Deps
	log  *logger.Logger

	mu    sync.Mutex
	quiz  map[string]quizEntry
	allow []string
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins restricts CORS to origins. The default allows any.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.allow = origins }
}

// NewServer wires the routes for d.
func NewServer(d *bootstrap.Deps, opts ...Option) *Server {
	s := &Server{
		deps:  d,
		log:   d.Log.With("component", "api"),
		quiz:  make(map[string]quizEntry),
		allow: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler with CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.logRequests)
	api.HandleFunc("/dashboard", s.dashboard).Methods(http.MethodGet)

	api.HandleFunc("/plan", s.getPlan).Methods(http.MethodGet)
	api.HandleFunc("/plan/tasks/{id}/toggle", s.toggleTask).Methods(http.MethodPost)

	api.HandleFunc("/vault", s.listVault).Methods(http.MethodGet)
	api.HandleFunc("/vault/stats", s.vaultStats).Methods(http.MethodGet)
	api.HandleFunc("/vault/{id}/star", s.starMistake).Methods(http.MethodPost)
	api.HandleFunc("/vault/{id}/confirm", s.confirmMistake).Methods(http.MethodPost)
	api.HandleFunc("/vault/{id}/variant", s.variant).Methods(http.MethodGet)

	api.HandleFunc("/maps/{subject}", s.getMap).Methods(http.MethodGet)
	api.HandleFunc("/maps/{subject}/nodes/{id}/complete", s.completeNode).Methods(http.MethodPost)

	api.HandleFunc("/quiz/{subject}", s.getQuiz).Methods(http.MethodGet)
	api.HandleFunc("/quiz/check", s.checkAnswer).Methods(http.MethodPost)

	api.HandleFunc("/leaderboard", s.leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/store", s.listStore).Methods(http.MethodGet)
	api.HandleFunc("/store/{id}/buy", s.buy).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allow,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("api listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("api request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
