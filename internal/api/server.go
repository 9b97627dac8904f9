// Package api provides the HTTP REST API and SSE stream of a console session.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/hugo-lorenzo-mato/devcontent/internal/diagnostics"
	"github.com/hugo-lorenzo-mato/devcontent/internal/logging"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/console"
)

// requestTimeout bounds every request except the event stream.
const requestTimeout = 60 * time.Second

// maxBodyBytes caps decoded request bodies.
const maxBodyBytes = 1 << 20

// HostCollector samples host metrics for /api/v1/system.
type HostCollector interface {
	Collect() diagnostics.HostMetrics
}

// Server provides the HTTP endpoints of one console session.
type Server struct {
	router      chi.Router
	session     *console.Session
	host        HostCollector
	logger      *logging.Logger
	enableCORS  bool
	corsOrigins []string
	now         func() time.Time
}

// ServerOption configures the server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *logging.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithCORS enables CORS for the given origins. "*" allows any origin.
func WithCORS(origins []string) ServerOption {
	return func(s *Server) {
		s.enableCORS = true
		s.corsOrigins = append([]string(nil), origins...)
	}
}

// WithHostCollector sets the host metrics source.
func WithHostCollector(c HostCollector) ServerOption {
	return func(s *Server) {
		s.host = c
	}
}

// NewServer creates a new API server for session.
func NewServer(session *console.Session, opts ...ServerOption) *Server {
	s := &Server{
		session: session,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.host == nil {
		s.host = diagnostics.NewCollector()
	}
	s.router = s.setupRouter()
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)

	if s.enableCORS {
		corsHandler := cors.New(cors.Options{
			AllowedOrigins:   s.corsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
			AllowCredentials: false,
			MaxAge:           300,
		})
		r.Use(corsHandler.Handler)
	}

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		// The event stream is long-lived and stays outside the timeout.
		r.Get("/events", s.handleSSE)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))

			r.Get("/session", s.handleGetSession)
			r.Get("/system", s.handleGetSystem)

			r.Route("/workflows", func(r chi.Router) {
				r.Get("/", s.handleListWorkflows)
				r.Route("/{kind}", func(r chi.Router) {
					r.Get("/", s.handleGetWorkflow)
					r.Post("/start", s.handleStartWorkflow)
				})
			})

			r.Get("/drafts", s.handleGetDrafts)
			r.Put("/drafts/{bucket}", s.handlePutDraft)

			r.Get("/campaigns", s.handleListCampaigns)
			r.Get("/campaigns/{id}", s.handleGetCampaign)

			r.Get("/view", s.handleGetView)
			r.Put("/view", s.handlePutView)

			r.Post("/trends/apply", s.handleApplyTrend)

			r.Get("/sample", s.handleGetSample)
			r.Put("/sample", s.handlePutSample)

			r.Get("/presets", s.handleGetPresets)
			r.Get("/agents", s.handleListAgents)
		})
	})

	return r
}

// loggingMiddleware logs HTTP requests.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"bytes", ww.BytesWritten(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError sends a JSON error response.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// decodeJSON reads a JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
