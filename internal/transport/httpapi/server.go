// Package httpapi exposes registry requests over HTTP.
//
// GET /@ros2_types/<pattern>?format=<token> and GET /@ros2_env/<pattern>
// answer with a JSON array of {"key","value","encoding"} objects, one per
// match. A rejected request answers 400 with {"error": "<message>"}.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ros2types/ros2types/internal/query"
)

const transportName = "http"

// Server serves a query.Handler over HTTP.
type Server struct {
	router   chi.Router
	handler  *query.Handler
	log      zerolog.Logger
	obs      query.Observer
	gatherer prometheus.Gatherer
	server   *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access and error logs.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithObserver sets the receiver of per-request events.
func WithObserver(obs query.Observer) Option {
	return func(s *Server) {
		if obs != nil {
			s.obs = obs
		}
	}
}

// WithGatherer exposes g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New builds the router for h.
func New(h *query.Handler, opts ...Option) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		handler: h,
		log:     zerolog.Nop(),
		obs:     query.NopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}

	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newLoggingMiddleware(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	typesRoot := "/" + strings.TrimSuffix(h.TypesKey(""), "/")
	r.Get(typesRoot, s.handleTypes)
	r.Get(typesRoot+"/*", s.handleTypes)

	envRoot := "/" + strings.TrimSuffix(h.EnvKey(""), "/")
	r.Get(envRoot, s.handleEnv)
	r.Get(envRoot+"/*", s.handleEnv)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on addr in the background. Errors other than a clean
// shutdown are sent on the returned channel.
func (s *Server) Start(addr string) <-chan error {
	errCh := make(chan error, 1)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		defer close(errCh)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.log.Info().Str("addr", addr).Msg("http listening")
	return errCh
}

// Shutdown stops the server started by Start.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	format := r.URL.Query().Get("format")
	var buf query.Buffer
	n, err := s.handler.HandleTypes(requestKey(r), format, &buf)
	s.obs.ObserveQuery(transportName, query.FormatLabel(format), n, err, time.Since(start))
	s.respond(w, &buf, err)
}

func (s *Server) handleEnv(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var buf query.Buffer
	n, err := s.handler.HandleEnv(requestKey(r), &buf)
	s.obs.ObserveQuery(transportName, "env", n, err, time.Since(start))
	s.respond(w, &buf, err)
}

func (s *Server) respond(w http.ResponseWriter, buf *query.Buffer, err error) {
	if err != nil {
		msg := buf.Err
		if msg == "" {
			msg = err.Error()
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}
	replies := buf.Replies
	if replies == nil {
		replies = []query.Reply{}
	}
	writeJSON(w, http.StatusOK, replies)
}

// requestKey turns the request path back into a key expression.
func requestKey(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newLoggingMiddleware(logger zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				return
			}
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		})
	}
}
