package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/metrics"
	"github.com/abhisek/mathcoach/internal/session"
)

// MachineFactory creates a fresh practice session.
type MachineFactory func() *session.Machine

// Options configures the server. Zero values fall back to defaults.
type Options struct {
	AllowedOrigins []string
	SessionTTL     time.Duration
	// RequestTimeout bounds every request, question generation included.
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	// Metrics, when set, is served on /metrics.
	Metrics *metrics.Recorder
}

// Server exposes practice sessions over JSON.
type Server struct {
	router     *chi.Mux
	sessions   *registry
	newMachine MachineFactory
	creds      credential.Store
	metrics    *metrics.Recorder
	log        zerolog.Logger
	opts       Options
}

// NewServer creates a server and configures its routes.
func NewServer(newMachine MachineFactory, creds credential.Store, opts Options) *Server {
	if opts.SessionTTL == 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.RequestTimeout == 0 {
		opts.RequestTimeout = 90 * time.Second
	}

	var onSize func(int)
	if opts.Metrics != nil {
		onSize = opts.Metrics.SetActiveSessions
	}

	s := &Server{
		sessions:   newRegistry(opts.SessionTTL, onSize),
		newMachine: newMachine,
		creds:      creds,
		metrics:    opts.Metrics,
		log:        opts.Logger,
		opts:       opts,
	}
	s.setupRouter()
	return s
}

// Router returns the configured router.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.opts.RequestTimeout))

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", s.handleCreateSession)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Put("/selection", s.handleSetSelection)
				r.Post("/next", s.handleNext)
				r.Post("/answer", s.handleAnswer)
				r.Post("/hint", s.handleHint)
			})
		})

		r.Route("/credential", func(r chi.Router) {
			r.Get("/", s.handleGetCredential)
			r.Put("/", s.handleSetCredential)
			r.Delete("/", s.handleClearCredential)
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests with zerolog.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			s.log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("http request")
		}()

		next.ServeHTTP(ww, r)
	})
}

// Run serves on addr until ctx is cancelled, sweeping idle sessions in the
// background, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	janitorCtx, stop := context.WithCancel(ctx)
	defer stop()
	go s.sessions.janitor(janitorCtx, s.opts.SessionTTL/2, func(n int) {
		s.log.Debug().Int("expired", n).Msg("expired idle sessions")
	})

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
