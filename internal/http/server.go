// Package http exposes the finance pipeline as a JSON API on a chi router.
package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"budgetu/internal/core"
	"budgetu/internal/dashboard"
	"budgetu/internal/log"
	"budgetu/internal/middleware/cors"
	"budgetu/internal/middleware/ratelimit"
	"budgetu/internal/middleware/security"
	"budgetu/internal/middleware/trace"
	"budgetu/internal/narrative"
)

const maxBodyBytes = 1 << 20

// FinanceProvider is satisfied by *services.FinanceService.
type FinanceProvider interface {
	Dashboard(ctx context.Context, userID string, month core.Month) (dashboard.Payload, error)
	Insights(ctx context.Context, userID string, month core.Month) (narrative.InsightsReport, error)
	Chat(ctx context.Context, userID, message string) narrative.ChatReply
}

// Options tunes the middleware stack.
type Options struct {
	AllowedOrigin      string
	RateLimitPerMinute int
	Logger             *log.Logger
}

// Server wraps http.Server with the rate limiter it owns.
type Server struct {
	http.Server

	finance      FinanceProvider
	logger       *log.Logger
	limiter      *ratelimit.Limiter
	clientIP     *security.ClientIP
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, finance FinanceProvider, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		finance:  finance,
		logger:   logger,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		clientIP: security.NewClientIP(),
	}

	r := chi.NewRouter()
	r.NotFound(handleNotFound)
	r.MethodNotAllowed(handleNotFound)

	r.Use(trace.NewMiddleware(logger, s.clientIP.Extract).Handler)
	r.Use(recoverer)
	r.Use(cors.Middleware(opts.AllowedOrigin))
	r.Use(security.Headers(security.DefaultHeadersConfig()))
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", handleHealth)
	r.Get("/dashboard", s.handleDashboard)

	limited := r.With(s.limiter.Middleware(s.clientIP.Extract, s.onRateLimited))
	limited.Post("/ai/insights", s.handleInsights)
	limited.Post("/ai/chat", s.handleChat)

	s.Server = http.Server{
		Addr:    addr,
		Handler: r,
	}
	return s
}

// Shutdown stops the limiter and then the HTTP server. Only the first call
// has any effect.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.clientIP.Extract(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	RateLimitedError().Write(w)
}
