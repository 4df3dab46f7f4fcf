// Package server owns the HTTP surface: the chi router, the governance
// middleware chain, and the process lifecycle.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/handler"
	"github.com/userhub/userhub/internal/ratelimit"
	"github.com/userhub/userhub/internal/server/middleware"
	"github.com/userhub/userhub/internal/service"
	"github.com/userhub/userhub/internal/store"
)

// Server is the top-level HTTP server. It owns the chi router, the access
// policy table, and the rate limiter, and serves the auth and user APIs.
type Server struct {
	cfg        *config.Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	tokens     *service.TokenService
	limiter    *ratelimit.Limiter
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server with all routes and middleware wired, ready to
// listen. Call ListenAndServe to start accepting connections.
func New(cfg *config.Config, st *store.Store, authSvc *service.AuthService, tokens *service.TokenService, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		tokens:  tokens,
		limiter: ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow),
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Routes and their access policies are registered together so the
	// policy table cannot drift from the router. Anything not listed here
	// resolves to protected.
	policies := middleware.NewPolicyTable()
	policies.Set("POST", "/auth/register", middleware.PolicyPublic)
	policies.Set("POST", "/auth/login", middleware.PolicyPublic)
	policies.Set("GET", "/health", middleware.PolicyPublic)

	// Rate limiting runs before the guard: the cheap counter check sheds
	// load before any token verification cost is paid.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimit(s.limiter))
	r.Use(middleware.Guard(s.tokens, policies))

	authHandler := handler.NewAuthHandler(s.authSvc)
	userHandler := handler.NewUserHandler(s.store)

	r.Get("/health", s.handleHealth)

	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Post("/users", userHandler.Create)
	r.Get("/users", userHandler.List)
	r.Get("/users/{id}", userHandler.Get)
	r.Patch("/users/{id}", userHandler.Update)
	r.Delete("/users/{id}", userHandler.Delete)

	s.router = r
}

// handleHealth reports process liveness and database connectivity. Returns
// 503 when the database is unreachable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	database := "up"
	httpStatus := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		status = "error"
		database = "down"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]string{
		"status":   status,
		"database": database,
	})
}

// ListenAndServe starts the HTTP server and blocks until SIGINT or SIGTERM,
// then drains in-flight requests before returning.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
