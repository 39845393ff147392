// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It decides:
//   - Which URL patterns map to which handler functions
//   - What middleware runs on which routes
//   - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go creates:  config → logger → Store (sqlite or postgres)
//	server.New wires: Store → services → handlers → routes
//
// This is the "composition root" pattern: all dependencies are wired in
// one place, rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/task-manager/internal/auth"
	"github.com/sakif/task-manager/internal/config"
	"github.com/sakif/task-manager/internal/handler"
	"github.com/sakif/task-manager/internal/middleware"
	"github.com/sakif/task-manager/internal/repository"
	"github.com/sakif/task-manager/internal/service"
)

// Database is the connection-level part of a store: health checks and shutdown.
// *sqlite.DB and *postgres.DB both implement it.
type Database interface {
	Ping(ctx context.Context) error
	Close() error
}

// Store bundles the repositories of one backend with its connection.
// main.go fills it from either the sqlite or the postgres package.
type Store struct {
	Users repository.UserRepository
	Tasks repository.TaskRepository
	DB    Database
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. When the server shuts down it closes the store
// to flush pending writes and release the connection pool.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	store  Store
}

// New creates a Server and wires every route.
//
// Each layer only receives what it needs:
//   - Services get repository interfaces (not the concrete store)
//   - Handlers get services (not the repositories)
func New(cfg config.Config, store Store, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	passwords, err := auth.NewPasswordServiceWithCost(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("creating password service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	s.setupRoutes(tokens, passwords, prometheus.NewRegistry())
	return s, nil
}

// Handler exposes the router, mainly so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /auth/register                 → create account, 201 {token}
//	POST   /auth/login                    → 200 {token}
//	GET    /task/getall                   → caller's tasks        (bearer)
//	GET    /task/getid/{id}               → one task              (bearer)
//	POST   /task/create                   → 201 task + Location   (bearer)
//	PUT    /task/update/{id}              → 200 task              (bearer)
//	PATCH  /task/updatestatus/{id}        → 200                   (bearer)
//	PATCH  /task/updatepriority/{id}      → 200                   (bearer)
//	DELETE /task/{id}                     → 204                   (bearer)
//	GET    /healthz                       → 200 / 503
//	GET    /metrics                       → Prometheus exposition
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID: assigns unique ID to each request (for tracing)
//  2. RealIP: extracts real client IP from proxy headers
//  3. Logger: logs each request with timing info and the request ID
//  4. Metrics: counts requests per route pattern
//  5. Recoverer: catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes(tokens *auth.TokenService, passwords *auth.PasswordService, reg *prometheus.Registry) {
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(chimiddleware.Recoverer)

	authService := service.NewAuthService(s.store.Users, tokens, passwords, s.logger)
	taskService := service.NewTaskService(s.store.Tasks, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	taskHandler := handler.NewTaskHandler(taskService, s.logger)
	healthHandler := handler.NewHealthHandler(s.store.DB, s.logger)

	// === Public routes ===
	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
	})
	s.router.Get("/healthz", healthHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	// === Protected routes ===
	// Everything under /task requires a valid bearer token. RequireAuth
	// answers 401 before any handler runs.
	s.router.Route("/task", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Get("/getall", taskHandler.HandleList)
		r.Get("/getid/{id}", taskHandler.HandleGet)
		r.Post("/create", taskHandler.HandleCreate)
		r.Put("/update/{id}", taskHandler.HandleUpdate)
		r.Patch("/updatestatus/{id}", taskHandler.HandleUpdateStatus)
		r.Patch("/updatepriority/{id}", taskHandler.HandleUpdatePriority)
		r.Delete("/{id}", taskHandler.HandleDelete)
	})
}

// Start runs the HTTP server until ctx is cancelled or SIGINT/SIGTERM
// arrives, then shuts down gracefully.
//
// GRACEFUL SHUTDOWN:
//  1. Stop accepting new HTTP connections
//  2. Wait for in-flight requests to finish (server.shutdown_timeout)
//  3. Close the store (flushes WAL, releases the pool)
func (s *Server) Start(ctx context.Context) error {
	defer s.store.DB.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Database.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
