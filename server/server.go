// Package server assembles the gateway: gin routes and middleware wrapped in
// compression, plus the listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gorillahandlers "github.com/gorilla/handlers"
	"grading-app-server/config"
	"grading-app-server/handlers"
	"grading-app-server/middleware"
)

const readHeaderTimeout = 10 * time.Second

// Server owns the HTTP handler chain and the listener serving it.
type Server struct {
	cfg     config.Config
	logger  *slog.Logger
	engine  *gin.Engine
	handler http.Handler
	metrics *middleware.Metrics
}

// New builds the router and middleware chain described by cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	// Routes answer with and without a trailing slash instead of redirecting.
	engine.RedirectTrailingSlash = false
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		engine: engine,
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(logger),
		middleware.RequestLogger(),
	)
	if cfg.MetricsEnabled {
		s.metrics = middleware.NewMetrics()
		engine.Use(s.metrics.Middleware())
	}
	engine.Use(
		middleware.SecurityHeaders(),
		middleware.CORS(),
		middleware.ErrorHandler(),
	)

	s.setupRoutes()

	s.handler = gorillahandlers.CompressHandler(engine)

	return s, nil
}

func (s *Server) setupRoutes() {
	apiHandler := handlers.NewAPIHandler(s.cfg.AppVersion, s.cfg.BodyLimitBytes)
	spaHandler := handlers.NewSPAHandler(s.cfg.PublicDir, s.cfg.IndexPath())

	s.engine.GET("/health", apiHandler.Health)
	s.engine.GET("/health/", apiHandler.Health)

	api := s.engine.Group("/api")
	{
		api.POST("/save-grades", apiHandler.SaveGrades)
		api.POST("/save-grades/", apiHandler.SaveGrades)
	}

	if s.metrics != nil {
		s.engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	// Everything else is a static asset or a client-side route.
	s.engine.NoRoute(spaHandler.Serve)
}

// Handler returns the complete handler chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then drains
// in-flight requests for at most the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	port := s.cfg.Port
	if addr, ok := ln.Addr().(*net.TCPAddr); ok {
		port = addr.Port
	}
	s.logger.Info("Grading app running", "port", port, "addr", ln.Addr().String())
	s.logger.Info("Access the app", "url", fmt.Sprintf("http://localhost:%d", port))
	s.logger.Info("Health check", "url", fmt.Sprintf("http://localhost:%d/health", port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
