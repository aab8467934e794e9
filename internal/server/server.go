// Package server exposes the control API: the surrogate for the relation
// and action surface of the surrounding orchestration layer.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"lteman/internal/config"
	"lteman/internal/constants"
	"lteman/internal/operations"
)

// Server represents the control API server
type Server struct {
	cfg *config.Config
	ops *operations.Manager

	echo      *echo.Echo
	startTime time.Time
}

// New creates a new server instance
func New(cfg *config.Config, ops *operations.Manager) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	return &Server{
		cfg:       cfg,
		ops:       ops,
		echo:      e,
		startTime: time.Now(),
	}
}

// Handler returns the HTTP handler, with middleware and routes set up
func (s *Server) Handler() http.Handler {
	s.setupMiddleware()
	s.setupRoutes()
	return s.echo
}

// Start starts the server and blocks until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.echo,
		ReadTimeout:  constants.DefaultServerReadTimeout,
		WriteTimeout: constants.DefaultServerWriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	s.echo.Logger.Infof("control API listening on %s", addr)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.DefaultServerShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(requestID())
	s.echo.Use(requestLogger)
}
