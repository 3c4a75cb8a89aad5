// Package httpapi exposes the application services over a versioned REST
// API built on echo. Handlers stay thin: bind the request, call the
// service, translate sentinel errors into HTTP status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avolkov/pdfchat/internal/logging"
	"github.com/avolkov/pdfchat/internal/server/config"
	"github.com/avolkov/pdfchat/internal/server/services"
)

const apiPrefix = "/api/v1"

type Server struct {
	address string
	echo    *echo.Echo
	logger  logging.Logger
	users   *services.UserService
	files   *services.FileService
	chat    *services.ChatService
}

func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, fs *services.FileService, cs *services.ChatService) *Server {

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		address: cfg.EndpointAddrHTTP,
		echo:    e,
		logger:  l.With("module", "http_server"),
		users:   us,
		files:   fs,
		chat:    cs,
	}

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(s.requestLogger)

	s.registerRoutes()

	return s
}

// Run starts the listener and blocks until ctx is cancelled, then shuts
// the server down draining in-flight requests.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "error shutting down HTTP server", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		s.logger.Info(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status,
			"duration", time.Since(start).String(),
		)
		return err
	}
}
