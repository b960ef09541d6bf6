package server

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/username/schedule-viewer/internal/viewer"
)

//go:embed static/index.html
var indexHTML []byte

// Server is the HTTP surface: the embedded grid page plus the JSON API the
// page talks to
type Server struct {
	echo   *echo.Echo
	viewer *viewer.Viewer
	logger *zap.Logger
}

// New creates the server and wires routes and middleware
func New(v *viewer.Viewer, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:   e,
		viewer: v,
		logger: logger,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", values.Method),
				zap.String("uri", values.URI),
				zap.Int("status", values.Status),
				zap.Duration("latency", values.Latency))
			return nil
		},
	}))

	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.POST("/api/fetch", s.handleFetch)
	e.GET("/api/grid", s.handleGrid)

	return s
}

// Start begins serving on the given address and blocks
func (s *Server) Start(addr string) error {
	s.logger.Info("HTTP server starting", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleIndex(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
