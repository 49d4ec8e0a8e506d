// Package server exposes the hour calculator over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/xolan/hrs/internal/config"
	"github.com/xolan/hrs/internal/service"
	"github.com/xolan/hrs/internal/sheet"
	"github.com/xolan/hrs/internal/timeutil"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

const (
	// maxConcurrentCalculations bounds the calculations running at once.
	maxConcurrentCalculations = 8
	// Per-client request rate and burst.
	requestsPerSecond = 10
	requestBurst      = 20
)

// Server serves the calculator API.
type Server struct {
	echo     *echo.Echo
	services *service.Services
	calcSem  *semaphore.Weighted
	now      func() time.Time
}

// New creates a Server backed by services.
func New(services *service.Services) *Server {
	s := &Server{
		echo:     echo.New(),
		services: services,
		calcSem:  semaphore.NewWeighted(maxConcurrentCalculations),
		now:      time.Now,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:     true,
		LogURI:        true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogError:      true,
		HandleError:   true,
		LogValuesFunc: logRequest,
	}))
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool { return c.Path() == "/healthz" },
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Every(time.Second / requestsPerSecond),
			Burst:     requestBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	}))

	s.echo.GET("/healthz", s.health)
	api := s.echo.Group("/api/v1")
	api.POST("/calculate", s.calculate)
	api.GET("/sheet", s.daySheet)

	return s
}

func logRequest(c echo.Context, v middleware.RequestLoggerValues) error {
	level := slog.LevelInfo
	attrs := []slog.Attr{
		slog.String("method", v.Method),
		slog.String("uri", v.URI),
		slog.Int("status", v.Status),
		slog.Duration("latency", v.Latency),
		slog.String("request_id", v.RequestID),
	}
	if v.Error != nil {
		level = slog.LevelError
		attrs = append(attrs, slog.String("error", v.Error.Error()))
	}
	slog.LogAttrs(c.Request().Context(), level, "request", attrs...)
	return nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr and blocks until the server stops. It returns nil
// after a Shutdown.
func (s *Server) Start(addr string) error {
	slog.Info("server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

type calculateRequest struct {
	Text   string  `json:"text" form:"input"`
	Mode   string  `json:"mode" form:"mode"`
	Target float64 `json:"target" form:"target"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// calculate handles POST /api/v1/calculate.
func (s *Server) calculate(c echo.Context) error {
	var req calculateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "text is required"})
	}
	mode, err := s.requestMode(req.Mode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	if req.Target < 0 || req.Target > 24 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "target must be between 0 and 24"})
	}

	ctx := c.Request().Context()
	if err := s.calcSem.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
	}
	defer s.calcSem.Release(1)

	cmp, err := s.services.Calc.CompareWithTarget(ctx, req.Text, req.Target)
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
	}

	return c.JSON(http.StatusOK, cmp.ForMode(mode))
}

// requestMode validates the requested mode, falling back to the configured
// one.
func (s *Server) requestMode(mode string) (string, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = s.services.Config.Get().Mode
	}
	switch mode {
	case config.ModeOrdered, config.ModeUnordered, config.ModeBoth:
		return mode, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be ordered, unordered or both", mode)
}

type sheetResponse struct {
	Day string `json:"day"`
	*service.DayResult
}

// daySheet handles GET /api/v1/sheet?date=.
func (s *Server) daySheet(c echo.Context) error {
	day, err := timeutil.ParseDay(c.QueryParam("date"), s.now())
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ctx := c.Request().Context()
	if err := s.calcSem.Acquire(ctx, 1); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "request canceled")
	}
	defer s.calcSem.Release(1)

	result, err := s.services.Sheet.Calculate(ctx, day)
	if err != nil {
		slog.Error("failed to calculate sheet", "day", sheet.DayOf(day), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read sheet")
	}
	return c.JSON(http.StatusOK, sheetResponse{Day: sheet.DayOf(day), DayResult: result})
}
