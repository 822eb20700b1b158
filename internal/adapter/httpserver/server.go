// Package httpserver exposes health probes, Prometheus metrics, and a small
// read-only API over the scoreboard.
package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pscheid92/quizpulse/internal/domain"
	"github.com/pscheid92/quizpulse/internal/game"
)

const readinessProbeTimeout = 5 * time.Second

const defaultLeaderboardSize = 10

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// leaderboard is the slice of the scoreboard the API reads.
type leaderboard interface {
	Top(n int) []domain.UserRecord
}

// quizState exposes the engine state for the status endpoint.
type quizState interface {
	Snapshot() game.Snapshot
}

type Server struct {
	echo         *echo.Echo
	port         string
	scores       leaderboard
	engine       quizState
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(port string, scores leaderboard, engine quizState, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(requestLoggerMiddleware())

	srv := &Server{
		echo:         e,
		port:         port,
		scores:       scores,
		engine:       engine,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/api/top", s.handleTop)
	s.echo.GET("/api/status", s.handleStatus)
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.port)
	if err := s.echo.Start(":" + s.port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		if err := hc.Check(ctx); err != nil {
			response := map[string]any{
				"status":       "unhealthy",
				"failed_check": hc.Name,
				"error":        err.Error(),
			}
			if err := c.JSON(http.StatusServiceUnavailable, response); err != nil {
				return fmt.Errorf("failed to send JSON response: %w", err)
			}
			return nil
		}
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleTop(c echo.Context) error {
	limit := defaultLeaderboardSize
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	if err := c.JSON(http.StatusOK, s.scores.Top(limit)); err != nil {
		return fmt.Errorf("failed to write leaderboard response: %w", err)
	}
	return nil
}

func (s *Server) handleStatus(c echo.Context) error {
	snapshot := s.engine.Snapshot()

	response := map[string]any{
		"running":          snapshot.Running,
		"no_answer_streak": snapshot.NoAnswerStreak,
	}
	if snapshot.CurrentQuestion != nil {
		response["current_question"] = snapshot.CurrentQuestion.Prompt
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write status response: %w", err)
	}
	return nil
}

func requestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.Warn("Request failed", attrs...)
				return nil
			}
			slog.Debug("Request handled", attrs...)
			return nil
		},
	})
}
