// Package web serves a read-only view of the running scheduler over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/five82/wxsched/internal/history"
	"github.com/five82/wxsched/internal/state"
)

const shutdownTimeout = 5 * time.Second

// StateResponse is the body of GET /api/state.
type StateResponse struct {
	Clock       string          `json:"clock"`
	LastHeard   []string        `json:"last_heard"`
	History     []history.Entry `json:"history"`
	LastUpdated time.Time       `json:"last_updated"`
	LastError   string          `json:"last_error,omitempty"`
	Degraded    bool            `json:"degraded"`
}

// Server exposes the state store.
type Server struct {
	echo          *echo.Echo
	store         *state.Store
	lastHeardHTML string
}

// New builds a server over store. lastHeardHTML is the rendered artifact
// served at /lastheard.
func New(store *state.Store, lastHeardHTML string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Debug("http request", "method", v.Method, "uri", v.URI, "status", v.Status, "remote_ip", c.RealIP())
			return nil
		},
	}))

	s := &Server{echo: e, store: store, lastHeardHTML: lastHeardHTML}
	e.GET("/health", s.health)
	e.GET("/lastheard", s.lastHeard)
	e.GET("/api/state", s.state)
	e.GET("/api/schedule", s.schedule)
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Serve listens on addr until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("status server listening", "addr", addr)
		errCh <- s.echo.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) health(c echo.Context) error {
	snap := s.store.Snapshot()
	status := "ok"
	code := http.StatusOK
	if snap.IsDegraded() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, map[string]string{"status": status})
}

func (s *Server) lastHeard(c echo.Context) error {
	if s.lastHeardHTML == "" {
		return echo.NewHTTPError(http.StatusNotFound, "last heard output is not configured")
	}
	data, err := os.ReadFile(s.lastHeardHTML)
	if err != nil {
		if os.IsNotExist(err) {
			return echo.NewHTTPError(http.StatusNotFound, "last heard page not rendered yet")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, data)
}

func (s *Server) state(c echo.Context) error {
	snap := s.store.Snapshot()
	resp := StateResponse{
		Clock:       snap.ClockText,
		LastHeard:   snap.LastHeard,
		History:     snap.History,
		LastUpdated: snap.LastUpdated,
		Degraded:    snap.IsDegraded(),
	}
	if resp.LastHeard == nil {
		resp.LastHeard = []string{}
	}
	if resp.History == nil {
		resp.History = []history.Entry{}
	}
	if snap.LastError != nil {
		resp.LastError = snap.LastError.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) schedule(c echo.Context) error {
	lines := s.store.Snapshot().Schedule
	if lines == nil {
		lines = []state.ScheduleLine{}
	}
	return c.JSON(http.StatusOK, lines)
}
