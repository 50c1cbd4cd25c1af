// Package server exposes maze generation and game saves over HTTP and
// streams generated mazes over WebSocket.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lawnchairsociety/mazecarver/internal/config"
	"github.com/lawnchairsociety/mazecarver/internal/database"
	"github.com/lawnchairsociety/mazecarver/internal/logger"
	"github.com/lawnchairsociety/mazecarver/internal/maze"
	"github.com/lawnchairsociety/mazecarver/internal/session"
)

// SaveStore persists game saves. *database.Database implements it.
type SaveStore interface {
	CreateSave(s *database.Save) error
	GetSave(id string) (*database.Save, error)
	UpdateSave(s *database.Save) error
	DeleteSave(id string) error
	ListSaves() ([]*database.Save, error)
}

type Server struct {
	cfg          *config.Config
	saves        SaveStore
	opts         session.Options
	seeds        *lockedSource
	connLimiter  *ConnLimiter
	upgrader     websocket.Upgrader
	router       *gin.Engine
	httpServer   *http.Server
	shutdownOnce sync.Once
}

// New builds a server with its routes registered. saves may be nil, in which
// case the save endpoints are not mounted.
func New(cfg *config.Config, saves SaveStore) (*Server, error) {
	opts, err := session.OptionsFrom(cfg.Maze)
	if err != nil {
		return nil, err
	}

	gin.SetMode(cfg.HTTP.GinMode)

	s := &Server{
		cfg:         cfg,
		saves:       saves,
		opts:        opts,
		seeds:       &lockedSource{src: maze.NewSource(time.Now().UnixNano())},
		connLimiter: NewConnLimiter(cfg.HTTP.Connections),
	}

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := s.cfg.HTTP.WebSocket.IsOriginAllowed(origin, r.Host)
			if !allowed {
				logger.Warning("WebSocket connection rejected - origin not allowed",
					"origin", origin,
					"host", r.Host,
					"remote_addr", r.RemoteAddr)
			}
			return allowed
		},
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery(), requestLogger())
	s.registerRoutes()

	s.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if l := logger.Logger(); l != nil {
		s.httpServer.ErrorLog = slog.NewLogLogger(l.Handler(), slog.LevelError)
	}

	return s, nil
}

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/maze", s.getMaze)

		if s.saves != nil {
			saves := v1.Group("/saves")
			saves.GET("", s.listSaves)
			saves.POST("", s.createSave)
			saves.GET("/:id", s.getSave)
			saves.PUT("/:id", s.updateSave)
			saves.DELETE("/:id", s.deleteSave)
			saves.POST("/:id/move", s.moveSave)
			saves.POST("/:id/hit", s.hitSave)
			saves.GET("/:id/hint", s.hintSave)
		}
	}

	s.router.GET("/ws", s.handleWebSocketUpgrade)
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address until Shutdown is called.
func (s *Server) Run() error {
	logger.Info("HTTP server listening", "address", s.cfg.HTTP.Address)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for active ones until ctx ends.
// Calls after the first are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		logger.Info("HTTP server shutting down")
		err = s.httpServer.Shutdown(ctx)
	})
	return err
}

// requestLogger logs one line per request through the application logger.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", getRealIP(c.Request),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Error("HTTP request", args...)
			return
		}
		logger.Debug("HTTP request", args...)
	}
}

// lockedSource makes a maze.Source safe for concurrent handlers.
type lockedSource struct {
	mu  sync.Mutex
	src maze.Source
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.src.Intn(n)
}
