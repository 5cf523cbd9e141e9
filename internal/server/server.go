// Package server exposes an analyzed folder over HTTP: the generated
// reports as static files and the readings as JSON.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"tornado-tracker/internal/tracker"
	"tornado-tracker/internal/version"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Server serves one registry.
type Server struct {
	reg *tracker.Registry
	log zerolog.Logger
	r   *gin.Engine
}

// New builds the routes for reg.
func New(reg *tracker.Registry, log zerolog.Logger) *Server {
	s := &Server{reg: reg, log: log, r: gin.New()}
	s.r.Use(gin.Recovery(), s.accessLog())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.r.GET("/healthz", s.healthHandler)
	api := s.r.Group("/api")
	api.GET("/readings", s.listReadingsHandler)
	api.GET("/readings/:ts", s.getReadingHandler)
	s.r.NoRoute(gin.WrapH(http.FileServer(http.Dir(s.reg.Dir()))))
}

// Handler returns the engine, for tests and custom listeners.
func (s *Server) Handler() http.Handler { return s.r }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"version":  version.String(),
		"readings": s.reg.Len(),
	})
}

func (s *Server) listReadingsHandler(c *gin.Context) {
	readings := s.reg.Readings()
	if status := c.Query("status"); status != "" {
		filtered := readings[:0]
		for _, r := range readings {
			if string(r.Status) == status {
				filtered = append(filtered, r)
			}
		}
		readings = filtered
	}
	c.JSON(http.StatusOK, readings)
}

func (s *Server) getReadingHandler(c *gin.Context) {
	ts, err := strconv.ParseInt(c.Param("ts"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timestamp must be an integer"})
		return
	}
	e, ok := s.reg.Get(ts)
	if !ok || !e.Analysed() {
		c.JSON(http.StatusNotFound, gin.H{"error": "no reading for that timestamp"})
		return
	}
	c.JSON(http.StatusOK, s.reg.Reading(e))
}
