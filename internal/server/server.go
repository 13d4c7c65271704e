// Package server serves the planet catalog over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/planet"
	"github.com/litescript/ls-orrery/internal/version"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Config holds configuration for the catalog server.
type Config struct {
	Addr         string
	AllowOrigins []string
	Release      bool

	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		AllowOrigins:      []string{"*"},
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
	}
}

// Server holds the catalog being served.
type Server struct {
	cfg     Config
	catalog *planet.Catalog
	log     *logging.Logger
}

// New creates a server for catalog.
func New(cfg Config, catalog *planet.Catalog, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	return &Server{cfg: cfg, catalog: catalog, log: log}
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(s.accessLog())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", s.health)
	r.GET("/planets.json", s.planetsFile)

	api := r.Group("/api")
	{
		api.GET("/planets", s.planets)
		api.GET("/planets/:name", s.planetByName)
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving %d planets on %s", s.catalog.Len(), s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// requestID tags every response with an X-Request-ID, reusing the
// caller's ID when one is sent.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("%s %s %d %s id=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start).Round(time.Microsecond), c.GetString(RequestIDHeader))
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"planets": s.catalog.Len(),
		"version": version.Version,
	})
}

// planetsFile serves the bare array the fetcher reads by default.
func (s *Server) planetsFile(c *gin.Context) {
	c.JSON(http.StatusOK, s.catalog.Entries())
}

// planets returns the catalog wrapped with a count.
func (s *Server) planets(c *gin.Context) {
	entries := s.catalog.Entries()
	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// planetByName returns a single planet by name, ignoring case.
func (s *Server) planetByName(c *gin.Context) {
	name := c.Param("name")
	for _, e := range s.catalog.Entries() {
		if strings.EqualFold(e.Name, name) {
			c.JSON(http.StatusOK, gin.H{"data": e})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Planet not found"})
}
