// Package server exposes the eligibility engine over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rgehrsitz/plan4you/internal/advisor"
	"github.com/rgehrsitz/plan4you/internal/calculation"
	"github.com/rgehrsitz/plan4you/internal/catalog"
)

// RequestIDHeader carries the per-request ID on responses.
const RequestIDHeader = "X-Request-ID"

// CatalogReader is the read side of the catalog store.
type CatalogReader interface {
	Find(ctx context.Context, key catalog.Key) (*catalog.Entry, error)
	List(ctx context.Context) ([]catalog.Summary, error)
}

// Config describes the server's dependencies.
type Config struct {
	Addr    string
	Advisor *advisor.Advisor
	Catalog CatalogReader // optional
	Logger  calculation.Logger
}

// Server serves the /api routes.
type Server struct {
	addr   string
	router *gin.Engine
}

// New builds the HTTP server.
func New(cfg Config) (*Server, error) {
	if cfg.Advisor == nil {
		return nil, errors.New("http server requires an advisor")
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.Logger == nil {
		cfg.Logger = calculation.NopLogger{}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), requestLogger(cfg.Logger), allowCORS())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := &Router{Advisor: cfg.Advisor, Catalog: cfg.Catalog, Logger: cfg.Logger}
	api.Register(router.Group("/api"))

	return &Server{addr: cfg.Addr, router: router}, nil
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.addr
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	srv := &http.Server{Addr: s.addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	case err := <-errCh:
		return err
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log calculation.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debugf("HTTP %s %s status=%d id=%s dur=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.GetString("requestID"), time.Since(start))
	}
}

// allowCORS lets the browser front end call the API from another origin.
func allowCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+RequestIDHeader)
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
